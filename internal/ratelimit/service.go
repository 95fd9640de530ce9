package ratelimit

import (
	"affiliate-ledger/internal/metrics"
	"affiliate-ledger/internal/observability"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrInvalidPolicy = errors.New("rate limit requires a positive limit and window")

// Decision is the outcome of one acquire attempt
type Decision struct {
	Allowed    bool          `json:"allowed"`
	Limit      int           `json:"limit"`
	Remaining  int           `json:"remaining"`
	ResetAt    time.Time     `json:"reset_at"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// Policy names a limit applied to one class of keys
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
	// Message is returned with a 429; empty uses defaultLimitedMessage.
	Message string
}

const defaultLimitedMessage = "Rate limit exceeded"

// ClickPolicy admits one click per visitor and link per window.
func ClickPolicy(window time.Duration) Policy {
	return Policy{Name: "click", Limit: 1, Window: window}
}

// LoginPolicy throttles failed authentication attempts per client.
func LoginPolicy(limit int, window time.Duration) Policy {
	return Policy{Name: "login", Limit: limit, Window: window}
}

// HookPolicy throttles the order attribution hook per caller. A throttled order
// is not recorded, so the caller must resend it; resends of an already
// attributed order are deduplicated.
func HookPolicy(limit int, window time.Duration) Policy {
	return Policy{
		Name:    "hook",
		Limit:   limit,
		Window:  window,
		Message: "Attribution not recorded. Resend the same order after retry_after seconds",
	}
}

type scriptRunner interface {
	IsEnabled() bool
	RunScript(ctx context.Context, script *redis.Script, keys []string, args ...interface{}) (interface{}, error)
}

// slidingWindow trims expired entries, then admits only while the window holds
// fewer than limit entries. Check and insert run as one atomic step.
// Returns {allowed, count, oldest_ms}.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local oldest = now
if count > 0 then
  local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
  oldest = tonumber(first[2])
end

if count >= limit then
  return {0, count, oldest}
end

redis.call('ZADD', key, now, member)
redis.call('PEXPIRE', key, window)
return {1, count + 1, oldest}
`)

// Service is a sliding-window limiter backed by Redis, with a process-local
// fallback when Redis is disabled or failing.
type Service struct {
	redis  scriptRunner
	memory *memoryWindow
	now    func() time.Time
	logger *observability.Logger
}

// NewService creates a limiter. A nil redis client uses the in-memory window only.
func NewService(redisClient scriptRunner, logger *observability.Logger) *Service {
	return &Service{
		redis:  redisClient,
		memory: newMemoryWindow(),
		now:    time.Now,
		logger: logger,
	}
}

// Allow applies policy to key. Keys of different policies never share a window.
func (s *Service) Allow(ctx context.Context, policy Policy, key string) (Decision, error) {
	decision, err := s.TryAcquire(ctx, policy.Name+":"+key, policy.Limit, policy.Window)
	if err != nil {
		return Decision{}, err
	}
	metrics.RecordLimiterDecision(policy.Name, decision.Allowed)
	return decision, nil
}

// TryAcquire admits the call if fewer than limit calls for key were admitted
// within the trailing window.
func (s *Service) TryAcquire(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if limit <= 0 || window <= 0 {
		return Decision{}, ErrInvalidPolicy
	}

	now := s.now()
	if s.redis != nil && s.redis.IsEnabled() {
		decision, err := s.acquireRedis(ctx, key, limit, window, now)
		if err == nil {
			return decision, nil
		}
		s.logger.WarnWithError(observability.WithFields(ctx,
			observability.Field{Key: "rate_limit_key", Value: key},
		), "redis rate limit failed, falling back to memory", err)
	}
	return s.memory.acquire(key, limit, window, now), nil
}

func (s *Service) acquireRedis(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Decision, error) {
	nowMs := now.UnixMilli()
	member := fmt.Sprintf("%d-%s", nowMs, uuid.NewString())

	raw, err := s.redis.RunScript(ctx, slidingWindow, []string{"rl:" + key},
		nowMs, window.Milliseconds(), limit, member)
	if err != nil {
		return Decision{}, err
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) != 3 {
		return Decision{}, fmt.Errorf("unexpected rate limit script reply %T", raw)
	}
	allowed, ok1 := values[0].(int64)
	count, ok2 := values[1].(int64)
	oldestMs, ok3 := values[2].(int64)
	if !ok1 || !ok2 || !ok3 {
		return Decision{}, fmt.Errorf("unexpected rate limit script reply %v", values)
	}

	return decide(allowed == 1, int(count), limit, time.UnixMilli(oldestMs), window, now), nil
}

func decide(allowed bool, count, limit int, oldest time.Time, window time.Duration, now time.Time) Decision {
	resetAt := oldest.Add(window)
	decision := Decision{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: max(0, limit-count),
		ResetAt:   resetAt,
	}
	if !allowed {
		decision.RetryAfter = max(resetAt.Sub(now), time.Millisecond)
	}
	return decision
}

// memoryWindow keeps per-key admission times for a single process.
type memoryWindow struct {
	mu      sync.Mutex
	entries map[string]*memoryLog
	ops     int
}

type memoryLog struct {
	times  []time.Time
	window time.Duration
}

const memorySweepEvery = 1024

func newMemoryWindow() *memoryWindow {
	return &memoryWindow{entries: make(map[string]*memoryLog)}
}

func (m *memoryWindow) acquire(key string, limit int, window time.Duration, now time.Time) Decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops++
	if m.ops%memorySweepEvery == 0 {
		m.sweep(now)
	}

	log, ok := m.entries[key]
	if !ok {
		log = &memoryLog{}
		m.entries[key] = log
	}
	log.window = window

	cutoff := now.Add(-window)
	kept := log.times[:0]
	for _, at := range log.times {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}

	oldest := now
	if len(kept) > 0 {
		oldest = kept[0]
	}
	if len(kept) >= limit {
		log.times = kept
		return decide(false, len(kept), limit, oldest, window, now)
	}

	log.times = append(kept, now)
	return decide(true, len(log.times), limit, oldest, window, now)
}

// sweep drops keys whose newest entry has left its window.
func (m *memoryWindow) sweep(now time.Time) {
	for key, log := range m.entries {
		if len(log.times) == 0 || !log.times[len(log.times)-1].After(now.Add(-log.window)) {
			delete(m.entries, key)
		}
	}
}
