// Package linkcache maps affiliate codes to their link and owner in Redis so
// redirects skip the database. Entries are hints only: callers re-validate a
// hit against the store before trusting it.
package linkcache

import (
	"affiliate-ledger/internal/clients/redis"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrCacheMiss = errors.New("code not cached")

const keyPrefix = "affiliate:code:"

// Backend is the subset of the Redis client the cache needs
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Entry is what a code resolves to
type Entry struct {
	LinkID  uuid.UUID
	OwnerID uuid.UUID
}

type Cache struct {
	backend    Backend
	defaultTTL time.Duration
}

// New creates a cache. A nil backend makes every lookup a miss.
func New(backend Backend, defaultTTL time.Duration) *Cache {
	return &Cache{backend: backend, defaultTTL: defaultTTL}
}

func cacheKey(code string) string {
	return keyPrefix + strings.ToUpper(strings.TrimSpace(code))
}

// Get returns the cached entry for code, or ErrCacheMiss. Unreadable values
// are reported as misses.
func (c *Cache) Get(ctx context.Context, code string) (Entry, error) {
	if c.backend == nil {
		return Entry{}, ErrCacheMiss
	}
	raw, err := c.backend.Get(ctx, cacheKey(code))
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) || errors.Is(err, redis.ErrNotInitialized) {
			return Entry{}, ErrCacheMiss
		}
		return Entry{}, fmt.Errorf("failed to read code cache: %w", err)
	}
	entry, ok := decode(raw)
	if !ok {
		return Entry{}, ErrCacheMiss
	}
	return entry, nil
}

// Put caches entry for code. A zero ttl uses the default.
func (c *Cache) Put(ctx context.Context, code string, entry Entry, ttl time.Duration) error {
	if c.backend == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.backend.Set(ctx, cacheKey(code), encode(entry), ttl); err != nil {
		if errors.Is(err, redis.ErrNotInitialized) {
			return nil
		}
		return fmt.Errorf("failed to write code cache: %w", err)
	}
	return nil
}

// Invalidate removes the entry for code
func (c *Cache) Invalidate(ctx context.Context, code string) error {
	if c.backend == nil {
		return nil
	}
	if err := c.backend.Del(ctx, cacheKey(code)); err != nil {
		if errors.Is(err, redis.ErrNotInitialized) {
			return nil
		}
		return fmt.Errorf("failed to invalidate code cache: %w", err)
	}
	return nil
}

func encode(entry Entry) string {
	return entry.LinkID.String() + "|" + entry.OwnerID.String()
}

func decode(raw string) (Entry, bool) {
	linkPart, ownerPart, found := strings.Cut(raw, "|")
	if !found {
		return Entry{}, false
	}
	linkID, err := uuid.Parse(linkPart)
	if err != nil {
		return Entry{}, false
	}
	ownerID, err := uuid.Parse(ownerPart)
	if err != nil {
		return Entry{}, false
	}
	return Entry{LinkID: linkID, OwnerID: ownerID}, true
}
