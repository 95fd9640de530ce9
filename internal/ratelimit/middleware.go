package ratelimit

import (
	"affiliate-ledger/internal/observability"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// KeyFunc derives the limiter key for a request. An empty key skips limiting.
type KeyFunc func(c *gin.Context) string

// ClientIPKey limits by the caller's real client IP.
func ClientIPKey(c *gin.Context) string {
	return observability.GetRealClientIP(c)
}

// Middleware creates a Gin middleware enforcing policy per key
func (s *Service) Middleware(policy Policy, keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}

		decision, err := s.Allow(ctx, policy, key)
		if err != nil {
			s.logger.Error(ctx, "rate limit check failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "INTERNAL_ERROR"})
			c.Abort()
			return
		}

		SetHeaders(c, decision)
		if !decision.Allowed {
			s.logger.Warn(ctx, "rate limit exceeded",
				observability.Field{Key: "policy", Value: policy.Name},
				observability.Field{Key: "retry_after_ms", Value: decision.RetryAfter.Milliseconds()},
			)
			RespondLimited(c, policy, decision)
			return
		}

		c.Next()
	}
}

// SetHeaders writes the X-RateLimit-* headers for a decision
func SetHeaders(c *gin.Context, decision Decision) {
	c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", decision.Limit))
	c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", decision.Remaining))
	c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", decision.ResetAt.Unix()))
}

// RespondLimited aborts with 429 and a Retry-After rounded up to whole seconds.
// The request had no effect, so it is always safe to retry.
func RespondLimited(c *gin.Context, policy Policy, decision Decision) {
	retryAfter := retryAfterSeconds(decision)
	message := policy.Message
	if message == "" {
		message = defaultLimitedMessage
	}
	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":       message,
		"code":        "RATE_LIMIT_EXCEEDED",
		"retryable":   true,
		"limit":       decision.Limit,
		"retry_after": retryAfter,
		"reset_at":    decision.ResetAt.Unix(),
	})
}

func retryAfterSeconds(decision Decision) int64 {
	return int64(math.Ceil(decision.RetryAfter.Seconds()))
}
