package handler

import (
	"affiliate-ledger/internal/auth"
	"affiliate-ledger/internal/auth/processor"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/ratelimit"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Limiter throttles repeated failed authentication attempts
type Limiter interface {
	Allow(ctx context.Context, policy ratelimit.Policy, key string) (ratelimit.Decision, error)
}

type Handler struct {
	authProcessor processor.AuthProcessor
	limiter       Limiter
	loginPolicy   ratelimit.Policy
	logger        *observability.Logger
}

func New(authProcessor processor.AuthProcessor, limiter Limiter, loginPolicy ratelimit.Policy, logger *observability.Logger) Handler {
	return Handler{
		authProcessor: authProcessor,
		limiter:       limiter,
		loginPolicy:   loginPolicy,
		logger:        logger,
	}
}

// HandleJWTMiddleware authenticates the bearer token. Failed attempts count
// against the login policy per client IP; once it is exhausted the caller gets
// 429 until the window frees up.
func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	tokenHeader := c.GetHeader("Authorization")

	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		h.rejectUnauthenticated(c, "Authorization token is missing or invalid")
		return
	}

	actor, err := h.authProcessor.ValidateJWTToken(ctx, strings.TrimPrefix(tokenHeader, "Bearer "))
	if err != nil {
		h.rejectUnauthenticated(c, err.Error())
		return
	}

	auth.SetActor(c, actor)
	c.Request = c.Request.WithContext(observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: actor.UserID.String()},
		observability.Field{Key: "role", Value: actor.Role},
	))
	c.Next()
}

func (h *Handler) rejectUnauthenticated(c *gin.Context, message string) {
	ctx := c.Request.Context()
	if h.limiter != nil {
		decision, err := h.limiter.Allow(ctx, h.loginPolicy, observability.GetRealClientIP(c))
		if err != nil {
			h.logger.WarnWithError(ctx, "login throttle check failed", err)
		} else if !decision.Allowed {
			ratelimit.RespondLimited(c, h.loginPolicy, decision)
			return
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": message, "code": "UNAUTHORIZED"})
	c.Abort()
}

// RequireRole admits only actors holding one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := auth.ActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "code": "UNAUTHORIZED"})
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role", "code": "FORBIDDEN"})
	}
}

// GetActor handles GET /api/v1/me
func (h *Handler) GetActor(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		h.logger.Error(c.Request.Context(), "failed to get actor from context", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user from context"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role})
}
