package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"affiliate-ledger/internal/apierrors"
	"affiliate-ledger/internal/attribution/processor"
	"affiliate-ledger/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TaskEnqueuer hands attribution to the background worker
type TaskEnqueuer interface {
	EnqueueAttribution(ctx context.Context, req processor.AttributeRequest) error
}

// Attribution outcomes reported by the order hook
const (
	OutcomeQueued          = "queued"
	OutcomeProcessedInline = "processed_inline"
	OutcomeSkipped         = "skipped"
)

// CookieConfig describes the referral cookie set on redirect
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type Handler struct {
	processor   processor.AttributionProcessor
	enqueuer    TaskEnqueuer
	cookie      CookieConfig
	fallbackURL string
	logger      *observability.Logger
}

func New(processor processor.AttributionProcessor, enqueuer TaskEnqueuer, cookie CookieConfig, fallbackURL string, logger *observability.Logger) Handler {
	return Handler{
		processor:   processor,
		enqueuer:    enqueuer,
		cookie:      cookie,
		fallbackURL: fallbackURL,
		logger:      logger,
	}
}

// HandleRedirect handles GET /r/:code
func (h *Handler) HandleRedirect(c *gin.Context) {
	ctx := c.Request.Context()
	code := strings.TrimSpace(c.Param("code"))

	link, err := h.processor.TrackVisit(ctx, code, observability.GetRealClientIP(c), observability.GetRealUserAgent(c))
	if err != nil {
		h.logger.Info(ctx, "redirecting unresolved code to fallback",
			observability.Field{Key: "code", Value: code},
			observability.Field{Key: "reason", Value: err.Error()},
		)
		c.Redirect(http.StatusFound, h.fallbackURL)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, link.Code, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, link.TargetURL)
}

// AttributeOrderRequest represents the HTTP request for attributing a completed order
type AttributeOrderRequest struct {
	Code            string          `json:"code,omitempty"`
	ExternalOrderID string          `json:"external_order_id" binding:"required,max=255"`
	Amount          decimal.Decimal `json:"amount"`
	ProductKey      *string         `json:"product_key,omitempty" binding:"omitempty,max=100"`
}

// AttributeOrderResponse reports what happened to the attribution
type AttributeOrderResponse struct {
	Status string `json:"status"`
}

// HandleAttributeOrder handles POST /api/v1/attribution/orders. The caller's
// business transaction has already committed, so this always answers 202 once
// the request is well formed.
func (h *Handler) HandleAttributeOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req AttributeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		if cookie, err := c.Cookie(h.cookie.Name); err == nil {
			code = strings.TrimSpace(cookie)
		}
	}
	if code == "" {
		c.JSON(http.StatusAccepted, AttributeOrderResponse{Status: OutcomeSkipped})
		return
	}

	attributeReq := processor.AttributeRequest{
		Code:            code,
		ExternalOrderID: req.ExternalOrderID,
		Amount:          req.Amount,
		ProductKey:      req.ProductKey,
	}

	if h.enqueuer != nil {
		err := h.enqueuer.EnqueueAttribution(ctx, attributeReq)
		if err == nil {
			c.JSON(http.StatusAccepted, AttributeOrderResponse{Status: OutcomeQueued})
			return
		}
		h.logger.WarnWithError(ctx, "failed to enqueue attribution, attributing inline", err)
	}

	if _, ok := h.processor.AttributeReferral(ctx, attributeReq); ok {
		c.JSON(http.StatusAccepted, AttributeOrderResponse{Status: OutcomeProcessedInline})
		return
	}
	c.JSON(http.StatusAccepted, AttributeOrderResponse{Status: OutcomeSkipped})
}
