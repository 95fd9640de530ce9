package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	linksProcessor "affiliate-ledger/internal/links/processor"
	"affiliate-ledger/internal/metrics"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/ratelimit"
	"affiliate-ledger/internal/store"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AttributionStore defines the database operations required by AttributionProcessor
type AttributionStore interface {
	CreateClickEvent(ctx context.Context, linkID uuid.UUID, fingerprint string) (store.ClickEvent, error)
	GetCommissionRates(ctx context.Context, partnerID uuid.UUID, productKey *string) (store.CommissionRates, error)
	CreateReferralRecord(ctx context.Context, params store.CreateReferralRecordParams) (store.ReferralRecord, error)
}

// LinkResolver maps a visitor supplied code to an active link
type LinkResolver interface {
	Resolve(ctx context.Context, code string) (store.AffiliateLink, error)
}

// Limiter debounces repeated clicks
type Limiter interface {
	Allow(ctx context.Context, policy ratelimit.Policy, key string) (ratelimit.Decision, error)
}

// EventPublisher announces newly attributed referrals
type EventPublisher interface {
	PublishReferralCreated(ctx context.Context, record store.ReferralRecord) error
}

var (
	ErrInvalidAmount     = errors.New("order amount must not be negative")
	ErrInvalidOrderID    = errors.New("external order id is required")
	ErrAlreadyAttributed = errors.New("order already attributed to this link")
)

const commissionPlaces = 2

// Config tunes click debouncing and the fallback commission rate
type Config struct {
	ClickWindow time.Duration
	DefaultRate decimal.Decimal
}

type AttributionProcessor struct {
	store     AttributionStore
	links     LinkResolver
	limiter   Limiter
	publisher EventPublisher
	config    Config
	logger    *observability.Logger
}

func New(store AttributionStore, links LinkResolver, limiter Limiter, publisher EventPublisher, config Config, logger *observability.Logger) AttributionProcessor {
	return AttributionProcessor{
		store:     store,
		links:     links,
		limiter:   limiter,
		publisher: publisher,
		config:    config,
		logger:    logger,
	}
}

// Fingerprint identifies a visitor without storing the raw address or agent
func Fingerprint(clientIP, userAgent string) string {
	sum := sha256.Sum256([]byte(clientIP + "|" + userAgent))
	return hex.EncodeToString(sum[:])
}

// ComputeCommission multiplies amount by rate and truncates to cents, so the
// result never exceeds the exact product.
func ComputeCommission(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Truncate(commissionPlaces)
}

// SelectRate picks the product rate, then the partner default, then fallback
func SelectRate(rates store.CommissionRates, fallback decimal.Decimal) decimal.Decimal {
	if rates.ProductRate.Valid {
		return rates.ProductRate.Decimal
	}
	if rates.DefaultRate.Valid {
		return rates.DefaultRate.Decimal
	}
	return fallback
}

// RecordClick writes one click event unless the same visitor clicked the same
// link within the debounce window. A debounced click reports false with no error.
func (p *AttributionProcessor) RecordClick(ctx context.Context, linkID uuid.UUID, fingerprint string) (bool, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "link_id", Value: linkID.String()})

	decision, err := p.limiter.Allow(ctx, ratelimit.ClickPolicy(p.config.ClickWindow), linkID.String()+":"+fingerprint)
	if err != nil {
		p.logger.Error(ctx, "failed to check click debounce", err)
		return false, fmt.Errorf("failed to check click debounce: %w", err)
	}
	if !decision.Allowed {
		metrics.RecordClick(metrics.ClickDebounced)
		return false, nil
	}

	if _, err := p.store.CreateClickEvent(ctx, linkID, fingerprint); err != nil {
		p.logger.Error(ctx, "failed to record click event", err)
		return false, fmt.Errorf("failed to record click event: %w", err)
	}

	metrics.RecordClick(metrics.ClickRecorded)
	return true, nil
}

// TrackVisit resolves code and records the click. A click that cannot be stored
// is logged and does not prevent the redirect.
func (p *AttributionProcessor) TrackVisit(ctx context.Context, code, clientIP, userAgent string) (store.AffiliateLink, error) {
	link, err := p.links.Resolve(ctx, code)
	if err != nil {
		if errors.Is(err, linksProcessor.ErrLinkNotFound) {
			metrics.RecordClick(metrics.ClickUnknownCode)
		}
		return store.AffiliateLink{}, err
	}

	if _, err := p.RecordClick(ctx, link.ID, Fingerprint(clientIP, userAgent)); err != nil {
		p.logger.WarnWithError(ctx, "visit redirected without click record", err)
	}
	return link, nil
}

// AttributeRequest describes one completed order carrying a referral code
type AttributeRequest struct {
	Code            string
	ExternalOrderID string
	Amount          decimal.Decimal
	ProductKey      *string
}

// Attribute creates a pending referral for the order. The commission is fixed at
// creation and never recomputed.
func (p *AttributionProcessor) Attribute(ctx context.Context, req AttributeRequest) (store.ReferralRecord, error) {
	orderID := strings.TrimSpace(req.ExternalOrderID)
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "code", Value: req.Code},
		observability.Field{Key: "external_order_id", Value: orderID},
	)

	if orderID == "" {
		return store.ReferralRecord{}, ErrInvalidOrderID
	}
	if req.Amount.IsNegative() {
		return store.ReferralRecord{}, ErrInvalidAmount
	}

	link, err := p.links.Resolve(ctx, req.Code)
	if err != nil {
		if errors.Is(err, linksProcessor.ErrLinkNotFound) {
			metrics.RecordReferral(metrics.ReferralNoLink)
		} else {
			metrics.RecordReferral(metrics.ReferralFailed)
		}
		return store.ReferralRecord{}, err
	}

	var productKey *string
	if req.ProductKey != nil && strings.TrimSpace(*req.ProductKey) != "" {
		trimmed := strings.TrimSpace(*req.ProductKey)
		productKey = &trimmed
	}

	rates, err := p.store.GetCommissionRates(ctx, link.OwnerID, productKey)
	if err != nil {
		p.logger.Error(ctx, "failed to load commission rates", err)
		metrics.RecordReferral(metrics.ReferralFailed)
		return store.ReferralRecord{}, fmt.Errorf("failed to load commission rates: %w", err)
	}
	rate := SelectRate(rates, p.config.DefaultRate)

	record, err := p.store.CreateReferralRecord(ctx, store.CreateReferralRecordParams{
		LinkID:          link.ID,
		PartnerID:       link.OwnerID,
		ExternalOrderID: orderID,
		ProductKey:      productKey,
		Amount:          req.Amount,
		Rate:            rate,
		Commission:      ComputeCommission(req.Amount, rate),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateReferral) {
			metrics.RecordReferral(metrics.ReferralDuplicate)
			return store.ReferralRecord{}, ErrAlreadyAttributed
		}
		p.logger.Error(ctx, "failed to create referral record", err)
		metrics.RecordReferral(metrics.ReferralFailed)
		return store.ReferralRecord{}, fmt.Errorf("failed to create referral record: %w", err)
	}

	metrics.RecordReferral(metrics.ReferralCreated)
	p.logger.Info(ctx, "referral attributed",
		observability.Field{Key: "referral_id", Value: record.ID.String()},
		observability.Field{Key: "commission", Value: record.Commission.String()},
	)

	if p.publisher != nil {
		if err := p.publisher.PublishReferralCreated(ctx, record); err != nil {
			p.logger.WarnWithError(ctx, "failed to publish referral created event", err)
		}
	}

	return record, nil
}

// AttributeReferral is the best-effort entry point for callers whose own
// transaction must not depend on attribution. It never returns an error.
func (p *AttributionProcessor) AttributeReferral(ctx context.Context, req AttributeRequest) (store.ReferralRecord, bool) {
	record, err := p.Attribute(ctx, req)
	switch {
	case err == nil:
		return record, true
	case errors.Is(err, linksProcessor.ErrLinkNotFound), errors.Is(err, ErrAlreadyAttributed):
		p.logger.Info(ctx, "attribution skipped", observability.Field{Key: "reason", Value: err.Error()})
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidOrderID):
		p.logger.WarnWithError(ctx, "attribution rejected", err)
	default:
		p.logger.Error(ctx, "attribution failed", err)
	}
	return store.ReferralRecord{}, false
}

// IsTerminal reports whether retrying an attribution that failed with err
// cannot succeed.
func IsTerminal(err error) bool {
	return errors.Is(err, linksProcessor.ErrLinkNotFound) ||
		errors.Is(err, ErrAlreadyAttributed) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidOrderID)
}
