package workers

import (
	"affiliate-ledger/internal/attribution/processor"
	"affiliate-ledger/internal/events"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/store"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMalformedOrderEvent = errors.New("malformed order event")

// OrderAttributor turns a completed order into a referral
type OrderAttributor interface {
	Attribute(ctx context.Context, req processor.AttributeRequest) (store.ReferralRecord, error)
}

// OrderEventProcessor attributes order.completed and consultation.paid
// events. Other event types are acknowledged without work.
type OrderEventProcessor struct {
	attributor OrderAttributor
	logger     *observability.Logger
}

func NewOrderEventProcessor(attributor OrderAttributor, logger *observability.Logger) *OrderEventProcessor {
	return &OrderEventProcessor{
		attributor: attributor,
		logger:     logger,
	}
}

func (p *OrderEventProcessor) Name() string {
	return "order-attribution"
}

// Process returns an error only when a retry could succeed.
func (p *OrderEventProcessor) Process(ctx context.Context, event EventMessage) error {
	switch event.Type {
	case events.TypeOrderCompleted, events.TypeConsultationPaid:
	default:
		return nil
	}

	req, err := ParseOrderEvent(event)
	if err != nil {
		p.logger.WarnWithError(ctx, "dropping malformed order event", err)
		return nil
	}
	if req.Code == "" {
		return nil
	}

	record, err := p.attributor.Attribute(ctx, req)
	if err != nil {
		if processor.IsTerminal(err) {
			p.logger.Info(ctx, "order event not attributed", observability.Field{Key: "reason", Value: err.Error()})
			return nil
		}
		return fmt.Errorf("failed to attribute order event: %w", err)
	}

	p.logger.Info(ctx, "order event attributed", observability.Field{Key: "referral_id", Value: record.ID.String()})
	return nil
}

// ParseOrderEvent extracts the attribution request carried in event.Data
func ParseOrderEvent(event EventMessage) (processor.AttributeRequest, error) {
	data := event.Data
	if data == nil {
		return processor.AttributeRequest{}, fmt.Errorf("%w: no data", ErrMalformedOrderEvent)
	}

	orderID := firstString(data, "external_order_id", "order_id")
	if orderID == "" {
		return processor.AttributeRequest{}, fmt.Errorf("%w: missing order id", ErrMalformedOrderEvent)
	}

	amount, err := parseAmount(data["amount"])
	if err != nil {
		return processor.AttributeRequest{}, fmt.Errorf("%w: %w", ErrMalformedOrderEvent, err)
	}

	req := processor.AttributeRequest{
		Code:            firstString(data, "referral_code", "code"),
		ExternalOrderID: orderID,
		Amount:          amount,
	}
	if productKey := firstString(data, "product_key"); productKey != "" {
		req.ProductKey = &productKey
	}
	return req, nil
}

func firstString(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func parseAmount(raw interface{}) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case nil:
		return decimal.Decimal{}, errors.New("missing amount")
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported amount type %T", raw)
	}
}
