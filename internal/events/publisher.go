package events

import (
	"affiliate-ledger/internal/clients/kafka"
	"affiliate-ledger/internal/store"
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published by the ledger
const (
	TypeReferralCreated       = "referral.created"
	TypeReferralStatusChanged = "referral.status_changed"
	TypeWithdrawStatusChanged = "withdraw.status_changed"
)

// Order event types the ledger attributes
const (
	TypeOrderCompleted   = "order.completed"
	TypeConsultationPaid = "consultation.paid"
)

// EventProducer writes one event to the broker
type EventProducer interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

// Publisher handles publishing domain events to Kafka
type Publisher struct {
	producer EventProducer
	now      func() time.Time
}

// NewPublisher creates a new event publisher
func NewPublisher(producer EventProducer) *Publisher {
	return &Publisher{
		producer: producer,
		now:      time.Now,
	}
}

func (p *Publisher) newEvent(eventType string, partnerID uuid.UUID, data map[string]interface{}) kafka.EventMessage {
	return kafka.EventMessage{
		ID:        uuid.New().String(),
		Type:      eventType,
		PartnerID: partnerID.String(),
		Data:      data,
		Timestamp: p.now().UTC().Format(time.RFC3339),
	}
}

// PublishReferralCreated publishes a referral.created event
func (p *Publisher) PublishReferralCreated(ctx context.Context, record store.ReferralRecord) error {
	data := map[string]interface{}{
		"referral_id":       record.ID.String(),
		"link_id":           record.LinkID.String(),
		"external_order_id": record.ExternalOrderID,
		"amount":            record.Amount.String(),
		"rate":              record.Rate.String(),
		"commission":        record.Commission.String(),
		"status":            record.Status,
	}
	if record.ProductKey != nil {
		data["product_key"] = *record.ProductKey
	}
	return p.producer.PublishEvent(ctx, p.newEvent(TypeReferralCreated, record.PartnerID, data))
}

// PublishStatusChanged publishes a referral or withdraw status change
func (p *Publisher) PublishStatusChanged(ctx context.Context, kind string, partnerID uuid.UUID, details map[string]string) error {
	data := make(map[string]interface{}, len(details))
	for k, v := range details {
		data[k] = v
	}
	return p.producer.PublishEvent(ctx, p.newEvent(kind, partnerID, data))
}
