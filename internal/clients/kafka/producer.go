package kafka

import (
	"affiliate-ledger/internal/observability"
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer handles publishing events to Kafka
type Producer struct {
	writer messageWriter
	logger *observability.Logger
}

// ProducerConfig contains configuration for Kafka producer
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// NewProducer creates a new Kafka producer
func NewProducer(config ProducerConfig, logger *observability.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(config.Brokers...),
		Topic:    config.Topic,
		Balancer: &kafka.Hash{},
		// Acks from all replicas so a published ledger event is not lost on failover
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		BatchSize:    100,
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

// EventMessage represents an event message structure
type EventMessage struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	PartnerID string                 `json:"partner_id"`
	Data      map[string]interface{} `json:"data"`
	Timestamp string                 `json:"timestamp"`
}

func toMessage(event EventMessage) (kafka.Message, error) {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		// Partition by partner so one partner's events stay ordered
		Key:   []byte(event.PartnerID),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "partner_id", Value: []byte(event.PartnerID)},
		},
	}, nil
}

// PublishEvent publishes an event to Kafka
func (p *Producer) PublishEvent(ctx context.Context, event EventMessage) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_type", Value: event.Type},
		observability.Field{Key: "event_id", Value: event.ID},
	)

	msg, err := toMessage(event)
	if err != nil {
		p.logger.Error(ctx, "failed to marshal event", err)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(ctx, "failed to write message to kafka", err)
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	p.logger.Info(ctx, fmt.Sprintf("published event %s to kafka", event.Type))
	return nil
}

// PublishEvents publishes multiple events in batch. Events that fail to
// marshal are logged and left out of the batch.
func (p *Producer) PublishEvents(ctx context.Context, events []EventMessage) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := toMessage(event)
		if err != nil {
			p.logger.Error(ctx, fmt.Sprintf("failed to marshal event %s", event.ID), err)
			continue
		}
		messages = append(messages, msg)
	}
	if len(messages) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		p.logger.Error(ctx, "failed to write messages to kafka", err)
		return fmt.Errorf("failed to write messages to kafka: %w", err)
	}

	p.logger.Info(ctx, fmt.Sprintf("published %d events to kafka", len(messages)))
	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
