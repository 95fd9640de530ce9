package workers

import (
	"context"

	kafka "affiliate-ledger/internal/clients/kafka"
)

// EventMessage is an alias for the Kafka event message type.
type EventMessage = kafka.EventMessage

// EventProcessor handles events read from Kafka. Delivery is at least once, so
// implementations must be idempotent.
type EventProcessor interface {
	// Process returns nil once the event needs no further work. A non-nil
	// error leaves the offset uncommitted.
	Process(ctx context.Context, event EventMessage) error

	// Name returns the processor name for logging.
	Name() string
}

// EventConsumer reads events from Kafka and fans them out to workers.
type EventConsumer interface {
	// Start blocks until ctx is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop shuts down the consumer after in-flight events finish.
	Stop()
}
