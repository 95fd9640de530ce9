package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"affiliate-ledger/internal/observability"

	kafkago "github.com/segmentio/kafka-go"
)

// ConsumerConfig holds configuration for the Kafka event consumer.
type ConsumerConfig struct {
	Brokers       []string
	ConsumerGroup string
	Topic         string

	// NumWorkers is the number of concurrent workers.
	NumWorkers int

	// QueueSize is the buffer size for the event channel.
	QueueSize int

	// DrainTimeout bounds the wait for in-flight events during shutdown.
	DrainTimeout time.Duration

	// MaxAttempts is how many times a worker runs the processor for one event
	// before leaving it uncommitted.
	MaxAttempts int

	// RetryBackoff is the delay before the first retry; it doubles per attempt.
	RetryBackoff time.Duration
}

// DefaultConsumerConfig returns sensible defaults for a consumer.
func DefaultConsumerConfig(brokers []string, consumerGroup, topic string) ConsumerConfig {
	return ConsumerConfig{
		Brokers:       brokers,
		ConsumerGroup: consumerGroup,
		Topic:         topic,
		NumWorkers:    10,
		QueueSize:     100,
		DrainTimeout:  30 * time.Second,
		MaxAttempts:   3,
		RetryBackoff:  200 * time.Millisecond,
	}
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// eventWithMsg pairs an event with its Kafka message for offset tracking.
type eventWithMsg struct {
	event EventMessage
	msg   kafkago.Message
}

type consumer struct {
	config    ConsumerConfig
	reader    messageReader
	processor EventProcessor
	logger    *observability.Logger

	eventCh chan eventWithMsg

	mu          sync.Mutex
	cancelFetch context.CancelFunc
	doneCh      chan struct{}
	stopping    atomic.Bool
	stopOnce    sync.Once
	processed   atomic.Int64
	failed      atomic.Int64
}

func applyConsumerDefaults(config ConsumerConfig) ConsumerConfig {
	defaults := DefaultConsumerConfig(config.Brokers, config.ConsumerGroup, config.Topic)
	if config.NumWorkers <= 0 {
		config.NumWorkers = defaults.NumWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = defaults.DrainTimeout
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = defaults.RetryBackoff
	}
	return config
}

// NewConsumer creates a new Kafka event consumer.
func NewConsumer(config ConsumerConfig, processor EventProcessor, logger *observability.Logger) EventConsumer {
	config = applyConsumerDefaults(config)
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.ConsumerGroup,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		StartOffset:    kafkago.FirstOffset,
		CommitInterval: 0, // Manual commit
	})
	return newConsumer(config, reader, processor, logger)
}

func newConsumer(config ConsumerConfig, reader messageReader, processor EventProcessor, logger *observability.Logger) *consumer {
	config = applyConsumerDefaults(config)
	c := &consumer{
		config:    config,
		reader:    reader,
		processor: processor,
		logger:    logger,
		eventCh:   make(chan eventWithMsg, config.QueueSize),
		doneCh:    make(chan struct{}),
	}

	ctx := observability.WithFields(context.Background(),
		observability.Field{Key: "processor", Value: processor.Name()},
		observability.Field{Key: "consumer_group", Value: config.ConsumerGroup},
		observability.Field{Key: "topic", Value: config.Topic},
		observability.Field{Key: "num_workers", Value: config.NumWorkers},
	)
	logger.Info(ctx, fmt.Sprintf("Initialized consumer for %s processor", processor.Name()))
	return c
}

// Start begins consuming events and blocks until ctx is done or Stop is called.
func (c *consumer) Start(ctx context.Context) error {
	defer close(c.doneCh)

	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancelFetch = cancel
	c.mu.Unlock()
	defer cancel()
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "consumer_group", Value: c.config.ConsumerGroup},
		observability.Field{Key: "topic", Value: c.config.Topic},
		observability.Field{Key: "processor", Value: c.processor.Name()},
	)

	c.logger.Info(ctx, fmt.Sprintf("Starting consumer for %s with %d workers",
		c.processor.Name(), c.config.NumWorkers))

	// Workers run on a context detached from cancellation so in-flight
	// events finish during shutdown.
	workerCtx := context.WithoutCancel(ctx)
	var workerWg sync.WaitGroup
	for i := 0; i < c.config.NumWorkers; i++ {
		workerWg.Add(1)
		go c.worker(&workerWg, i, workerCtx)
	}

	c.fetchLoop(ctx)
	close(c.eventCh)

	done := make(chan struct{})
	go func() {
		workerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info(workerCtx, "All workers finished processing")
	case <-time.After(c.config.DrainTimeout):
		c.logger.Warn(workerCtx, "Drain timeout - some events may not have completed")
	}

	if err := c.reader.Close(); err != nil {
		c.logger.Error(workerCtx, "Failed to close Kafka reader", err)
	}

	c.logger.Info(workerCtx, fmt.Sprintf("Consumer stopped for %s", c.processor.Name()),
		observability.Field{Key: "processed", Value: c.processed.Load()},
		observability.Field{Key: "failed", Value: c.failed.Load()},
	)
	return nil
}

// fetchLoop fetches messages from Kafka until ctx is cancelled.
func (c *consumer) fetchLoop(ctx context.Context) {
	for {
		if c.stopping.Load() {
			return
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if c.stopping.Load() || ctx.Err() != nil {
				return
			}
			c.logger.Error(ctx, "Failed to fetch message from Kafka", err)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		var event EventMessage
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error(ctx, "Failed to unmarshal event, skipping", err)
			if commitErr := c.reader.CommitMessages(context.WithoutCancel(ctx), msg); commitErr != nil {
				c.logger.Error(ctx, "Failed to commit offset", commitErr)
			}
			continue
		}

		select {
		case c.eventCh <- eventWithMsg{event: event, msg: msg}:
		case <-ctx.Done():
			return
		}
	}
}

// worker processes events from the channel until it's closed.
func (c *consumer) worker(wg *sync.WaitGroup, id int, ctx context.Context) {
	defer wg.Done()

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "worker_id", Value: id},
	)

	for e := range c.eventCh {
		eventCtx := observability.WithFields(ctx,
			observability.Field{Key: "event_id", Value: e.event.ID},
			observability.Field{Key: "event_type", Value: e.event.Type},
		)

		if err := c.processWithRetry(eventCtx, e.event); err != nil {
			c.failed.Add(1)
			c.logger.Error(eventCtx, "Failed to process event, leaving offset uncommitted", err)
			continue
		}

		c.processed.Add(1)
		if c.reader != nil {
			if commitErr := c.reader.CommitMessages(ctx, e.msg); commitErr != nil {
				c.logger.Error(eventCtx, "Failed to commit offset", commitErr)
			}
		}
	}
}

func (c *consumer) processWithRetry(ctx context.Context, event EventMessage) error {
	backoff := c.config.RetryBackoff
	var err error
	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		if err = c.processor.Process(ctx, event); err == nil {
			return nil
		}
		if attempt == c.config.MaxAttempts {
			break
		}
		c.logger.WarnWithError(observability.WithFields(ctx,
			observability.Field{Key: "attempt", Value: attempt},
		), "event processing failed, retrying", err)
		time.Sleep(backoff)
		backoff *= 2
	}
	return err
}

// Stop signals the fetch loop to stop and returns after in-flight events finish.
func (c *consumer) Stop() {
	c.stopOnce.Do(func() {
		logCtx := observability.WithFields(context.Background(),
			observability.Field{Key: "processor", Value: c.processor.Name()},
		)
		c.logger.Info(logCtx, fmt.Sprintf("Stopping consumer for %s", c.processor.Name()))

		c.stopping.Store(true)
		c.mu.Lock()
		cancel := c.cancelFetch
		c.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		<-c.doneCh
	})
}
