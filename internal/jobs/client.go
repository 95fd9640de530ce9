package jobs

import (
	"affiliate-ledger/internal/attribution/processor"
	"affiliate-ledger/internal/observability"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client handles enqueueing background jobs
type Client struct {
	client taskEnqueuer
	now    func() time.Time
	logger *observability.Logger
}

// NewClient creates a new job client
func NewClient(redisAddr string, logger *observability.Logger) *Client {
	return newClient(asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}), logger)
}

func newClient(client taskEnqueuer, logger *observability.Logger) *Client {
	return &Client{
		client: client,
		now:    time.Now,
		logger: logger,
	}
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueAttribution queues an order for attribution. An order that is already
// queued counts as enqueued.
func (c *Client) EnqueueAttribution(ctx context.Context, req processor.AttributeRequest) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "code", Value: req.Code},
		observability.Field{Key: "external_order_id", Value: req.ExternalOrderID},
	)

	task, err := NewAttributionTask(AttributionPayload{
		Code:            req.Code,
		ExternalOrderID: req.ExternalOrderID,
		Amount:          req.Amount,
		ProductKey:      req.ProductKey,
		RequestedAt:     c.now().UTC(),
	})
	if err != nil {
		c.logger.Error(ctx, "failed to create attribution task", err)
		return fmt.Errorf("failed to create attribution task: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			c.logger.Info(ctx, "attribution task already queued")
			return nil
		}
		c.logger.Error(ctx, "failed to enqueue attribution task", err)
		return fmt.Errorf("failed to enqueue attribution task: %w", err)
	}

	c.logger.Info(ctx, fmt.Sprintf("enqueued attribution task: %s (queue: %s)", info.ID, info.Queue))
	return nil
}
