package workers

import (
	"affiliate-ledger/internal/attribution/processor"
	"affiliate-ledger/internal/jobs"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/store"
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Attributor creates referral records for completed orders
type Attributor interface {
	Attribute(ctx context.Context, req processor.AttributeRequest) (store.ReferralRecord, error)
}

// AttributionWorker handles attribution tasks queued by the order hook
type AttributionWorker struct {
	attributor Attributor
	logger     *observability.Logger
}

// NewAttributionWorker creates a new attribution worker
func NewAttributionWorker(attributor Attributor, logger *observability.Logger) *AttributionWorker {
	return &AttributionWorker{
		attributor: attributor,
		logger:     logger,
	}
}

// ProcessAttributionTask processes an attribution task (for Asynq). Outcomes a
// retry cannot change finish the task; transient failures are returned for retry.
func (w *AttributionWorker) ProcessAttributionTask(ctx context.Context, task *asynq.Task) error {
	var payload jobs.AttributionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.logger.Error(ctx, "failed to unmarshal attribution payload", err)
		return fmt.Errorf("failed to unmarshal attribution payload: %v: %w", err, asynq.SkipRetry)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "code", Value: payload.Code},
		observability.Field{Key: "external_order_id", Value: payload.ExternalOrderID},
	)

	record, err := w.attributor.Attribute(ctx, processor.AttributeRequest{
		Code:            payload.Code,
		ExternalOrderID: payload.ExternalOrderID,
		Amount:          payload.Amount,
		ProductKey:      payload.ProductKey,
	})
	if err != nil {
		if processor.IsTerminal(err) {
			w.logger.Info(ctx, "attribution task finished without referral", observability.Field{Key: "reason", Value: err.Error()})
			return nil
		}
		w.logger.Error(ctx, "attribution task failed", err)
		return fmt.Errorf("failed to attribute order: %w", err)
	}

	w.logger.Info(ctx, "attribution task completed", observability.Field{Key: "referral_id", Value: record.ID.String()})
	return nil
}
