package jobs

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// Task types
const (
	TypeAttributeReferral = "attribution:referral"
)

// Queue names
const (
	QueueHigh    = "high"
	QueueDefault = "default"
)

const (
	attributionMaxRetry  = 5
	attributionRetention = 24 * time.Hour
)

// AttributionPayload is one completed order waiting to be attributed
type AttributionPayload struct {
	Code            string          `json:"code"`
	ExternalOrderID string          `json:"external_order_id"`
	Amount          decimal.Decimal `json:"amount"`
	ProductKey      *string         `json:"product_key,omitempty"`
	RequestedAt     time.Time       `json:"requested_at"`
}

// AttributionTaskID is stable per code and order so a repeated hook call does
// not queue the same order twice while the first task is retained.
func AttributionTaskID(code, externalOrderID string) string {
	return "attribution:" + strings.ToUpper(strings.TrimSpace(code)) + ":" + strings.TrimSpace(externalOrderID)
}

// NewAttributionTask creates an attribution task on the high priority queue
func NewAttributionTask(payload AttributionPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TypeAttributeReferral, data,
		asynq.Queue(QueueHigh),
		asynq.MaxRetry(attributionMaxRetry),
		asynq.TaskID(AttributionTaskID(payload.Code, payload.ExternalOrderID)),
		asynq.Retention(attributionRetention),
	), nil
}
