package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JSONB is a custom type for JSONB fields
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface for JSONB
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface for JSONB
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for JSONB")
	}

	if len(bytes) == 0 || string(bytes) == "null" {
		*j = make(JSONB)
		return nil
	}

	result := make(JSONB)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// Clone returns a deep copy so snapshots never share maps with their source.
func (j JSONB) Clone() JSONB {
	if j == nil {
		return nil
	}
	raw, err := json.Marshal(j)
	if err != nil {
		return nil
	}
	out := make(JSONB)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// AffiliateLink is a partner-owned short code pointing at a landing page
type AffiliateLink struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	OwnerID       uuid.UUID  `db:"owner_id" json:"owner_id"`
	Code          string     `db:"code" json:"code"`
	TargetURL     string     `db:"target_url" json:"target_url"`
	IsActive      bool       `db:"is_active" json:"is_active"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
	DeactivatedAt *time.Time `db:"deactivated_at" json:"deactivated_at,omitempty"`
}

// ClickEvent is one debounced visit through an affiliate link
type ClickEvent struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	LinkID             uuid.UUID `db:"link_id" json:"link_id"`
	VisitorFingerprint string    `db:"visitor_fingerprint" json:"-"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// ReferralRecord ties a completed order to a link with an immutable commission
type ReferralRecord struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	LinkID          uuid.UUID       `db:"link_id" json:"link_id"`
	PartnerID       uuid.UUID       `db:"partner_id" json:"partner_id"`
	ExternalOrderID string          `db:"external_order_id" json:"external_order_id"`
	ProductKey      *string         `db:"product_key" json:"product_key,omitempty"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Rate            decimal.Decimal `db:"rate" json:"rate"`
	Commission      decimal.Decimal `db:"commission" json:"commission"`
	Status          string          `db:"status" json:"status"`
	ProcessedBy     *uuid.UUID      `db:"processed_by" json:"processed_by,omitempty"`
	Notes           *string         `db:"notes" json:"notes,omitempty"`
	Version         int             `db:"version" json:"version"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// WithdrawRequest is a partner's request to be paid out of the available balance
type WithdrawRequest struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	PartnerID    uuid.UUID       `db:"partner_id" json:"partner_id"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	Status       string          `db:"status" json:"status"`
	BankSnapshot JSONB           `db:"bank_snapshot" json:"bank_snapshot"`
	Notes        *string         `db:"notes" json:"notes,omitempty"`
	ProcessedBy  *uuid.UUID      `db:"processed_by" json:"processed_by,omitempty"`
	Version      int             `db:"version" json:"version"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
	PaidAt       *time.Time      `db:"paid_at" json:"paid_at,omitempty"`
}

// PartnerProfile holds contact, payout and default rate settings for a partner
type PartnerProfile struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	DisplayName string              `db:"display_name" json:"display_name"`
	Email       string              `db:"email" json:"email"`
	DefaultRate decimal.NullDecimal `db:"default_rate" json:"default_rate"`
	BankDetails JSONB               `db:"bank_details" json:"bank_details,omitempty"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at" json:"updated_at"`
}

// PartnerProductRate overrides the partner default rate for one product
type PartnerProductRate struct {
	PartnerID  uuid.UUID       `db:"partner_id" json:"partner_id"`
	ProductKey string          `db:"product_key" json:"product_key"`
	Rate       decimal.Decimal `db:"rate" json:"rate"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// CommissionRates carries the configured rates that may apply to one referral
type CommissionRates struct {
	ProductRate decimal.NullDecimal `db:"product_rate"`
	DefaultRate decimal.NullDecimal `db:"default_rate"`
}

// LedgerTotals are the per-status sums a balance is derived from
type LedgerTotals struct {
	TotalEarned      decimal.Decimal `db:"total_earned"`
	Approved         decimal.Decimal `db:"approved"`
	Paid             decimal.Decimal `db:"paid"`
	Pending          decimal.Decimal `db:"pending"`
	WithdrawReserved decimal.Decimal `db:"withdraw_reserved"`
}
