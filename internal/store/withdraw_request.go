package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const withdrawRequestColumns = `id, partner_id, amount, status, bank_snapshot, notes, processed_by, version,
    created_at, updated_at, paid_at`

// WithdrawGuard validates a request against the partner's totals read inside the
// creating transaction. A non-nil error aborts the insert.
type WithdrawGuard func(totals LedgerTotals) error

// CreateWithdrawRequestParams represents parameters for requesting a payout
type CreateWithdrawRequestParams struct {
	PartnerID    uuid.UUID
	Amount       decimal.Decimal
	BankSnapshot JSONB
}

const sqlLockPartnerLedger = `SELECT pg_advisory_xact_lock(hashtext($1::text))`

const sqlCreateWithdrawRequest = `
INSERT INTO withdraw_requests (partner_id, amount, bank_snapshot)
VALUES ($1, $2, $3)
RETURNING ` + withdrawRequestColumns

// CreateWithdrawRequest serializes withdrawals per partner, re-reads the
// partner's totals under the lock and inserts only if guard accepts them.
func (s *Store) CreateWithdrawRequest(ctx context.Context, params CreateWithdrawRequestParams, guard WithdrawGuard) (WithdrawRequest, error) {
	var request WithdrawRequest
	err := s.withTx(ctx, nil, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, sqlLockPartnerLedger, params.PartnerID.String()); err != nil {
			s.logger.Error(ctx, "failed to lock partner ledger", err)
			return dbError("lock partner ledger", err)
		}

		totals, err := s.getLedgerTotalsTx(ctx, tx, params.PartnerID)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(totals); err != nil {
				return err
			}
		}

		if err := tx.GetContext(ctx, &request, sqlCreateWithdrawRequest, params.PartnerID, params.Amount, params.BankSnapshot); err != nil {
			s.logger.Error(ctx, "failed to create withdraw request", err)
			return dbError("create withdraw request", err)
		}
		return nil
	})
	if err != nil {
		return WithdrawRequest{}, err
	}
	return request, nil
}

const sqlGetWithdrawRequestByID = `
SELECT ` + withdrawRequestColumns + `
FROM withdraw_requests
WHERE id = $1
`

// GetWithdrawRequestByID retrieves a withdraw request by ID
func (s *Store) GetWithdrawRequestByID(ctx context.Context, id uuid.UUID) (WithdrawRequest, error) {
	var request WithdrawRequest
	err := s.db.GetContext(ctx, &request, sqlGetWithdrawRequestByID, id)
	if err != nil {
		if isNoRows(err) {
			return WithdrawRequest{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get withdraw request", err)
		return WithdrawRequest{}, dbError("get withdraw request", err)
	}
	return request, nil
}

// UpdateWithdrawStatusParams describes a compare-and-set status change
type UpdateWithdrawStatusParams struct {
	ID              uuid.UUID
	FromStatus      string
	ToStatus        string
	ExpectedVersion int
	ProcessedBy     uuid.UUID
	Notes           *string
	PaidAt          *time.Time
}

const sqlUpdateWithdrawRequestStatus = `
UPDATE withdraw_requests
SET status = $4,
    processed_by = $5,
    notes = COALESCE($6, notes),
    paid_at = COALESCE($7, paid_at),
    version = version + 1,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status = $2 AND version = $3
RETURNING ` + withdrawRequestColumns

// UpdateWithdrawRequestStatus moves a request to a new status only if it still has
// the expected status and version.
func (s *Store) UpdateWithdrawRequestStatus(ctx context.Context, params UpdateWithdrawStatusParams) (WithdrawRequest, error) {
	var request WithdrawRequest
	err := s.db.GetContext(ctx, &request, sqlUpdateWithdrawRequestStatus,
		params.ID,
		params.FromStatus,
		params.ExpectedVersion,
		params.ToStatus,
		params.ProcessedBy,
		params.Notes,
		params.PaidAt,
	)
	if err != nil {
		if isNoRows(err) {
			return WithdrawRequest{}, ErrStaleRecord
		}
		s.logger.Error(ctx, "failed to update withdraw request status", err)
		return WithdrawRequest{}, dbError("update withdraw request status", err)
	}
	return request, nil
}

// ListWithdrawRequestsParams filters a withdraw listing
type ListWithdrawRequestsParams struct {
	PartnerID *uuid.UUID
	Status    *string
	Limit     int
	Offset    int
}

const sqlListWithdrawRequests = `
SELECT ` + withdrawRequestColumns + `
FROM withdraw_requests
WHERE ($1::uuid IS NULL OR partner_id = $1)
  AND ($2::varchar IS NULL OR status = $2)
ORDER BY created_at DESC, id
LIMIT $3 OFFSET $4
`

// ListWithdrawRequests returns a page of withdraw requests matching the filter
func (s *Store) ListWithdrawRequests(ctx context.Context, params ListWithdrawRequestsParams) ([]WithdrawRequest, error) {
	var requests []WithdrawRequest
	err := s.db.SelectContext(ctx, &requests, sqlListWithdrawRequests, params.PartnerID, params.Status, params.Limit, params.Offset)
	if err != nil {
		s.logger.Error(ctx, "failed to list withdraw requests", err)
		return nil, dbError("list withdraw requests", err)
	}
	return requests, nil
}

const sqlCountWithdrawRequests = `
SELECT COUNT(*)
FROM withdraw_requests
WHERE ($1::uuid IS NULL OR partner_id = $1)
  AND ($2::varchar IS NULL OR status = $2)
`

// CountWithdrawRequests counts withdraw requests matching the filter
func (s *Store) CountWithdrawRequests(ctx context.Context, params ListWithdrawRequestsParams) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountWithdrawRequests, params.PartnerID, params.Status); err != nil {
		s.logger.Error(ctx, "failed to count withdraw requests", err)
		return 0, dbError("count withdraw requests", err)
	}
	return count, nil
}
