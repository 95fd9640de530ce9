package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const referralRecordColumns = `id, link_id, partner_id, external_order_id, product_key, amount, rate, commission,
    status, processed_by, notes, version, created_at, updated_at`

// CreateReferralRecordParams represents parameters for recording an attributed order
type CreateReferralRecordParams struct {
	LinkID          uuid.UUID
	PartnerID       uuid.UUID
	ExternalOrderID string
	ProductKey      *string
	Amount          decimal.Decimal
	Rate            decimal.Decimal
	Commission      decimal.Decimal
}

const sqlCreateReferralRecord = `
INSERT INTO referral_records (link_id, partner_id, external_order_id, product_key, amount, rate, commission)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT ON CONSTRAINT referral_records_link_order_key DO NOTHING
RETURNING ` + referralRecordColumns

// CreateReferralRecord inserts a pending referral. A second record for the same
// link and order returns ErrDuplicateReferral and leaves the first untouched.
func (s *Store) CreateReferralRecord(ctx context.Context, params CreateReferralRecordParams) (ReferralRecord, error) {
	var record ReferralRecord
	err := s.db.GetContext(ctx, &record, sqlCreateReferralRecord,
		params.LinkID,
		params.PartnerID,
		params.ExternalOrderID,
		params.ProductKey,
		params.Amount,
		params.Rate,
		params.Commission,
	)
	if err != nil {
		if isNoRows(err) || isUniqueViolation(err, "referral_records_link_order_key") {
			return ReferralRecord{}, ErrDuplicateReferral
		}
		s.logger.Error(ctx, "failed to create referral record", err)
		return ReferralRecord{}, dbError("create referral record", err)
	}
	return record, nil
}

const sqlGetReferralRecordByID = `
SELECT ` + referralRecordColumns + `
FROM referral_records
WHERE id = $1
`

// GetReferralRecordByID retrieves a referral record by ID
func (s *Store) GetReferralRecordByID(ctx context.Context, id uuid.UUID) (ReferralRecord, error) {
	var record ReferralRecord
	err := s.db.GetContext(ctx, &record, sqlGetReferralRecordByID, id)
	if err != nil {
		if isNoRows(err) {
			return ReferralRecord{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get referral record", err)
		return ReferralRecord{}, dbError("get referral record", err)
	}
	return record, nil
}

// UpdateReferralStatusParams describes a compare-and-set status change
type UpdateReferralStatusParams struct {
	ID              uuid.UUID
	FromStatus      string
	ToStatus        string
	ExpectedVersion int
	ProcessedBy     uuid.UUID
	Notes           *string
}

const sqlUpdateReferralRecordStatus = `
UPDATE referral_records
SET status = $4,
    processed_by = $5,
    notes = COALESCE($6, notes),
    version = version + 1,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status = $2 AND version = $3
RETURNING ` + referralRecordColumns

// UpdateReferralRecordStatus moves a record to a new status only if it still has the
// expected status and version. Amount, rate and commission are never written here.
func (s *Store) UpdateReferralRecordStatus(ctx context.Context, params UpdateReferralStatusParams) (ReferralRecord, error) {
	var record ReferralRecord
	err := s.db.GetContext(ctx, &record, sqlUpdateReferralRecordStatus,
		params.ID,
		params.FromStatus,
		params.ExpectedVersion,
		params.ToStatus,
		params.ProcessedBy,
		params.Notes,
	)
	if err != nil {
		if isNoRows(err) {
			return ReferralRecord{}, ErrStaleRecord
		}
		s.logger.Error(ctx, "failed to update referral record status", err)
		return ReferralRecord{}, dbError("update referral record status", err)
	}
	return record, nil
}

// ListReferralRecordsParams filters a referral listing
type ListReferralRecordsParams struct {
	PartnerID *uuid.UUID
	LinkID    *uuid.UUID
	Status    *string
	Limit     int
	Offset    int
}

const sqlListReferralRecords = `
SELECT ` + referralRecordColumns + `
FROM referral_records
WHERE ($1::uuid IS NULL OR partner_id = $1)
  AND ($2::uuid IS NULL OR link_id = $2)
  AND ($3::varchar IS NULL OR status = $3)
ORDER BY created_at DESC, id
LIMIT $4 OFFSET $5
`

// ListReferralRecords returns a page of referral records matching the filter
func (s *Store) ListReferralRecords(ctx context.Context, params ListReferralRecordsParams) ([]ReferralRecord, error) {
	var records []ReferralRecord
	err := s.db.SelectContext(ctx, &records, sqlListReferralRecords,
		params.PartnerID, params.LinkID, params.Status, params.Limit, params.Offset)
	if err != nil {
		s.logger.Error(ctx, "failed to list referral records", err)
		return nil, dbError("list referral records", err)
	}
	return records, nil
}

const sqlCountReferralRecords = `
SELECT COUNT(*)
FROM referral_records
WHERE ($1::uuid IS NULL OR partner_id = $1)
  AND ($2::uuid IS NULL OR link_id = $2)
  AND ($3::varchar IS NULL OR status = $3)
`

// CountReferralRecords counts referral records matching the filter
func (s *Store) CountReferralRecords(ctx context.Context, params ListReferralRecordsParams) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, sqlCountReferralRecords, params.PartnerID, params.LinkID, params.Status)
	if err != nil {
		s.logger.Error(ctx, "failed to count referral records", err)
		return 0, dbError("count referral records", err)
	}
	return count, nil
}
