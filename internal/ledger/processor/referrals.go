package processor

import (
	"affiliate-ledger/internal/auth"
	"affiliate-ledger/internal/notifications"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/store"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// TransitionRequest asks for a status change with optional reviewer notes
type TransitionRequest struct {
	Status string
	Notes  *string
}

// TransitionReferralStatus moves a referral through its review lifecycle. The
// update only lands if nobody changed the record since it was read.
func (p *LedgerProcessor) TransitionReferralStatus(ctx context.Context, id uuid.UUID, actor auth.Actor, req TransitionRequest) (store.ReferralRecord, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "referral_id", Value: id.String()},
		observability.Field{Key: "target_status", Value: req.Status},
	)

	if !actor.IsAdmin() {
		return store.ReferralRecord{}, ErrForbidden
	}
	if !IsValidReferralStatus(req.Status) {
		return store.ReferralRecord{}, ErrInvalidStatus
	}

	record, err := p.store.GetReferralRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ReferralRecord{}, ErrReferralNotFound
		}
		p.logger.Error(ctx, "failed to get referral record", err)
		return store.ReferralRecord{}, fmt.Errorf("failed to get referral record: %w", err)
	}

	if !CanTransitionReferral(record.Status, req.Status) {
		return store.ReferralRecord{}, ErrInvalidTransition
	}

	updated, err := p.store.UpdateReferralRecordStatus(ctx, store.UpdateReferralStatusParams{
		ID:              record.ID,
		FromStatus:      record.Status,
		ToStatus:        req.Status,
		ExpectedVersion: record.Version,
		ProcessedBy:     actor.UserID,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, store.ErrStaleRecord) {
			return store.ReferralRecord{}, ErrConcurrentUpdate
		}
		p.logger.Error(ctx, "failed to update referral status", err)
		return store.ReferralRecord{}, fmt.Errorf("failed to update referral status: %w", err)
	}

	p.logger.Info(ctx, "referral status changed",
		observability.Field{Key: "old_status", Value: record.Status},
		observability.Field{Key: "processed_by", Value: actor.UserID.String()},
	)

	p.notify(ctx, notifications.Event{
		Kind:      notifications.KindReferralStatusChanged,
		PartnerID: updated.PartnerID,
		Details:   statusDetails(updated.ID, record.Status, updated.Status, updated.Commission.String(), req.Notes),
	})

	return updated, nil
}

// ListReferralsRequest filters a referral listing
type ListReferralsRequest struct {
	PartnerID *uuid.UUID
	LinkID    *uuid.UUID
	Status    *string
	Page      int
	Limit     int
}

// ListReferralsResponse represents a page of referral records
type ListReferralsResponse struct {
	Referrals  []store.ReferralRecord `json:"referrals"`
	Pagination Pagination             `json:"pagination"`
}

// ListReferrals returns referrals, newest first
func (p *LedgerProcessor) ListReferrals(ctx context.Context, req ListReferralsRequest) (ListReferralsResponse, error) {
	if req.Status != nil && !IsValidReferralStatus(*req.Status) {
		return ListReferralsResponse{}, ErrInvalidStatus
	}

	page, limit := normalizePage(req.Page, req.Limit)
	params := store.ListReferralRecordsParams{
		PartnerID: req.PartnerID,
		LinkID:    req.LinkID,
		Status:    req.Status,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	records, err := p.store.ListReferralRecords(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to list referral records", err)
		return ListReferralsResponse{}, fmt.Errorf("failed to list referral records: %w", err)
	}

	total, err := p.store.CountReferralRecords(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to count referral records", err)
		return ListReferralsResponse{}, fmt.Errorf("failed to count referral records: %w", err)
	}

	if records == nil {
		records = []store.ReferralRecord{}
	}

	return ListReferralsResponse{
		Referrals: records,
		Pagination: Pagination{
			HasMore:    params.Offset+len(records) < total,
			TotalCount: total,
		},
	}, nil
}

func statusDetails(id uuid.UUID, oldStatus, newStatus, amount string, notes *string) map[string]string {
	details := map[string]string{
		notifications.DetailID:        id.String(),
		notifications.DetailOldStatus: oldStatus,
		notifications.DetailNewStatus: newStatus,
		notifications.DetailAmount:    amount,
	}
	if notes != nil {
		details[notifications.DetailNotes] = *notes
	}
	return details
}
