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
	"github.com/shopspring/decimal"
)

// CreateWithdrawRequest represents a partner's payout request. BankDetails
// overrides the details on the partner profile when present.
type CreateWithdrawRequest struct {
	Amount      decimal.Decimal
	BankDetails map[string]interface{}
}

// ValidateWithdrawAmount checks amount against the available balance first and
// the payout policy second.
func ValidateWithdrawAmount(amount, available decimal.Decimal, config Config) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(available) {
		return ErrInsufficientBalance
	}
	if amount.LessThan(config.MinWithdrawAmount) {
		return ErrInvalidAmount
	}
	if config.WithdrawIncrement.IsPositive() && !amount.Mod(config.WithdrawIncrement).IsZero() {
		return ErrInvalidAmount
	}
	return nil
}

// CreateWithdrawRequest reserves amount out of the partner's available balance
func (p *LedgerProcessor) CreateWithdrawRequest(ctx context.Context, partnerID uuid.UUID, req CreateWithdrawRequest) (store.WithdrawRequest, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "partner_id", Value: partnerID.String()},
		observability.Field{Key: "amount", Value: req.Amount.String()},
	)

	if !req.Amount.IsPositive() {
		return store.WithdrawRequest{}, ErrInvalidAmount
	}

	profile, err := p.store.GetPartnerProfile(ctx, partnerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.WithdrawRequest{}, ErrPartnerNotFound
		}
		p.logger.Error(ctx, "failed to get partner profile", err)
		return store.WithdrawRequest{}, fmt.Errorf("failed to get partner profile: %w", err)
	}

	snapshot := store.JSONB(req.BankDetails).Clone()
	if len(snapshot) == 0 {
		snapshot = profile.BankDetails.Clone()
	}
	if len(snapshot) == 0 {
		return store.WithdrawRequest{}, ErrBankDetailsRequired
	}

	request, err := p.store.CreateWithdrawRequest(ctx, store.CreateWithdrawRequestParams{
		PartnerID:    partnerID,
		Amount:       req.Amount,
		BankSnapshot: snapshot,
	}, func(totals store.LedgerTotals) error {
		return ValidateWithdrawAmount(req.Amount, ComputeBalance(totals).Available, p.config)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) || errors.Is(err, ErrInvalidAmount) {
			return store.WithdrawRequest{}, err
		}
		p.logger.Error(ctx, "failed to create withdraw request", err)
		return store.WithdrawRequest{}, fmt.Errorf("failed to create withdraw request: %w", err)
	}

	p.logger.Info(ctx, "withdraw requested", observability.Field{Key: "withdraw_id", Value: request.ID.String()})
	return request, nil
}

// TransitionWithdrawStatus moves a withdraw request through payout. Rejecting a
// request releases its reservation since reserved money is derived from status.
func (p *LedgerProcessor) TransitionWithdrawStatus(ctx context.Context, id uuid.UUID, actor auth.Actor, req TransitionRequest) (store.WithdrawRequest, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "withdraw_id", Value: id.String()},
		observability.Field{Key: "target_status", Value: req.Status},
	)

	if !actor.IsAdmin() {
		return store.WithdrawRequest{}, ErrForbidden
	}
	if !IsValidWithdrawStatus(req.Status) {
		return store.WithdrawRequest{}, ErrInvalidStatus
	}

	request, err := p.store.GetWithdrawRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.WithdrawRequest{}, ErrWithdrawNotFound
		}
		p.logger.Error(ctx, "failed to get withdraw request", err)
		return store.WithdrawRequest{}, fmt.Errorf("failed to get withdraw request: %w", err)
	}

	if !CanTransitionWithdraw(request.Status, req.Status) {
		return store.WithdrawRequest{}, ErrInvalidTransition
	}

	params := store.UpdateWithdrawStatusParams{
		ID:              request.ID,
		FromStatus:      request.Status,
		ToStatus:        req.Status,
		ExpectedVersion: request.Version,
		ProcessedBy:     actor.UserID,
		Notes:           req.Notes,
	}
	if req.Status == store.WithdrawStatusPaid {
		paidAt := p.now().UTC()
		params.PaidAt = &paidAt
	}

	updated, err := p.store.UpdateWithdrawRequestStatus(ctx, params)
	if err != nil {
		if errors.Is(err, store.ErrStaleRecord) {
			return store.WithdrawRequest{}, ErrConcurrentUpdate
		}
		p.logger.Error(ctx, "failed to update withdraw status", err)
		return store.WithdrawRequest{}, fmt.Errorf("failed to update withdraw status: %w", err)
	}

	p.logger.Info(ctx, "withdraw status changed",
		observability.Field{Key: "old_status", Value: request.Status},
		observability.Field{Key: "processed_by", Value: actor.UserID.String()},
	)

	p.notify(ctx, notifications.Event{
		Kind:      notifications.KindWithdrawStatusChanged,
		PartnerID: updated.PartnerID,
		Details:   statusDetails(updated.ID, request.Status, updated.Status, updated.Amount.String(), req.Notes),
	})

	return updated, nil
}

// ListWithdrawsRequest filters a withdraw listing
type ListWithdrawsRequest struct {
	PartnerID *uuid.UUID
	Status    *string
	Page      int
	Limit     int
}

// ListWithdrawsResponse represents a page of withdraw requests
type ListWithdrawsResponse struct {
	Withdraws  []store.WithdrawRequest `json:"withdraws"`
	Pagination Pagination              `json:"pagination"`
}

// ListWithdraws returns withdraw requests, newest first
func (p *LedgerProcessor) ListWithdraws(ctx context.Context, req ListWithdrawsRequest) (ListWithdrawsResponse, error) {
	if req.Status != nil && !IsValidWithdrawStatus(*req.Status) {
		return ListWithdrawsResponse{}, ErrInvalidStatus
	}

	page, limit := normalizePage(req.Page, req.Limit)
	params := store.ListWithdrawRequestsParams{
		PartnerID: req.PartnerID,
		Status:    req.Status,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	requests, err := p.store.ListWithdrawRequests(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to list withdraw requests", err)
		return ListWithdrawsResponse{}, fmt.Errorf("failed to list withdraw requests: %w", err)
	}

	total, err := p.store.CountWithdrawRequests(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to count withdraw requests", err)
		return ListWithdrawsResponse{}, fmt.Errorf("failed to count withdraw requests: %w", err)
	}

	if requests == nil {
		requests = []store.WithdrawRequest{}
	}

	return ListWithdrawsResponse{
		Withdraws: requests,
		Pagination: Pagination{
			HasMore:    params.Offset+len(requests) < total,
			TotalCount: total,
		},
	}, nil
}
