package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"affiliate-ledger/internal/notifications"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/store"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerStore defines the database operations required by LedgerProcessor
type LedgerStore interface {
	GetLedgerTotals(ctx context.Context, partnerID uuid.UUID) (store.LedgerTotals, error)

	GetReferralRecordByID(ctx context.Context, id uuid.UUID) (store.ReferralRecord, error)
	UpdateReferralRecordStatus(ctx context.Context, params store.UpdateReferralStatusParams) (store.ReferralRecord, error)
	ListReferralRecords(ctx context.Context, params store.ListReferralRecordsParams) ([]store.ReferralRecord, error)
	CountReferralRecords(ctx context.Context, params store.ListReferralRecordsParams) (int, error)

	CreateWithdrawRequest(ctx context.Context, params store.CreateWithdrawRequestParams, guard store.WithdrawGuard) (store.WithdrawRequest, error)
	GetWithdrawRequestByID(ctx context.Context, id uuid.UUID) (store.WithdrawRequest, error)
	UpdateWithdrawRequestStatus(ctx context.Context, params store.UpdateWithdrawStatusParams) (store.WithdrawRequest, error)
	ListWithdrawRequests(ctx context.Context, params store.ListWithdrawRequestsParams) ([]store.WithdrawRequest, error)
	CountWithdrawRequests(ctx context.Context, params store.ListWithdrawRequestsParams) (int, error)

	GetPartnerProfile(ctx context.Context, partnerID uuid.UUID) (store.PartnerProfile, error)
	UpsertPartnerProfile(ctx context.Context, params store.UpsertPartnerProfileParams) (store.PartnerProfile, error)
	UpdatePartnerBankDetails(ctx context.Context, partnerID uuid.UUID, details store.JSONB) (store.PartnerProfile, error)
	SetPartnerRates(ctx context.Context, params store.SetPartnerRatesParams) error
	ListPartnerProductRates(ctx context.Context, partnerID uuid.UUID) ([]store.PartnerProductRate, error)
}

// Notifier reports status changes to the partner
type Notifier interface {
	Notify(ctx context.Context, event notifications.Event) notifications.Delivery
}

var (
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrInvalidStatus       = errors.New("unknown status")
	ErrConcurrentUpdate    = errors.New("record was modified concurrently")
	ErrInsufficientBalance = errors.New("amount exceeds available balance")
	ErrInvalidAmount       = errors.New("invalid withdraw amount")
	ErrBankDetailsRequired = errors.New("bank details are required")
	ErrForbidden           = errors.New("not allowed to perform this action")
	ErrReferralNotFound    = errors.New("referral not found")
	ErrWithdrawNotFound    = errors.New("withdraw request not found")
	ErrPartnerNotFound     = errors.New("partner not found")
	ErrInvalidRate         = errors.New("commission rate must be between 0 and 1")
	ErrInvalidProfile      = errors.New("display name and email are required")
)

// Config holds the withdraw policy
type Config struct {
	MinWithdrawAmount decimal.Decimal
	WithdrawIncrement decimal.Decimal
}

type LedgerProcessor struct {
	store    LedgerStore
	notifier Notifier
	config   Config
	now      func() time.Time
	logger   *observability.Logger
}

func New(store LedgerStore, notifier Notifier, config Config, logger *observability.Logger) LedgerProcessor {
	return LedgerProcessor{
		store:    store,
		notifier: notifier,
		config:   config,
		now:      time.Now,
		logger:   logger,
	}
}

// Pagination represents pagination metadata
type Pagination struct {
	HasMore    bool `json:"has_more"`
	TotalCount int  `json:"total_count"`
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

var referralTransitions = map[string][]string{
	store.ReferralStatusPending:  {store.ReferralStatusApproved, store.ReferralStatusRejected},
	store.ReferralStatusApproved: {store.ReferralStatusPaid},
}

var withdrawTransitions = map[string][]string{
	store.WithdrawStatusPending:    {store.WithdrawStatusApproved, store.WithdrawStatusRejected},
	store.WithdrawStatusApproved:   {store.WithdrawStatusProcessing, store.WithdrawStatusRejected},
	store.WithdrawStatusProcessing: {store.WithdrawStatusPaid},
}

// CanTransitionReferral reports whether a referral may move from one status to another
func CanTransitionReferral(from, to string) bool {
	return allowed(referralTransitions, from, to)
}

// CanTransitionWithdraw reports whether a withdraw request may move from one status to another
func CanTransitionWithdraw(from, to string) bool {
	return allowed(withdrawTransitions, from, to)
}

func allowed(machine map[string][]string, from, to string) bool {
	for _, next := range machine[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidReferralStatus checks if a referral status is known
func IsValidReferralStatus(status string) bool {
	switch status {
	case store.ReferralStatusPending, store.ReferralStatusApproved, store.ReferralStatusRejected, store.ReferralStatusPaid:
		return true
	}
	return false
}

// IsValidWithdrawStatus checks if a withdraw status is known
func IsValidWithdrawStatus(status string) bool {
	switch status {
	case store.WithdrawStatusPending, store.WithdrawStatusApproved, store.WithdrawStatusProcessing,
		store.WithdrawStatusRejected, store.WithdrawStatusPaid:
		return true
	}
	return false
}

func (p *LedgerProcessor) notify(ctx context.Context, event notifications.Event) {
	if p.notifier == nil {
		return
	}
	if delivery := p.notifier.Notify(ctx, event); !delivery.Delivered {
		p.logger.Warn(ctx, "status change notification was not delivered")
	}
}
