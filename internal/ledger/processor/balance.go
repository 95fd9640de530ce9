package processor

import (
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/store"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance is a partner's ledger position derived from referral and withdraw rows
type Balance struct {
	PartnerID        uuid.UUID       `json:"partner_id"`
	TotalEarned      decimal.Decimal `json:"total_earned"`
	Approved         decimal.Decimal `json:"approved"`
	Paid             decimal.Decimal `json:"paid"`
	Pending          decimal.Decimal `json:"pending"`
	WithdrawReserved decimal.Decimal `json:"withdraw_reserved"`
	Available        decimal.Decimal `json:"available"`
}

// ComputeBalance derives the balance from per-status totals. Available is
// approved commission minus money held by open withdraw requests, floored at zero.
func ComputeBalance(totals store.LedgerTotals) Balance {
	available := totals.Approved.Sub(totals.WithdrawReserved)
	if available.IsNegative() {
		available = decimal.Zero
	}
	return Balance{
		TotalEarned:      totals.TotalEarned,
		Approved:         totals.Approved,
		Paid:             totals.Paid,
		Pending:          totals.Pending,
		WithdrawReserved: totals.WithdrawReserved,
		Available:        available,
	}
}

// GetBalance recomputes the partner's balance from source rows
func (p *LedgerProcessor) GetBalance(ctx context.Context, partnerID uuid.UUID) (Balance, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "partner_id", Value: partnerID.String()})

	totals, err := p.store.GetLedgerTotals(ctx, partnerID)
	if err != nil {
		p.logger.Error(ctx, "failed to get ledger totals", err)
		return Balance{}, fmt.Errorf("failed to get ledger totals: %w", err)
	}

	balance := ComputeBalance(totals)
	balance.PartnerID = partnerID
	return balance, nil
}
