package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const sqlReferralTotals = `
SELECT
    COALESCE(SUM(commission) FILTER (WHERE status <> 'rejected'), 0) AS total_earned,
    COALESCE(SUM(commission) FILTER (WHERE status = 'approved'), 0) AS approved,
    COALESCE(SUM(commission) FILTER (WHERE status = 'paid'), 0) AS paid,
    COALESCE(SUM(commission) FILTER (WHERE status = 'pending'), 0) AS pending
FROM referral_records
WHERE partner_id = $1
`

const sqlWithdrawReserved = `
SELECT COALESCE(SUM(amount), 0)
FROM withdraw_requests
WHERE partner_id = $1 AND status = ANY($2::text[])
`

// GetLedgerTotals reads referral and withdraw sums from one snapshot so the
// derived balance never mixes two points in time.
func (s *Store) GetLedgerTotals(ctx context.Context, partnerID uuid.UUID) (LedgerTotals, error) {
	var totals LedgerTotals
	err := s.withTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, func(tx *sqlx.Tx) error {
		var err error
		totals, err = s.getLedgerTotalsTx(ctx, tx, partnerID)
		return err
	})
	if err != nil {
		return LedgerTotals{}, err
	}
	return totals, nil
}

func (s *Store) getLedgerTotalsTx(ctx context.Context, tx *sqlx.Tx, partnerID uuid.UUID) (LedgerTotals, error) {
	var totals LedgerTotals
	if err := tx.GetContext(ctx, &totals, sqlReferralTotals, partnerID); err != nil {
		s.logger.Error(ctx, "failed to sum referral records", err)
		return LedgerTotals{}, dbError("sum referral records", err)
	}
	if err := tx.GetContext(ctx, &totals.WithdrawReserved, sqlWithdrawReserved, partnerID, ReservedWithdrawStatuses); err != nil {
		s.logger.Error(ctx, "failed to sum withdraw requests", err)
		return LedgerTotals{}, dbError("sum withdraw requests", err)
	}
	return totals, nil
}
