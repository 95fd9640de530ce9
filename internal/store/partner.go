package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const partnerProfileColumns = `id, display_name, email, default_rate, bank_details, created_at, updated_at`

const sqlGetPartnerProfile = `
SELECT ` + partnerProfileColumns + `
FROM partner_profiles
WHERE id = $1
`

// GetPartnerProfile retrieves a partner profile by partner ID
func (s *Store) GetPartnerProfile(ctx context.Context, partnerID uuid.UUID) (PartnerProfile, error) {
	var profile PartnerProfile
	err := s.db.GetContext(ctx, &profile, sqlGetPartnerProfile, partnerID)
	if err != nil {
		if isNoRows(err) {
			return PartnerProfile{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get partner profile", err)
		return PartnerProfile{}, dbError("get partner profile", err)
	}
	return profile, nil
}

// UpsertPartnerProfileParams represents parameters for creating or updating a profile
type UpsertPartnerProfileParams struct {
	PartnerID   uuid.UUID
	DisplayName string
	Email       string
}

const sqlUpsertPartnerProfile = `
INSERT INTO partner_profiles (id, display_name, email)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE
SET display_name = EXCLUDED.display_name,
    email = EXCLUDED.email,
    updated_at = CURRENT_TIMESTAMP
RETURNING ` + partnerProfileColumns

// UpsertPartnerProfile creates the profile or updates its contact details
func (s *Store) UpsertPartnerProfile(ctx context.Context, params UpsertPartnerProfileParams) (PartnerProfile, error) {
	var profile PartnerProfile
	err := s.db.GetContext(ctx, &profile, sqlUpsertPartnerProfile, params.PartnerID, params.DisplayName, params.Email)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert partner profile", err)
		return PartnerProfile{}, dbError("upsert partner profile", err)
	}
	return profile, nil
}

const sqlUpdatePartnerBankDetails = `
UPDATE partner_profiles
SET bank_details = $2, updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + partnerProfileColumns

// UpdatePartnerBankDetails replaces the payout details on file. Existing withdraw
// requests keep their own snapshot.
func (s *Store) UpdatePartnerBankDetails(ctx context.Context, partnerID uuid.UUID, details JSONB) (PartnerProfile, error) {
	var profile PartnerProfile
	err := s.db.GetContext(ctx, &profile, sqlUpdatePartnerBankDetails, partnerID, details)
	if err != nil {
		if isNoRows(err) {
			return PartnerProfile{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update partner bank details", err)
		return PartnerProfile{}, dbError("update partner bank details", err)
	}
	return profile, nil
}

// SetPartnerRatesParams replaces a partner's commission rates
type SetPartnerRatesParams struct {
	PartnerID    uuid.UUID
	DefaultRate  decimal.NullDecimal
	ProductRates map[string]decimal.Decimal
}

const sqlSetPartnerDefaultRate = `
UPDATE partner_profiles
SET default_rate = $2, updated_at = CURRENT_TIMESTAMP
WHERE id = $1
`

const sqlUpsertPartnerProductRate = `
INSERT INTO partner_product_rates (partner_id, product_key, rate)
VALUES ($1, $2, $3)
ON CONFLICT (partner_id, product_key) DO UPDATE
SET rate = EXCLUDED.rate, updated_at = CURRENT_TIMESTAMP
`

// SetPartnerRates updates the default rate and upserts product overrides in one
// transaction. Rates apply to referrals created afterwards only.
func (s *Store) SetPartnerRates(ctx context.Context, params SetPartnerRatesParams) error {
	return s.withTx(ctx, nil, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, sqlSetPartnerDefaultRate, params.PartnerID, params.DefaultRate)
		if err != nil {
			s.logger.Error(ctx, "failed to set partner default rate", err)
			return dbError("set partner default rate", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return dbError("set partner default rate", err)
		}
		if rows == 0 {
			return ErrNotFound
		}

		for productKey, rate := range params.ProductRates {
			if _, err := tx.ExecContext(ctx, sqlUpsertPartnerProductRate, params.PartnerID, productKey, rate); err != nil {
				s.logger.Error(ctx, "failed to upsert partner product rate", err)
				return dbError("upsert partner product rate", err)
			}
		}
		return nil
	})
}

const sqlGetCommissionRates = `
SELECT
    (SELECT rate FROM partner_product_rates WHERE partner_id = $1 AND product_key = $2) AS product_rate,
    (SELECT default_rate FROM partner_profiles WHERE id = $1) AS default_rate
`

// GetCommissionRates returns the configured rates for a partner and optional product.
// Unset rates come back invalid; picking the effective rate is the caller's job.
func (s *Store) GetCommissionRates(ctx context.Context, partnerID uuid.UUID, productKey *string) (CommissionRates, error) {
	var rates CommissionRates
	if err := s.db.GetContext(ctx, &rates, sqlGetCommissionRates, partnerID, productKey); err != nil {
		s.logger.Error(ctx, "failed to get commission rates", err)
		return CommissionRates{}, dbError("get commission rates", err)
	}
	return rates, nil
}

const sqlListPartnerProductRates = `
SELECT partner_id, product_key, rate, updated_at
FROM partner_product_rates
WHERE partner_id = $1
ORDER BY product_key
`

// ListPartnerProductRates returns every product override for a partner
func (s *Store) ListPartnerProductRates(ctx context.Context, partnerID uuid.UUID) ([]PartnerProductRate, error) {
	var rates []PartnerProductRate
	if err := s.db.SelectContext(ctx, &rates, sqlListPartnerProductRates, partnerID); err != nil {
		s.logger.Error(ctx, "failed to list partner product rates", err)
		return nil, dbError("list partner product rates", err)
	}
	return rates, nil
}
