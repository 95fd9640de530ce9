package processor

import (
	"affiliate-ledger/internal/auth"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/store"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartnerProfileResponse is a profile together with its product rate overrides
type PartnerProfileResponse struct {
	Profile      store.PartnerProfile       `json:"profile"`
	ProductRates []store.PartnerProductRate `json:"product_rates"`
}

// GetPartnerProfile returns the partner's profile and rate overrides
func (p *LedgerProcessor) GetPartnerProfile(ctx context.Context, partnerID uuid.UUID) (PartnerProfileResponse, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "partner_id", Value: partnerID.String()})

	profile, err := p.store.GetPartnerProfile(ctx, partnerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return PartnerProfileResponse{}, ErrPartnerNotFound
		}
		p.logger.Error(ctx, "failed to get partner profile", err)
		return PartnerProfileResponse{}, fmt.Errorf("failed to get partner profile: %w", err)
	}

	rates, err := p.store.ListPartnerProductRates(ctx, partnerID)
	if err != nil {
		p.logger.Error(ctx, "failed to list partner product rates", err)
		return PartnerProfileResponse{}, fmt.Errorf("failed to list partner product rates: %w", err)
	}
	if rates == nil {
		rates = []store.PartnerProductRate{}
	}

	return PartnerProfileResponse{Profile: profile, ProductRates: rates}, nil
}

// UpsertProfileRequest carries the partner's contact details
type UpsertProfileRequest struct {
	DisplayName string
	Email       string
}

// UpsertPartnerProfile creates or updates the partner's contact details
func (p *LedgerProcessor) UpsertPartnerProfile(ctx context.Context, partnerID uuid.UUID, req UpsertProfileRequest) (store.PartnerProfile, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "partner_id", Value: partnerID.String()})

	name := strings.TrimSpace(req.DisplayName)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return store.PartnerProfile{}, ErrInvalidProfile
	}

	profile, err := p.store.UpsertPartnerProfile(ctx, store.UpsertPartnerProfileParams{
		PartnerID:   partnerID,
		DisplayName: name,
		Email:       email,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to upsert partner profile", err)
		return store.PartnerProfile{}, fmt.Errorf("failed to upsert partner profile: %w", err)
	}
	return profile, nil
}

// UpdateBankDetails replaces the payout details on file
func (p *LedgerProcessor) UpdateBankDetails(ctx context.Context, partnerID uuid.UUID, details map[string]interface{}) (store.PartnerProfile, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "partner_id", Value: partnerID.String()})

	if len(details) == 0 {
		return store.PartnerProfile{}, ErrBankDetailsRequired
	}

	profile, err := p.store.UpdatePartnerBankDetails(ctx, partnerID, store.JSONB(details).Clone())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.PartnerProfile{}, ErrPartnerNotFound
		}
		p.logger.Error(ctx, "failed to update bank details", err)
		return store.PartnerProfile{}, fmt.Errorf("failed to update bank details: %w", err)
	}

	p.logger.Info(ctx, "bank details updated")
	return profile, nil
}

// SetRatesRequest replaces a partner's rates. A nil DefaultRate clears the
// partner default so the global rate applies.
type SetRatesRequest struct {
	DefaultRate  *decimal.Decimal
	ProductRates map[string]decimal.Decimal
}

func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(1))
}

// SetPartnerRates configures commission rates for referrals created from now on
func (p *LedgerProcessor) SetPartnerRates(ctx context.Context, actor auth.Actor, partnerID uuid.UUID, req SetRatesRequest) (PartnerProfileResponse, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "partner_id", Value: partnerID.String()})

	if !actor.IsAdmin() {
		return PartnerProfileResponse{}, ErrForbidden
	}

	var defaultRate decimal.NullDecimal
	if req.DefaultRate != nil {
		if !validRate(*req.DefaultRate) {
			return PartnerProfileResponse{}, ErrInvalidRate
		}
		defaultRate = decimal.NewNullDecimal(*req.DefaultRate)
	}

	productRates := make(map[string]decimal.Decimal, len(req.ProductRates))
	for key, rate := range req.ProductRates {
		key = strings.TrimSpace(key)
		if key == "" || !validRate(rate) {
			return PartnerProfileResponse{}, ErrInvalidRate
		}
		productRates[key] = rate
	}

	err := p.store.SetPartnerRates(ctx, store.SetPartnerRatesParams{
		PartnerID:    partnerID,
		DefaultRate:  defaultRate,
		ProductRates: productRates,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return PartnerProfileResponse{}, ErrPartnerNotFound
		}
		p.logger.Error(ctx, "failed to set partner rates", err)
		return PartnerProfileResponse{}, fmt.Errorf("failed to set partner rates: %w", err)
	}

	p.logger.Info(ctx, "partner rates updated", observability.Field{Key: "processed_by", Value: actor.UserID.String()})
	return p.GetPartnerProfile(ctx, partnerID)
}
