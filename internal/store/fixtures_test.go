package store

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Fixtures provides factory functions for creating test data.
// All factory methods use testify/require to fail fast on errors.
type Fixtures struct {
	t      *testing.T
	testDB *TestDB
	ctx    context.Context
}

// NewFixtures creates a new Fixtures instance for test data generation.
func NewFixtures(t *testing.T, testDB *TestDB) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:      t,
		testDB: testDB,
		ctx:    context.Background(),
	}
}

// uniqueCode returns an 8 character code unlikely to collide across parallel tests.
func uniqueCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// --- Partner Fixtures ---

// PartnerOpts customizes partner profile creation.
type PartnerOpts struct {
	DisplayName string
	Email       string
	BankDetails JSONB
}

// DefaultPartnerOpts returns sensible defaults for partner creation.
func DefaultPartnerOpts() PartnerOpts {
	return PartnerOpts{
		DisplayName: "Test Partner",
		Email:       "partner-" + uuid.New().String()[:8] + "@example.com",
	}
}

// CreatePartner creates a partner profile with optional customization.
func (f *Fixtures) CreatePartner(opts ...func(*PartnerOpts)) PartnerProfile {
	f.t.Helper()
	o := DefaultPartnerOpts()
	for _, fn := range opts {
		fn(&o)
	}

	profile, err := f.testDB.Store.UpsertPartnerProfile(f.ctx, UpsertPartnerProfileParams{
		PartnerID:   uuid.New(),
		DisplayName: o.DisplayName,
		Email:       o.Email,
	})
	require.NoError(f.t, err, "failed to create test partner")

	if o.BankDetails != nil {
		profile, err = f.testDB.Store.UpdatePartnerBankDetails(f.ctx, profile.ID, o.BankDetails)
		require.NoError(f.t, err, "failed to set test partner bank details")
	}
	return profile
}

// --- Link Fixtures ---

// LinkOpts customizes affiliate link creation.
type LinkOpts struct {
	OwnerID   *uuid.UUID
	Code      string
	TargetURL string
}

// DefaultLinkOpts returns sensible defaults for link creation.
func DefaultLinkOpts() LinkOpts {
	return LinkOpts{
		Code:      uniqueCode(),
		TargetURL: "https://example.com/landing",
	}
}

// CreateLink creates an affiliate link. If no owner is specified, a new partner is created.
func (f *Fixtures) CreateLink(opts ...func(*LinkOpts)) AffiliateLink {
	f.t.Helper()
	o := DefaultLinkOpts()
	for _, fn := range opts {
		fn(&o)
	}

	var ownerID uuid.UUID
	if o.OwnerID != nil {
		ownerID = *o.OwnerID
	} else {
		ownerID = f.CreatePartner().ID
	}

	link, err := f.testDB.Store.CreateAffiliateLink(f.ctx, CreateAffiliateLinkParams{
		OwnerID:   ownerID,
		Code:      o.Code,
		TargetURL: o.TargetURL,
	})
	require.NoError(f.t, err, "failed to create test link")
	return link
}

// --- Referral Fixtures ---

// ReferralOpts customizes referral record creation.
type ReferralOpts struct {
	Link            *AffiliateLink
	ExternalOrderID string
	Amount          decimal.Decimal
	Rate            decimal.Decimal
	Status          string
}

// DefaultReferralOpts returns sensible defaults for referral creation.
func DefaultReferralOpts() ReferralOpts {
	return ReferralOpts{
		ExternalOrderID: "order-" + uuid.New().String(),
		Amount:          decimal.NewFromInt(1000000),
		Rate:            decimal.RequireFromString("0.10"),
		Status:          ReferralStatusPending,
	}
}

// CreateReferral records a referral and walks it to the requested status.
func (f *Fixtures) CreateReferral(opts ...func(*ReferralOpts)) ReferralRecord {
	f.t.Helper()
	o := DefaultReferralOpts()
	for _, fn := range opts {
		fn(&o)
	}

	link := f.CreateLinkIfNil(o.Link)
	record, err := f.testDB.Store.CreateReferralRecord(f.ctx, CreateReferralRecordParams{
		LinkID:          link.ID,
		PartnerID:       link.OwnerID,
		ExternalOrderID: o.ExternalOrderID,
		Amount:          o.Amount,
		Rate:            o.Rate,
		Commission:      o.Amount.Mul(o.Rate).Truncate(2),
	})
	require.NoError(f.t, err, "failed to create test referral")

	path := map[string][]string{
		ReferralStatusPending:  nil,
		ReferralStatusApproved: {ReferralStatusApproved},
		ReferralStatusRejected: {ReferralStatusRejected},
		ReferralStatusPaid:     {ReferralStatusApproved, ReferralStatusPaid},
	}[o.Status]
	for _, next := range path {
		record, err = f.testDB.Store.UpdateReferralRecordStatus(f.ctx, UpdateReferralStatusParams{
			ID:              record.ID,
			FromStatus:      record.Status,
			ToStatus:        next,
			ExpectedVersion: record.Version,
			ProcessedBy:     uuid.New(),
		})
		require.NoError(f.t, err, "failed to move test referral to %s", next)
	}
	return record
}

// CreateLinkIfNil returns link or a freshly created one.
func (f *Fixtures) CreateLinkIfNil(link *AffiliateLink) AffiliateLink {
	f.t.Helper()
	if link != nil {
		return *link
	}
	return f.CreateLink()
}

// createTestLinkFor creates a link owned by the given partner.
func createTestLinkFor(t *testing.T, testDB *TestDB, ownerID uuid.UUID) AffiliateLink {
	t.Helper()
	return NewFixtures(t, testDB).CreateLink(func(o *LinkOpts) {
		o.OwnerID = &ownerID
	})
}
