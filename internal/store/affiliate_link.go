package store

import (
	"context"

	"github.com/google/uuid"
)

const affiliateLinkColumns = `id, owner_id, code, target_url, is_active, created_at, updated_at, deactivated_at`

// CreateAffiliateLinkParams represents parameters for creating an affiliate link
type CreateAffiliateLinkParams struct {
	OwnerID   uuid.UUID
	Code      string
	TargetURL string
}

const sqlCreateAffiliateLink = `
INSERT INTO affiliate_links (owner_id, code, target_url)
VALUES ($1, upper($2), $3)
RETURNING ` + affiliateLinkColumns

// CreateAffiliateLink inserts a new active link. A code collision returns ErrDuplicateCode.
func (s *Store) CreateAffiliateLink(ctx context.Context, params CreateAffiliateLinkParams) (AffiliateLink, error) {
	var link AffiliateLink
	err := s.db.GetContext(ctx, &link, sqlCreateAffiliateLink, params.OwnerID, params.Code, params.TargetURL)
	if err != nil {
		if isUniqueViolation(err, "affiliate_links_code_upper_key") {
			return AffiliateLink{}, ErrDuplicateCode
		}
		s.logger.Error(ctx, "failed to create affiliate link", err)
		return AffiliateLink{}, dbError("create affiliate link", err)
	}
	return link, nil
}

const sqlAffiliateCodeExists = `
SELECT EXISTS (SELECT 1 FROM affiliate_links WHERE upper(code) = upper($1))
`

// AffiliateCodeExists reports whether any link, active or not, already holds the code
func (s *Store) AffiliateCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, sqlAffiliateCodeExists, code); err != nil {
		s.logger.Error(ctx, "failed to check affiliate code", err)
		return false, dbError("check affiliate code", err)
	}
	return exists, nil
}

const sqlGetAffiliateLinkByID = `
SELECT ` + affiliateLinkColumns + `
FROM affiliate_links
WHERE id = $1
`

// GetAffiliateLinkByID retrieves a link by ID
func (s *Store) GetAffiliateLinkByID(ctx context.Context, linkID uuid.UUID) (AffiliateLink, error) {
	var link AffiliateLink
	err := s.db.GetContext(ctx, &link, sqlGetAffiliateLinkByID, linkID)
	if err != nil {
		if isNoRows(err) {
			return AffiliateLink{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get affiliate link by id", err)
		return AffiliateLink{}, dbError("get affiliate link by id", err)
	}
	return link, nil
}

const sqlGetAffiliateLinkByCode = `
SELECT ` + affiliateLinkColumns + `
FROM affiliate_links
WHERE upper(code) = upper($1)
`

// GetAffiliateLinkByCode retrieves a link by code, case-insensitively
func (s *Store) GetAffiliateLinkByCode(ctx context.Context, code string) (AffiliateLink, error) {
	var link AffiliateLink
	err := s.db.GetContext(ctx, &link, sqlGetAffiliateLinkByCode, code)
	if err != nil {
		if isNoRows(err) {
			return AffiliateLink{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get affiliate link by code", err)
		return AffiliateLink{}, dbError("get affiliate link by code", err)
	}
	return link, nil
}

const sqlDeactivateAffiliateLink = `
UPDATE affiliate_links
SET is_active = FALSE,
    deactivated_at = COALESCE(deactivated_at, CURRENT_TIMESTAMP),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + affiliateLinkColumns

// DeactivateAffiliateLink soft-deactivates a link. Repeated calls keep the first deactivation time.
func (s *Store) DeactivateAffiliateLink(ctx context.Context, linkID uuid.UUID) (AffiliateLink, error) {
	var link AffiliateLink
	err := s.db.GetContext(ctx, &link, sqlDeactivateAffiliateLink, linkID)
	if err != nil {
		if isNoRows(err) {
			return AffiliateLink{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to deactivate affiliate link", err)
		return AffiliateLink{}, dbError("deactivate affiliate link", err)
	}
	return link, nil
}

// ListAffiliateLinksParams filters a link listing
type ListAffiliateLinksParams struct {
	OwnerID  *uuid.UUID
	IsActive *bool
	Limit    int
	Offset   int
}

const sqlListAffiliateLinks = `
SELECT ` + affiliateLinkColumns + `
FROM affiliate_links
WHERE ($1::uuid IS NULL OR owner_id = $1)
  AND ($2::boolean IS NULL OR is_active = $2)
ORDER BY created_at DESC, id
LIMIT $3 OFFSET $4
`

// ListAffiliateLinks returns a page of links matching the filter
func (s *Store) ListAffiliateLinks(ctx context.Context, params ListAffiliateLinksParams) ([]AffiliateLink, error) {
	var links []AffiliateLink
	err := s.db.SelectContext(ctx, &links, sqlListAffiliateLinks, params.OwnerID, params.IsActive, params.Limit, params.Offset)
	if err != nil {
		s.logger.Error(ctx, "failed to list affiliate links", err)
		return nil, dbError("list affiliate links", err)
	}
	return links, nil
}

const sqlCountAffiliateLinks = `
SELECT COUNT(*)
FROM affiliate_links
WHERE ($1::uuid IS NULL OR owner_id = $1)
  AND ($2::boolean IS NULL OR is_active = $2)
`

// CountAffiliateLinks counts links matching the filter
func (s *Store) CountAffiliateLinks(ctx context.Context, params ListAffiliateLinksParams) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountAffiliateLinks, params.OwnerID, params.IsActive); err != nil {
		s.logger.Error(ctx, "failed to count affiliate links", err)
		return 0, dbError("count affiliate links", err)
	}
	return count, nil
}
