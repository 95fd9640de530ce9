package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"affiliate-ledger/internal/linkcache"
	"affiliate-ledger/internal/metrics"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/store"
	"context"
	"crypto/sha256"
	"encoding/base32"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LinkStore defines the database operations required by LinkProcessor
type LinkStore interface {
	CreateAffiliateLink(ctx context.Context, params store.CreateAffiliateLinkParams) (store.AffiliateLink, error)
	AffiliateCodeExists(ctx context.Context, code string) (bool, error)
	GetAffiliateLinkByID(ctx context.Context, linkID uuid.UUID) (store.AffiliateLink, error)
	GetAffiliateLinkByCode(ctx context.Context, code string) (store.AffiliateLink, error)
	DeactivateAffiliateLink(ctx context.Context, linkID uuid.UUID) (store.AffiliateLink, error)
	ListAffiliateLinks(ctx context.Context, params store.ListAffiliateLinksParams) ([]store.AffiliateLink, error)
	CountAffiliateLinks(ctx context.Context, params store.ListAffiliateLinksParams) (int, error)
	GetPartnerProfile(ctx context.Context, partnerID uuid.UUID) (store.PartnerProfile, error)
	CountClickEventsByLink(ctx context.Context, linkID uuid.UUID) (int, error)
}

// CodeCache is the code to link hint cache
type CodeCache interface {
	Get(ctx context.Context, code string) (linkcache.Entry, error)
	Put(ctx context.Context, code string, entry linkcache.Entry, ttl time.Duration) error
	Invalidate(ctx context.Context, code string) error
}

var (
	ErrLinkNotFound      = errors.New("affiliate link not found")
	ErrExhaustedAttempts = errors.New("could not allocate a unique affiliate code")
	ErrForbidden         = errors.New("not allowed to manage this link")
	ErrInvalidTargetURL  = errors.New("target url must be an absolute http or https url")
	ErrInvalidCodeLength = errors.New("code length must be between 4 and 32")
)

const (
	minCodeLength         = 4
	maxCodeLength         = 32
	defaultCodeLength     = 8
	defaultAllocAttempts  = 10
	fallbackCodeFragment  = "AFF"
	maxDisplayNameFragLen = 4
)

var (
	nonAlnum       = regexp.MustCompile(`[^A-Z0-9]`)
	checksumEncode = base32.StdEncoding.WithPadding(base32.NoPadding)
)

// Config tunes code allocation and caching
type Config struct {
	CodeLength       int
	MaxAllocAttempts int
	CacheTTL         time.Duration
}

type LinkProcessor struct {
	store  LinkStore
	cache  CodeCache
	config Config
	logger *observability.Logger
}

func New(store LinkStore, cache CodeCache, config Config, logger *observability.Logger) LinkProcessor {
	if config.CodeLength <= 0 {
		config.CodeLength = defaultCodeLength
	}
	if config.MaxAllocAttempts <= 0 {
		config.MaxAllocAttempts = defaultAllocAttempts
	}
	return LinkProcessor{
		store:  store,
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// CodeSeed is the input a candidate code is derived from
type CodeSeed struct {
	OwnerID     uuid.UUID
	DisplayName string
	Attempt     int
}

// GenerateCandidate derives a fixed-length uppercase code from seed: up to four
// characters of the normalized display name (or owner id) followed by a checksum
// over the whole seed. The same seed always yields the same code; a new attempt
// number changes the checksum part.
func GenerateCandidate(seed CodeSeed, length int) (string, error) {
	if length < minCodeLength || length > maxCodeLength {
		return "", ErrInvalidCodeLength
	}

	fragment := CodeFragment(seed)
	if limit := length / 2; len(fragment) > limit {
		fragment = fragment[:limit]
	}

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d", fragment, seed.OwnerID, seed.DisplayName, seed.Attempt)))
	checksum := checksumEncode.EncodeToString(sum[:])
	return fragment + checksum[:length-len(fragment)], nil
}

// CodeFragment is the identity part of a code: the alphanumeric prefix of the
// display name, falling back to the owner id.
func CodeFragment(seed CodeSeed) string {
	fragment := nonAlnum.ReplaceAllString(strings.ToUpper(seed.DisplayName), "")
	if fragment == "" {
		fragment = nonAlnum.ReplaceAllString(strings.ToUpper(seed.OwnerID.String()), "")
	}
	if len(fragment) > maxDisplayNameFragLen {
		fragment = fragment[:maxDisplayNameFragLen]
	}
	if fragment == "" {
		fragment = fallbackCodeFragment
	}
	return fragment
}

// AllocateUniqueCode returns the first candidate not held by any link, active or
// not, trying at most maxAttempts seeds. A non-positive maxAttempts uses the
// configured budget. The unique index still arbitrates races between
// concurrent allocations.
func (p *LinkProcessor) AllocateUniqueCode(ctx context.Context, ownerID uuid.UUID, displayName string, maxAttempts int) (string, error) {
	code, _, err := p.allocateFrom(ctx, CodeSeed{OwnerID: ownerID, DisplayName: displayName}, p.attemptBudget(maxAttempts))
	return code, err
}

func (p *LinkProcessor) attemptBudget(maxAttempts int) int {
	if maxAttempts <= 0 {
		return p.config.MaxAllocAttempts
	}
	return maxAttempts
}

func (p *LinkProcessor) allocateFrom(ctx context.Context, seed CodeSeed, maxAttempts int) (string, int, error) {
	for attempt := seed.Attempt; attempt < maxAttempts; attempt++ {
		seed.Attempt = attempt
		candidate, err := GenerateCandidate(seed, p.config.CodeLength)
		if err != nil {
			return "", attempt, err
		}
		exists, err := p.store.AffiliateCodeExists(ctx, candidate)
		if err != nil {
			p.logger.Error(ctx, "failed to check affiliate code", err)
			return "", attempt, err
		}
		if !exists {
			return candidate, attempt, nil
		}
	}
	return "", maxAttempts, ErrExhaustedAttempts
}

// CreateLinkRequest represents a request to create an affiliate link
type CreateLinkRequest struct {
	TargetURL string
}

// CreateLink allocates a code for owner and stores an active link pointing at targetURL
func (p *LinkProcessor) CreateLink(ctx context.Context, ownerID uuid.UUID, req CreateLinkRequest) (store.AffiliateLink, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "owner_id", Value: ownerID.String()})

	if err := validateTargetURL(req.TargetURL); err != nil {
		return store.AffiliateLink{}, err
	}

	displayName := ""
	profile, err := p.store.GetPartnerProfile(ctx, ownerID)
	switch {
	case err == nil:
		displayName = profile.DisplayName
	case errors.Is(err, store.ErrNotFound):
	default:
		p.logger.Error(ctx, "failed to get partner profile", err)
		return store.AffiliateLink{}, err
	}

	seed := CodeSeed{OwnerID: ownerID, DisplayName: displayName}
	for seed.Attempt < p.config.MaxAllocAttempts {
		code, attempt, err := p.allocateFrom(ctx, seed, p.config.MaxAllocAttempts)
		if err != nil {
			if errors.Is(err, ErrExhaustedAttempts) {
				p.logger.Warn(ctx, "affiliate code allocation exhausted",
					observability.Field{Key: "attempts", Value: p.config.MaxAllocAttempts},
				)
			}
			return store.AffiliateLink{}, err
		}

		link, err := p.store.CreateAffiliateLink(ctx, store.CreateAffiliateLinkParams{
			OwnerID:   ownerID,
			Code:      code,
			TargetURL: strings.TrimSpace(req.TargetURL),
		})
		if errors.Is(err, store.ErrDuplicateCode) {
			// lost a race for this code; continue with the next attempt
			seed.Attempt = attempt + 1
			continue
		}
		if err != nil {
			p.logger.Error(ctx, "failed to create affiliate link", err)
			return store.AffiliateLink{}, err
		}

		p.putCache(ctx, link)
		p.logger.Info(ctx, "affiliate link created",
			observability.Field{Key: "link_id", Value: link.ID.String()},
			observability.Field{Key: "code", Value: link.Code},
		)
		return link, nil
	}
	return store.AffiliateLink{}, ErrExhaustedAttempts
}

func validateTargetURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidTargetURL
	}
	return nil
}

// Resolve maps code to its active link. Cache hits are re-checked against the
// store, and a stale hint is evicted before the code is looked up directly.
func (p *LinkProcessor) Resolve(ctx context.Context, code string) (store.AffiliateLink, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return store.AffiliateLink{}, ErrLinkNotFound
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "code", Value: normalized})

	if link, ok := p.resolveFromCache(ctx, normalized); ok {
		return link, nil
	}

	link, err := p.store.GetAffiliateLinkByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AffiliateLink{}, ErrLinkNotFound
		}
		p.logger.Error(ctx, "failed to get affiliate link by code", err)
		return store.AffiliateLink{}, err
	}
	if !link.IsActive {
		p.invalidateCache(ctx, normalized)
		return store.AffiliateLink{}, ErrLinkNotFound
	}

	p.putCache(ctx, link)
	return link, nil
}

func (p *LinkProcessor) resolveFromCache(ctx context.Context, code string) (store.AffiliateLink, bool) {
	entry, err := p.cache.Get(ctx, code)
	if err != nil {
		if errors.Is(err, linkcache.ErrCacheMiss) {
			metrics.RecordCacheLookup(metrics.CacheMiss)
		} else {
			metrics.RecordCacheLookup(metrics.CacheError)
			p.logger.WarnWithError(ctx, "code cache read failed", err)
		}
		return store.AffiliateLink{}, false
	}

	link, err := p.store.GetAffiliateLinkByID(ctx, entry.LinkID)
	if err == nil && link.IsActive && strings.EqualFold(link.Code, code) && link.OwnerID == entry.OwnerID {
		metrics.RecordCacheLookup(metrics.CacheHit)
		return link, true
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to validate cached affiliate link", err)
	}

	metrics.RecordCacheLookup(metrics.CacheStale)
	p.invalidateCache(ctx, code)
	return store.AffiliateLink{}, false
}

// DeactivateLink soft-deactivates a link. Only the owner or an admin may do it.
// The code stays reserved and the cache entry is dropped even if already inactive.
func (p *LinkProcessor) DeactivateLink(ctx context.Context, linkID, actorID uuid.UUID, isAdmin bool) (store.AffiliateLink, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "link_id", Value: linkID.String()},
		observability.Field{Key: "actor_id", Value: actorID.String()},
	)

	link, err := p.store.GetAffiliateLinkByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AffiliateLink{}, ErrLinkNotFound
		}
		p.logger.Error(ctx, "failed to get affiliate link", err)
		return store.AffiliateLink{}, err
	}
	if link.OwnerID != actorID && !isAdmin {
		return store.AffiliateLink{}, ErrForbidden
	}

	deactivated, err := p.store.DeactivateAffiliateLink(ctx, linkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AffiliateLink{}, ErrLinkNotFound
		}
		p.logger.Error(ctx, "failed to deactivate affiliate link", err)
		return store.AffiliateLink{}, err
	}
	p.invalidateCache(ctx, link.Code)

	p.logger.Info(ctx, "affiliate link deactivated")
	return deactivated, nil
}

// LinkDetails is a link with its recorded click count
type LinkDetails struct {
	Link       store.AffiliateLink `json:"link"`
	ClickCount int                 `json:"click_count"`
}

// GetLink returns a link visible to the actor together with its click count.
// Links owned by someone else look missing to non-admins.
func (p *LinkProcessor) GetLink(ctx context.Context, linkID, actorID uuid.UUID, isAdmin bool) (LinkDetails, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "link_id", Value: linkID.String()})

	link, err := p.store.GetAffiliateLinkByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LinkDetails{}, ErrLinkNotFound
		}
		p.logger.Error(ctx, "failed to get affiliate link", err)
		return LinkDetails{}, err
	}
	if link.OwnerID != actorID && !isAdmin {
		return LinkDetails{}, ErrLinkNotFound
	}

	clicks, err := p.store.CountClickEventsByLink(ctx, linkID)
	if err != nil {
		p.logger.Error(ctx, "failed to count click events", err)
		return LinkDetails{}, err
	}
	return LinkDetails{Link: link, ClickCount: clicks}, nil
}

// ListLinksRequest represents parameters for listing links
type ListLinksRequest struct {
	OwnerID  *uuid.UUID
	IsActive *bool
	Page     int
	Limit    int
}

// ListLinksResponse represents the paginated response for links
type ListLinksResponse struct {
	Links      []store.AffiliateLink `json:"links"`
	Pagination Pagination            `json:"pagination"`
}

// Pagination represents pagination metadata
type Pagination struct {
	HasMore    bool `json:"has_more"`
	TotalCount int  `json:"total_count"`
}

// ListLinks returns a page of links matching the filter
func (p *LinkProcessor) ListLinks(ctx context.Context, req ListLinksRequest) (ListLinksResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	params := store.ListAffiliateLinksParams{
		OwnerID:  req.OwnerID,
		IsActive: req.IsActive,
		Limit:    req.Limit,
		Offset:   (req.Page - 1) * req.Limit,
	}

	links, err := p.store.ListAffiliateLinks(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to list affiliate links", err)
		return ListLinksResponse{}, err
	}
	if links == nil {
		links = []store.AffiliateLink{}
	}

	totalCount, err := p.store.CountAffiliateLinks(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to count affiliate links", err)
		return ListLinksResponse{}, err
	}

	return ListLinksResponse{
		Links: links,
		Pagination: Pagination{
			HasMore:    req.Page*req.Limit < totalCount,
			TotalCount: totalCount,
		},
	}, nil
}

func (p *LinkProcessor) putCache(ctx context.Context, link store.AffiliateLink) {
	entry := linkcache.Entry{LinkID: link.ID, OwnerID: link.OwnerID}
	if err := p.cache.Put(ctx, link.Code, entry, p.config.CacheTTL); err != nil {
		p.logger.WarnWithError(ctx, "code cache write failed", err)
	}
}

func (p *LinkProcessor) invalidateCache(ctx context.Context, code string) {
	if err := p.cache.Invalidate(ctx, code); err != nil {
		p.logger.WarnWithError(ctx, "code cache invalidation failed", err)
	}
}
