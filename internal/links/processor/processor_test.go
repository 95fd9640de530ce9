package processor

import (
	"affiliate-ledger/internal/linkcache"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/store"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func newTestProcessor(t *testing.T, attempts int) (LinkProcessor, *MockLinkStore, *MockCodeCache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockStore := NewMockLinkStore(ctrl)
	mockCache := NewMockCodeCache(ctrl)
	p := New(mockStore, mockCache, Config{CodeLength: 8, MaxAllocAttempts: attempts, CacheTTL: time.Hour}, observability.NewNopLogger())
	return p, mockStore, mockCache
}

func mustCandidate(t *testing.T, seed CodeSeed) string {
	t.Helper()
	code, err := GenerateCandidate(seed, 8)
	require.NoError(t, err)
	return code
}

func TestGenerateCandidate(t *testing.T) {
	owner := uuid.MustParse("8f14e45f-ceea-467a-9e4c-2b8c1c1d2e3f")

	tests := []struct {
		name   string
		seed   CodeSeed
		prefix string
		want   string
	}{
		{name: "display name", seed: CodeSeed{OwnerID: owner, DisplayName: "Kim's Clinic"}, prefix: "KIMS", want: "KIMSFGYR"},
		{name: "non latin display name falls back to owner id", seed: CodeSeed{OwnerID: owner, DisplayName: "김민수"}, prefix: "8F14", want: "8F14GL4V"},
		{name: "empty display name", seed: CodeSeed{OwnerID: owner}, prefix: "8F14", want: "8F14ZPJW"},
		{name: "nil owner and empty name", seed: CodeSeed{}, prefix: "0000", want: "0000M6JJ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := mustCandidate(t, tt.seed)
			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, mustCandidate(t, tt.seed), "same seed must give same code")
			assert.Regexp(t, codePattern, first)
			assert.True(t, strings.HasPrefix(first, tt.prefix), "code %q must start with %q", first, tt.prefix)

			next := tt.seed
			next.Attempt++
			second := mustCandidate(t, next)
			assert.NotEqual(t, first, second, "new attempt must give new code")
			assert.True(t, strings.HasPrefix(second, tt.prefix))
		})
	}

	t.Run("short length keeps room for the checksum", func(t *testing.T) {
		code, err := GenerateCandidate(CodeSeed{OwnerID: owner, DisplayName: "Kim's Clinic"}, 4)
		require.NoError(t, err)
		assert.Len(t, code, 4)
		assert.True(t, strings.HasPrefix(code, "KI"))
	})

	for _, length := range []int{2, 33} {
		_, err := GenerateCandidate(CodeSeed{OwnerID: owner}, length)
		assert.ErrorIs(t, err, ErrInvalidCodeLength, "length %d", length)
	}
}

var fixedOwner = uuid.MustParse("8f14e45f-ceea-467a-9e4c-2b8c1c1d2e3f")

func TestAllocateUniqueCode_SkipsTakenCodes(t *testing.T) {
	p, mockStore, _ := newTestProcessor(t, 5)
	ctx := context.Background()

	gomock.InOrder(
		mockStore.EXPECT().AffiliateCodeExists(gomock.Any(), "PARTOEZF").Return(true, nil),
		mockStore.EXPECT().AffiliateCodeExists(gomock.Any(), "PARTWA3X").Return(true, nil),
		mockStore.EXPECT().AffiliateCodeExists(gomock.Any(), "PARTNNVJ").Return(false, nil),
	)

	code, err := p.AllocateUniqueCode(ctx, fixedOwner, "Partner", 0)
	require.NoError(t, err)
	assert.Equal(t, "PARTNNVJ", code)
}

func TestAllocateUniqueCode_Exhausted(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
		wantChecks  int
	}{
		{name: "configured budget", maxAttempts: 0, wantChecks: 3},
		{name: "caller budget", maxAttempts: 2, wantChecks: 2},
		{name: "caller budget above configured", maxAttempts: 6, wantChecks: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, mockStore, _ := newTestProcessor(t, 3)

			mockStore.EXPECT().AffiliateCodeExists(gomock.Any(), gomock.Any()).Return(true, nil).Times(tt.wantChecks)

			_, err := p.AllocateUniqueCode(context.Background(), uuid.New(), "Partner", tt.maxAttempts)
			assert.ErrorIs(t, err, ErrExhaustedAttempts)
		})
	}
}

func TestAllocateUniqueCode_StoreError(t *testing.T) {
	p, mockStore, _ := newTestProcessor(t, 3)
	dbErr := errors.New("connection reset")

	mockStore.EXPECT().AffiliateCodeExists(gomock.Any(), gomock.Any()).Return(false, dbErr)

	_, err := p.AllocateUniqueCode(context.Background(), uuid.New(), "Partner", 0)
	assert.ErrorIs(t, err, dbErr)
}

func TestCreateLink_RetriesAfterLosingInsertRace(t *testing.T) {
	p, mockStore, mockCache := newTestProcessor(t, 5)
	ctx := context.Background()
	owner := fixedOwner

	first := mustCandidate(t, CodeSeed{OwnerID: owner, DisplayName: "Clinic"})
	second := mustCandidate(t, CodeSeed{OwnerID: owner, DisplayName: "Clinic", Attempt: 1})
	require.Equal(t, "CLINE6UH", first)
	require.Equal(t, "CLINM5OY", second)
	created := store.AffiliateLink{ID: uuid.New(), OwnerID: owner, Code: second, TargetURL: "https://example.com", IsActive: true}

	mockStore.EXPECT().GetPartnerProfile(gomock.Any(), owner).Return(store.PartnerProfile{ID: owner, DisplayName: "Clinic"}, nil)
	gomock.InOrder(
		mockStore.EXPECT().AffiliateCodeExists(gomock.Any(), first).Return(false, nil),
		mockStore.EXPECT().CreateAffiliateLink(gomock.Any(), store.CreateAffiliateLinkParams{
			OwnerID: owner, Code: first, TargetURL: "https://example.com",
		}).Return(store.AffiliateLink{}, store.ErrDuplicateCode),
		mockStore.EXPECT().AffiliateCodeExists(gomock.Any(), second).Return(false, nil),
		mockStore.EXPECT().CreateAffiliateLink(gomock.Any(), store.CreateAffiliateLinkParams{
			OwnerID: owner, Code: second, TargetURL: "https://example.com",
		}).Return(created, nil),
	)
	mockCache.EXPECT().Put(gomock.Any(), second, linkcache.Entry{LinkID: created.ID, OwnerID: owner}, time.Hour).Return(nil)

	link, err := p.CreateLink(ctx, owner, CreateLinkRequest{TargetURL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, created, link)
}

func TestCreateLink_WithoutProfileUsesOwnerID(t *testing.T) {
	p, mockStore, mockCache := newTestProcessor(t, 5)
	owner := uuid.New()
	expected := mustCandidate(t, CodeSeed{OwnerID: owner})

	mockStore.EXPECT().GetPartnerProfile(gomock.Any(), owner).Return(store.PartnerProfile{}, store.ErrNotFound)
	mockStore.EXPECT().AffiliateCodeExists(gomock.Any(), expected).Return(false, nil)
	mockStore.EXPECT().CreateAffiliateLink(gomock.Any(), gomock.Any()).
		Return(store.AffiliateLink{ID: uuid.New(), OwnerID: owner, Code: expected, IsActive: true}, nil)
	mockCache.EXPECT().Put(gomock.Any(), expected, gomock.Any(), time.Hour).Return(errors.New("redis down"))

	link, err := p.CreateLink(context.Background(), owner, CreateLinkRequest{TargetURL: "https://example.com/x"})
	require.NoError(t, err, "cache failures must not fail link creation")
	assert.Equal(t, expected, link.Code)
}

func TestCreateLink_InvalidTargetURL(t *testing.T) {
	p, _, _ := newTestProcessor(t, 5)

	for _, target := range []string{"", "not a url", "ftp://example.com", "/relative/path"} {
		_, err := p.CreateLink(context.Background(), uuid.New(), CreateLinkRequest{TargetURL: target})
		assert.ErrorIs(t, err, ErrInvalidTargetURL, "target %q", target)
	}
}

func TestResolve(t *testing.T) {
	owner := uuid.New()
	active := store.AffiliateLink{ID: uuid.New(), OwnerID: owner, Code: "ABCDEF12", IsActive: true}

	tests := []struct {
		name    string
		code    string
		setup   func(s *MockLinkStore, c *MockCodeCache)
		want    store.AffiliateLink
		wantErr error
	}{
		{
			name: "valid cache hit",
			code: "abcdef12",
			setup: func(s *MockLinkStore, c *MockCodeCache) {
				c.EXPECT().Get(gomock.Any(), "ABCDEF12").Return(linkcache.Entry{LinkID: active.ID, OwnerID: owner}, nil)
				s.EXPECT().GetAffiliateLinkByID(gomock.Any(), active.ID).Return(active, nil)
			},
			want: active,
		},
		{
			name: "cache miss falls through to store and warms cache",
			code: "ABCDEF12",
			setup: func(s *MockLinkStore, c *MockCodeCache) {
				c.EXPECT().Get(gomock.Any(), "ABCDEF12").Return(linkcache.Entry{}, linkcache.ErrCacheMiss)
				s.EXPECT().GetAffiliateLinkByCode(gomock.Any(), "ABCDEF12").Return(active, nil)
				c.EXPECT().Put(gomock.Any(), "ABCDEF12", linkcache.Entry{LinkID: active.ID, OwnerID: owner}, time.Hour).Return(nil)
			},
			want: active,
		},
		{
			name: "stale entry pointing at deactivated link is evicted",
			code: "ABCDEF12",
			setup: func(s *MockLinkStore, c *MockCodeCache) {
				staleID := uuid.New()
				c.EXPECT().Get(gomock.Any(), "ABCDEF12").Return(linkcache.Entry{LinkID: staleID, OwnerID: owner}, nil)
				s.EXPECT().GetAffiliateLinkByID(gomock.Any(), staleID).
					Return(store.AffiliateLink{ID: staleID, OwnerID: owner, Code: "ABCDEF12", IsActive: false}, nil)
				gomock.InOrder(
					c.EXPECT().Invalidate(gomock.Any(), "ABCDEF12").Return(nil),
					s.EXPECT().GetAffiliateLinkByCode(gomock.Any(), "ABCDEF12").
						Return(store.AffiliateLink{ID: staleID, OwnerID: owner, Code: "ABCDEF12", IsActive: false}, nil),
					c.EXPECT().Invalidate(gomock.Any(), "ABCDEF12").Return(nil),
				)
			},
			wantErr: ErrLinkNotFound,
		},
		{
			name: "entry pointing at a link with another code is evicted",
			code: "ABCDEF12",
			setup: func(s *MockLinkStore, c *MockCodeCache) {
				otherID := uuid.New()
				c.EXPECT().Get(gomock.Any(), "ABCDEF12").Return(linkcache.Entry{LinkID: otherID, OwnerID: owner}, nil)
				s.EXPECT().GetAffiliateLinkByID(gomock.Any(), otherID).
					Return(store.AffiliateLink{ID: otherID, OwnerID: owner, Code: "ZZZZ9999", IsActive: true}, nil)
				c.EXPECT().Invalidate(gomock.Any(), "ABCDEF12").Return(nil)
				s.EXPECT().GetAffiliateLinkByCode(gomock.Any(), "ABCDEF12").Return(active, nil)
				c.EXPECT().Put(gomock.Any(), "ABCDEF12", linkcache.Entry{LinkID: active.ID, OwnerID: owner}, time.Hour).Return(nil)
			},
			want: active,
		},
		{
			name: "entry pointing at a deleted link is evicted",
			code: "ABCDEF12",
			setup: func(s *MockLinkStore, c *MockCodeCache) {
				goneID := uuid.New()
				c.EXPECT().Get(gomock.Any(), "ABCDEF12").Return(linkcache.Entry{LinkID: goneID, OwnerID: owner}, nil)
				s.EXPECT().GetAffiliateLinkByID(gomock.Any(), goneID).Return(store.AffiliateLink{}, store.ErrNotFound)
				c.EXPECT().Invalidate(gomock.Any(), "ABCDEF12").Return(nil)
				s.EXPECT().GetAffiliateLinkByCode(gomock.Any(), "ABCDEF12").Return(store.AffiliateLink{}, store.ErrNotFound)
			},
			wantErr: ErrLinkNotFound,
		},
		{
			name: "cache outage still resolves from store",
			code: "ABCDEF12",
			setup: func(s *MockLinkStore, c *MockCodeCache) {
				c.EXPECT().Get(gomock.Any(), "ABCDEF12").Return(linkcache.Entry{}, errors.New("dial tcp: refused"))
				s.EXPECT().GetAffiliateLinkByCode(gomock.Any(), "ABCDEF12").Return(active, nil)
				c.EXPECT().Put(gomock.Any(), "ABCDEF12", gomock.Any(), time.Hour).Return(errors.New("dial tcp: refused"))
			},
			want: active,
		},
		{
			name:    "blank code",
			code:    "   ",
			setup:   func(s *MockLinkStore, c *MockCodeCache) {},
			wantErr: ErrLinkNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, mockStore, mockCache := newTestProcessor(t, 5)
			tt.setup(mockStore, mockCache)

			got, err := p.Resolve(context.Background(), tt.code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeactivateLink(t *testing.T) {
	owner := uuid.New()
	link := store.AffiliateLink{ID: uuid.New(), OwnerID: owner, Code: "ABCDEF12", IsActive: true}

	t.Run("owner deactivates and cache is dropped", func(t *testing.T) {
		p, mockStore, mockCache := newTestProcessor(t, 5)
		now := time.Now()
		deactivated := link
		deactivated.IsActive = false
		deactivated.DeactivatedAt = &now

		mockStore.EXPECT().GetAffiliateLinkByID(gomock.Any(), link.ID).Return(link, nil)
		mockStore.EXPECT().DeactivateAffiliateLink(gomock.Any(), link.ID).Return(deactivated, nil)
		mockCache.EXPECT().Invalidate(gomock.Any(), "ABCDEF12").Return(nil)

		got, err := p.DeactivateLink(context.Background(), link.ID, owner, false)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("admin may deactivate any link", func(t *testing.T) {
		p, mockStore, mockCache := newTestProcessor(t, 5)

		mockStore.EXPECT().GetAffiliateLinkByID(gomock.Any(), link.ID).Return(link, nil)
		mockStore.EXPECT().DeactivateAffiliateLink(gomock.Any(), link.ID).Return(link, nil)
		mockCache.EXPECT().Invalidate(gomock.Any(), "ABCDEF12").Return(nil)

		_, err := p.DeactivateLink(context.Background(), link.ID, uuid.New(), true)
		require.NoError(t, err)
	})

	t.Run("other partner is forbidden", func(t *testing.T) {
		p, mockStore, _ := newTestProcessor(t, 5)

		mockStore.EXPECT().GetAffiliateLinkByID(gomock.Any(), link.ID).Return(link, nil)

		_, err := p.DeactivateLink(context.Background(), link.ID, uuid.New(), false)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown link", func(t *testing.T) {
		p, mockStore, _ := newTestProcessor(t, 5)

		mockStore.EXPECT().GetAffiliateLinkByID(gomock.Any(), gomock.Any()).Return(store.AffiliateLink{}, store.ErrNotFound)

		_, err := p.DeactivateLink(context.Background(), uuid.New(), owner, false)
		assert.ErrorIs(t, err, ErrLinkNotFound)
	})
}

func TestGetLink(t *testing.T) {
	owner := uuid.New()
	link := store.AffiliateLink{ID: uuid.New(), OwnerID: owner, Code: "ABCDEF12", IsActive: true}

	t.Run("owner sees link with click count", func(t *testing.T) {
		p, mockStore, _ := newTestProcessor(t, 5)

		mockStore.EXPECT().GetAffiliateLinkByID(gomock.Any(), link.ID).Return(link, nil)
		mockStore.EXPECT().CountClickEventsByLink(gomock.Any(), link.ID).Return(7, nil)

		got, err := p.GetLink(context.Background(), link.ID, owner, false)
		require.NoError(t, err)
		assert.Equal(t, LinkDetails{Link: link, ClickCount: 7}, got)
	})

	t.Run("admin sees any link", func(t *testing.T) {
		p, mockStore, _ := newTestProcessor(t, 5)

		mockStore.EXPECT().GetAffiliateLinkByID(gomock.Any(), link.ID).Return(link, nil)
		mockStore.EXPECT().CountClickEventsByLink(gomock.Any(), link.ID).Return(0, nil)

		_, err := p.GetLink(context.Background(), link.ID, uuid.New(), true)
		require.NoError(t, err)
	})

	t.Run("other partner sees not found", func(t *testing.T) {
		p, mockStore, _ := newTestProcessor(t, 5)

		mockStore.EXPECT().GetAffiliateLinkByID(gomock.Any(), link.ID).Return(link, nil)

		_, err := p.GetLink(context.Background(), link.ID, uuid.New(), false)
		assert.ErrorIs(t, err, ErrLinkNotFound)
	})

	t.Run("count failure is returned", func(t *testing.T) {
		p, mockStore, _ := newTestProcessor(t, 5)
		dbErr := errors.New("connection reset")

		mockStore.EXPECT().GetAffiliateLinkByID(gomock.Any(), link.ID).Return(link, nil)
		mockStore.EXPECT().CountClickEventsByLink(gomock.Any(), link.ID).Return(0, dbErr)

		_, err := p.GetLink(context.Background(), link.ID, owner, false)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestListLinks_AppliesDefaults(t *testing.T) {
	p, mockStore, _ := newTestProcessor(t, 5)
	owner := uuid.New()

	expected := store.ListAffiliateLinksParams{OwnerID: &owner, Limit: 20, Offset: 0}
	mockStore.EXPECT().ListAffiliateLinks(gomock.Any(), expected).Return(nil, nil)
	mockStore.EXPECT().CountAffiliateLinks(gomock.Any(), expected).Return(0, nil)

	resp, err := p.ListLinks(context.Background(), ListLinksRequest{OwnerID: &owner, Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.NotNil(t, resp.Links)
	assert.Empty(t, resp.Links)
	assert.False(t, resp.Pagination.HasMore)
}

func TestListLinks_HasMore(t *testing.T) {
	p, mockStore, _ := newTestProcessor(t, 5)

	mockStore.EXPECT().ListAffiliateLinks(gomock.Any(), gomock.Any()).Return([]store.AffiliateLink{{ID: uuid.New()}}, nil)
	mockStore.EXPECT().CountAffiliateLinks(gomock.Any(), gomock.Any()).Return(3, nil)

	resp, err := p.ListLinks(context.Background(), ListLinksRequest{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.True(t, resp.Pagination.HasMore)
	assert.Equal(t, 3, resp.Pagination.TotalCount)
}
