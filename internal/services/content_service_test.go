// file: internal/services/content_service_test.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"zuna/internal/cache"
	"zuna/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ===============================
// FAKE CONTENT REPOSITORY
// ===============================

type fakeContentRepo struct {
	mu sync.Mutex

	tip      *models.DailyTip
	tipErr   error
	tipCalls int

	discover      []models.DiscoverItem
	discoverErr   error
	discoverCalls int

	expert      []models.ExpertTip
	expertErr   error
	expertCalls int
}

func (f *fakeContentRepo) GetDailyTip(ctx context.Context, date time.Time) (*models.DailyTip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tipCalls++
	if f.tipErr != nil {
		return nil, f.tipErr
	}
	return f.tip, nil
}

func (f *fakeContentRepo) ListDiscoverItems(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.DiscoverItem], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discoverCalls++
	if f.discoverErr != nil {
		return nil, f.discoverErr
	}
	return &models.PaginatedResponse[models.DiscoverItem]{
		Data: f.discover,
		Pagination: models.PaginationMeta{
			CurrentPage:  1,
			TotalItems:   int64(len(f.discover)),
			ItemsPerPage: params.Limit,
		},
	}, nil
}

func (f *fakeContentRepo) ListExpertTips(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.ExpertTip], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expertCalls++
	if f.expertErr != nil {
		return nil, f.expertErr
	}
	return &models.PaginatedResponse[models.ExpertTip]{
		Data: f.expert,
		Pagination: models.PaginationMeta{
			CurrentPage:  1,
			TotalItems:   int64(len(f.expert)),
			ItemsPerPage: params.Limit,
		},
	}, nil
}

func (f *fakeContentRepo) calls() (tips, discover, expert int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tipCalls, f.discoverCalls, f.expertCalls
}

// ===============================
// FIXTURE
// ===============================

type contentFixture struct {
	svc  ContentService
	repo *fakeContentRepo
}

// newContentFixture wires the service against real in-memory caches so
// the tests exercise the actual hit/miss behavior, not a cache fake.
func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()

	repo := &fakeContentRepo{
		tip: &models.DailyTip{ID: 1, Title: "Let colors breathe", Category: "encouragement"},
		discover: []models.DiscoverItem{
			{ID: 1, Title: "Rainbow forest", Featured: true},
			{ID: 2, Title: "Under the sea"},
		},
		expert: []models.ExpertTip{
			{ID: 1, Title: "Reading the tree drawing", ExpertName: "Dr. Ayse Demir"},
		},
	}

	logger := zap.NewNop()
	svc := NewContentService(
		repo,
		cache.NewTTLCache[*models.DailyTip](cache.DefaultConfig(), logger),
		cache.NewTTLCache[*models.PaginatedResponse[models.DiscoverItem]](cache.DefaultConfig(), logger),
		cache.NewTTLCache[*models.PaginatedResponse[models.ExpertTip]](cache.DefaultConfig(), logger),
		logger,
	)

	return &contentFixture{svc: svc, repo: repo}
}

// ===============================
// DAILY TIP
// ===============================

func TestGetDailyTipCachesPerDay(t *testing.T) {
	fix := newContentFixture(t)
	ctx := context.Background()

	morning := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2026, 4, 2, 21, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 4, 3, 8, 30, 0, 0, time.UTC)

	first, err := fix.svc.GetDailyTip(ctx, morning)
	require.NoError(t, err)
	require.NotNil(t, first.Tip)
	assert.Equal(t, "Let colors breathe", first.Tip.Title)
	assert.Equal(t, "2026-04-02", first.Date)

	// Same calendar day, different hour: served from cache.
	second, err := fix.svc.GetDailyTip(ctx, evening)
	require.NoError(t, err)
	assert.Equal(t, first.Tip.ID, second.Tip.ID)

	tips, _, _ := fix.repo.calls()
	assert.Equal(t, 1, tips)

	// A new day misses the cache.
	_, err = fix.svc.GetDailyTip(ctx, nextDay)
	require.NoError(t, err)

	tips, _, _ = fix.repo.calls()
	assert.Equal(t, 2, tips)
}

func TestGetDailyTipCachesEmptyDays(t *testing.T) {
	fix := newContentFixture(t)
	fix.repo.tip = nil
	ctx := context.Background()
	day := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)

	resp, err := fix.svc.GetDailyTip(ctx, day)
	require.NoError(t, err)
	assert.Nil(t, resp.Tip)
	assert.Equal(t, "2026-04-02", resp.Date)

	// The absence is cached too, so the store is not hammered.
	_, err = fix.svc.GetDailyTip(ctx, day)
	require.NoError(t, err)

	tips, _, _ := fix.repo.calls()
	assert.Equal(t, 1, tips)
}

func TestGetDailyTipWrapsRepositoryFailure(t *testing.T) {
	fix := newContentFixture(t)
	fix.repo.tipErr = errors.New("connection refused")

	_, err := fix.svc.GetDailyTip(context.Background(), time.Now())
	require.Error(t, err)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusInternalServerError, svcErr.GetStatusCode())
	// The raw store error is not leaked to callers.
	assert.NotContains(t, svcErr.Message, "connection refused")
}

func TestInvalidateDailyTipForcesRefetch(t *testing.T) {
	fix := newContentFixture(t)
	ctx := context.Background()
	day := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)

	_, err := fix.svc.GetDailyTip(ctx, day)
	require.NoError(t, err)

	require.NoError(t, fix.svc.InvalidateDailyTip(ctx, day))

	_, err = fix.svc.GetDailyTip(ctx, day)
	require.NoError(t, err)

	tips, _, _ := fix.repo.calls()
	assert.Equal(t, 2, tips)
}

// ===============================
// DISCOVER FEED
// ===============================

func TestGetDiscoverFeedCachesPerPage(t *testing.T) {
	fix := newContentFixture(t)
	ctx := context.Background()

	page, err := fix.svc.GetDiscoverFeed(ctx, models.PaginationParams{Limit: 20, Offset: 0})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.True(t, page.Data[0].Featured)

	// Same page again: cache hit.
	_, err = fix.svc.GetDiscoverFeed(ctx, models.PaginationParams{Limit: 20, Offset: 0})
	require.NoError(t, err)

	// A zero limit normalizes to the default page, so it shares the key.
	_, err = fix.svc.GetDiscoverFeed(ctx, models.PaginationParams{})
	require.NoError(t, err)

	_, discover, _ := fix.repo.calls()
	assert.Equal(t, 1, discover)

	// A different offset is a different page.
	_, err = fix.svc.GetDiscoverFeed(ctx, models.PaginationParams{Limit: 20, Offset: 20})
	require.NoError(t, err)

	_, discover, _ = fix.repo.calls()
	assert.Equal(t, 2, discover)
}

func TestInvalidateDiscoverFeedClearsAllPages(t *testing.T) {
	fix := newContentFixture(t)
	ctx := context.Background()

	_, err := fix.svc.GetDiscoverFeed(ctx, models.PaginationParams{Limit: 20})
	require.NoError(t, err)
	_, err = fix.svc.GetDiscoverFeed(ctx, models.PaginationParams{Limit: 20, Offset: 20})
	require.NoError(t, err)

	require.NoError(t, fix.svc.InvalidateDiscoverFeed(ctx))

	_, err = fix.svc.GetDiscoverFeed(ctx, models.PaginationParams{Limit: 20})
	require.NoError(t, err)

	_, discover, _ := fix.repo.calls()
	assert.Equal(t, 3, discover)
}

func TestGetDiscoverFeedWrapsRepositoryFailure(t *testing.T) {
	fix := newContentFixture(t)
	fix.repo.discoverErr = fmt.Errorf("relation does not exist")

	_, err := fix.svc.GetDiscoverFeed(context.Background(), models.PaginationParams{})
	require.Error(t, err)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusInternalServerError, svcErr.GetStatusCode())
}

// ===============================
// EXPERT TIPS
// ===============================

func TestGetExpertTipsCachesPerPage(t *testing.T) {
	fix := newContentFixture(t)
	ctx := context.Background()

	page, err := fix.svc.GetExpertTips(ctx, models.PaginationParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Dr. Ayse Demir", page.Data[0].ExpertName)

	_, err = fix.svc.GetExpertTips(ctx, models.PaginationParams{Limit: 10})
	require.NoError(t, err)

	_, _, expert := fix.repo.calls()
	assert.Equal(t, 1, expert)

	require.NoError(t, fix.svc.InvalidateExpertTips(ctx))

	_, err = fix.svc.GetExpertTips(ctx, models.PaginationParams{Limit: 10})
	require.NoError(t, err)

	_, _, expert = fix.repo.calls()
	assert.Equal(t, 2, expert)
}
