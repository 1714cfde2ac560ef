// file: internal/services/content_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"zuna/internal/cache"
	"zuna/internal/models"
	"zuna/internal/repositories"

	"go.uber.org/zap"
)

// tipDateLayout keys the daily tip cache by calendar day.
const tipDateLayout = "2006-01-02"

// contentService implements ContentService. Every read goes through a
// typed cache in front of the content repository; editorial updates
// use the Invalidate hooks instead of waiting out the TTL.
type contentService struct {
	contentRepo repositories.ContentRepository

	tipCache      cache.Cache[*models.DailyTip]
	discoverCache cache.Cache[*models.PaginatedResponse[models.DiscoverItem]]
	expertCache   cache.Cache[*models.PaginatedResponse[models.ExpertTip]]

	logger *zap.Logger
}

// NewContentService creates the cached content reader
func NewContentService(
	contentRepo repositories.ContentRepository,
	tipCache cache.Cache[*models.DailyTip],
	discoverCache cache.Cache[*models.PaginatedResponse[models.DiscoverItem]],
	expertCache cache.Cache[*models.PaginatedResponse[models.ExpertTip]],
	logger *zap.Logger,
) ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &contentService{
		contentRepo:   contentRepo,
		tipCache:      tipCache,
		discoverCache: discoverCache,
		expertCache:   expertCache,
		logger:        logger,
	}
}

// ===============================
// DAILY TIP
// ===============================

// GetDailyTip returns the tip for the given day. A day without any
// tips yields a response with a nil tip, which is also cached.
func (s *contentService) GetDailyTip(ctx context.Context, date time.Time) (*DailyTipResponse, error) {
	day := truncateToDay(date)
	key := tipCacheKey(day)

	tip, err := s.tipCache.GetOrFetch(ctx, key, func(ctx context.Context) (*models.DailyTip, error) {
		return s.contentRepo.GetDailyTip(ctx, day)
	})
	if err != nil {
		s.logger.Error("failed to load daily tip",
			zap.String("date", day.Format(tipDateLayout)),
			zap.Error(err),
		)
		return nil, NewInternalError("failed to load daily tip")
	}

	return &DailyTipResponse{
		Tip:  tip,
		Date: day.Format(tipDateLayout),
	}, nil
}

// InvalidateDailyTip drops the cached tip for a day.
func (s *contentService) InvalidateDailyTip(ctx context.Context, date time.Time) error {
	return s.tipCache.Invalidate(ctx, tipCacheKey(truncateToDay(date)))
}

// ===============================
// DISCOVER FEED
// ===============================

// GetDiscoverFeed returns the discover cards, featured first.
func (s *contentService) GetDiscoverFeed(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.DiscoverItem], error) {
	params = params.Normalize()
	key := fmt.Sprintf("discover:%d:%d", params.Limit, params.Offset)

	page, err := s.discoverCache.GetOrFetch(ctx, key, func(ctx context.Context) (*models.PaginatedResponse[models.DiscoverItem], error) {
		return s.contentRepo.ListDiscoverItems(ctx, params)
	})
	if err != nil {
		s.logger.Error("failed to load discover feed", zap.Error(err))
		return nil, NewInternalError("failed to load discover feed")
	}
	return page, nil
}

// InvalidateDiscoverFeed drops every cached discover page.
func (s *contentService) InvalidateDiscoverFeed(ctx context.Context) error {
	return s.discoverCache.Clear(ctx)
}

// ===============================
// EXPERT TIPS
// ===============================

// GetExpertTips returns expert articles, newest first.
func (s *contentService) GetExpertTips(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.ExpertTip], error) {
	params = params.Normalize()
	key := fmt.Sprintf("expert_tips:%d:%d", params.Limit, params.Offset)

	page, err := s.expertCache.GetOrFetch(ctx, key, func(ctx context.Context) (*models.PaginatedResponse[models.ExpertTip], error) {
		return s.contentRepo.ListExpertTips(ctx, params)
	})
	if err != nil {
		s.logger.Error("failed to load expert tips", zap.Error(err))
		return nil, NewInternalError("failed to load expert tips")
	}
	return page, nil
}

// InvalidateExpertTips drops every cached expert tips page.
func (s *contentService) InvalidateExpertTips(ctx context.Context) error {
	return s.expertCache.Clear(ctx)
}

// ===============================
// HELPERS
// ===============================

func tipCacheKey(day time.Time) string {
	return "daily_tip:" + day.Format(tipDateLayout)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
