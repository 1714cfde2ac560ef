// file: internal/services/interface.go
package services

import (
	"context"
	"time"

	"zuna/internal/models"

	"github.com/gofrs/uuid"
)

// ===============================
// BADGE SERVICE
// ===============================

// BadgeService is the gamification engine. Its methods never return
// errors: any internal failure is logged and replaced by the
// documented safe default (empty list, empty result, or false), so a
// broken badge never breaks the feature that triggered it.
type BadgeService interface {
	// GetUserBadges returns the user's earned badges joined with the
	// catalog, oldest first. Awards whose badge id left the catalog
	// are filtered out. Empty on failure.
	GetUserBadges(ctx context.Context, userID uuid.UUID) []*models.UserBadgeView

	// RecordActivity bumps the user's daily counter for the activity
	// type and runs the session-moment badge checks (night, early
	// morning, special dates). Unknown types and store failures are
	// logged and dropped.
	RecordActivity(ctx context.Context, userID uuid.UUID, activity models.ActivityType)

	// CheckAndAwardBadges evaluates every catalog criterion against a
	// fresh stats snapshot, persists newly earned badges in one batch,
	// and notifies for each new award. Empty result on failure.
	CheckAndAwardBadges(ctx context.Context, userID uuid.UUID) *BadgeAwardResult

	// GetBadgeProgress lists progress toward unearned, non-secret
	// badges with measurable criteria, most complete first. Empty on
	// failure.
	GetBadgeProgress(ctx context.Context, userID uuid.UUID) []*models.BadgeProgress

	// AwardBadge grants a single badge directly, bypassing criterion
	// evaluation. Returns true only for a genuinely new award; an
	// already-owned badge or any failure returns false.
	AwardBadge(ctx context.Context, userID uuid.UUID, badgeID string) bool

	// RecordColoringActivity folds one coloring session event into the
	// user's lifetime coloring stats. A completed session also counts
	// as the day's coloring activity and immediately re-checks the
	// streak, pace, and total-time badges.
	RecordColoringActivity(ctx context.Context, userID uuid.UUID, event *models.ColoringEvent)
}

// ===============================
// NOTIFICATION SERVICE
// ===============================

// NotificationService delivers badge notifications and serves the
// in-app notification feed.
type NotificationService interface {
	// SendBadgeEarned records an in-app notification for a new badge,
	// publishes the award event, and pushes to the user's devices.
	SendBadgeEarned(ctx context.Context, userID uuid.UUID, badge models.Badge) error

	// ListNotifications returns the user's notification feed, newest
	// first.
	ListNotifications(ctx context.Context, userID uuid.UUID, params models.PaginationParams) (*models.PaginatedResponse[models.Notification], error)

	// MarkNotificationRead marks one notification as read.
	MarkNotificationRead(ctx context.Context, userID uuid.UUID, notificationID int64) error
}

// ===============================
// CONTENT SERVICE
// ===============================

// ContentService serves cached editorial content.
type ContentService interface {
	// GetDailyTip returns the tip for the given day.
	GetDailyTip(ctx context.Context, date time.Time) (*DailyTipResponse, error)

	// GetDiscoverFeed returns the discover cards.
	GetDiscoverFeed(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.DiscoverItem], error)

	// GetExpertTips returns expert articles, newest first.
	GetExpertTips(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.ExpertTip], error)

	// InvalidateDailyTip drops the cached tip for a day after an
	// editorial update.
	InvalidateDailyTip(ctx context.Context, date time.Time) error

	// InvalidateDiscoverFeed drops the cached discover feed.
	InvalidateDiscoverFeed(ctx context.Context) error

	// InvalidateExpertTips drops the cached expert tips.
	InvalidateExpertTips(ctx context.Context) error
}

// ===============================
// ANALYSIS SERVICE
// ===============================

// AnalysisService ingests finished drawing analyses and feeds the
// badge engine.
type AnalysisService interface {
	// IngestAnalysis validates the request, extracts the structured
	// result from the raw model output, persists it, and records the
	// activity with the badge engine.
	IngestAnalysis(ctx context.Context, req *IngestAnalysisRequest) (*IngestAnalysisResponse, error)

	// ListAnalyses returns the user's stored analyses, newest first.
	ListAnalyses(ctx context.Context, userID uuid.UUID, params models.PaginationParams) (*models.PaginatedResponse[models.Analysis], error)
}
