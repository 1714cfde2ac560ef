// file: internal/repositories/interfaces.go
package repositories

import (
	"context"
	"time"

	"zuna/internal/models"

	"github.com/gofrs/uuid"
)

// ===============================
// BADGE REPOSITORY
// ===============================

// BadgeRepository defines the contract for badge award storage
type BadgeRepository interface {
	// ListByUser returns every badge row the user owns, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserBadge, error)

	// Insert stores a single award. Duplicate awards surface as a
	// unique violation for the caller to classify.
	Insert(ctx context.Context, badge *models.UserBadge) error

	// BatchUpsert stores several awards in one statement, skipping
	// rows the user already owns.
	BatchUpsert(ctx context.Context, badges []models.UserBadge) error
}

// ===============================
// ACTIVITY REPOSITORY
// ===============================

// ActivityRepository defines the contract for per-day activity counters
type ActivityRepository interface {
	// Daily rows
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.UserActivity, error)
	Insert(ctx context.Context, activity *models.UserActivity) error
	IncrementCounter(ctx context.Context, id int64, activityType models.ActivityType) error

	// Aggregates
	Totals(ctx context.Context, userID uuid.UUID) (*models.ActivityTotals, error)
	RecentDates(ctx context.Context, userID uuid.UUID, limit int) ([]time.Time, error)
}

// ===============================
// COLORING STATS REPOSITORY
// ===============================

// ColoringStatsRepository defines the contract for coloring statistics
type ColoringStatsRepository interface {
	// GetByUser returns the user's stats row, or nil when the user has
	// never colored.
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserColoringStats, error)

	// Upsert writes the full stats row, creating it on first use.
	Upsert(ctx context.Context, stats *models.UserColoringStats) error
}

// ===============================
// ANALYSIS REPOSITORY
// ===============================

// AnalysisRepository defines the contract for stored drawing analyses
type AnalysisRepository interface {
	Insert(ctx context.Context, analysis *models.Analysis) error
	CountDistinctTaskTypes(ctx context.Context, userID uuid.UUID) (int, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params models.PaginationParams) (*models.PaginatedResponse[models.Analysis], error)
}

// ===============================
// PROFILE REPOSITORY
// ===============================

// ProfileRepository defines the contract for profile reads
type ProfileRepository interface {
	// GetByUserID returns the profile, or nil when none exists yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)

	// CountChildProfiles counts the user's child profiles.
	CountChildProfiles(ctx context.Context, userID uuid.UUID) (int, error)

	// IsProfileComplete reports whether the profile has every field a
	// finished onboarding fills in.
	IsProfileComplete(ctx context.Context, userID uuid.UUID) (bool, error)

	// GetPushTokens returns the user's registered push tokens.
	GetPushTokens(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// ===============================
// NOTIFICATION REPOSITORY
// ===============================

// NotificationRepository defines the contract for in-app notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, params models.PaginationParams) (*models.PaginatedResponse[models.Notification], error)
	MarkRead(ctx context.Context, userID uuid.UUID, notificationID int64) error

	// GetPreferences returns the user's notification preferences,
	// falling back to defaults when none are stored.
	GetPreferences(ctx context.Context, userID uuid.UUID) (*models.NotificationPreferences, error)
}

// ===============================
// CONTENT REPOSITORY
// ===============================

// ContentRepository defines the contract for editorial content reads
type ContentRepository interface {
	// GetDailyTip returns the tip pinned to date, or the latest
	// unpinned tip when the day has none. Nil when no tips exist.
	GetDailyTip(ctx context.Context, date time.Time) (*models.DailyTip, error)

	// ListDiscoverItems returns discover cards ordered by sort order.
	ListDiscoverItems(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.DiscoverItem], error)

	// ListExpertTips returns expert articles, newest first.
	ListExpertTips(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.ExpertTip], error)
}
