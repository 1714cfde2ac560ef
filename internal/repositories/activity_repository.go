// internal/repositories/activity_repository.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"zuna/internal/database"
	"zuna/internal/models"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// activityRepository implements ActivityRepository
type activityRepository struct {
	*BaseRepository
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *database.Manager, logger *zap.Logger) ActivityRepository {
	return &activityRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetByUserAndDate retrieves the counters row for one calendar day.
// Days without activity return nil rather than an error.
func (r *activityRepository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.UserActivity, error) {
	query := `
		SELECT id, user_id, activity_date,
		       analysis_count, story_count, coloring_count,
		       created_at, updated_at
		FROM user_activity
		WHERE user_id = $1 AND activity_date = $2`

	var activity models.UserActivity
	err := r.QueryRowContext(ctx, query, userID, date).Scan(
		&activity.ID, &activity.UserID, &activity.ActivityDate,
		&activity.AnalysisCount, &activity.StoryCount, &activity.ColoringCount,
		&activity.CreatedAt, &activity.UpdatedAt,
	)

	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get activity by date: %w", err)
	}

	return &activity, nil
}

// Insert creates a day's first row with its counters pre-set
func (r *activityRepository) Insert(ctx context.Context, activity *models.UserActivity) error {
	query := `
		INSERT INTO user_activity (
			user_id, activity_date, analysis_count, story_count, coloring_count
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		activity.UserID, activity.ActivityDate,
		activity.AnalysisCount, activity.StoryCount, activity.ColoringCount,
	).Scan(&activity.ID, &activity.CreatedAt, &activity.UpdatedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	return nil
}

// IncrementCounter bumps exactly one counter on an existing row,
// addressed by its id.
func (r *activityRepository) IncrementCounter(ctx context.Context, id int64, activityType models.ActivityType) error {
	column, err := counterColumn(activityType)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE user_activity SET
			%s = %s + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`, column, column)

	result, err := r.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment activity counter: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// counterColumn maps an activity type to its counter column. The
// column name is interpolated into SQL, so it must come from this
// closed mapping and never from user input.
func counterColumn(activityType models.ActivityType) (string, error) {
	switch activityType {
	case models.ActivityAnalysis:
		return "analysis_count", nil
	case models.ActivityStory:
		return "story_count", nil
	case models.ActivityColoring:
		return "coloring_count", nil
	default:
		return "", fmt.Errorf("unknown activity type: %s", activityType)
	}
}

// Totals sums every counter across all days for a user
func (r *activityRepository) Totals(ctx context.Context, userID uuid.UUID) (*models.ActivityTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(analysis_count), 0) AS analyses,
			COALESCE(SUM(story_count), 0) AS stories,
			COALESCE(SUM(coloring_count), 0) AS colorings
		FROM user_activity
		WHERE user_id = $1`

	var totals models.ActivityTotals
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&totals.Analyses, &totals.Stories, &totals.Colorings,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sum activity totals: %w", err)
	}

	return &totals, nil
}

// RecentDates returns distinct activity days, newest first
func (r *activityRepository) RecentDates(ctx context.Context, userID uuid.UUID, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
		SELECT activity_date
		FROM user_activity
		WHERE user_id = $1
		ORDER BY activity_date DESC
		LIMIT $2`

	rows, err := r.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan activity date: %w", err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity dates: %w", err)
	}

	return dates, nil
}
