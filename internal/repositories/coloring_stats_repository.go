// internal/repositories/coloring_stats_repository.go
package repositories

import (
	"context"
	"fmt"

	"zuna/internal/database"
	"zuna/internal/models"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// coloringStatsRepository implements ColoringStatsRepository
type coloringStatsRepository struct {
	*BaseRepository
}

// NewColoringStatsRepository creates a new instance of ColoringStatsRepository
func NewColoringStatsRepository(db *database.Manager, logger *zap.Logger) ColoringStatsRepository {
	return &coloringStatsRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetByUser retrieves the single stats row for a user. Users who have
// never colored return nil rather than an error.
func (r *coloringStatsRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserColoringStats, error) {
	query := `
		SELECT user_id,
		       completed_colorings, colors_used_single_max,
		       quick_colorings, marathon_colorings,
		       brush_types_used, premium_brushes_used,
		       ai_suggestions_used, harmony_colors_used,
		       reference_images_used, undo_and_continue,
		       total_coloring_minutes, coloring_streak, last_coloring_date,
		       created_at, updated_at
		FROM user_coloring_stats
		WHERE user_id = $1`

	var stats models.UserColoringStats
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&stats.UserID,
		&stats.CompletedColorings, &stats.ColorsUsedSingleMax,
		&stats.QuickColorings, &stats.MarathonColorings,
		pq.Array(&stats.BrushTypesUsed), pq.Array(&stats.PremiumBrushesUsed),
		&stats.AISuggestionsUsed, &stats.HarmonyColorsUsed,
		&stats.ReferenceImagesUsed, &stats.UndoAndContinue,
		&stats.TotalColoringMinutes, &stats.ColoringStreak, &stats.LastColoringDate,
		&stats.CreatedAt, &stats.UpdatedAt,
	)

	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get coloring stats: %w", err)
	}

	return &stats, nil
}

// Upsert writes the full stats row for a user. The first write creates
// the row; later writes replace every column, which lets the service
// keep the counter math in one place.
func (r *coloringStatsRepository) Upsert(ctx context.Context, stats *models.UserColoringStats) error {
	query := `
		INSERT INTO user_coloring_stats (
			user_id,
			completed_colorings, colors_used_single_max,
			quick_colorings, marathon_colorings,
			brush_types_used, premium_brushes_used,
			ai_suggestions_used, harmony_colors_used,
			reference_images_used, undo_and_continue,
			total_coloring_minutes, coloring_streak, last_coloring_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			completed_colorings    = EXCLUDED.completed_colorings,
			colors_used_single_max = EXCLUDED.colors_used_single_max,
			quick_colorings        = EXCLUDED.quick_colorings,
			marathon_colorings     = EXCLUDED.marathon_colorings,
			brush_types_used       = EXCLUDED.brush_types_used,
			premium_brushes_used   = EXCLUDED.premium_brushes_used,
			ai_suggestions_used    = EXCLUDED.ai_suggestions_used,
			harmony_colors_used    = EXCLUDED.harmony_colors_used,
			reference_images_used  = EXCLUDED.reference_images_used,
			undo_and_continue      = EXCLUDED.undo_and_continue,
			total_coloring_minutes = EXCLUDED.total_coloring_minutes,
			coloring_streak        = EXCLUDED.coloring_streak,
			last_coloring_date     = EXCLUDED.last_coloring_date,
			updated_at             = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		stats.UserID,
		stats.CompletedColorings, stats.ColorsUsedSingleMax,
		stats.QuickColorings, stats.MarathonColorings,
		pq.Array(stats.BrushTypesUsed), pq.Array(stats.PremiumBrushesUsed),
		stats.AISuggestionsUsed, stats.HarmonyColorsUsed,
		stats.ReferenceImagesUsed, stats.UndoAndContinue,
		stats.TotalColoringMinutes, stats.ColoringStreak, stats.LastColoringDate,
	).Scan(&stats.CreatedAt, &stats.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert coloring stats: %w", err)
	}

	return nil
}
