// internal/repositories/analysis_repository.go
package repositories

import (
	"context"
	"fmt"

	"zuna/internal/database"
	"zuna/internal/models"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// analysisRepository implements AnalysisRepository
type analysisRepository struct {
	*BaseRepository
}

// NewAnalysisRepository creates a new instance of AnalysisRepository
func NewAnalysisRepository(db *database.Manager, logger *zap.Logger) AnalysisRepository {
	return &analysisRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Insert stores a completed drawing analysis
func (r *analysisRepository) Insert(ctx context.Context, analysis *models.Analysis) error {
	query := `
		INSERT INTO analyses (user_id, child_profile_id, task_type, image_url, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.QueryRowContext(
		ctx, query,
		analysis.UserID, analysis.ChildProfileID,
		analysis.TaskType, analysis.ImageURL, analysis.ResultJSON,
	).Scan(&analysis.ID, &analysis.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// CountDistinctTaskTypes counts how many different drawing tasks the
// user has analyzed at least once.
func (r *analysisRepository) CountDistinctTaskTypes(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(DISTINCT task_type)
		FROM analyses
		WHERE user_id = $1`

	var count int
	if err := r.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count distinct task types: %w", err)
	}

	return count, nil
}

// ListByUser returns the user's analyses, newest first
func (r *analysisRepository) ListByUser(ctx context.Context, userID uuid.UUID, params models.PaginationParams) (*models.PaginatedResponse[models.Analysis], error) {
	params = r.NormalizePagination(params)

	var total int64
	countQuery := `SELECT COUNT(*) FROM analyses WHERE user_id = $1`
	if err := r.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count analyses: %w", err)
	}

	query := `
		SELECT id, user_id, child_profile_id, task_type, image_url, result, created_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.QueryContext(ctx, query, userID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []models.Analysis
	for rows.Next() {
		var analysis models.Analysis
		if err := rows.Scan(
			&analysis.ID, &analysis.UserID, &analysis.ChildProfileID,
			&analysis.TaskType, &analysis.ImageURL, &analysis.ResultJSON,
			&analysis.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, analysis)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	return &models.PaginatedResponse[models.Analysis]{
		Data:       analyses,
		Pagination: r.BuildPaginationMeta(params, total),
	}, nil
}
