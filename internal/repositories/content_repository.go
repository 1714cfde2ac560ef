// internal/repositories/content_repository.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"zuna/internal/database"
	"zuna/internal/models"

	"go.uber.org/zap"
)

// contentRepository implements ContentRepository
type contentRepository struct {
	*BaseRepository
}

// NewContentRepository creates a new instance of ContentRepository
func NewContentRepository(db *database.Manager, logger *zap.Logger) ContentRepository {
	return &contentRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetDailyTip returns the tip for a calendar day. A tip pinned to the
// date wins; otherwise the day rotates deterministically through the
// unpinned pool so every client sees the same tip. Nil when no tips
// exist at all.
func (r *contentRepository) GetDailyTip(ctx context.Context, date time.Time) (*models.DailyTip, error) {
	pinnedQuery := `
		SELECT id, title, body, category, icon, active_date, created_at
		FROM daily_tips
		WHERE active_date = $1`

	var tip models.DailyTip
	err := r.QueryRowContext(ctx, pinnedQuery, date).Scan(
		&tip.ID, &tip.Title, &tip.Body, &tip.Category, &tip.Icon,
		&tip.ActiveDate, &tip.CreatedAt,
	)
	if err == nil {
		return &tip, nil
	}
	if !r.IsNotFound(err) {
		return nil, fmt.Errorf("failed to get pinned daily tip: %w", err)
	}

	// Rotate through the unpinned tips by day number so the pick is
	// stable for the whole day without any state.
	rotatingQuery := `
		SELECT id, title, body, category, icon, active_date, created_at
		FROM daily_tips
		WHERE active_date IS NULL
		ORDER BY id
		OFFSET (
			SELECT CASE WHEN COUNT(*) = 0 THEN 0 ELSE $1 % COUNT(*) END
			FROM daily_tips WHERE active_date IS NULL
		)
		LIMIT 1`

	dayNumber := date.Unix() / 86400
	err = r.QueryRowContext(ctx, rotatingQuery, dayNumber).Scan(
		&tip.ID, &tip.Title, &tip.Body, &tip.Category, &tip.Icon,
		&tip.ActiveDate, &tip.CreatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rotating daily tip: %w", err)
	}

	return &tip, nil
}

// ListDiscoverItems returns discover cards, featured first then by
// sort order.
func (r *contentRepository) ListDiscoverItems(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.DiscoverItem], error) {
	params = r.NormalizePagination(params)

	var total int64
	countQuery := `SELECT COUNT(*) FROM discover_items`
	if err := r.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count discover items: %w", err)
	}

	query := `
		SELECT id, title, description, image_url, category, age_range,
		       featured, sort_order, created_at
		FROM discover_items
		ORDER BY featured DESC, sort_order ASC, id ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.QueryContext(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list discover items: %w", err)
	}
	defer rows.Close()

	var items []models.DiscoverItem
	for rows.Next() {
		var item models.DiscoverItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.ImageURL,
			&item.Category, &item.AgeRange,
			&item.Featured, &item.SortOrder, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan discover item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate discover items: %w", err)
	}

	return &models.PaginatedResponse[models.DiscoverItem]{
		Data:       items,
		Pagination: r.BuildPaginationMeta(params, total),
	}, nil
}

// ListExpertTips returns expert articles, newest first
func (r *contentRepository) ListExpertTips(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.ExpertTip], error) {
	params = r.NormalizePagination(params)

	var total int64
	countQuery := `SELECT COUNT(*) FROM expert_tips`
	if err := r.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count expert tips: %w", err)
	}

	query := `
		SELECT id, title, body, expert_name, expert_title, category,
		       read_minutes, created_at
		FROM expert_tips
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.QueryContext(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expert tips: %w", err)
	}
	defer rows.Close()

	var tips []models.ExpertTip
	for rows.Next() {
		var tip models.ExpertTip
		if err := rows.Scan(
			&tip.ID, &tip.Title, &tip.Body,
			&tip.ExpertName, &tip.ExpertTitle, &tip.Category,
			&tip.ReadMinutes, &tip.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expert tip: %w", err)
		}
		tips = append(tips, tip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expert tips: %w", err)
	}

	return &models.PaginatedResponse[models.ExpertTip]{
		Data:       tips,
		Pagination: r.BuildPaginationMeta(params, total),
	}, nil
}
