// internal/repositories/badge_repository.go
package repositories

import (
	"context"
	"fmt"
	"strings"

	"zuna/internal/database"
	"zuna/internal/models"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// badgeRepository implements BadgeRepository
type badgeRepository struct {
	*BaseRepository
}

// NewBadgeRepository creates a new instance of BadgeRepository
func NewBadgeRepository(db *database.Manager, logger *zap.Logger) BadgeRepository {
	return &badgeRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// ListByUser retrieves every badge award for a user, oldest first
func (r *badgeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserBadge, error) {
	query := `
		SELECT user_id, badge_id, unlocked_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY unlocked_at ASC, badge_id ASC`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user badges: %w", err)
	}
	defer rows.Close()

	var badges []models.UserBadge
	for rows.Next() {
		var badge models.UserBadge
		if err := rows.Scan(&badge.UserID, &badge.BadgeID, &badge.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user badge: %w", err)
		}
		badges = append(badges, badge)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user badges: %w", err)
	}

	return badges, nil
}

// Insert stores a single badge award. A duplicate award comes back as
// the driver's unique violation so the service can classify it.
func (r *badgeRepository) Insert(ctx context.Context, badge *models.UserBadge) error {
	query := `
		INSERT INTO user_badges (user_id, badge_id)
		VALUES ($1, $2)
		RETURNING unlocked_at`

	err := r.QueryRowContext(ctx, query, badge.UserID, badge.BadgeID).Scan(&badge.UnlockedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to insert user badge: %w", err)
	}

	return nil
}

// BatchUpsert stores several awards in one statement. Already-owned
// badges are skipped by the conflict clause, which keeps the whole
// call idempotent.
func (r *badgeRepository) BatchUpsert(ctx context.Context, badges []models.UserBadge) error {
	if len(badges) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(badges))
	args := make([]interface{}, 0, len(badges)*2)
	for i, badge := range badges {
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2))
		args = append(args, badge.UserID, badge.BadgeID)
	}

	query := fmt.Sprintf(`
		INSERT INTO user_badges (user_id, badge_id)
		VALUES %s
		ON CONFLICT (user_id, badge_id) DO NOTHING`,
		strings.Join(placeholders, ", "),
	)

	if _, err := r.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to batch upsert user badges: %w", err)
	}

	r.GetLogger().Info("badge batch upsert completed",
		zap.String("user_id", badges[0].UserID.String()),
		zap.Int("count", len(badges)),
	)

	return nil
}
