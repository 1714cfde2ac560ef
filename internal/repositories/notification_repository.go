// internal/repositories/notification_repository.go
package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"zuna/internal/database"
	"zuna/internal/models"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// notificationRepository implements NotificationRepository
type notificationRepository struct {
	*BaseRepository
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *database.Manager, logger *zap.Logger) NotificationRepository {
	return &notificationRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create stores a new in-app notification
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	data, err := marshalNotificationData(notification.Data)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notifications (user_id, type, title, body, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err = r.QueryRowContext(
		ctx, query,
		notification.UserID, notification.Type,
		notification.Title, notification.Body, data,
	).Scan(&notification.ID, &notification.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByUser returns the user's notifications, newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params models.PaginationParams) (*models.PaginatedResponse[models.Notification], error) {
	params = r.NormalizePagination(params)

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	if err := r.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, user_id, type, title, body, data, is_read, created_at, read_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.QueryContext(ctx, query, userID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var notification models.Notification
		var data []byte
		if err := rows.Scan(
			&notification.ID, &notification.UserID, &notification.Type,
			&notification.Title, &notification.Body, &data,
			&notification.IsRead, &notification.CreatedAt, &notification.ReadAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if err := unmarshalNotificationData(data, &notification); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return &models.PaginatedResponse[models.Notification]{
		Data:       notifications,
		Pagination: r.BuildPaginationMeta(params, total),
	}, nil
}

// MarkRead marks one of the user's notifications as read. The user id
// guard keeps a user from touching another account's rows.
func (r *notificationRepository) MarkRead(ctx context.Context, userID uuid.UUID, notificationID int64) error {
	query := `
		UPDATE notifications SET
			is_read = TRUE, read_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2 AND is_read = FALSE`

	result, err := r.ExecContext(ctx, query, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		// Either the row is missing or it was already read; confirm
		// which before reporting not-found.
		var exists bool
		checkQuery := `SELECT EXISTS (SELECT 1 FROM notifications WHERE id = $1 AND user_id = $2)`
		if err := r.QueryRowContext(ctx, checkQuery, notificationID, userID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check notification existence: %w", err)
		}
		if !exists {
			return ErrNotFound
		}
	}

	return nil
}

// GetPreferences returns the user's notification preferences, falling
// back to the defaults when no row has been stored.
func (r *notificationRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.NotificationPreferences, error) {
	query := `
		SELECT id, user_id, badge_alerts, daily_tips, streak_reminders, push_enabled,
		       created_at, updated_at
		FROM notification_preferences
		WHERE user_id = $1`

	var prefs models.NotificationPreferences
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&prefs.ID, &prefs.UserID,
		&prefs.BadgeAlerts, &prefs.DailyTips, &prefs.StreakReminders, &prefs.PushEnabled,
		&prefs.CreatedAt, &prefs.UpdatedAt,
	)

	if err != nil {
		if r.IsNotFound(err) {
			return models.DefaultNotificationPreferences(userID), nil
		}
		return nil, fmt.Errorf("failed to get notification preferences: %w", err)
	}

	return &prefs, nil
}

// marshalNotificationData encodes the payload map for the jsonb column.
func marshalNotificationData(data map[string]string) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification data: %w", err)
	}
	return encoded, nil
}

// unmarshalNotificationData decodes the jsonb payload column.
func unmarshalNotificationData(data []byte, notification *models.Notification) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &notification.Data); err != nil {
		return fmt.Errorf("failed to decode notification data: %w", err)
	}
	return nil
}
