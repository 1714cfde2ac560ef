package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// NotificationPreferences represents a user's notification preferences
type NotificationPreferences struct {
	ID              int64     `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	BadgeAlerts     bool      `json:"badge_alerts" db:"badge_alerts"`
	DailyTips       bool      `json:"daily_tips" db:"daily_tips"`
	StreakReminders bool      `json:"streak_reminders" db:"streak_reminders"`
	PushEnabled     bool      `json:"push_enabled" db:"push_enabled"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultNotificationPreferences returns default notification preferences
func DefaultNotificationPreferences(userID uuid.UUID) *NotificationPreferences {
	return &NotificationPreferences{
		UserID:          userID,
		BadgeAlerts:     true,
		DailyTips:       true,
		StreakReminders: true,
		PushEnabled:     true,
	}
}
