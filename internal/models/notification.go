package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// ===============================
// NOTIFICATIONS
// ===============================

// Notification types
const (
	NotificationTypeBadgeEarned    = "badge_earned"
	NotificationTypeStreakReminder = "streak_reminder"
	NotificationTypeDailyTip       = "daily_tip"
	NotificationTypeSystem         = "system"
)

// Notification represents an in-app notification row.
type Notification struct {
	ID     int64     `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id" validate:"required"`
	Type   string    `json:"type" db:"type" validate:"required,oneof=badge_earned streak_reminder daily_tip system"`
	Title  string    `json:"title" db:"title" validate:"required,max=255"`
	Body   string    `json:"body" db:"body" validate:"max=2000"`

	// Data carries type-specific payload fields, e.g. the badge id.
	Data map[string]string `json:"data,omitempty" db:"data"`

	// Status
	IsRead bool `json:"is_read" db:"is_read"`

	// Timestamps
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty" db:"read_at"`
}

// ===============================
// PUSH MESSAGES
// ===============================

// PushMessage is a single push request in the Expo message format.
type PushMessage struct {
	To        []string          `json:"to"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	Sound     string            `json:"sound,omitempty"`
	ChannelID string            `json:"channelId,omitempty"`
}

// PushReceipt is the per-message status returned by the push gateway.
type PushReceipt struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}
