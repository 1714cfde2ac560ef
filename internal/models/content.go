package models

import "time"

// ===============================
// CONTENT MODELS
// ===============================

// DailyTip is a short parenting or creativity tip shown once per day.
type DailyTip struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title" validate:"required,max=255"`
	Body     string `json:"body" db:"body" validate:"required,max=2000"`
	Category string `json:"category" db:"category" validate:"oneof=creativity development emotion play"`
	Icon     string `json:"icon" db:"icon"`

	// ActiveDate pins a tip to a specific day; nil tips rotate freely.
	ActiveDate *time.Time `json:"active_date,omitempty" db:"active_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DiscoverItem is a featured activity card on the discover screen.
type DiscoverItem struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title" validate:"required,max=255"`
	Description string `json:"description" db:"description" validate:"max=2000"`
	ImageURL    string `json:"image_url" db:"image_url" validate:"omitempty,url"`
	Category    string `json:"category" db:"category"`
	AgeRange    string `json:"age_range" db:"age_range"`
	Featured    bool   `json:"featured" db:"featured"`
	SortOrder   int    `json:"sort_order" db:"sort_order"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ExpertTip is a longer-form article written by a child specialist.
type ExpertTip struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title" validate:"required,max=255"`
	Body        string `json:"body" db:"body" validate:"required"`
	ExpertName  string `json:"expert_name" db:"expert_name"`
	ExpertTitle string `json:"expert_title" db:"expert_title"`
	Category    string `json:"category" db:"category"`
	ReadMinutes int    `json:"read_minutes" db:"read_minutes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
