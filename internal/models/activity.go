package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// ===============================
// ACTIVITY TRACKING
// ===============================

// ActivityType identifies which daily counter an activity increments.
type ActivityType string

const (
	ActivityAnalysis ActivityType = "analysis"
	ActivityStory    ActivityType = "story"
	ActivityColoring ActivityType = "coloring"
)

// AllActivityTypes lists every recognized activity type.
var AllActivityTypes = []ActivityType{ActivityAnalysis, ActivityStory, ActivityColoring}

// ValidActivityType reports whether t is a recognized activity type.
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityAnalysis, ActivityStory, ActivityColoring:
		return true
	default:
		return false
	}
}

// UserActivity is one user's counters for a single calendar day.
// The (user_id, activity_date) pair is unique; a day's first activity
// inserts the row and later activities update it by id.
type UserActivity struct {
	ID     int64     `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id" validate:"required"`

	// ActivityDate is the calendar day, truncated to midnight UTC.
	ActivityDate time.Time `json:"activity_date" db:"activity_date"`

	// Per-type counters
	AnalysisCount int `json:"analysis_count" db:"analysis_count"`
	StoryCount    int `json:"story_count" db:"story_count"`
	ColoringCount int `json:"coloring_count" db:"coloring_count"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CounterFor returns the counter value for the given activity type.
func (a *UserActivity) CounterFor(t ActivityType) int {
	switch t {
	case ActivityAnalysis:
		return a.AnalysisCount
	case ActivityStory:
		return a.StoryCount
	case ActivityColoring:
		return a.ColoringCount
	default:
		return 0
	}
}

// ActivityTotals aggregates a user's lifetime counters across all days.
type ActivityTotals struct {
	Analyses  int `json:"analyses" db:"analyses"`
	Stories   int `json:"stories" db:"stories"`
	Colorings int `json:"colorings" db:"colorings"`
}
