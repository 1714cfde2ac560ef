package models

import (
	"time"

	"github.com/gofrs/uuid"
	"golang.org/x/exp/slices"
)

// ===============================
// COLORING EVENTS
// ===============================

// ColoringEventType identifies a single in-session coloring event.
type ColoringEventType string

const (
	EventColoringCompleted ColoringEventType = "coloring_completed"
	EventBrushUsed         ColoringEventType = "brush_used"
	EventColorUsed         ColoringEventType = "color_used"
	EventAISuggestion      ColoringEventType = "ai_suggestion"
	EventHarmonyColor      ColoringEventType = "harmony_color"
	EventReferenceImage    ColoringEventType = "reference_image"
	EventUndoContinue      ColoringEventType = "undo_continue"
)

// ValidColoringEventType reports whether t is a recognized event type.
func ValidColoringEventType(t ColoringEventType) bool {
	switch t {
	case EventColoringCompleted, EventBrushUsed, EventColorUsed,
		EventAISuggestion, EventHarmonyColor, EventReferenceImage, EventUndoContinue:
		return true
	default:
		return false
	}
}

// ColoringEvent is a single event reported from a coloring session.
// Which fields matter depends on Type: completions carry duration and
// color count, brush events carry the brush name.
type ColoringEvent struct {
	Type ColoringEventType `json:"type" validate:"required"`

	// Completion details
	DurationSeconds int `json:"duration_seconds,omitempty" validate:"omitempty,min=0"`
	ColorsUsed      int `json:"colors_used,omitempty" validate:"omitempty,min=0"`

	// Brush details
	BrushType string `json:"brush_type,omitempty" validate:"omitempty,max=64"`
}

// ===============================
// COLORING STATS
// ===============================

// UserColoringStats is one user's accumulated coloring statistics.
// Brush sets are stored as distinct-value arrays so repeat uses of the
// same brush do not grow them.
type UserColoringStats struct {
	UserID uuid.UUID `json:"user_id" db:"user_id" validate:"required"`

	// Completion counters
	CompletedColorings  int `json:"completed_colorings" db:"completed_colorings"`
	ColorsUsedSingleMax int `json:"colors_used_single_max" db:"colors_used_single_max"`
	QuickColorings      int `json:"quick_colorings" db:"quick_colorings"`
	MarathonColorings   int `json:"marathon_colorings" db:"marathon_colorings"`

	// Tool usage
	BrushTypesUsed      []string `json:"brush_types_used" db:"brush_types_used"`
	PremiumBrushesUsed  []string `json:"premium_brushes_used" db:"premium_brushes_used"`
	AISuggestionsUsed   int      `json:"ai_suggestions_used" db:"ai_suggestions_used"`
	HarmonyColorsUsed   int      `json:"harmony_colors_used" db:"harmony_colors_used"`
	ReferenceImagesUsed int      `json:"reference_images_used" db:"reference_images_used"`
	UndoAndContinue     int      `json:"undo_and_continue" db:"undo_and_continue"`

	// Session history
	TotalColoringMinutes int        `json:"total_coloring_minutes" db:"total_coloring_minutes"`
	ColoringStreak       int        `json:"coloring_streak" db:"coloring_streak"`
	LastColoringDate     *time.Time `json:"last_coloring_date,omitempty" db:"last_coloring_date"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasBrush reports whether the brush is already in the used set.
func (s *UserColoringStats) HasBrush(brush string) bool {
	return slices.Contains(s.BrushTypesUsed, brush)
}

// ===============================
// PREMIUM BRUSHES
// ===============================

// PremiumBrushes is the allow-list of brushes that count toward
// premium brush badges.
var PremiumBrushes = []string{"glitter", "neon", "watercolor", "galaxy", "rainbow"}

// IsPremiumBrush reports whether the brush is on the premium list.
func IsPremiumBrush(brush string) bool {
	return slices.Contains(PremiumBrushes, brush)
}
