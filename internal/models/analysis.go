package models

import (
	"encoding/json"
	"time"

	"github.com/gofrs/uuid"
)

// ===============================
// DRAWING ANALYSIS
// ===============================

// Drawing task types
const (
	TaskTypeHouse       = "house"
	TaskTypeTree        = "tree"
	TaskTypePerson      = "person"
	TaskTypeFamily      = "family"
	TaskTypeFreeDrawing = "free_drawing"
)

// AnalysisTaskTypes lists every recognized drawing task.
var AnalysisTaskTypes = []string{
	TaskTypeHouse, TaskTypeTree, TaskTypePerson, TaskTypeFamily, TaskTypeFreeDrawing,
}

// Analysis is a persisted drawing analysis.
type Analysis struct {
	ID             int64     `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id" validate:"required"`
	ChildProfileID *int64    `json:"child_profile_id,omitempty" db:"child_profile_id"`
	TaskType       string    `json:"task_type" db:"task_type" validate:"required,oneof=house tree person family free_drawing"`
	ImageURL       *string   `json:"image_url,omitempty" db:"image_url" validate:"omitempty,url"`

	// ResultJSON is the analysis payload as stored; Result is the
	// decoded form and is not persisted separately.
	ResultJSON json.RawMessage        `json:"-" db:"result"`
	Result     *DrawingAnalysisResult `json:"result,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DrawingAnalysisResult is the structured payload produced for one
// analyzed drawing.
type DrawingAnalysisResult struct {
	Summary             string   `json:"summary"`
	EmotionalIndicators []string `json:"emotional_indicators,omitempty"`
	DevelopmentalNotes  string   `json:"developmental_notes,omitempty"`
	Recommendations     []string `json:"recommendations,omitempty"`
	Confidence          float64  `json:"confidence,omitempty"`
}

// Valid reports whether the result carries the minimum usable content.
func (r *DrawingAnalysisResult) Valid() bool {
	if r == nil {
		return false
	}
	if r.Summary == "" {
		return false
	}
	return r.Confidence >= 0 && r.Confidence <= 1
}
