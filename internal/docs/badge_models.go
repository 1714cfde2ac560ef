package docs

// Domain request/response models for Swagger documentation

// RecordActivityRequest represents the daily activity request body
// swagger:model RecordActivityRequest
type RecordActivityRequest struct {
	// Required: true
	// Enum: analysis,story,coloring
	Type string `json:"type" validate:"required,oneof=analysis story coloring"`
}

// ColoringEventRequest represents one coloring session event
// swagger:model ColoringEventRequest
type ColoringEventRequest struct {
	// Required: true
	// Enum: coloring_completed,brush_used,color_used,ai_suggestion,harmony_color,reference_image,undo_continue
	Type string `json:"type" validate:"required"`
	// Session length in seconds, for completion events
	DurationSeconds int `json:"duration_seconds,omitempty" example:"420"`
	// Distinct colors used, for completion events
	ColorsUsed int `json:"colors_used,omitempty" example:"14"`
	// Brush name, for brush events
	BrushType string `json:"brush_type,omitempty" example:"glitter"`
}

// IngestAnalysisRequest represents the analysis ingestion body
// swagger:model IngestAnalysisRequest
type IngestAnalysisRequest struct {
	// Optional child profile the drawing belongs to
	ChildProfileID *int64 `json:"child_profile_id,omitempty"`
	// Required: true
	// Enum: house,tree,person,family,free_drawing
	TaskType string `json:"task_type" validate:"required"`
	// Public URL of the analyzed drawing
	ImageURL *string `json:"image_url,omitempty"`
	// Required: true
	// Raw model output, fenced JSON or prose
	RawOutput string `json:"raw_output" validate:"required"`
}

// BadgeView is one catalog badge
type BadgeView struct {
	ID          string `json:"id" example:"first_analysis"`
	Name        string `json:"name" example:"First Steps"`
	Description string `json:"description" example:"Complete your first drawing analysis"`
	Icon        string `json:"icon" example:"sparkles"`
	Color       string `json:"color" example:"#FFB347"`
}

// UserBadgeView is an earned badge with its award time
type UserBadgeView struct {
	BadgeView
	UnlockedAt string `json:"unlocked_at" example:"2026-01-15T10:30:00Z"`
}

// BadgeProgressEntry reports how close the caller is to a badge
type BadgeProgressEntry struct {
	Badge      BadgeView `json:"badge"`
	Current    int       `json:"current" example:"3"`
	Target     int       `json:"target" example:"5"`
	Percentage int       `json:"percentage" example:"60"`
}

// BadgeCatalogResponse wraps the public catalog listing
type BadgeCatalogResponse struct {
	APIResponse
	Data struct {
		Badges []BadgeView `json:"badges"`
		Total  int         `json:"total" example:"12"`
	} `json:"data"`
}

// UserBadgesResponse wraps the earned badge listing
type UserBadgesResponse struct {
	APIResponse
	Data struct {
		Badges []UserBadgeView `json:"badges"`
		Total  int             `json:"total" example:"4"`
	} `json:"data"`
}

// BadgeProgressResponse wraps the progress listing
type BadgeProgressResponse struct {
	APIResponse
	Data struct {
		Progress []BadgeProgressEntry `json:"progress"`
	} `json:"data"`
}

// AwardResultResponse wraps a badge evaluation result
type AwardResultResponse struct {
	APIResponse
	Data struct {
		NewBadges []UserBadgeView `json:"new_badges"`
		AllBadges []UserBadgeView `json:"all_badges"`
	} `json:"data"`
}

// RecordActivityResponse confirms a recorded activity
type RecordActivityResponse struct {
	APIResponse
	Data struct {
		Recorded  bool            `json:"recorded" example:"true"`
		NewBadges []UserBadgeView `json:"new_badges"`
	} `json:"data"`
}

// IngestAnalysisResponse wraps a stored analysis
type IngestAnalysisResponse struct {
	APIResponse
	Data struct {
		Analysis  interface{}     `json:"analysis"`
		NewBadges []UserBadgeView `json:"new_badges"`
		Degraded  bool            `json:"degraded,omitempty" example:"false"`
	} `json:"data"`
}

// DailyTipResponse wraps the daily tip lookup
type DailyTipResponse struct {
	APIResponse
	Data struct {
		Tip  interface{} `json:"tip"`
		Date string      `json:"date" example:"2026-01-15"`
	} `json:"data"`
}
