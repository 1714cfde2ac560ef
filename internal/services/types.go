// file: internal/services/types.go
package services

import (
	"time"

	"zuna/internal/models"

	"github.com/gofrs/uuid"
)

// ===============================
// BADGE SERVICE TYPES
// ===============================

// BadgeAwardResult is the outcome of a full badge evaluation pass.
type BadgeAwardResult struct {
	NewBadges []models.UserBadgeView `json:"new_badges"`
	AllBadges []models.UserBadgeView `json:"all_badges"`
}

// EmptyAwardResult is the safe default when evaluation cannot run:
// nothing new, nothing listed.
func EmptyAwardResult() *BadgeAwardResult {
	return &BadgeAwardResult{
		NewBadges: []models.UserBadgeView{},
		AllBadges: []models.UserBadgeView{},
	}
}

// ===============================
// ACTIVITY SERVICE TYPES
// ===============================

// RecordActivityRequest reports one countable activity.
type RecordActivityRequest struct {
	Type models.ActivityType `json:"type" validate:"required,oneof=analysis story coloring"`
}

// RecordActivityResponse confirms the recorded activity and any badges
// it unlocked.
type RecordActivityResponse struct {
	Recorded  bool                   `json:"recorded"`
	NewBadges []models.UserBadgeView `json:"new_badges"`
}

// ===============================
// ANALYSIS SERVICE TYPES
// ===============================

// IngestAnalysisRequest carries a finished drawing analysis produced
// by the content-generation collaborator. RawOutput is the model's
// unparsed response text.
type IngestAnalysisRequest struct {
	UserID         uuid.UUID `json:"-" validate:"required"`
	ChildProfileID *int64    `json:"child_profile_id,omitempty"`
	TaskType       string    `json:"task_type" validate:"required,oneof=house tree person family free_drawing"`
	ImageURL       *string   `json:"image_url,omitempty" validate:"omitempty,url"`
	RawOutput      string    `json:"raw_output" validate:"required"`
}

// IngestAnalysisResponse returns the stored analysis together with any
// badges the ingestion unlocked.
type IngestAnalysisResponse struct {
	Analysis  *models.Analysis       `json:"analysis"`
	NewBadges []models.UserBadgeView `json:"new_badges"`

	// Degraded is true when the raw output could not be parsed and the
	// fallback result was stored instead.
	Degraded bool `json:"degraded,omitempty"`
}

// ===============================
// CONTENT SERVICE TYPES
// ===============================

// DailyTipResponse wraps the tip of the day.
type DailyTipResponse struct {
	Tip  *models.DailyTip `json:"tip"`
	Date string           `json:"date"`
}

// ===============================
// HEALTH CHECK TYPES
// ===============================

// HealthStatus represents the aggregated health of the service layer.
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]ServiceHealth `json:"services"`
	Uptime    time.Duration            `json:"uptime"`
}

// ServiceHealth represents the health of a single service.
type ServiceHealth struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
}

// Health status values
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusDegraded  = "degraded"
	HealthStatusUnhealthy = "unhealthy"
)
