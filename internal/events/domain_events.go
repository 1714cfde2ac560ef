// file: internal/events/domain_events.go
package events

import (
	"github.com/gofrs/uuid"
)

// ===============================
// EVENT TYPES
// ===============================

const (
	EventTypeBadgeEarned       = "badge.earned"
	EventTypeActivityRecorded  = "activity.recorded"
	EventTypeColoringMilestone = "coloring.milestone"
	EventTypeAnalysisIngested  = "analysis.ingested"
)

// ===============================
// DOMAIN EVENTS
// ===============================

// BadgeEarnedEvent fires once per newly unlocked badge.
type BadgeEarnedEvent struct {
	BaseEvent
	BadgeID   string `json:"badge_id"`
	BadgeName string `json:"badge_name"`
}

// NewBadgeEarnedEvent creates a badge earned event
func NewBadgeEarnedEvent(userID uuid.UUID, badgeID, badgeName string) *BadgeEarnedEvent {
	return &BadgeEarnedEvent{
		BaseEvent: NewBaseEvent(EventTypeBadgeEarned, &userID),
		BadgeID:   badgeID,
		BadgeName: badgeName,
	}
}

// ActivityRecordedEvent fires when a daily activity counter moves.
type ActivityRecordedEvent struct {
	BaseEvent
	ActivityType string `json:"activity_type"`
	ActivityDate string `json:"activity_date"`
}

// NewActivityRecordedEvent creates an activity recorded event
func NewActivityRecordedEvent(userID uuid.UUID, activityType, activityDate string) *ActivityRecordedEvent {
	return &ActivityRecordedEvent{
		BaseEvent:    NewBaseEvent(EventTypeActivityRecorded, &userID),
		ActivityType: activityType,
		ActivityDate: activityDate,
	}
}

// ColoringMilestoneEvent fires when a lifetime coloring counter crosses
// a notable boundary.
type ColoringMilestoneEvent struct {
	BaseEvent
	Milestone string `json:"milestone"`
	Count     int    `json:"count"`
}

// NewColoringMilestoneEvent creates a coloring milestone event
func NewColoringMilestoneEvent(userID uuid.UUID, milestone string, count int) *ColoringMilestoneEvent {
	return &ColoringMilestoneEvent{
		BaseEvent: NewBaseEvent(EventTypeColoringMilestone, &userID),
		Milestone: milestone,
		Count:     count,
	}
}

// AnalysisIngestedEvent fires after a drawing analysis is stored.
type AnalysisIngestedEvent struct {
	BaseEvent
	AnalysisID int64  `json:"analysis_id"`
	TaskType   string `json:"task_type"`
	Degraded   bool   `json:"degraded"`
}

// NewAnalysisIngestedEvent creates an analysis ingested event
func NewAnalysisIngestedEvent(userID uuid.UUID, analysisID int64, taskType string, degraded bool) *AnalysisIngestedEvent {
	return &AnalysisIngestedEvent{
		BaseEvent:  NewBaseEvent(EventTypeAnalysisIngested, &userID),
		AnalysisID: analysisID,
		TaskType:   taskType,
		Degraded:   degraded,
	}
}
