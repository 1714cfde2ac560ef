package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// ===============================
// BADGE CRITERIA
// ===============================

// CriterionKind identifies how a badge criterion is evaluated.
type CriterionKind string

const (
	// CriterionThreshold awards once a numeric stat reaches a target.
	CriterionThreshold CriterionKind = "threshold"
	// CriterionBooleanFlag awards once a boolean stat becomes true.
	CriterionBooleanFlag CriterionKind = "boolean_flag"
	// CriterionSetCardinality awards once a distinct-value set reaches a size.
	CriterionSetCardinality CriterionKind = "set_cardinality"
)

// StatKey names a single statistic in a user's stats snapshot.
type StatKey string

const (
	StatTotalAnalyses         StatKey = "total_analyses"
	StatTotalStories          StatKey = "total_stories"
	StatTotalColorings        StatKey = "total_colorings"
	StatDistinctAnalysisTypes StatKey = "distinct_analysis_types"
	StatConsecutiveActiveDays StatKey = "consecutive_active_days"
	StatChildProfiles         StatKey = "child_profiles"
	StatProfileComplete       StatKey = "profile_complete"

	StatCompletedColorings  StatKey = "completed_colorings"
	StatColorsUsedSingleMax StatKey = "colors_used_single_max"
	StatBrushTypesUsed      StatKey = "brush_types_used"
	StatPremiumBrushesUsed  StatKey = "premium_brushes_used"
	StatAISuggestionsUsed   StatKey = "ai_suggestions_used"
	StatHarmonyColorsUsed   StatKey = "harmony_colors_used"
	StatReferenceImagesUsed StatKey = "reference_images_used"
	StatColoringStreak      StatKey = "coloring_streak"
	StatColoringTimeTotal   StatKey = "coloring_time_total"
	StatQuickColorings      StatKey = "quick_colorings"
	StatMarathonColorings   StatKey = "marathon_colorings"
	StatUndoAndContinue     StatKey = "undo_and_continue"

	// Session-moment keys. A stats snapshot never sets these, so badges
	// gated on them can only be awarded directly at event time.
	StatNightSession   StatKey = "night_session"
	StatEarlySession   StatKey = "early_session"
	StatNewYearSession StatKey = "new_year_session"
)

// BadgeCriterion describes the single condition a badge is earned by.
// Exactly one Kind applies; Target is ignored for boolean flags.
type BadgeCriterion struct {
	Kind    CriterionKind `json:"kind"`
	StatKey StatKey       `json:"stat_key"`
	Target  int           `json:"target,omitempty"`
}

// ThresholdCriterion builds a criterion met when a stat reaches min.
func ThresholdCriterion(key StatKey, min int) BadgeCriterion {
	return BadgeCriterion{Kind: CriterionThreshold, StatKey: key, Target: min}
}

// FlagCriterion builds a criterion met when a boolean stat is true.
func FlagCriterion(key StatKey) BadgeCriterion {
	return BadgeCriterion{Kind: CriterionBooleanFlag, StatKey: key}
}

// SetCriterion builds a criterion met when a distinct-value set holds
// at least minCount entries.
func SetCriterion(key StatKey, minCount int) BadgeCriterion {
	return BadgeCriterion{Kind: CriterionSetCardinality, StatKey: key, Target: minCount}
}

// Evaluate reports whether the criterion is satisfied by the snapshot.
func (c BadgeCriterion) Evaluate(stats *UserStats) bool {
	if stats == nil {
		return false
	}
	switch c.Kind {
	case CriterionThreshold, CriterionSetCardinality:
		return stats.Value(c.StatKey) >= c.Target
	case CriterionBooleanFlag:
		return stats.Flag(c.StatKey)
	default:
		return false
	}
}

// Progress returns the current and target values for criteria that have
// measurable progress. ok is false for boolean flags.
func (c BadgeCriterion) Progress(stats *UserStats) (current, target int, ok bool) {
	switch c.Kind {
	case CriterionThreshold, CriterionSetCardinality:
		if c.Target <= 0 {
			return 0, 0, false
		}
		if stats != nil {
			current = stats.Value(c.StatKey)
		}
		return current, c.Target, true
	default:
		return 0, 0, false
	}
}

// ===============================
// BADGE MODELS
// ===============================

// Badge is a catalog entry describing an earnable achievement.
type Badge struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Color       string         `json:"color"`
	Criterion   BadgeCriterion `json:"criterion"`

	// Secret badges are hidden from progress listings until earned.
	Secret bool `json:"secret,omitempty"`
}

// UserBadge is a persisted badge award. The (user_id, badge_id) pair is
// unique, which keeps awards idempotent at the storage layer.
type UserBadge struct {
	UserID     uuid.UUID `json:"user_id" db:"user_id" validate:"required"`
	BadgeID    string    `json:"badge_id" db:"badge_id" validate:"required"`
	UnlockedAt time.Time `json:"unlocked_at" db:"unlocked_at"`
}

// UserBadgeView joins a persisted award with its catalog entry.
type UserBadgeView struct {
	Badge
	UnlockedAt time.Time `json:"unlocked_at"`
}

// BadgeProgress reports how close a user is to an unearned badge.
type BadgeProgress struct {
	Badge      Badge `json:"badge"`
	Current    int   `json:"current"`
	Target     int   `json:"target"`
	Percentage int   `json:"percentage"`
}

// ===============================
// USER STATS SNAPSHOT
// ===============================

// UserStats is a point-in-time snapshot of every statistic badge
// criteria evaluate against. Set-valued stats are carried as counts.
type UserStats struct {
	TotalAnalyses         int  `json:"total_analyses"`
	TotalStories          int  `json:"total_stories"`
	TotalColorings        int  `json:"total_colorings"`
	DistinctAnalysisTypes int  `json:"distinct_analysis_types"`
	ConsecutiveActiveDays int  `json:"consecutive_active_days"`
	ChildProfiles         int  `json:"child_profiles"`
	ProfileComplete       bool `json:"profile_complete"`

	CompletedColorings   int `json:"completed_colorings"`
	ColorsUsedSingleMax  int `json:"colors_used_single_max"`
	BrushTypesUsed       int `json:"brush_types_used"`
	PremiumBrushesUsed   int `json:"premium_brushes_used"`
	AISuggestionsUsed    int `json:"ai_suggestions_used"`
	HarmonyColorsUsed    int `json:"harmony_colors_used"`
	ReferenceImagesUsed  int `json:"reference_images_used"`
	ColoringStreak       int `json:"coloring_streak"`
	ColoringTimeMinutes  int `json:"coloring_time_minutes"`
	QuickColorings       int `json:"quick_colorings"`
	MarathonColorings    int `json:"marathon_colorings"`
	UndoAndContinue      int `json:"undo_and_continue"`
}

// Value returns the numeric stat for key. Unknown keys report zero.
func (s *UserStats) Value(key StatKey) int {
	if s == nil {
		return 0
	}
	switch key {
	case StatTotalAnalyses:
		return s.TotalAnalyses
	case StatTotalStories:
		return s.TotalStories
	case StatTotalColorings:
		return s.TotalColorings
	case StatDistinctAnalysisTypes:
		return s.DistinctAnalysisTypes
	case StatConsecutiveActiveDays:
		return s.ConsecutiveActiveDays
	case StatChildProfiles:
		return s.ChildProfiles
	case StatCompletedColorings:
		return s.CompletedColorings
	case StatColorsUsedSingleMax:
		return s.ColorsUsedSingleMax
	case StatBrushTypesUsed:
		return s.BrushTypesUsed
	case StatPremiumBrushesUsed:
		return s.PremiumBrushesUsed
	case StatAISuggestionsUsed:
		return s.AISuggestionsUsed
	case StatHarmonyColorsUsed:
		return s.HarmonyColorsUsed
	case StatReferenceImagesUsed:
		return s.ReferenceImagesUsed
	case StatColoringStreak:
		return s.ColoringStreak
	case StatColoringTimeTotal:
		return s.ColoringTimeMinutes
	case StatQuickColorings:
		return s.QuickColorings
	case StatMarathonColorings:
		return s.MarathonColorings
	case StatUndoAndContinue:
		return s.UndoAndContinue
	default:
		return 0
	}
}

// Flag returns the boolean stat for key. Unknown keys report false,
// which keeps session-moment badges out of snapshot evaluation.
func (s *UserStats) Flag(key StatKey) bool {
	if s == nil {
		return false
	}
	switch key {
	case StatProfileComplete:
		return s.ProfileComplete
	default:
		return false
	}
}
