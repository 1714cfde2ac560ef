package models

// ===============================
// BADGE CATALOG
// ===============================

// BadgeCatalog is the ordered, in-code list of every earnable badge.
// Catalog order is the display order and the tie-break order for
// progress listings. Persisted awards whose badge id is no longer in
// the catalog are filtered out of API responses.
var BadgeCatalog = []Badge{
	// Drawing analysis milestones
	{
		ID:          "first_analysis",
		Name:        "First Steps",
		Description: "Completed your very first drawing analysis",
		Icon:        "🎨",
		Color:       "#FF6B6B",
		Criterion:   ThresholdCriterion(StatTotalAnalyses, 1),
	},
	{
		ID:          "analysis_5",
		Name:        "Curious Mind",
		Description: "Completed 5 drawing analyses",
		Icon:        "🔍",
		Color:       "#4ECDC4",
		Criterion:   ThresholdCriterion(StatTotalAnalyses, 5),
	},
	{
		ID:          "analysis_20",
		Name:        "Little Art Expert",
		Description: "Completed 20 drawing analyses",
		Icon:        "🏆",
		Color:       "#FFD93D",
		Criterion:   ThresholdCriterion(StatTotalAnalyses, 20),
	},
	{
		ID:          "task_explorer",
		Name:        "Task Explorer",
		Description: "Tried 3 different drawing tasks",
		Icon:        "🗺️",
		Color:       "#95E1D3",
		Criterion:   ThresholdCriterion(StatDistinctAnalysisTypes, 3),
	},

	// Story milestones
	{
		ID:          "first_story",
		Name:        "Storyteller",
		Description: "Created your first story",
		Icon:        "📖",
		Color:       "#A8D8EA",
		Criterion:   ThresholdCriterion(StatTotalStories, 1),
	},
	{
		ID:          "story_5",
		Name:        "Tale Weaver",
		Description: "Created 5 stories",
		Icon:        "🧙",
		Color:       "#AA96DA",
		Criterion:   ThresholdCriterion(StatTotalStories, 5),
	},

	// Engagement milestones
	{
		ID:          "gallery_starter",
		Name:        "Gallery Starter",
		Description: "Added 3 artworks to your gallery",
		Icon:        "🖼️",
		Color:       "#FCBAD3",
		Criterion:   ThresholdCriterion(StatTotalColorings, 3),
	},
	{
		ID:          "streak_3",
		Name:        "Warming Up",
		Description: "Active 3 days in a row",
		Icon:        "🔥",
		Color:       "#FF9F68",
		Criterion:   ThresholdCriterion(StatConsecutiveActiveDays, 3),
	},
	{
		ID:          "streak_7",
		Name:        "On Fire",
		Description: "Active 7 days in a row",
		Icon:        "⚡",
		Color:       "#F67280",
		Criterion:   ThresholdCriterion(StatConsecutiveActiveDays, 7),
	},
	{
		ID:          "family_member",
		Name:        "Family Artist",
		Description: "Added 2 child profiles",
		Icon:        "👨‍👩‍👧",
		Color:       "#C06C84",
		Criterion:   ThresholdCriterion(StatChildProfiles, 2),
	},
	{
		ID:          "profile_complete",
		Name:        "All Set",
		Description: "Completed your profile",
		Icon:        "✅",
		Color:       "#6C5B7B",
		Criterion:   FlagCriterion(StatProfileComplete),
	},

	// Coloring milestones
	{
		ID:          "first_coloring",
		Name:        "First Splash",
		Description: "Finished your first coloring",
		Icon:        "🖌️",
		Color:       "#F8B195",
		Criterion:   ThresholdCriterion(StatCompletedColorings, 1),
	},
	{
		ID:          "coloring_10",
		Name:        "Color Fan",
		Description: "Finished 10 colorings",
		Icon:        "🌈",
		Color:       "#F67280",
		Criterion:   ThresholdCriterion(StatCompletedColorings, 10),
	},
	{
		ID:          "coloring_50",
		Name:        "Color Master",
		Description: "Finished 50 colorings",
		Icon:        "👑",
		Color:       "#FFD93D",
		Criterion:   ThresholdCriterion(StatCompletedColorings, 50),
	},
	{
		ID:          "color_explorer",
		Name:        "Color Explorer",
		Description: "Used 15 different colors in one artwork",
		Icon:        "🎡",
		Color:       "#4ECDC4",
		Criterion:   ThresholdCriterion(StatColorsUsedSingleMax, 15),
	},
	{
		ID:          "brush_collector",
		Name:        "Brush Collector",
		Description: "Tried 5 different brushes",
		Icon:        "🖍️",
		Color:       "#95E1D3",
		Criterion:   SetCriterion(StatBrushTypesUsed, 5),
	},
	{
		ID:          "premium_artist",
		Name:        "Premium Artist",
		Description: "Tried 3 premium brushes",
		Icon:        "💎",
		Color:       "#A8D8EA",
		Criterion:   SetCriterion(StatPremiumBrushesUsed, 3),
	},
	{
		ID:          "ai_companion",
		Name:        "Creative Companion",
		Description: "Used color suggestions 10 times",
		Icon:        "🤖",
		Color:       "#AA96DA",
		Criterion:   ThresholdCriterion(StatAISuggestionsUsed, 10),
	},
	{
		ID:          "harmony_master",
		Name:        "Harmony Master",
		Description: "Used harmony colors 5 times",
		Icon:        "🎵",
		Color:       "#FCBAD3",
		Criterion:   ThresholdCriterion(StatHarmonyColorsUsed, 5),
	},
	{
		ID:          "reference_artist",
		Name:        "Reference Artist",
		Description: "Colored with a reference image 5 times",
		Icon:        "📷",
		Color:       "#FF9F68",
		Criterion:   ThresholdCriterion(StatReferenceImagesUsed, 5),
	},
	{
		ID:          "coloring_streak_7",
		Name:        "Color Week",
		Description: "Colored 7 days in a row",
		Icon:        "📅",
		Color:       "#F67280",
		Criterion:   ThresholdCriterion(StatColoringStreak, 7),
	},
	{
		ID:          "patient_painter",
		Name:        "Patient Painter",
		Description: "Spent 5 hours coloring in total",
		Icon:        "⏳",
		Color:       "#C06C84",
		Criterion:   ThresholdCriterion(StatColoringTimeTotal, 300),
	},
	{
		ID:          "speed_sketcher",
		Name:        "Speed Sketcher",
		Description: "Finished 5 quick colorings",
		Icon:        "🚀",
		Color:       "#6C5B7B",
		Criterion:   ThresholdCriterion(StatQuickColorings, 5),
	},
	{
		ID:          "marathon_artist",
		Name:        "Marathon Artist",
		Description: "Finished 3 long coloring sessions",
		Icon:        "🏃",
		Color:       "#F8B195",
		Criterion:   ThresholdCriterion(StatMarathonColorings, 3),
	},
	{
		ID:          "comeback_kid",
		Name:        "Comeback Kid",
		Description: "Undid a mistake and kept going 5 times",
		Icon:        "💪",
		Color:       "#FF6B6B",
		Criterion:   ThresholdCriterion(StatUndoAndContinue, 5),
	},

	// Secret badges, awarded at session time only
	{
		ID:          "night_owl",
		Name:        "Night Owl",
		Description: "Created something after bedtime",
		Icon:        "🦉",
		Color:       "#2C3E50",
		Criterion:   FlagCriterion(StatNightSession),
		Secret:      true,
	},
	{
		ID:          "early_bird",
		Name:        "Early Bird",
		Description: "Created something before breakfast",
		Icon:        "🐦",
		Color:       "#F39C12",
		Criterion:   FlagCriterion(StatEarlySession),
		Secret:      true,
	},
	{
		ID:          "new_year_artist",
		Name:        "New Year Artist",
		Description: "Created something on New Year's Day",
		Icon:        "🎆",
		Color:       "#8E44AD",
		Criterion:   FlagCriterion(StatNewYearSession),
		Secret:      true,
	},
}

var catalogIndex map[string]int

func init() {
	catalogIndex = make(map[string]int, len(BadgeCatalog))
	for i, b := range BadgeCatalog {
		catalogIndex[b.ID] = i
	}
}

// CatalogBadge looks up a badge definition by id.
func CatalogBadge(id string) (Badge, bool) {
	i, ok := catalogIndex[id]
	if !ok {
		return Badge{}, false
	}
	return BadgeCatalog[i], true
}

// CatalogOrder returns the badge's position in the catalog, or -1 for
// ids that are not in the catalog.
func CatalogOrder(id string) int {
	i, ok := catalogIndex[id]
	if !ok {
		return -1
	}
	return i
}
