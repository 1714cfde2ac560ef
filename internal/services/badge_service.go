// file: internal/services/badge_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"zuna/internal/config"
	"zuna/internal/events"
	"zuna/internal/models"
	"zuna/internal/repositories"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const (
	// streakLookbackDays bounds the streak walk. The longest streak
	// badge needs 7 consecutive days, so 30 recent dates is plenty.
	streakLookbackDays = 30

	// badgeNotifyTimeout bounds each fire-and-forget notification.
	badgeNotifyTimeout = 10 * time.Second
)

// coloringMilestones are the completion counts worth announcing on the
// event bus. They mirror the coloring badge thresholds.
var coloringMilestones = []int{1, 10, 50}

// badgeService implements BadgeService.
//
// Public methods never return errors: badges are a reward surface, so a
// storage failure downgrades to an empty result rather than breaking
// whatever the user was doing. The lowercase methods carry the real
// semantics and the real errors.
type badgeService struct {
	badgeRepo    repositories.BadgeRepository
	activityRepo repositories.ActivityRepository
	coloringRepo repositories.ColoringStatsRepository
	analysisRepo repositories.AnalysisRepository
	profileRepo  repositories.ProfileRepository
	notifier     NotificationService
	events       events.EventBus
	config       *config.BadgesConfig
	logger       *zap.Logger

	// now is injectable so streaks and time-of-day badges are testable.
	now func() time.Time
}

// NewBadgeService creates the badge engine
func NewBadgeService(
	badgeRepo repositories.BadgeRepository,
	activityRepo repositories.ActivityRepository,
	coloringRepo repositories.ColoringStatsRepository,
	analysisRepo repositories.AnalysisRepository,
	profileRepo repositories.ProfileRepository,
	notifier NotificationService,
	eventBus events.EventBus,
	cfg *config.BadgesConfig,
	logger *zap.Logger,
) BadgeService {
	if cfg == nil {
		defaults := config.DefaultBadgesConfig()
		cfg = &defaults
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &badgeService{
		badgeRepo:    badgeRepo,
		activityRepo: activityRepo,
		coloringRepo: coloringRepo,
		analysisRepo: analysisRepo,
		profileRepo:  profileRepo,
		notifier:     notifier,
		events:       eventBus,
		config:       cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// ===============================
// PUBLIC SURFACE (SAFE DEFAULTS)
// ===============================

// GetUserBadges returns every badge the user has earned, oldest first.
// On failure it returns an empty list.
func (s *badgeService) GetUserBadges(ctx context.Context, userID uuid.UUID) []*models.UserBadgeView {
	views, err := s.getUserBadges(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load user badges, returning none",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return []*models.UserBadgeView{}
	}

	out := make([]*models.UserBadgeView, 0, len(views))
	for i := range views {
		out = append(out, &views[i])
	}
	return out
}

// RecordActivity bumps the user's daily counter for the activity type.
// Failures are logged and swallowed.
func (s *badgeService) RecordActivity(ctx context.Context, userID uuid.UUID, activity models.ActivityType) {
	if err := s.recordActivity(ctx, userID, activity); err != nil {
		s.logger.Error("failed to record activity",
			zap.String("user_id", userID.String()),
			zap.String("activity_type", string(activity)),
			zap.Error(err),
		)
	}
}

// CheckAndAwardBadges evaluates the whole catalog against the user's
// current stats and persists anything newly earned. On failure it
// returns an empty result.
func (s *badgeService) CheckAndAwardBadges(ctx context.Context, userID uuid.UUID) *BadgeAwardResult {
	result, err := s.checkAndAwardBadges(ctx, userID)
	if err != nil {
		s.logger.Error("badge evaluation failed, returning empty result",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return EmptyAwardResult()
	}
	return result
}

// GetBadgeProgress reports progress toward unearned, non-secret badges,
// most complete first. On failure it returns an empty list.
func (s *badgeService) GetBadgeProgress(ctx context.Context, userID uuid.UUID) []*models.BadgeProgress {
	progress, err := s.getBadgeProgress(ctx, userID)
	if err != nil {
		s.logger.Error("failed to compute badge progress, returning none",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return []*models.BadgeProgress{}
	}
	return progress
}

// AwardBadge grants a single badge directly, outside the catalog
// evaluation. It reports whether the badge is newly earned; an award
// the user already owns is not an error, just false.
func (s *badgeService) AwardBadge(ctx context.Context, userID uuid.UUID, badgeID string) bool {
	awarded, err := s.awardBadge(ctx, userID, badgeID)
	if err != nil {
		s.logger.Error("failed to award badge",
			zap.String("user_id", userID.String()),
			zap.String("badge_id", badgeID),
			zap.Error(err),
		)
		return false
	}
	return awarded
}

// RecordColoringActivity folds one coloring session event into the
// user's lifetime coloring stats. Failures are logged and swallowed.
func (s *badgeService) RecordColoringActivity(ctx context.Context, userID uuid.UUID, event *models.ColoringEvent) {
	if err := s.recordColoringActivity(ctx, userID, event); err != nil {
		s.logger.Error("failed to record coloring activity",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

// ===============================
// BADGE LISTING
// ===============================

func (s *badgeService) getUserBadges(ctx context.Context, userID uuid.UUID) ([]models.UserBadgeView, error) {
	rows, err := s.badgeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user badges: %w", err)
	}
	return s.buildBadgeViews(rows), nil
}

// buildBadgeViews joins persisted awards with the catalog. Rows whose
// badge id has left the catalog are dropped, so retired badges vanish
// without a migration.
func (s *badgeService) buildBadgeViews(rows []models.UserBadge) []models.UserBadgeView {
	views := make([]models.UserBadgeView, 0, len(rows))
	for _, row := range rows {
		def, ok := models.CatalogBadge(row.BadgeID)
		if !ok {
			s.logger.Debug("skipping orphaned badge row",
				zap.String("user_id", row.UserID.String()),
				zap.String("badge_id", row.BadgeID),
			)
			continue
		}
		views = append(views, models.UserBadgeView{Badge: def, UnlockedAt: row.UnlockedAt})
	}
	return views
}

// ===============================
// DAILY ACTIVITY
// ===============================

func (s *badgeService) recordActivity(ctx context.Context, userID uuid.UUID, activity models.ActivityType) error {
	if !models.ValidActivityType(activity) {
		return fmt.Errorf("unknown activity type %q", activity)
	}

	date := s.today()

	row, err := s.activityRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("load daily activity: %w", err)
	}

	if row == nil {
		fresh := newDailyActivity(userID, date, activity)
		err = s.activityRepo.Insert(ctx, fresh)
		if repositories.IsUniqueViolation(err) {
			// Lost the race for the day's first activity. The row
			// exists now, so fall through to the increment path.
			if row, err = s.activityRepo.GetByUserAndDate(ctx, userID, date); err != nil {
				return fmt.Errorf("reload daily activity: %w", err)
			}
			if err = s.activityRepo.IncrementCounter(ctx, row.ID, activity); err != nil {
				return fmt.Errorf("increment daily counter: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("insert daily activity: %w", err)
		}
	} else {
		if err = s.activityRepo.IncrementCounter(ctx, row.ID, activity); err != nil {
			return fmt.Errorf("increment daily counter: %w", err)
		}
	}

	s.publishAsync(ctx, events.NewActivityRecordedEvent(userID, string(activity), date.Format("2006-01-02")))

	// Time-of-day and special-date badges hang off every recorded
	// activity, not just coloring sessions.
	s.awardSessionMomentBadges(ctx, userID)
	return nil
}

// newDailyActivity builds a day's first counter row with the given
// activity already counted once.
func newDailyActivity(userID uuid.UUID, date time.Time, activity models.ActivityType) *models.UserActivity {
	row := &models.UserActivity{
		UserID:       userID,
		ActivityDate: date,
	}
	switch activity {
	case models.ActivityAnalysis:
		row.AnalysisCount = 1
	case models.ActivityStory:
		row.StoryCount = 1
	case models.ActivityColoring:
		row.ColoringCount = 1
	}
	return row
}

// ===============================
// STATS SNAPSHOT
// ===============================

// collectUserStats assembles the evaluation snapshot. Each source
// degrades independently: a failing query logs a warning and leaves its
// stats at zero, which can only delay awards, never produce wrong ones.
func (s *badgeService) collectUserStats(ctx context.Context, userID uuid.UUID) *models.UserStats {
	stats := &models.UserStats{}

	if totals, err := s.activityRepo.Totals(ctx, userID); err != nil {
		s.warnStatSource(userID, "activity totals", err)
	} else if totals != nil {
		stats.TotalAnalyses = totals.Analyses
		stats.TotalStories = totals.Stories
		stats.TotalColorings = totals.Colorings
	}

	if distinct, err := s.analysisRepo.CountDistinctTaskTypes(ctx, userID); err != nil {
		s.warnStatSource(userID, "distinct task types", err)
	} else {
		stats.DistinctAnalysisTypes = distinct
	}

	if children, err := s.profileRepo.CountChildProfiles(ctx, userID); err != nil {
		s.warnStatSource(userID, "child profiles", err)
	} else {
		stats.ChildProfiles = children
	}

	if complete, err := s.profileRepo.IsProfileComplete(ctx, userID); err != nil {
		s.warnStatSource(userID, "profile completeness", err)
	} else {
		stats.ProfileComplete = complete
	}

	if coloring, err := s.coloringRepo.GetByUser(ctx, userID); err != nil {
		s.warnStatSource(userID, "coloring stats", err)
	} else if coloring != nil {
		foldColoringStats(stats, coloring)
	}

	if dates, err := s.activityRepo.RecentDates(ctx, userID, streakLookbackDays); err != nil {
		s.warnStatSource(userID, "recent activity dates", err)
	} else {
		stats.ConsecutiveActiveDays = consecutiveDays(dates, s.today())
	}

	return stats
}

// foldColoringStats copies the lifetime coloring row into the flat
// snapshot fields. Set-backed stats count cardinality, not uses.
func foldColoringStats(stats *models.UserStats, row *models.UserColoringStats) {
	stats.CompletedColorings = row.CompletedColorings
	stats.ColorsUsedSingleMax = row.ColorsUsedSingleMax
	stats.BrushTypesUsed = len(row.BrushTypesUsed)
	stats.PremiumBrushesUsed = len(row.PremiumBrushesUsed)
	stats.AISuggestionsUsed = row.AISuggestionsUsed
	stats.HarmonyColorsUsed = row.HarmonyColorsUsed
	stats.ReferenceImagesUsed = row.ReferenceImagesUsed
	stats.ColoringStreak = row.ColoringStreak
	stats.ColoringTimeMinutes = row.TotalColoringMinutes
	stats.QuickColorings = row.QuickColorings
	stats.MarathonColorings = row.MarathonColorings
	stats.UndoAndContinue = row.UndoAndContinue
}

func (s *badgeService) warnStatSource(userID uuid.UUID, source string, err error) {
	s.logger.Warn("stats source failed, using zero values",
		zap.String("user_id", userID.String()),
		zap.String("source", source),
		zap.Error(err),
	)
}

// consecutiveDays walks the recent activity dates, newest first, and
// counts the unbroken run ending today or yesterday. An older most
// recent date means the streak is already broken.
func consecutiveDays(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	expected := today
	if !sameDay(dates[0], today) {
		expected = today.AddDate(0, 0, -1)
		if !sameDay(dates[0], expected) {
			return 0
		}
	}

	streak := 0
	for _, d := range dates {
		if !sameDay(d, expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// ===============================
// CATALOG EVALUATION
// ===============================

func (s *badgeService) checkAndAwardBadges(ctx context.Context, userID uuid.UUID) (*BadgeAwardResult, error) {
	rows, err := s.badgeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user badges: %w", err)
	}

	owned := make(map[string]bool, len(rows))
	for _, row := range rows {
		owned[row.BadgeID] = true
	}

	stats := s.collectUserStats(ctx, userID)
	unlockedAt := s.now().UTC()

	var newAwards []models.UserBadge
	var newViews []models.UserBadgeView
	for _, def := range models.BadgeCatalog {
		if owned[def.ID] || !def.Criterion.Evaluate(stats) {
			continue
		}
		newAwards = append(newAwards, models.UserBadge{
			UserID:     userID,
			BadgeID:    def.ID,
			UnlockedAt: unlockedAt,
		})
		newViews = append(newViews, models.UserBadgeView{Badge: def, UnlockedAt: unlockedAt})
	}

	if len(newAwards) > 0 {
		if err := s.badgeRepo.BatchUpsert(ctx, newAwards); err != nil {
			// Awards that may not have persisted are not reported as
			// earned; the already-owned set is still good.
			s.logger.Error("failed to persist new badges",
				zap.String("user_id", userID.String()),
				zap.Strings("badge_ids", badgeIDs(newAwards)),
				zap.Error(err),
			)
			return &BadgeAwardResult{
				NewBadges: []models.UserBadgeView{},
				AllBadges: s.buildBadgeViews(rows),
			}, nil
		}

		s.logger.Info("awarded new badges",
			zap.String("user_id", userID.String()),
			zap.Int("count", len(newAwards)),
			zap.Strings("badge_ids", badgeIDs(newAwards)),
		)

		for _, view := range newViews {
			s.notifyBadgeEarned(userID, view.Badge)
		}
	}

	all := s.buildBadgeViews(rows)
	all = append(all, newViews...)

	result := &BadgeAwardResult{
		NewBadges: newViews,
		AllBadges: all,
	}
	if result.NewBadges == nil {
		result.NewBadges = []models.UserBadgeView{}
	}
	return result, nil
}

func badgeIDs(awards []models.UserBadge) []string {
	ids := make([]string, len(awards))
	for i, a := range awards {
		ids[i] = a.BadgeID
	}
	return ids
}

// ===============================
// PROGRESS
// ===============================

func (s *badgeService) getBadgeProgress(ctx context.Context, userID uuid.UUID) ([]*models.BadgeProgress, error) {
	rows, err := s.badgeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user badges: %w", err)
	}

	owned := make(map[string]bool, len(rows))
	for _, row := range rows {
		owned[row.BadgeID] = true
	}

	stats := s.collectUserStats(ctx, userID)

	progress := make([]*models.BadgeProgress, 0, len(models.BadgeCatalog))
	for _, def := range models.BadgeCatalog {
		if owned[def.ID] || def.Secret {
			continue
		}
		current, target, ok := def.Criterion.Progress(stats)
		if !ok || current >= target {
			continue
		}
		if current < 0 {
			current = 0
		}
		progress = append(progress, &models.BadgeProgress{
			Badge:      def,
			Current:    current,
			Target:     target,
			Percentage: 100 * current / target,
		})
	}

	// Most complete first; catalog order breaks ties because the sort
	// is stable over the catalog iteration above.
	sort.SliceStable(progress, func(i, j int) bool {
		return progress[i].Percentage > progress[j].Percentage
	})

	return progress, nil
}

// ===============================
// DIRECT AWARDS
// ===============================

func (s *badgeService) awardBadge(ctx context.Context, userID uuid.UUID, badgeID string) (bool, error) {
	def, ok := models.CatalogBadge(badgeID)
	if !ok {
		return false, fmt.Errorf("unknown badge id %q", badgeID)
	}

	award := &models.UserBadge{
		UserID:     userID,
		BadgeID:    badgeID,
		UnlockedAt: s.now().UTC(),
	}

	err := s.badgeRepo.Insert(ctx, award)
	if repositories.IsUniqueViolation(err) {
		s.logger.Info("badge already owned",
			zap.String("user_id", userID.String()),
			zap.String("badge_id", badgeID),
		)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert badge award: %w", err)
	}

	s.logger.Info("awarded badge",
		zap.String("user_id", userID.String()),
		zap.String("badge_id", badgeID),
	)

	s.notifyBadgeEarned(userID, def)
	return true, nil
}

// ===============================
// COLORING EVENTS
// ===============================

func (s *badgeService) recordColoringActivity(ctx context.Context, userID uuid.UUID, event *models.ColoringEvent) error {
	if event == nil {
		return fmt.Errorf("coloring event cannot be nil")
	}
	if !models.ValidColoringEventType(event.Type) {
		return fmt.Errorf("unknown coloring event type %q", event.Type)
	}

	stats, err := s.coloringRepo.GetByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("load coloring stats: %w", err)
	}
	if stats == nil {
		stats = &models.UserColoringStats{UserID: userID}
	}

	switch event.Type {
	case models.EventColoringCompleted:
		s.applyColoringCompletion(stats, event)

	case models.EventBrushUsed:
		brush := strings.TrimSpace(event.BrushType)
		if brush == "" {
			return fmt.Errorf("brush event without a brush type")
		}
		if !stats.HasBrush(brush) {
			stats.BrushTypesUsed = append(stats.BrushTypesUsed, brush)
		}
		if models.IsPremiumBrush(brush) && !slices.Contains(stats.PremiumBrushesUsed, brush) {
			stats.PremiumBrushesUsed = append(stats.PremiumBrushesUsed, brush)
		}

	case models.EventColorUsed:
		if event.ColorsUsed > stats.ColorsUsedSingleMax {
			stats.ColorsUsedSingleMax = event.ColorsUsed
		}

	case models.EventAISuggestion:
		stats.AISuggestionsUsed++

	case models.EventHarmonyColor:
		stats.HarmonyColorsUsed++

	case models.EventReferenceImage:
		stats.ReferenceImagesUsed++

	case models.EventUndoContinue:
		stats.UndoAndContinue++
	}

	if err := s.coloringRepo.Upsert(ctx, stats); err != nil {
		return fmt.Errorf("save coloring stats: %w", err)
	}

	if event.Type == models.EventColoringCompleted {
		// Counting the day's coloring activity also runs the
		// session-moment checks.
		if err := s.recordActivity(ctx, userID, models.ActivityColoring); err != nil {
			return fmt.Errorf("record coloring day: %w", err)
		}

		if slices.Contains(coloringMilestones, stats.CompletedColorings) {
			s.publishAsync(ctx, events.NewColoringMilestoneEvent(userID, "colorings_completed", stats.CompletedColorings))
		}

		s.awardColoringThresholdBadges(ctx, userID, stats)
	}

	return nil
}

// applyColoringCompletion folds a finished session into the lifetime
// counters and advances the coloring streak.
func (s *badgeService) applyColoringCompletion(stats *models.UserColoringStats, event *models.ColoringEvent) {
	stats.CompletedColorings++
	stats.TotalColoringMinutes += event.DurationSeconds / 60

	if event.ColorsUsed > stats.ColorsUsedSingleMax {
		stats.ColorsUsedSingleMax = event.ColorsUsed
	}
	if event.DurationSeconds > 0 && event.DurationSeconds <= s.config.QuickColoringMaxSeconds {
		stats.QuickColorings++
	}
	if event.DurationSeconds >= s.config.MarathonColoringMinSeconds {
		stats.MarathonColorings++
	}

	today := s.today()
	yesterday := today.AddDate(0, 0, -1)
	switch {
	case stats.LastColoringDate == nil:
		stats.ColoringStreak = 1
	case sameDay(*stats.LastColoringDate, today):
		// Second completion the same day leaves the streak alone.
	case sameDay(*stats.LastColoringDate, yesterday):
		stats.ColoringStreak++
	default:
		stats.ColoringStreak = 1
	}
	stats.LastColoringDate = &today
}

// coloringThresholdBadges are the awards re-checked directly after a
// completed session, against the stats row that session just updated.
// The batch evaluator would catch them on its next pass; checking here
// lands the award in the same moment as the session that earned it.
var coloringThresholdBadges = []string{
	"coloring_streak_7",
	"patient_painter",
	"speed_sketcher",
	"marathon_artist",
}

func (s *badgeService) awardColoringThresholdBadges(ctx context.Context, userID uuid.UUID, row *models.UserColoringStats) {
	snapshot := &models.UserStats{}
	foldColoringStats(snapshot, row)

	for _, id := range coloringThresholdBadges {
		badge, ok := models.CatalogBadge(id)
		if !ok || !badge.Criterion.Evaluate(snapshot) {
			continue
		}
		s.AwardBadge(ctx, userID, id)
	}
}

// awardSessionMomentBadges grants the badges that depend on when the
// activity happened, not on accumulated stats. Their criteria are gated
// on flags a snapshot never sets, so this is their only pathway.
func (s *badgeService) awardSessionMomentBadges(ctx context.Context, userID uuid.UUID) {
	at := s.now()
	hour := at.Hour()

	if hourInWindow(hour, s.config.NightStartHour, s.config.NightEndHour) {
		s.AwardBadge(ctx, userID, "night_owl")
	}
	if hourInWindow(hour, s.config.EarlyStartHour, s.config.EarlyEndHour) {
		s.AwardBadge(ctx, userID, "early_bird")
	}
	if at.Month() == time.January && at.Day() == 1 {
		s.AwardBadge(ctx, userID, "new_year_artist")
	}
}

// hourInWindow reports whether hour falls in [start, end), treating a
// start after the end as a window that wraps past midnight.
func hourInWindow(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

// ===============================
// SIDE CHANNELS
// ===============================

// notifyBadgeEarned hands the award to the notification pipeline in the
// background. The request context is deliberately not reused: the award
// is already committed, so the notification should outlive the request.
func (s *badgeService) notifyBadgeEarned(userID uuid.UUID, badge models.Badge) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), badgeNotifyTimeout)
		defer cancel()

		if err := s.notifier.SendBadgeEarned(ctx, userID, badge); err != nil {
			s.logger.Warn("badge notification failed",
				zap.String("user_id", userID.String()),
				zap.String("badge_id", badge.ID),
				zap.Error(err),
			)
		}
	}()
}

func (s *badgeService) publishAsync(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishAsync(ctx, event); err != nil {
		s.logger.Debug("event publish skipped",
			zap.String("event_type", event.GetEventType()),
			zap.Error(err),
		)
	}
}

// today returns the current calendar day truncated to midnight UTC.
func (s *badgeService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
