// file: internal/services/badge_service_test.go
package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"zuna/internal/config"
	"zuna/internal/events"
	"zuna/internal/models"
	"zuna/internal/repositories"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// ===============================
// IN-MEMORY FAKES
// ===============================

type fakeBadgeRepo struct {
	mu         sync.Mutex
	rows       []models.UserBadge
	listErr    error
	insertErr  error
	batchErr   error
	batchCalls int
}

var _ repositories.BadgeRepository = (*fakeBadgeRepo)(nil)

func (f *fakeBadgeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.UserBadge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.UserBadge
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBadgeRepo) Insert(_ context.Context, badge *models.UserBadge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.ownsLocked(badge.UserID, badge.BadgeID) {
		return &pq.Error{Code: "23505"}
	}
	f.rows = append(f.rows, *badge)
	return nil
}

func (f *fakeBadgeRepo) BatchUpsert(_ context.Context, badges []models.UserBadge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, b := range badges {
		if !f.ownsLocked(b.UserID, b.BadgeID) {
			f.rows = append(f.rows, b)
		}
	}
	return nil
}

func (f *fakeBadgeRepo) ownsLocked(userID uuid.UUID, badgeID string) bool {
	for _, r := range f.rows {
		if r.UserID == userID && r.BadgeID == badgeID {
			return true
		}
	}
	return false
}

func (f *fakeBadgeRepo) owns(userID uuid.UUID, badgeID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ownsLocked(userID, badgeID)
}

type fakeActivityRepo struct {
	mu             sync.Mutex
	nextID         int64
	rows           map[int64]*models.UserActivity
	getErr         error
	insertErr      error
	totalsErr      error
	recentErr      error
	raceOnInsert   bool
	insertCalls    int
	incrementCalls int
}

var _ repositories.ActivityRepository = (*fakeActivityRepo)(nil)

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{rows: make(map[int64]*models.UserActivity)}
}

func (f *fakeActivityRepo) GetByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) (*models.UserActivity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, r := range f.rows {
		if r.UserID == userID && r.ActivityDate.Equal(date) {
			row := *r
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeActivityRepo) Insert(_ context.Context, activity *models.UserActivity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, r := range f.rows {
		if r.UserID == activity.UserID && r.ActivityDate.Equal(activity.ActivityDate) {
			return &pq.Error{Code: "23505"}
		}
	}
	if f.raceOnInsert {
		// Simulate another writer creating the day's row between the
		// read and this insert.
		f.raceOnInsert = false
		f.nextID++
		f.rows[f.nextID] = &models.UserActivity{
			ID:           f.nextID,
			UserID:       activity.UserID,
			ActivityDate: activity.ActivityDate,
		}
		return &pq.Error{Code: "23505"}
	}
	f.nextID++
	stored := *activity
	stored.ID = f.nextID
	f.rows[f.nextID] = &stored
	activity.ID = f.nextID
	return nil
}

func (f *fakeActivityRepo) IncrementCounter(_ context.Context, id int64, activityType models.ActivityType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.incrementCalls++
	row, ok := f.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	switch activityType {
	case models.ActivityAnalysis:
		row.AnalysisCount++
	case models.ActivityStory:
		row.StoryCount++
	case models.ActivityColoring:
		row.ColoringCount++
	}
	return nil
}

func (f *fakeActivityRepo) Totals(_ context.Context, userID uuid.UUID) (*models.ActivityTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.totalsErr != nil {
		return nil, f.totalsErr
	}
	totals := &models.ActivityTotals{}
	for _, r := range f.rows {
		if r.UserID != userID {
			continue
		}
		totals.Analyses += r.AnalysisCount
		totals.Stories += r.StoryCount
		totals.Colorings += r.ColoringCount
	}
	return totals, nil
}

func (f *fakeActivityRepo) RecentDates(_ context.Context, userID uuid.UUID, limit int) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	var dates []time.Time
	for _, r := range f.rows {
		if r.UserID == userID {
			dates = append(dates, r.ActivityDate)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	if len(dates) > limit {
		dates = dates[:limit]
	}
	return dates, nil
}

func (f *fakeActivityRepo) counterFor(userID uuid.UUID, date time.Time, activityType models.ActivityType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.UserID == userID && r.ActivityDate.Equal(date) {
			return r.CounterFor(activityType)
		}
	}
	return 0
}

type fakeColoringRepo struct {
	mu        sync.Mutex
	stats     *models.UserColoringStats
	getErr    error
	upsertErr error
	upserts   int
}

var _ repositories.ColoringStatsRepository = (*fakeColoringRepo)(nil)

func (f *fakeColoringRepo) GetByUser(_ context.Context, userID uuid.UUID) (*models.UserColoringStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stats == nil || f.stats.UserID != userID {
		return nil, nil
	}
	return copyColoringStats(f.stats), nil
}

func (f *fakeColoringRepo) Upsert(_ context.Context, stats *models.UserColoringStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.stats = copyColoringStats(stats)
	return nil
}

func (f *fakeColoringRepo) current() *models.UserColoringStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stats == nil {
		return nil
	}
	return copyColoringStats(f.stats)
}

func copyColoringStats(stats *models.UserColoringStats) *models.UserColoringStats {
	out := *stats
	out.BrushTypesUsed = append([]string(nil), stats.BrushTypesUsed...)
	out.PremiumBrushesUsed = append([]string(nil), stats.PremiumBrushesUsed...)
	if stats.LastColoringDate != nil {
		last := *stats.LastColoringDate
		out.LastColoringDate = &last
	}
	return &out
}

type fakeAnalysisRepo struct {
	distinct    int
	distinctErr error
}

var _ repositories.AnalysisRepository = (*fakeAnalysisRepo)(nil)

func (f *fakeAnalysisRepo) Insert(_ context.Context, _ *models.Analysis) error { return nil }

func (f *fakeAnalysisRepo) CountDistinctTaskTypes(_ context.Context, _ uuid.UUID) (int, error) {
	if f.distinctErr != nil {
		return 0, f.distinctErr
	}
	return f.distinct, nil
}

func (f *fakeAnalysisRepo) ListByUser(_ context.Context, _ uuid.UUID, _ models.PaginationParams) (*models.PaginatedResponse[models.Analysis], error) {
	return &models.PaginatedResponse[models.Analysis]{Data: []models.Analysis{}}, nil
}

type fakeProfileRepo struct {
	children    int
	complete    bool
	childErr    error
	completeErr error
}

var _ repositories.ProfileRepository = (*fakeProfileRepo)(nil)

func (f *fakeProfileRepo) GetByUserID(_ context.Context, _ uuid.UUID) (*models.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) CountChildProfiles(_ context.Context, _ uuid.UUID) (int, error) {
	if f.childErr != nil {
		return 0, f.childErr
	}
	return f.children, nil
}

func (f *fakeProfileRepo) IsProfileComplete(_ context.Context, _ uuid.UUID) (bool, error) {
	if f.completeErr != nil {
		return false, f.completeErr
	}
	return f.complete, nil
}

func (f *fakeProfileRepo) GetPushTokens(_ context.Context, _ uuid.UUID) ([]string, error) {
	return nil, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

var _ NotificationService = (*fakeNotifier)(nil)

func (f *fakeNotifier) SendBadgeEarned(_ context.Context, _ uuid.UUID, badge models.Badge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, badge.ID)
	return nil
}

func (f *fakeNotifier) ListNotifications(_ context.Context, _ uuid.UUID, _ models.PaginationParams) (*models.PaginatedResponse[models.Notification], error) {
	return &models.PaginatedResponse[models.Notification]{Data: []models.Notification{}}, nil
}

func (f *fakeNotifier) MarkNotificationRead(_ context.Context, _ uuid.UUID, _ int64) error {
	return nil
}

func (f *fakeNotifier) sentBadges() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

type fakeEventBus struct {
	mu        sync.Mutex
	published []events.Event
}

var _ events.EventBus = (*fakeEventBus)(nil)

func (f *fakeEventBus) Publish(_ context.Context, event events.Event) error {
	return f.record(event)
}

func (f *fakeEventBus) PublishAsync(_ context.Context, event events.Event) error {
	return f.record(event)
}

func (f *fakeEventBus) record(event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, event)
	return nil
}

func (f *fakeEventBus) Subscribe(_ string, _ events.EventHandler) error   { return nil }
func (f *fakeEventBus) Unsubscribe(_ string, _ events.EventHandler) error { return nil }
func (f *fakeEventBus) Start(_ context.Context) error                     { return nil }
func (f *fakeEventBus) Stop(_ context.Context) error                      { return nil }
func (f *fakeEventBus) Health() error                                     { return nil }
func (f *fakeEventBus) Stats() *events.EventBusStats                      { return &events.EventBusStats{} }

func (f *fakeEventBus) publishedTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, len(f.published))
	for i, e := range f.published {
		types[i] = e.GetEventType()
	}
	return types
}

// ===============================
// FIXTURE
// ===============================

type badgeFixture struct {
	svc      *badgeService
	badges   *fakeBadgeRepo
	activity *fakeActivityRepo
	coloring *fakeColoringRepo
	analyses *fakeAnalysisRepo
	profiles *fakeProfileRepo
	notifier *fakeNotifier
	bus      *fakeEventBus
	userID   uuid.UUID

	// now is the frozen clock; tests reassign it to move time.
	now time.Time
}

func newBadgeFixture(t *testing.T) *badgeFixture {
	t.Helper()

	fix := &badgeFixture{
		badges:   &fakeBadgeRepo{},
		activity: newFakeActivityRepo(),
		coloring: &fakeColoringRepo{},
		analyses: &fakeAnalysisRepo{},
		profiles: &fakeProfileRepo{},
		notifier: &fakeNotifier{},
		bus:      &fakeEventBus{},
		userID:   uuid.Must(uuid.NewV4()),
		now:      time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
	}

	cfg := config.DefaultBadgesConfig()
	svc := NewBadgeService(
		fix.badges, fix.activity, fix.coloring, fix.analyses, fix.profiles,
		fix.notifier, fix.bus, &cfg, zap.NewNop(),
	).(*badgeService)
	svc.now = func() time.Time { return fix.now }
	fix.svc = svc
	return fix
}

// day returns midnight UTC offset days from the fixture's today.
func (f *badgeFixture) day(offset int) time.Time {
	y, m, d := f.now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func (f *badgeFixture) seedActivityDay(offset, analyses, stories, colorings int) {
	f.activity.nextID++
	f.activity.rows[f.activity.nextID] = &models.UserActivity{
		ID:            f.activity.nextID,
		UserID:        f.userID,
		ActivityDate:  f.day(offset),
		AnalysisCount: analyses,
		StoryCount:    stories,
		ColoringCount: colorings,
	}
}

// ===============================
// BADGE LISTING
// ===============================

func TestGetUserBadgesJoinsCatalog(t *testing.T) {
	fix := newBadgeFixture(t)
	ctx := context.Background()

	fix.badges.rows = []models.UserBadge{
		{UserID: fix.userID, BadgeID: "first_analysis", UnlockedAt: fix.day(-2)},
		{UserID: fix.userID, BadgeID: "badge_retired_long_ago", UnlockedAt: fix.day(-1)},
		{UserID: fix.userID, BadgeID: "first_coloring", UnlockedAt: fix.day(0)},
	}

	views := fix.svc.GetUserBadges(ctx, fix.userID)

	require.Len(t, views, 2, "award for a badge no longer in the catalog should be dropped")
	assert.Equal(t, "first_analysis", views[0].ID)
	assert.NotEmpty(t, views[0].Name, "view should carry the catalog definition")
	assert.Equal(t, fix.day(-2), views[0].UnlockedAt)
	assert.Equal(t, "first_coloring", views[1].ID)
}

func TestGetUserBadgesReturnsEmptyOnStoreFailure(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.badges.listErr = errors.New("connection refused")

	views := fix.svc.GetUserBadges(context.Background(), fix.userID)

	require.NotNil(t, views)
	assert.Empty(t, views)
}

// ===============================
// DAILY ACTIVITY
// ===============================

func TestRecordActivityInsertsThenIncrements(t *testing.T) {
	fix := newBadgeFixture(t)
	ctx := context.Background()

	fix.svc.RecordActivity(ctx, fix.userID, models.ActivityAnalysis)
	assert.Equal(t, 1, fix.activity.counterFor(fix.userID, fix.day(0), models.ActivityAnalysis))

	fix.svc.RecordActivity(ctx, fix.userID, models.ActivityAnalysis)
	fix.svc.RecordActivity(ctx, fix.userID, models.ActivityStory)

	assert.Equal(t, 2, fix.activity.counterFor(fix.userID, fix.day(0), models.ActivityAnalysis))
	assert.Equal(t, 1, fix.activity.counterFor(fix.userID, fix.day(0), models.ActivityStory))
	assert.Equal(t, 1, fix.activity.insertCalls, "one day means one insert")
	assert.Equal(t, 2, fix.activity.incrementCalls)
}

func TestRecordActivityRejectsUnknownType(t *testing.T) {
	fix := newBadgeFixture(t)

	fix.svc.RecordActivity(context.Background(), fix.userID, models.ActivityType("juggling"))

	assert.Zero(t, fix.activity.insertCalls)
	assert.Zero(t, fix.activity.incrementCalls)
}

func TestRecordActivitySurvivesInsertRace(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.activity.raceOnInsert = true

	fix.svc.RecordActivity(context.Background(), fix.userID, models.ActivityColoring)

	// The losing insert falls back to incrementing the winner's row.
	assert.Equal(t, 1, fix.activity.counterFor(fix.userID, fix.day(0), models.ActivityColoring))
	assert.Equal(t, 1, fix.activity.insertCalls)
	assert.Equal(t, 1, fix.activity.incrementCalls)
}

func TestRecordActivityPublishesEvent(t *testing.T) {
	fix := newBadgeFixture(t)

	fix.svc.RecordActivity(context.Background(), fix.userID, models.ActivityAnalysis)

	assert.Contains(t, fix.bus.publishedTypes(), events.EventTypeActivityRecorded)
}

// ===============================
// CATALOG EVALUATION
// ===============================

func TestCheckAndAwardBadgesAwardsOnce(t *testing.T) {
	fix := newBadgeFixture(t)
	ctx := context.Background()
	fix.seedActivityDay(0, 1, 0, 0)

	result := fix.svc.CheckAndAwardBadges(ctx, fix.userID)

	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, "first_analysis", result.NewBadges[0].ID)
	assert.Len(t, result.AllBadges, 1)
	assert.True(t, fix.badges.owns(fix.userID, "first_analysis"))

	// A second pass over unchanged stats awards nothing new.
	again := fix.svc.CheckAndAwardBadges(ctx, fix.userID)

	assert.Empty(t, again.NewBadges)
	require.Len(t, again.AllBadges, 1)
	assert.Equal(t, "first_analysis", again.AllBadges[0].ID)
	assert.Equal(t, 1, fix.badges.batchCalls, "no new awards means no second upsert")
}

func TestCheckAndAwardBadgesAwardsNextTier(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.seedActivityDay(0, 5, 0, 0)
	fix.badges.rows = []models.UserBadge{
		{UserID: fix.userID, BadgeID: "first_analysis", UnlockedAt: fix.now.AddDate(0, 0, -7)},
	}

	result := fix.svc.CheckAndAwardBadges(context.Background(), fix.userID)

	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, "analysis_5", result.NewBadges[0].ID)
	assert.Len(t, result.AllBadges, 2, "the union keeps the owned badge")
}

func TestCheckAndAwardBadgesStreak(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.seedActivityDay(0, 1, 0, 0)
	fix.seedActivityDay(-1, 1, 0, 0)
	fix.seedActivityDay(-2, 1, 0, 0)

	result := fix.svc.CheckAndAwardBadges(context.Background(), fix.userID)

	ids := make([]string, 0, len(result.NewBadges))
	for _, b := range result.NewBadges {
		ids = append(ids, b.ID)
	}
	assert.Contains(t, ids, "streak_3")
	assert.NotContains(t, ids, "streak_7")
}

func TestCheckAndAwardBadgesNeverAwardsSecretBadges(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.seedActivityDay(0, 25, 0, 0)

	result := fix.svc.CheckAndAwardBadges(context.Background(), fix.userID)

	for _, b := range result.NewBadges {
		assert.False(t, b.Secret, "snapshot evaluation should not reach session-moment badges")
	}
}

func TestCheckAndAwardBadgesReturnsEmptyOnListFailure(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.badges.listErr = errors.New("connection refused")

	result := fix.svc.CheckAndAwardBadges(context.Background(), fix.userID)

	require.NotNil(t, result)
	assert.NotNil(t, result.NewBadges)
	assert.NotNil(t, result.AllBadges)
	assert.Empty(t, result.NewBadges)
	assert.Empty(t, result.AllBadges)
}

func TestCheckAndAwardBadgesReturnsEmptyOnUpsertFailure(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.seedActivityDay(0, 1, 0, 0)
	fix.badges.rows = []models.UserBadge{
		{UserID: fix.userID, BadgeID: "first_story", UnlockedAt: fix.now.AddDate(0, 0, -1)},
	}
	fix.badges.batchErr = errors.New("deadlock detected")

	result := fix.svc.CheckAndAwardBadges(context.Background(), fix.userID)

	assert.Empty(t, result.NewBadges, "awards that may not have persisted are not reported")
	require.Len(t, result.AllBadges, 1)
	assert.Equal(t, "first_story", result.AllBadges[0].ID)
	assert.Empty(t, fix.notifier.sentBadges(), "failed persistence must not notify")
}

func TestCheckAndAwardBadgesDegradesToZeroStats(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.seedActivityDay(0, 5, 0, 0)
	fix.activity.totalsErr = errors.New("timeout")

	result := fix.svc.CheckAndAwardBadges(context.Background(), fix.userID)

	// Streak still computes from RecentDates, but the analysis badges
	// cannot be earned with the totals source dark.
	for _, b := range result.NewBadges {
		assert.NotContains(t, []string{"first_analysis", "analysis_5"}, b.ID)
	}
}

func TestCheckAndAwardBadgesNotifies(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.seedActivityDay(0, 1, 0, 0)

	fix.svc.CheckAndAwardBadges(context.Background(), fix.userID)

	assert.Eventually(t, func() bool {
		return slices.Contains(fix.notifier.sentBadges(), "first_analysis")
	}, time.Second, 10*time.Millisecond, "new award should reach the notifier")
}

// ===============================
// PROGRESS
// ===============================

func TestGetBadgeProgressOrderingAndExclusions(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.seedActivityDay(0, 2, 0, 1)
	fix.seedActivityDay(-1, 1, 0, 1)
	fix.analyses.distinct = 1

	progress := fix.svc.GetBadgeProgress(context.Background(), fix.userID)
	require.NotEmpty(t, progress)

	// Totals: 3 analyses, 2 colorings, streak 2, 1 distinct task type.
	// gallery_starter and streak_3 tie at 66%, catalog order breaks
	// the tie; analysis_5 follows at 60%.
	require.GreaterOrEqual(t, len(progress), 3)
	assert.Equal(t, "gallery_starter", progress[0].Badge.ID)
	assert.Equal(t, 66, progress[0].Percentage)
	assert.Equal(t, "streak_3", progress[1].Badge.ID)
	assert.Equal(t, 66, progress[1].Percentage)
	assert.Equal(t, "analysis_5", progress[2].Badge.ID)
	assert.Equal(t, 60, progress[2].Percentage)
	assert.Equal(t, 3, progress[2].Current)
	assert.Equal(t, 5, progress[2].Target)

	for i, p := range progress {
		assert.False(t, p.Badge.Secret, "secret badges must stay hidden")
		assert.Less(t, p.Percentage, 100)
		assert.GreaterOrEqual(t, p.Percentage, 0)
		if i > 0 {
			assert.LessOrEqual(t, p.Percentage, progress[i-1].Percentage, "ordering must be non-increasing")
		}
		// first_analysis is complete but unawarded, which still
		// excludes it from the progress list.
		assert.NotEqual(t, "first_analysis", p.Badge.ID)
		assert.NotEqual(t, "profile_complete", p.Badge.ID, "boolean criteria have no measurable progress")
	}
}

func TestGetBadgeProgressSkipsOwnedBadges(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.seedActivityDay(0, 3, 0, 0)
	fix.badges.rows = []models.UserBadge{
		{UserID: fix.userID, BadgeID: "analysis_5", UnlockedAt: fix.day(-1)},
	}

	progress := fix.svc.GetBadgeProgress(context.Background(), fix.userID)

	for _, p := range progress {
		assert.NotEqual(t, "analysis_5", p.Badge.ID)
	}
}

func TestGetBadgeProgressReturnsEmptyOnFailure(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.badges.listErr = errors.New("connection refused")

	progress := fix.svc.GetBadgeProgress(context.Background(), fix.userID)

	require.NotNil(t, progress)
	assert.Empty(t, progress)
}

// ===============================
// DIRECT AWARDS
// ===============================

func TestAwardBadgeIsIdempotent(t *testing.T) {
	fix := newBadgeFixture(t)
	ctx := context.Background()

	assert.True(t, fix.svc.AwardBadge(ctx, fix.userID, "night_owl"))
	assert.False(t, fix.svc.AwardBadge(ctx, fix.userID, "night_owl"), "duplicate award reports false, not an error")
	assert.True(t, fix.badges.owns(fix.userID, "night_owl"))
}

func TestAwardBadgeRejectsUnknownID(t *testing.T) {
	fix := newBadgeFixture(t)

	assert.False(t, fix.svc.AwardBadge(context.Background(), fix.userID, "badge_that_never_existed"))
	assert.Empty(t, fix.badges.rows)
}

func TestAwardBadgeReturnsFalseOnStoreFailure(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.badges.insertErr = errors.New("connection refused")

	assert.False(t, fix.svc.AwardBadge(context.Background(), fix.userID, "night_owl"))
}

// ===============================
// COLORING EVENTS
// ===============================

func TestRecordColoringCompletion(t *testing.T) {
	fix := newBadgeFixture(t)
	ctx := context.Background()

	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{
		Type:            models.EventColoringCompleted,
		DurationSeconds: 200,
		ColorsUsed:      12,
	})

	stats := fix.coloring.current()
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.CompletedColorings)
	assert.Equal(t, 12, stats.ColorsUsedSingleMax)
	assert.Equal(t, 3, stats.TotalColoringMinutes)
	assert.Equal(t, 1, stats.QuickColorings, "200s is under the quick threshold")
	assert.Zero(t, stats.MarathonColorings)
	assert.Equal(t, 1, stats.ColoringStreak)
	require.NotNil(t, stats.LastColoringDate)
	assert.Equal(t, fix.day(0), *stats.LastColoringDate)

	// Completion also counts as the day's coloring activity.
	assert.Equal(t, 1, fix.activity.counterFor(fix.userID, fix.day(0), models.ActivityColoring))

	types := fix.bus.publishedTypes()
	assert.Contains(t, types, events.EventTypeColoringMilestone, "first completion is a milestone")
	assert.Contains(t, types, events.EventTypeActivityRecorded)

	// 14:00 in March is neither night, morning, nor New Year.
	assert.Empty(t, fix.badges.rows)
}

func TestRecordColoringMarathonSession(t *testing.T) {
	fix := newBadgeFixture(t)

	fix.svc.RecordColoringActivity(context.Background(), fix.userID, &models.ColoringEvent{
		Type:            models.EventColoringCompleted,
		DurationSeconds: 1800,
	})

	stats := fix.coloring.current()
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.MarathonColorings)
	assert.Zero(t, stats.QuickColorings)
	assert.Equal(t, 30, stats.TotalColoringMinutes)
}

func TestRecordColoringStreakTransitions(t *testing.T) {
	fix := newBadgeFixture(t)
	ctx := context.Background()
	yesterday := fix.day(-1)
	fix.coloring.stats = &models.UserColoringStats{
		UserID:             fix.userID,
		CompletedColorings: 5,
		ColoringStreak:     2,
		LastColoringDate:   &yesterday,
	}

	// Yesterday's streak extends.
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventColoringCompleted})
	assert.Equal(t, 3, fix.coloring.current().ColoringStreak)

	// A second completion the same day leaves the streak alone.
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventColoringCompleted})
	assert.Equal(t, 3, fix.coloring.current().ColoringStreak)

	// A gap resets to one.
	stale := fix.day(-3)
	fix.coloring.stats.LastColoringDate = &stale
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventColoringCompleted})
	assert.Equal(t, 1, fix.coloring.current().ColoringStreak)
}

func TestRecordColoringBrushes(t *testing.T) {
	fix := newBadgeFixture(t)
	ctx := context.Background()

	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventBrushUsed, BrushType: "glitter"})
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventBrushUsed, BrushType: "glitter"})
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventBrushUsed, BrushType: "crayon"})

	stats := fix.coloring.current()
	require.NotNil(t, stats)
	assert.Equal(t, []string{"glitter", "crayon"}, stats.BrushTypesUsed, "repeat brushes must not grow the set")
	assert.Equal(t, []string{"glitter"}, stats.PremiumBrushesUsed, "only allow-listed brushes count as premium")

	// A brush event without a brush is dropped before the write.
	upserts := fix.coloring.upserts
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventBrushUsed})
	assert.Equal(t, upserts, fix.coloring.upserts)
}

func TestRecordColoringToolCounters(t *testing.T) {
	fix := newBadgeFixture(t)
	ctx := context.Background()

	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventAISuggestion})
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventAISuggestion})
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventHarmonyColor})
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventReferenceImage})
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventUndoContinue})
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventColorUsed, ColorsUsed: 9})
	fix.svc.RecordColoringActivity(ctx, fix.userID, &models.ColoringEvent{Type: models.EventColorUsed, ColorsUsed: 4})

	stats := fix.coloring.current()
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.AISuggestionsUsed)
	assert.Equal(t, 1, stats.HarmonyColorsUsed)
	assert.Equal(t, 1, stats.ReferenceImagesUsed)
	assert.Equal(t, 1, stats.UndoAndContinue)
	assert.Equal(t, 9, stats.ColorsUsedSingleMax, "a smaller session must not lower the max")
}

func TestRecordColoringSwallowsStoreFailure(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.coloring.getErr = errors.New("connection refused")

	fix.svc.RecordColoringActivity(context.Background(), fix.userID, &models.ColoringEvent{Type: models.EventColoringCompleted})

	assert.Zero(t, fix.coloring.upserts)
}

// ===============================
// SESSION-MOMENT BADGES
// ===============================

func TestSessionMomentBadgeWindows(t *testing.T) {
	tests := []struct {
		name   string
		at     time.Time
		expect []string
	}{
		{
			name:   "late night",
			at:     time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC),
			expect: []string{"night_owl"},
		},
		{
			name:   "small hours",
			at:     time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC),
			expect: []string{"night_owl"},
		},
		{
			name:   "early morning",
			at:     time.Date(2026, 3, 10, 6, 30, 0, 0, time.UTC),
			expect: []string{"early_bird"},
		},
		{
			name:   "night window closes where the early one opens",
			at:     time.Date(2026, 3, 10, 5, 0, 0, 0, time.UTC),
			expect: []string{"early_bird"},
		},
		{
			name:   "midday",
			at:     time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
			expect: nil,
		},
		{
			name:   "new year's day",
			at:     time.Date(2027, 1, 1, 12, 0, 0, 0, time.UTC),
			expect: []string{"new_year_artist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newBadgeFixture(t)
			fix.now = tt.at

			fix.svc.RecordColoringActivity(context.Background(), fix.userID, &models.ColoringEvent{
				Type:            models.EventColoringCompleted,
				DurationSeconds: 120,
			})

			var got []string
			for _, row := range fix.badges.rows {
				got = append(got, row.BadgeID)
			}
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestSessionMomentBadgesOnlyOnCompletion(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.now = time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	fix.svc.RecordColoringActivity(context.Background(), fix.userID, &models.ColoringEvent{
		Type:      models.EventBrushUsed,
		BrushType: "neon",
	})

	assert.Empty(t, fix.badges.rows, "tool events are not creation moments")
}

func TestSessionMomentBadgesFireOnAnyActivity(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.now = time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	fix.svc.RecordActivity(context.Background(), fix.userID, models.ActivityAnalysis)

	require.Len(t, fix.badges.rows, 1, "a late-night analysis is still a night session")
	assert.Equal(t, "night_owl", fix.badges.rows[0].BadgeID)
}

func TestColoringThresholdBadgeAwardsInSession(t *testing.T) {
	fix := newBadgeFixture(t)
	fix.coloring.stats = &models.UserColoringStats{
		UserID:         fix.userID,
		QuickColorings: 4,
	}

	// The fifth quick session crosses the speed_sketcher threshold and
	// is awarded without waiting for the next catalog evaluation.
	fix.svc.RecordColoringActivity(context.Background(), fix.userID, &models.ColoringEvent{
		Type:            models.EventColoringCompleted,
		DurationSeconds: 200,
	})

	require.Len(t, fix.badges.rows, 1)
	assert.Equal(t, "speed_sketcher", fix.badges.rows[0].BadgeID)
}

// ===============================
// STREAK WALK
// ===============================

func TestConsecutiveDays(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"no activity", nil, 0},
		{"today only", []time.Time{day(0)}, 1},
		{"three day run", []time.Time{day(0), day(-1), day(-2)}, 3},
		{"anchored on yesterday", []time.Time{day(-1), day(-2)}, 2},
		{"stale run", []time.Time{day(-2), day(-3)}, 0},
		{"gap stops the walk", []time.Time{day(0), day(-2), day(-3)}, 1},
		{"gap after yesterday", []time.Time{day(-1), day(-3)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, consecutiveDays(tt.dates, today))
		})
	}
}

func TestHourInWindow(t *testing.T) {
	// Wrapping window, 22:00 to 05:00.
	assert.True(t, hourInWindow(23, 22, 5))
	assert.True(t, hourInWindow(0, 22, 5))
	assert.True(t, hourInWindow(4, 22, 5))
	assert.False(t, hourInWindow(5, 22, 5))
	assert.False(t, hourInWindow(12, 22, 5))

	// Plain window, 05:00 to 08:00.
	assert.True(t, hourInWindow(5, 5, 8))
	assert.True(t, hourInWindow(7, 5, 8))
	assert.False(t, hourInWindow(8, 5, 8))
	assert.False(t, hourInWindow(4, 5, 8))
}
