// file: internal/services/analysis_service_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"zuna/internal/models"
	"zuna/internal/repositories"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ===============================
// FAKES
// ===============================

type fakeAnalysisStore struct {
	mu        sync.Mutex
	inserted  []*models.Analysis
	insertErr error
	listErr   error
	nextID    int64
}

var _ repositories.AnalysisRepository = (*fakeAnalysisStore)(nil)

func (f *fakeAnalysisStore) Insert(_ context.Context, analysis *models.Analysis) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	analysis.ID = f.nextID
	f.inserted = append(f.inserted, analysis)
	return nil
}

func (f *fakeAnalysisStore) CountDistinctTaskTypes(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeAnalysisStore) ListByUser(_ context.Context, _ uuid.UUID, params models.PaginationParams) (*models.PaginatedResponse[models.Analysis], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	rows := make([]models.Analysis, 0, len(f.inserted))
	for _, a := range f.inserted {
		rows = append(rows, *a)
	}
	return &models.PaginatedResponse[models.Analysis]{
		Data: rows,
		Pagination: models.PaginationMeta{
			CurrentPage: 1,
			TotalItems:  int64(len(rows)),
		},
	}, nil
}

// fakeBadgeEngine records which engine hooks the pipeline triggered.
type fakeBadgeEngine struct {
	mu         sync.Mutex
	activities []models.ActivityType
	checks     int
	newBadges  []models.UserBadgeView
}

var _ BadgeService = (*fakeBadgeEngine)(nil)

func (f *fakeBadgeEngine) GetUserBadges(_ context.Context, _ uuid.UUID) []*models.UserBadgeView {
	return nil
}

func (f *fakeBadgeEngine) RecordActivity(_ context.Context, _ uuid.UUID, activity models.ActivityType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activities = append(f.activities, activity)
}

func (f *fakeBadgeEngine) CheckAndAwardBadges(_ context.Context, _ uuid.UUID) *BadgeAwardResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	result := EmptyAwardResult()
	result.NewBadges = append(result.NewBadges, f.newBadges...)
	return result
}

func (f *fakeBadgeEngine) GetBadgeProgress(_ context.Context, _ uuid.UUID) []*models.BadgeProgress {
	return nil
}

func (f *fakeBadgeEngine) AwardBadge(_ context.Context, _ uuid.UUID, _ string) bool { return false }

func (f *fakeBadgeEngine) RecordColoringActivity(_ context.Context, _ uuid.UUID, _ *models.ColoringEvent) {
}

// ===============================
// FIXTURE
// ===============================

type analysisFixture struct {
	svc    AnalysisService
	store  *fakeAnalysisStore
	engine *fakeBadgeEngine
	bus    *fakeEventBus
	userID uuid.UUID
}

func newAnalysisFixture(t *testing.T) *analysisFixture {
	t.Helper()

	store := &fakeAnalysisStore{}
	engine := &fakeBadgeEngine{}
	bus := &fakeEventBus{}

	return &analysisFixture{
		svc:    NewAnalysisService(store, engine, bus, zap.NewNop()),
		store:  store,
		engine: engine,
		bus:    bus,
		userID: uuid.Must(uuid.NewV4()),
	}
}

func (fix *analysisFixture) request(rawOutput string) *IngestAnalysisRequest {
	return &IngestAnalysisRequest{
		UserID:    fix.userID,
		TaskType:  models.TaskTypeHouse,
		RawOutput: rawOutput,
	}
}

// ===============================
// INGESTION
// ===============================

func TestIngestAnalysisStoresParsedResult(t *testing.T) {
	fix := newAnalysisFixture(t)
	raw := "Here is the analysis:\n```json\n" +
		`{"summary": "A warm, detailed house with big windows.", "confidence": 0.9,` +
		` "recommendations": ["Ask about the garden"]}` +
		"\n```"

	resp, err := fix.svc.IngestAnalysis(context.Background(), fix.request(raw))
	require.NoError(t, err)
	require.NotNil(t, resp.Analysis)

	assert.False(t, resp.Degraded)
	assert.Equal(t, int64(1), resp.Analysis.ID)
	assert.Equal(t, models.TaskTypeHouse, resp.Analysis.TaskType)
	require.NotNil(t, resp.Analysis.Result)
	assert.Equal(t, "A warm, detailed house with big windows.", resp.Analysis.Result.Summary)

	// The stored JSON round-trips to the same result.
	var stored models.DrawingAnalysisResult
	require.NoError(t, json.Unmarshal(resp.Analysis.ResultJSON, &stored))
	assert.Equal(t, resp.Analysis.Result.Summary, stored.Summary)

	// Ingestion drives the badge pipeline.
	assert.Equal(t, []models.ActivityType{models.ActivityAnalysis}, fix.engine.activities)
	assert.Equal(t, 1, fix.engine.checks)
	assert.Contains(t, fix.bus.publishedTypes(), "analysis.ingested")
}

func TestIngestAnalysisDegradesOnUnparsableOutput(t *testing.T) {
	fix := newAnalysisFixture(t)

	resp, err := fix.svc.IngestAnalysis(context.Background(), fix.request("I'm sorry, I cannot analyze this image."))
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	require.NotNil(t, resp.Analysis.Result)
	assert.NotEmpty(t, resp.Analysis.Result.Summary)
	assert.Zero(t, resp.Analysis.Result.Confidence)

	// A degraded analysis still counts as activity.
	assert.Equal(t, []models.ActivityType{models.ActivityAnalysis}, fix.engine.activities)
	assert.Equal(t, 1, fix.engine.checks)
}

func TestIngestAnalysisDegradesOnInvalidPayload(t *testing.T) {
	fix := newAnalysisFixture(t)

	// Parses as JSON but fails the result's own validation: no summary.
	resp, err := fix.svc.IngestAnalysis(context.Background(), fix.request(`{"confidence": 0.5}`))
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
}

func TestIngestAnalysisReturnsNewBadges(t *testing.T) {
	fix := newAnalysisFixture(t)
	badge, ok := models.CatalogBadge("first_analysis")
	require.True(t, ok)
	fix.engine.newBadges = []models.UserBadgeView{{Badge: badge}}

	resp, err := fix.svc.IngestAnalysis(context.Background(), fix.request(`{"summary": "ok", "confidence": 1}`))
	require.NoError(t, err)

	require.Len(t, resp.NewBadges, 1)
	assert.Equal(t, "first_analysis", resp.NewBadges[0].ID)
}

func TestIngestAnalysisRejectsInvalidRequests(t *testing.T) {
	fix := newAnalysisFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *IngestAnalysisRequest
	}{
		{name: "nil request", req: nil},
		{name: "missing raw output", req: &IngestAnalysisRequest{UserID: fix.userID, TaskType: models.TaskTypeTree}},
		{name: "unknown task type", req: &IngestAnalysisRequest{UserID: fix.userID, TaskType: "castle", RawOutput: "{}"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fix.svc.IngestAnalysis(ctx, tc.req)
			require.Error(t, err)

			var svcErr *ServiceError
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, http.StatusBadRequest, svcErr.GetStatusCode())
		})
	}

	// Nothing reached the store or the engine.
	assert.Empty(t, fix.store.inserted)
	assert.Zero(t, fix.engine.checks)
}

func TestIngestAnalysisFailsWhenStoreFails(t *testing.T) {
	fix := newAnalysisFixture(t)
	fix.store.insertErr = errors.New("disk full")

	_, err := fix.svc.IngestAnalysis(context.Background(), fix.request(`{"summary": "ok"}`))
	require.Error(t, err)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusInternalServerError, svcErr.GetStatusCode())

	// The pipeline stops before the badge hooks when the row is lost.
	assert.Empty(t, fix.engine.activities)
	assert.Zero(t, fix.engine.checks)
}

// ===============================
// LISTING
// ===============================

func TestListAnalysesReturnsStoredRows(t *testing.T) {
	fix := newAnalysisFixture(t)
	ctx := context.Background()

	_, err := fix.svc.IngestAnalysis(ctx, fix.request(`{"summary": "first", "confidence": 0.8}`))
	require.NoError(t, err)

	page, err := fix.svc.ListAnalyses(ctx, fix.userID, models.PaginationParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, models.TaskTypeHouse, page.Data[0].TaskType)
}

func TestListAnalysesWrapsStoreFailure(t *testing.T) {
	fix := newAnalysisFixture(t)
	fix.store.listErr = errors.New("connection reset")

	_, err := fix.svc.ListAnalyses(context.Background(), fix.userID, models.PaginationParams{})
	require.Error(t, err)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusInternalServerError, svcErr.GetStatusCode())
}
