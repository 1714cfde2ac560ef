// file: internal/services/analysis_service.go
package services

import (
	"context"
	"encoding/json"

	"zuna/internal/events"
	"zuna/internal/llm"
	"zuna/internal/models"
	"zuna/internal/repositories"
	"zuna/internal/validation"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// analysisService implements AnalysisService. It is the write path that
// feeds the badge engine: every stored analysis also records a daily
// activity and runs an award sweep.
type analysisService struct {
	analysisRepo repositories.AnalysisRepository
	badgeService BadgeService
	events       events.EventBus
	logger       *zap.Logger
}

// NewAnalysisService creates the analysis ingestion pipeline
func NewAnalysisService(
	analysisRepo repositories.AnalysisRepository,
	badgeService BadgeService,
	eventBus events.EventBus,
	logger *zap.Logger,
) AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &analysisService{
		analysisRepo: analysisRepo,
		badgeService: badgeService,
		events:       eventBus,
		logger:       logger,
	}
}

// ===============================
// INGESTION
// ===============================

// IngestAnalysis validates the request, extracts the structured result
// from the raw model output, stores the analysis, and runs the badge
// pipeline. A raw output that cannot be parsed does not fail the
// request: the fallback result is stored and the response is flagged
// as degraded.
func (s *analysisService) IngestAnalysis(ctx context.Context, req *IngestAnalysisRequest) (*IngestAnalysisResponse, error) {
	if req == nil {
		return nil, NewValidationError("request is required", nil)
	}
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid analysis request", err)
	}

	result, ok := llm.ExtractTyped(
		req.RawOutput,
		llm.Options{Logger: s.logger},
		(*models.DrawingAnalysisResult).Valid,
		fallbackAnalysisResult(),
	)
	degraded := !ok
	if degraded {
		s.logger.Warn("analysis output could not be parsed, storing fallback",
			zap.String("user_id", req.UserID.String()),
			zap.String("task_type", req.TaskType),
		)
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("failed to encode analysis result", zap.Error(err))
		return nil, NewInternalError("failed to encode analysis result")
	}

	analysis := &models.Analysis{
		UserID:         req.UserID,
		ChildProfileID: req.ChildProfileID,
		TaskType:       req.TaskType,
		ImageURL:       req.ImageURL,
		ResultJSON:     resultJSON,
		Result:         result,
	}

	if err := s.analysisRepo.Insert(ctx, analysis); err != nil {
		s.logger.Error("failed to store analysis",
			zap.String("user_id", req.UserID.String()),
			zap.Error(err),
		)
		return nil, NewInternalError("failed to store analysis")
	}

	// The analysis is committed; everything past this point degrades
	// instead of failing the request.
	s.badgeService.RecordActivity(ctx, req.UserID, models.ActivityAnalysis)
	awards := s.badgeService.CheckAndAwardBadges(ctx, req.UserID)

	s.publishAsync(ctx, events.NewAnalysisIngestedEvent(req.UserID, analysis.ID, analysis.TaskType, degraded))

	s.logger.Info("analysis ingested",
		zap.String("user_id", req.UserID.String()),
		zap.Int64("analysis_id", analysis.ID),
		zap.String("task_type", analysis.TaskType),
		zap.Bool("degraded", degraded),
		zap.Int("new_badges", len(awards.NewBadges)),
	)

	return &IngestAnalysisResponse{
		Analysis:  analysis,
		NewBadges: awards.NewBadges,
		Degraded:  degraded,
	}, nil
}

// ListAnalyses returns the user's stored analyses, newest first.
func (s *analysisService) ListAnalyses(ctx context.Context, userID uuid.UUID, params models.PaginationParams) (*models.PaginatedResponse[models.Analysis], error) {
	page, err := s.analysisRepo.ListByUser(ctx, userID, params)
	if err != nil {
		s.logger.Error("failed to list analyses",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, NewInternalError("failed to load analyses")
	}
	return page, nil
}

// ===============================
// HELPERS
// ===============================

// fallbackAnalysisResult is stored when the model output defeats the
// extractor. Confidence zero marks it for later reprocessing.
func fallbackAnalysisResult() *models.DrawingAnalysisResult {
	return &models.DrawingAnalysisResult{
		Summary:    "The drawing was received but the detailed analysis could not be read.",
		Confidence: 0,
	}
}

func (s *analysisService) publishAsync(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishAsync(ctx, event); err != nil {
		s.logger.Debug("failed to publish event",
			zap.String("event_type", event.GetEventType()),
			zap.Error(err),
		)
	}
}
