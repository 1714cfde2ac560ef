// ===============================
// FILE: internal/handlers/api/v1/analyses/analyses_controller.go
// ===============================

package analyses

import (
	"encoding/json"
	"net/http"

	"zuna/internal/contextutils"
	"zuna/internal/response"
	"zuna/internal/services"

	"go.uber.org/zap"
)

// AnalysisController handles drawing analysis API endpoints
type AnalysisController struct {
	serviceCollection *services.ServiceCollection
	responseBuilder   *response.Builder
	logger            *zap.Logger
}

// NewAnalysisController creates a new analysis API controller
func NewAnalysisController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *AnalysisController {
	return &AnalysisController{
		serviceCollection: serviceCollection,
		logger:            logger,
		responseBuilder:   responseBuilder,
	}
}

// ===============================
// INGESTION
// ===============================

// IngestAnalysis stores a finished drawing analysis for the caller
// POST /api/v1/me/analyses
func (c *AnalysisController) IngestAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := contextutils.GetUserID(ctx)
	if !ok {
		c.responseBuilder.WriteUnauthorized(w, r, "")
		return
	}

	var req services.IngestAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteBadRequest(w, r, "invalid request body")
		return
	}
	// The identity always comes from the gateway, never the body.
	req.UserID = userID

	resp, err := c.serviceCollection.GetAnalysisService().IngestAnalysis(ctx, &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, resp)
}

// ===============================
// LISTING
// ===============================

// ListMyAnalyses returns the caller's analyses, newest first
// GET /api/v1/me/analyses
func (c *AnalysisController) ListMyAnalyses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := contextutils.GetUserID(ctx)
	if !ok {
		c.responseBuilder.WriteUnauthorized(w, r, "")
		return
	}

	params := response.ParsePagination(r)
	page, err := c.serviceCollection.GetAnalysisService().ListAnalyses(ctx, userID, params)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WritePage(w, r, page.Data, page.Pagination)
}
