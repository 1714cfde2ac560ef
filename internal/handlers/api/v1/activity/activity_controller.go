// ===============================
// FILE: internal/handlers/api/v1/activity/activity_controller.go
// ===============================

package activity

import (
	"encoding/json"
	"net/http"

	"zuna/internal/contextutils"
	"zuna/internal/models"
	"zuna/internal/response"
	"zuna/internal/services"

	"go.uber.org/zap"
)

// ActivityController handles activity reporting API endpoints
type ActivityController struct {
	serviceCollection *services.ServiceCollection
	responseBuilder   *response.Builder
	logger            *zap.Logger
}

// NewActivityController creates a new activity API controller
func NewActivityController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *ActivityController {
	return &ActivityController{
		serviceCollection: serviceCollection,
		logger:            logger,
		responseBuilder:   responseBuilder,
	}
}

// ===============================
// DAILY ACTIVITY
// ===============================

// RecordActivity records one countable activity for the caller and
// immediately evaluates badges so the client can celebrate new ones.
// POST /api/v1/me/activity
func (c *ActivityController) RecordActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := contextutils.GetUserID(ctx)
	if !ok {
		c.responseBuilder.WriteUnauthorized(w, r, "")
		return
	}

	var req services.RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteBadRequest(w, r, "invalid request body")
		return
	}

	if !models.ValidActivityType(req.Type) {
		c.responseBuilder.WriteBadRequest(w, r, "unknown activity type")
		return
	}

	badgeService := c.serviceCollection.GetBadgeService()
	badgeService.RecordActivity(ctx, userID, req.Type)
	result := badgeService.CheckAndAwardBadges(ctx, userID)

	c.responseBuilder.WriteSuccess(w, r, services.RecordActivityResponse{
		Recorded:  true,
		NewBadges: result.NewBadges,
	})
}

// ===============================
// COLORING SESSIONS
// ===============================

// RecordColoring folds a coloring session event into the caller's
// stats and evaluates badges.
// POST /api/v1/me/activity/coloring
func (c *ActivityController) RecordColoring(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := contextutils.GetUserID(ctx)
	if !ok {
		c.responseBuilder.WriteUnauthorized(w, r, "")
		return
	}

	var event models.ColoringEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		c.responseBuilder.WriteBadRequest(w, r, "invalid request body")
		return
	}

	if !models.ValidColoringEventType(event.Type) {
		c.responseBuilder.WriteBadRequest(w, r, "unknown coloring event type")
		return
	}

	badgeService := c.serviceCollection.GetBadgeService()
	badgeService.RecordColoringActivity(ctx, userID, &event)
	result := badgeService.CheckAndAwardBadges(ctx, userID)

	c.responseBuilder.WriteSuccess(w, r, services.RecordActivityResponse{
		Recorded:  true,
		NewBadges: result.NewBadges,
	})
}
