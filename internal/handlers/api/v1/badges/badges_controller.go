// ===============================
// FILE: internal/handlers/api/v1/badges/badges_controller.go
// ===============================

package badges

import (
	"net/http"

	"zuna/internal/contextutils"
	"zuna/internal/models"
	"zuna/internal/response"
	"zuna/internal/services"

	"go.uber.org/zap"
)

// BadgeController handles badge and progress API endpoints
type BadgeController struct {
	serviceCollection *services.ServiceCollection
	responseBuilder   *response.Builder
	logger            *zap.Logger
}

// NewBadgeController creates a new badge API controller
func NewBadgeController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *BadgeController {
	return &BadgeController{
		serviceCollection: serviceCollection,
		logger:            logger,
		responseBuilder:   responseBuilder,
	}
}

// ===============================
// USER BADGES
// ===============================

// ListMyBadges returns the caller's earned badges
// GET /api/v1/me/badges
func (c *BadgeController) ListMyBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutils.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteUnauthorized(w, r, "")
		return
	}

	badges := c.serviceCollection.GetBadgeService().GetUserBadges(r.Context(), userID)
	c.responseBuilder.WriteSuccess(w, r, map[string]interface{}{
		"badges": badges,
		"total":  len(badges),
	})
}

// GetMyProgress returns progress toward unearned badges
// GET /api/v1/me/badges/progress
func (c *BadgeController) GetMyProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutils.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteUnauthorized(w, r, "")
		return
	}

	progress := c.serviceCollection.GetBadgeService().GetBadgeProgress(r.Context(), userID)
	c.responseBuilder.WriteSuccess(w, r, map[string]interface{}{
		"progress": progress,
	})
}

// CheckMyBadges runs a full badge evaluation for the caller
// POST /api/v1/me/badges/check
func (c *BadgeController) CheckMyBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutils.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteUnauthorized(w, r, "")
		return
	}

	result := c.serviceCollection.GetBadgeService().CheckAndAwardBadges(r.Context(), userID)
	c.responseBuilder.WriteSuccess(w, r, result)
}

// ===============================
// PUBLIC CATALOG
// ===============================

// ListCatalog returns the public badge catalog. Secret badges stay
// hidden until earned.
// GET /api/v1/badges
func (c *BadgeController) ListCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := make([]models.Badge, 0, len(models.BadgeCatalog))
	for _, badge := range models.BadgeCatalog {
		if badge.Secret {
			continue
		}
		catalog = append(catalog, badge)
	}

	c.responseBuilder.WriteSuccess(w, r, map[string]interface{}{
		"badges": catalog,
		"total":  len(catalog),
	})
}
