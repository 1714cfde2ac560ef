// ===============================
// FILE: internal/handlers/api/v1/content/content_controller.go
// ===============================

package content

import (
	"net/http"
	"time"

	"zuna/internal/response"
	"zuna/internal/services"

	"go.uber.org/zap"
)

// ContentController handles editorial content API endpoints
type ContentController struct {
	serviceCollection *services.ServiceCollection
	responseBuilder   *response.Builder
	logger            *zap.Logger
}

// NewContentController creates a new content API controller
func NewContentController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *ContentController {
	return &ContentController{
		serviceCollection: serviceCollection,
		logger:            logger,
		responseBuilder:   responseBuilder,
	}
}

// ===============================
// DAILY TIP
// ===============================

// GetDailyTip returns the tip of the day. An optional date query
// parameter (YYYY-MM-DD) selects another day.
// GET /api/v1/content/daily-tip
func (c *ContentController) GetDailyTip(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.responseBuilder.WriteBadRequest(w, r, "date must be formatted YYYY-MM-DD")
			return
		}
		date = parsed
	}

	tip, err := c.serviceCollection.GetContentService().GetDailyTip(r.Context(), date)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, tip)
}

// ===============================
// DISCOVER FEED
// ===============================

// GetDiscoverFeed returns discover cards, featured first
// GET /api/v1/content/discover
func (c *ContentController) GetDiscoverFeed(w http.ResponseWriter, r *http.Request) {
	params := response.ParsePagination(r)

	page, err := c.serviceCollection.GetContentService().GetDiscoverFeed(r.Context(), params)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WritePage(w, r, page.Data, page.Pagination)
}

// ===============================
// EXPERT TIPS
// ===============================

// GetExpertTips returns expert articles, newest first
// GET /api/v1/content/expert-tips
func (c *ContentController) GetExpertTips(w http.ResponseWriter, r *http.Request) {
	params := response.ParsePagination(r)

	page, err := c.serviceCollection.GetContentService().GetExpertTips(r.Context(), params)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WritePage(w, r, page.Data, page.Pagination)
}
