// ===============================
// FILE: internal/handlers/api/v1/notifications/notifications_controller.go
// ===============================

package notifications

import (
	"net/http"
	"strconv"

	"zuna/internal/contextutils"
	"zuna/internal/response"
	"zuna/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NotificationController handles notification feed API endpoints
type NotificationController struct {
	serviceCollection *services.ServiceCollection
	responseBuilder   *response.Builder
	logger            *zap.Logger
}

// NewNotificationController creates a new notification API controller
func NewNotificationController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *NotificationController {
	return &NotificationController{
		serviceCollection: serviceCollection,
		logger:            logger,
		responseBuilder:   responseBuilder,
	}
}

// ===============================
// FEED
// ===============================

// ListMyNotifications returns the caller's notification feed
// GET /api/v1/me/notifications
func (c *NotificationController) ListMyNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := contextutils.GetUserID(ctx)
	if !ok {
		c.responseBuilder.WriteUnauthorized(w, r, "")
		return
	}

	params := response.ParsePagination(r)
	page, err := c.serviceCollection.GetNotificationService().ListNotifications(ctx, userID, params)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WritePage(w, r, page.Data, page.Pagination)
}

// MarkRead marks one of the caller's notifications as read
// POST /api/v1/me/notifications/{id}/read
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := contextutils.GetUserID(ctx)
	if !ok {
		c.responseBuilder.WriteUnauthorized(w, r, "")
		return
	}

	notificationID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		c.responseBuilder.WriteBadRequest(w, r, "notification id must be a number")
		return
	}

	if err := c.serviceCollection.GetNotificationService().MarkNotificationRead(ctx, userID, notificationID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteNoContent(w, r)
}
