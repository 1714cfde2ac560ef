// file: internal/services/notification_service.go
package services

import (
	"context"
	"fmt"

	"zuna/internal/events"
	"zuna/internal/models"
	"zuna/internal/push"
	"zuna/internal/repositories"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// notificationService implements NotificationService.
//
// The in-app notification row is the primary effect; the event bus and
// push delivery are best-effort side channels that log instead of
// failing the call.
type notificationService struct {
	notificationRepo repositories.NotificationRepository
	profileRepo      repositories.ProfileRepository
	pushClient       push.Client
	events           events.EventBus
	logger           *zap.Logger
}

// NewNotificationService creates the notification pipeline
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	profileRepo repositories.ProfileRepository,
	pushClient push.Client,
	eventBus events.EventBus,
	logger *zap.Logger,
) NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &notificationService{
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		pushClient:       pushClient,
		events:           eventBus,
		logger:           logger,
	}
}

// ===============================
// BADGE NOTIFICATIONS
// ===============================

// SendBadgeEarned records the award in the user's notification feed,
// announces it on the event bus, and pushes to the user's devices.
// Users who turned badge alerts off get nothing at all.
func (s *notificationService) SendBadgeEarned(ctx context.Context, userID uuid.UUID, badge models.Badge) error {
	prefs, err := s.notificationRepo.GetPreferences(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load notification preferences, using defaults",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		prefs = models.DefaultNotificationPreferences(userID)
	}

	if !prefs.BadgeAlerts {
		s.logger.Debug("badge alerts disabled, skipping notification",
			zap.String("user_id", userID.String()),
			zap.String("badge_id", badge.ID),
		)
		return nil
	}

	notification := &models.Notification{
		UserID: userID,
		Type:   models.NotificationTypeBadgeEarned,
		Title:  "New badge unlocked!",
		Body:   fmt.Sprintf("%s %s: %s", badge.Icon, badge.Name, badge.Description),
		Data: map[string]string{
			"badge_id":   badge.ID,
			"badge_name": badge.Name,
		},
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("create badge notification: %w", err)
	}

	s.publishAsync(ctx, events.NewBadgeEarnedEvent(userID, badge.ID, badge.Name))

	if prefs.PushEnabled {
		s.pushToDevices(ctx, userID, notification)
	}

	s.logger.Info("badge notification delivered",
		zap.String("user_id", userID.String()),
		zap.String("badge_id", badge.ID),
		zap.Bool("push_enabled", prefs.PushEnabled),
	)
	return nil
}

// pushToDevices sends the notification to every registered device
// token. Push failures only log: the feed row already exists.
func (s *notificationService) pushToDevices(ctx context.Context, userID uuid.UUID, notification *models.Notification) {
	if s.pushClient == nil {
		return
	}

	tokens, err := s.profileRepo.GetPushTokens(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load push tokens",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}
	if len(tokens) == 0 {
		s.logger.Debug("no push tokens registered",
			zap.String("user_id", userID.String()),
		)
		return
	}

	receipts, err := s.pushClient.Send(ctx, &models.PushMessage{
		To:        tokens,
		Title:     notification.Title,
		Body:      notification.Body,
		Data:      notification.Data,
		Sound:     "default",
		ChannelID: "badges",
	})
	if err != nil {
		s.logger.Warn("push delivery failed",
			zap.String("user_id", userID.String()),
			zap.Int("tokens", len(tokens)),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("push delivered",
		zap.String("user_id", userID.String()),
		zap.Int("receipts", len(receipts)),
	)
}

// ===============================
// NOTIFICATION FEED
// ===============================

// ListNotifications returns the user's feed, newest first.
func (s *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID, params models.PaginationParams) (*models.PaginatedResponse[models.Notification], error) {
	page, err := s.notificationRepo.ListByUser(ctx, userID, params)
	if err != nil {
		s.logger.Error("failed to list notifications",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, NewInternalError("failed to load notifications")
	}
	return page, nil
}

// MarkNotificationRead marks one of the user's notifications as read.
// Marking an already-read notification is a no-op, not an error.
func (s *notificationService) MarkNotificationRead(ctx context.Context, userID uuid.UUID, notificationID int64) error {
	if notificationID <= 0 {
		return NewValidationError("notification id must be positive", nil)
	}

	err := s.notificationRepo.MarkRead(ctx, userID, notificationID)
	if repositories.IsNotFound(err) {
		return NewNotFoundError("notification not found")
	}
	if err != nil {
		s.logger.Error("failed to mark notification read",
			zap.String("user_id", userID.String()),
			zap.Int64("notification_id", notificationID),
			zap.Error(err),
		)
		return NewInternalError("failed to update notification")
	}
	return nil
}

func (s *notificationService) publishAsync(ctx context.Context, event events.Event) {
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
