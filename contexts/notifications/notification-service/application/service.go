package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"musubime/contexts/notifications/notification-service/domain/entities"
	domainerrors "musubime/contexts/notifications/notification-service/domain/errors"
	"musubime/contexts/notifications/notification-service/ports"
)

const moduleName = "notifications/notification-service"

type Service struct {
	Outbox ports.OutboxRepository
	Clock  ports.Clock
	IDs    ports.IDGenerator
	Logger *slog.Logger
}

// Enqueue stores a pending notification for the relay. Re-enqueueing the same
// id is a no-op.
func (s Service) Enqueue(ctx context.Context, notification entities.Notification) (entities.Notification, error) {
	if !notification.Valid() {
		return entities.Notification{}, fmt.Errorf("%w: channel %q", domainerrors.ErrInvalidNotification, notification.Channel)
	}
	notification.ID = strings.TrimSpace(notification.ID)
	if notification.ID == "" {
		id, err := s.IDs.NewID(ctx)
		if err != nil {
			return entities.Notification{}, err
		}
		notification.ID = id
	}
	if notification.EventID == "" {
		notification.EventID = notification.ID
	}
	now := s.now()
	notification.Status = entities.StatusPending
	notification.Attempts = 0
	notification.LastError = ""
	notification.NextAttemptAt = now
	notification.DeliveredAt = nil
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = now
	}

	if err := s.Outbox.Append(ctx, notification); err != nil {
		return entities.Notification{}, err
	}
	ResolveLogger(s.Logger).Info("notification enqueued",
		"event", "notification_enqueued",
		"module", moduleName,
		"layer", "application",
		"notification_id", notification.ID,
		"channel", string(notification.Channel),
		"notification_event", notification.Event(),
		"source", notification.Source,
	)
	return notification, nil
}

func (s Service) List(ctx context.Context, actor ports.Actor, filter ports.Filter) ([]entities.Notification, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	filter.CampaignID = strings.TrimSpace(filter.CampaignID)
	return s.Outbox.List(ctx, filter)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
