package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"musubime/contexts/notifications/notification-service/adapters/memory"
	"musubime/contexts/notifications/notification-service/domain/entities"
	domainerrors "musubime/contexts/notifications/notification-service/domain/errors"
	"musubime/contexts/notifications/notification-service/ports"
)

func TestEnqueueRejectsInvalidNotification(t *testing.T) {
	store := memory.NewStore()
	service := Service{Outbox: store, Clock: store, IDs: store}
	_, err := service.Enqueue(context.Background(), entities.Notification{Channel: entities.ChannelEmail, Email: &entities.Email{}})
	if !errors.Is(err, domainerrors.ErrInvalidNotification) {
		t.Fatalf("expected ErrInvalidNotification, got %v", err)
	}
}

func TestEnqueueAssignsIDAndSchedule(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store.SetNow(now)
	service := Service{Outbox: store, Clock: store, IDs: store}

	got, err := service.Enqueue(context.Background(), entities.Notification{
		Channel:  entities.ChannelWebhook,
		Webhook:  &entities.Webhook{Event: "reminder_due"},
		Status:   entities.StatusFailed,
		Attempts: 3,
	})
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if got.ID == "" || got.EventID != got.ID {
		t.Fatalf("expected generated id, got %+v", got)
	}
	if got.Status != entities.StatusPending || got.Attempts != 0 || !got.NextAttemptAt.Equal(now) {
		t.Fatalf("expected fresh pending row, got %+v", got)
	}
}

func TestListRequiresAdmin(t *testing.T) {
	store := memory.NewStore()
	service := Service{Outbox: store}
	_, err := service.List(context.Background(), ports.Actor{ID: "INF-001", Role: "influencer"}, ports.Filter{})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
