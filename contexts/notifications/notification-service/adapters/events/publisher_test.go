package eventsadapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"musubime/contexts/notifications/notification-service/adapters/memory"
	application "musubime/contexts/notifications/notification-service/application"
	"musubime/contexts/notifications/notification-service/domain/entities"
	domainerrors "musubime/contexts/notifications/notification-service/domain/errors"
	"musubime/contexts/notifications/notification-service/ports"
	"musubime/internal/shared/events"
)

func TestPublishStoresEnvelopeOnce(t *testing.T) {
	store := memory.NewStore()
	publisher := Publisher{Service: application.Service{Outbox: store, Clock: store, IDs: store}}

	envelope, err := events.New(events.TypeEmailRequested, "outreach-service", "influencer", "INF-001", events.EmailPayload{
		Event:   "outreach_sent",
		Sender:  events.Sender{Name: "Musubime", Email: "team@musubime.jp"},
		To:      "creator@example.com",
		Subject: "Hello",
		Body:    "Body",
	}, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := publisher.Publish(context.Background(), envelope); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
	}

	rows, err := store.List(context.Background(), ports.Filter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one stored notification, got %d", len(rows))
	}
	row := rows[0]
	if row.ID != envelope.EventID || row.Channel != entities.ChannelEmail || row.Source != "outreach-service" {
		t.Fatalf("unexpected row %+v", row)
	}
	if row.Email.FromEmail != "team@musubime.jp" || row.Email.To != "creator@example.com" {
		t.Fatalf("unexpected email payload %+v", row.Email)
	}
}

func TestPublishRejectsUnknownEventType(t *testing.T) {
	store := memory.NewStore()
	publisher := Publisher{Service: application.Service{Outbox: store, Clock: store, IDs: store}}
	err := publisher.Publish(context.Background(), events.Envelope{EventID: "x", EventType: "campaign.created"})
	if !errors.Is(err, domainerrors.ErrInvalidNotification) {
		t.Fatalf("expected ErrInvalidNotification, got %v", err)
	}
}
