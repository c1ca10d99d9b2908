package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"musubime/contexts/notifications/notification-service/adapters/memory"
	application "musubime/contexts/notifications/notification-service/application"
	"musubime/contexts/notifications/notification-service/domain/entities"
	"musubime/contexts/notifications/notification-service/ports"
)

var admin = ports.Actor{ID: "admin", Role: ports.RoleAdmin}

func setup(t *testing.T) (*memory.Store, application.Service, OutboxRelay) {
	t.Helper()
	store := memory.NewStore()
	store.SetNow(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	service := application.Service{Outbox: store, Clock: store, IDs: store}
	relay := OutboxRelay{
		Outbox:   store,
		Webhooks: store,
		Mailer:   store,
		Clock:    store,
		Policy:   entities.RetryPolicy{MaxAttempts: 2, BaseDelay: time.Minute, MaxDelay: time.Hour},
	}
	return store, service, relay
}

func enqueueWebhook(t *testing.T, service application.Service, id string) {
	t.Helper()
	_, err := service.Enqueue(context.Background(), entities.Notification{
		ID:      id,
		Channel: entities.ChannelWebhook,
		Webhook: &entities.Webhook{Event: "status_changed", CampaignID: "CMP-001"},
	})
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
}

func TestRelayDeliversPendingOnce(t *testing.T) {
	store, service, relay := setup(t)
	enqueueWebhook(t, service, "n-1")
	enqueueWebhook(t, service, "n-1")
	if _, err := service.Enqueue(context.Background(), entities.Notification{
		ID:      "n-2",
		Channel: entities.ChannelEmail,
		Email:   &entities.Email{Event: "outreach_sent", To: "a@example.com", Subject: "Hi", Body: "Body"},
	}); err != nil {
		t.Fatalf("enqueue email failed: %v", err)
	}

	result, err := relay.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if result.Picked != 2 || result.Delivered != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(store.Sent()) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(store.Sent()))
	}

	again, err := relay.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second relay failed: %v", err)
	}
	if again.Picked != 0 {
		t.Fatalf("expected nothing left to deliver, got %+v", again)
	}

	delivered, err := service.List(context.Background(), admin, ports.Filter{Status: entities.StatusDelivered})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(delivered) != 2 || delivered[0].DeliveredAt == nil || delivered[0].Attempts != 1 {
		t.Fatalf("unexpected delivered rows %+v", delivered)
	}
}

func TestRelayRetriesWithBackoffThenFails(t *testing.T) {
	store, service, relay := setup(t)
	enqueueWebhook(t, service, "n-1")
	store.FailDeliveries(errors.New("endpoint down"))

	first, err := relay.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if first.Retried != 1 {
		t.Fatalf("expected a retry, got %+v", first)
	}
	if early, _ := relay.RunOnce(context.Background()); early.Picked != 0 {
		t.Fatalf("expected retry to wait for backoff, got %+v", early)
	}

	store.SetNow(time.Date(2026, 10, 19, 9, 1, 0, 0, time.UTC))
	second, err := relay.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if second.Failed != 1 {
		t.Fatalf("expected the row to be exhausted, got %+v", second)
	}

	failed, err := service.List(context.Background(), admin, ports.Filter{Status: entities.StatusFailed})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(failed) != 1 || failed[0].Attempts != 2 || failed[0].LastError != "endpoint down" {
		t.Fatalf("unexpected failed rows %+v", failed)
	}
}

func TestRelayMarksUnconfiguredChannelSkipped(t *testing.T) {
	store, service, relay := setup(t)
	enqueueWebhook(t, service, "n-1")
	store.DisableDelivery(true)

	result, err := relay.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if result.Skipped != 1 || result.Delivered != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	skipped, _ := service.List(context.Background(), admin, ports.Filter{Status: entities.StatusSkipped})
	if len(skipped) != 1 {
		t.Fatalf("expected skipped row, got %+v", skipped)
	}
}
