package outboxrow

import (
	"testing"
	"time"

	"musubime/contexts/notifications/notification-service/domain/entities"
	"musubime/internal/shared/outbox"

	"github.com/google/go-cmp/cmp"
)

func TestMessageCarriesWebhookContext(t *testing.T) {
	created := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	in := entities.Notification{
		ID:            "n-1",
		EventID:       "e-1",
		Source:        "campaign-service",
		Channel:       entities.ChannelWebhook,
		Webhook:       &entities.Webhook{Event: "reminder_due", CampaignID: "CMP-001", Fields: map[string]string{"kind": "plan"}},
		Status:        entities.StatusPending,
		NextAttemptAt: created,
		CreatedAt:     created,
	}
	message, err := ToMessage(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if message.EventType != "reminder_due" || message.CampaignID != "CMP-001" || message.Status != outbox.StatusPending {
		t.Fatalf("unexpected message %+v", message)
	}
	out, err := FromMessage(message)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("notification changed through the outbox (-want +got):\n%s", diff)
	}
}

func TestFromMessageUnknownChannel(t *testing.T) {
	if _, err := FromMessage(outbox.Message{ID: "n-1", Channel: "sms"}); err == nil {
		t.Fatalf("expected unknown channel to fail")
	}
}
