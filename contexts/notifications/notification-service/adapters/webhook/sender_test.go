package webhookadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"musubime/contexts/notifications/notification-service/domain/entities"
)

func TestSendWebhookPostsJSON(t *testing.T) {
	var got requestBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sender := NewSender(server.URL, time.Second)
	delivered, err := sender.SendWebhook(context.Background(), entities.Webhook{
		Event:       "status_changed",
		CampaignID:  "CMP-001",
		SenderName:  "Musubime",
		SenderEmail: "team@musubime.jp",
		Fields:      map[string]string{"status": "plan_submitted"},
	})
	if err != nil || !delivered {
		t.Fatalf("expected delivery, got delivered=%v err=%v", delivered, err)
	}
	if got.Event != "status_changed" || got.Sender.Email != "team@musubime.jp" || got.Data["status"] != "plan_submitted" {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestSendWebhookErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	delivered, err := NewSender(server.URL, time.Second).SendWebhook(context.Background(), entities.Webhook{Event: "x"})
	if err == nil || delivered {
		t.Fatalf("expected failure, got delivered=%v err=%v", delivered, err)
	}
}

func TestSendWebhookWithoutURL(t *testing.T) {
	delivered, err := NewSender("", 0).SendWebhook(context.Background(), entities.Webhook{Event: "x"})
	if err != nil || delivered {
		t.Fatalf("expected unconfigured sender to skip, got delivered=%v err=%v", delivered, err)
	}
}
