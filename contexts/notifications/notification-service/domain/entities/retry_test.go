package entities

import (
	"testing"
	"time"
)

func TestRetryPolicyNext(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 4, BaseDelay: time.Minute, MaxDelay: 3 * time.Minute}
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	want := []time.Duration{time.Minute, 2 * time.Minute, 3 * time.Minute}
	for i, delay := range want {
		next, exhausted := policy.Next(i+1, now)
		if exhausted || !next.Equal(now.Add(delay)) {
			t.Fatalf("attempt %d: got %s exhausted=%v", i+1, next.Sub(now), exhausted)
		}
	}
	if _, exhausted := policy.Next(4, now); !exhausted {
		t.Fatalf("expected policy to be exhausted after max attempts")
	}
}

func TestNotificationValid(t *testing.T) {
	if (Notification{Channel: ChannelWebhook}).Valid() {
		t.Fatalf("webhook without payload must be invalid")
	}
	if !(Notification{Channel: ChannelEmail, Email: &Email{To: "a@example.com"}}).Valid() {
		t.Fatalf("expected email with recipient to be valid")
	}
	if (Notification{Channel: "sms", Webhook: &Webhook{Event: "x"}}).Valid() {
		t.Fatalf("unknown channel must be invalid")
	}
}
