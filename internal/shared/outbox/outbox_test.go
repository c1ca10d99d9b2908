package outbox

import (
	"testing"
	"time"
)

func TestMessageDue(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	if !(Message{Status: StatusPending, NextAttemptAt: now}).Due(now) {
		t.Fatalf("expected message at now to be due")
	}
	if (Message{Status: StatusPending, NextAttemptAt: now.Add(time.Second)}).Due(now) {
		t.Fatalf("expected future message to wait")
	}
	if (Message{Status: StatusDelivered}).Due(now) {
		t.Fatalf("expected delivered message to be ignored")
	}
}
