package workers

import (
	"context"
	"testing"
	"time"

	"musubime/contexts/campaign-workflow/campaign-service/adapters/memory"
	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
)

func date(y int, m time.Month, d int) *time.Time {
	value := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &value
}

func TestReminderSweepSendsOncePerDueDate(t *testing.T) {
	store := memory.NewStore([]entities.Campaign{
		{CampaignID: "CMP-1", InfluencerID: "INF-1", ContactEmail: "a@example.com", Status: entities.StatusPlanCreating, Schedules: entities.Schedules{Plan: date(2026, 10, 21)}},
		{CampaignID: "CMP-2", InfluencerID: "INF-2", Status: entities.StatusDraftRevising, Schedules: entities.Schedules{Draft: date(2026, 11, 30)}},
		{CampaignID: "CMP-3", InfluencerID: "INF-3", Status: entities.StatusPlanSubmitted, Schedules: entities.Schedules{Plan: date(2026, 10, 20)}},
		{CampaignID: "CMP-4", InfluencerID: "INF-4", Status: entities.StatusScheduled, Schedules: entities.Schedules{Live: date(2026, 10, 19)}},
		{CampaignID: "CMP-5", InfluencerID: "INF-5", Status: entities.StatusDraftCreating, Schedules: entities.Schedules{Draft: date(2026, 10, 1)}},
	})
	store.SetNow(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))

	sweep := ReminderSweep{Campaigns: store, Dispatcher: store, Clock: store, LeadDays: 2}
	result, err := sweep.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if result.Scanned != 5 || result.Sent != 2 {
		t.Fatalf("expected 2 reminders out of 5, got %+v", result)
	}
	if got := len(store.Dispatched()); got != 3 {
		t.Fatalf("expected 3 effects (2 webhooks, 1 email), got %d", got)
	}

	again, err := sweep.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if again.Sent != 0 {
		t.Fatalf("expected reminders to be deduplicated, got %+v", again)
	}
}

func TestWithinLead(t *testing.T) {
	now := time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC)
	if !withinLead(now, *date(2026, 10, 21), 2) {
		t.Fatalf("expected day+2 to be within lead")
	}
	if withinLead(now, *date(2026, 10, 22), 2) {
		t.Fatalf("expected day+3 to be outside lead")
	}
	if withinLead(now, *date(2026, 10, 18), 2) {
		t.Fatalf("expected past dates to be skipped")
	}
}
