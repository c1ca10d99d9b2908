package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"musubime/contexts/campaign-workflow/change-request-service/adapters/memory"
	"musubime/contexts/campaign-workflow/change-request-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/change-request-service/domain/errors"
	"musubime/contexts/campaign-workflow/change-request-service/ports"
)

var (
	admin      = ports.Actor{ID: "admin", Role: ports.RoleAdmin}
	influencer = ports.Actor{ID: "INF-1", Role: ports.RoleInfluencer}
)

func newService() (Service, *memory.Store) {
	store := memory.NewStore([]ports.CampaignRecord{
		{
			Key:   ports.CampaignKey{CampaignID: "CMP-1", InfluencerID: "INF-1"},
			Dates: map[entities.Field]string{entities.FieldPlanDate: "2026-10-20"},
		},
		{
			Key: ports.CampaignKey{CampaignID: "CMP-2", InfluencerID: "INF-2"},
			Legacy: []entities.ChangeRequest{{
				ID:           "LEGACY-1",
				CampaignID:   "CMP-2",
				InfluencerID: "INF-2",
				Type:         entities.TypeLiveDateChange,
				Status:       entities.StatusPending,
				RequestedChanges: []entities.FieldChange{
					{Field: entities.FieldLiveDate, CurrentValue: "2026-11-01", NewValue: "2026-11-08"},
				},
			}},
		},
	})
	store.SetNow(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	return Service{Repo: store, Clock: store, IDs: store, Notifier: store, Location: time.UTC}, store
}

func TestCreateRecordsCurrentValue(t *testing.T) {
	service, store := newService()
	created, err := service.Create(context.Background(), CreateCommand{
		Actor:        influencer,
		CampaignID:   "CMP-1",
		InfluencerID: "INF-1",
		Type:         "plan_date_change",
		NewValue:     "2026-10-27",
		Reason:       "shoot delayed",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != entities.StatusPending || created.ID == "" {
		t.Fatalf("unexpected request %+v", created)
	}
	if got := created.RequestedChanges[0]; got.CurrentValue != "2026-10-20" || got.NewValue != "2026-10-27" {
		t.Fatalf("unexpected change %+v", got)
	}
	if store.Writes() != 1 {
		t.Fatalf("expected one write, got %d", store.Writes())
	}
	if notified := store.Notified(); len(notified) != 1 || notified[0] != NotifyCreated+":"+created.ID {
		t.Fatalf("unexpected notifications %v", notified)
	}

	_, err = service.Create(context.Background(), CreateCommand{
		Actor:        influencer,
		CampaignID:   "CMP-1",
		InfluencerID: "INF-1",
		Type:         "plan_date_change",
		NewValue:     "2026-10-29",
	})
	if !errors.Is(err, domainerrors.ErrPendingRequestExists) {
		t.Fatalf("expected ErrPendingRequestExists, got %v", err)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	service, store := newService()
	cases := []struct {
		name string
		cmd  CreateCommand
		want error
	}{
		{"other influencer", CreateCommand{Actor: influencer, CampaignID: "CMP-2", InfluencerID: "INF-2", Type: "plan_date_change", NewValue: "2026-10-27"}, domainerrors.ErrForbidden},
		{"bad type", CreateCommand{Actor: influencer, CampaignID: "CMP-1", InfluencerID: "INF-1", Type: "budget_change", NewValue: "2026-10-27"}, domainerrors.ErrInvalidRequestType},
		{"bad date", CreateCommand{Actor: influencer, CampaignID: "CMP-1", InfluencerID: "INF-1", Type: "plan_date_change", NewValue: "next week"}, domainerrors.ErrInvalidRequest},
		{"missing key", CreateCommand{Actor: influencer, Type: "plan_date_change", NewValue: "2026-10-27"}, domainerrors.ErrInvalidRequest},
	}
	for _, tc := range cases {
		if _, err := service.Create(context.Background(), tc.cmd); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if store.Writes() != 0 {
		t.Fatalf("expected no writes, got %d", store.Writes())
	}
}

func TestResolveApprovalWritesDate(t *testing.T) {
	service, store := newService()
	created, err := service.Create(context.Background(), CreateCommand{
		Actor: influencer, CampaignID: "CMP-1", InfluencerID: "INF-1", Type: "plan_date_change", NewValue: "2026-10-27",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	resolved, err := service.Resolve(context.Background(), ResolveCommand{
		Actor: admin, RequestID: created.ID, Decision: "approve", AdminResponse: "fine",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Status != entities.StatusApproved || resolved.ResolvedAt == nil {
		t.Fatalf("unexpected resolution %+v", resolved)
	}
	record, err := store.GetRecord(context.Background(), ports.CampaignKey{CampaignID: "CMP-1", InfluencerID: "INF-1"}, true)
	if err != nil {
		t.Fatalf("get record failed: %v", err)
	}
	if record.Dates[entities.FieldPlanDate] != "2026-10-27" {
		t.Fatalf("expected approved date to be written, got %q", record.Dates[entities.FieldPlanDate])
	}

	_, err = service.Resolve(context.Background(), ResolveCommand{Actor: admin, RequestID: created.ID, Decision: "reject"})
	if !errors.Is(err, domainerrors.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestResolveLegacyRequestImportsIt(t *testing.T) {
	service, store := newService()
	resolved, err := service.Resolve(context.Background(), ResolveCommand{
		Actor: admin, RequestID: "LEGACY-1", CampaignID: "CMP-2", InfluencerID: "INF-2", Decision: "reject",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Status != entities.StatusRejected {
		t.Fatalf("expected rejected, got %s", resolved.Status)
	}
	record, _ := store.GetRecord(context.Background(), ports.CampaignKey{CampaignID: "CMP-2", InfluencerID: "INF-2"}, true)
	if len(record.Events) != 2 || record.Events[0].Type != entities.EventCreated {
		t.Fatalf("expected import and resolution events, got %+v", record.Events)
	}
	if record.Dates[entities.FieldLiveDate] != "" {
		t.Fatalf("rejection must not write dates")
	}
}

func TestResolveRequiresAdmin(t *testing.T) {
	service, _ := newService()
	_, err := service.Resolve(context.Background(), ResolveCommand{Actor: influencer, RequestID: "LEGACY-1", Decision: "approve"})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	_, err = service.Resolve(context.Background(), ResolveCommand{Actor: admin, RequestID: "LEGACY-1", Decision: "maybe"})
	if !errors.Is(err, domainerrors.ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
	_, err = service.Resolve(context.Background(), ResolveCommand{Actor: admin, RequestID: "missing", Decision: "approve"})
	if !errors.Is(err, domainerrors.ErrChangeRequestNotFound) {
		t.Fatalf("expected ErrChangeRequestNotFound, got %v", err)
	}
}

func TestListScopesInfluencers(t *testing.T) {
	service, _ := newService()
	items, err := service.List(context.Background(), admin, ports.Filter{Status: entities.StatusPending})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "LEGACY-1" {
		t.Fatalf("unexpected admin list %+v", items)
	}

	items, err = service.List(context.Background(), influencer, ports.Filter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected influencer to see only own requests, got %+v", items)
	}
	if _, err := service.List(context.Background(), influencer, ports.Filter{InfluencerID: "INF-2"}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApproveLegacyRequestWritesColumnForType(t *testing.T) {
	store := memory.NewStore([]ports.CampaignRecord{{
		Key:   ports.CampaignKey{CampaignID: "CMP-3", InfluencerID: "INF-3"},
		Dates: map[entities.Field]string{entities.FieldDraftDate: "2026-11-01"},
		Legacy: []entities.ChangeRequest{{
			ID:           "LEGACY-2",
			CampaignID:   "CMP-3",
			InfluencerID: "INF-3",
			Type:         entities.TypeDraftDateChange,
			Status:       entities.StatusPending,
			RequestedChanges: []entities.FieldChange{
				{Field: entities.Field("draftDate"), CurrentValue: "2026-11-01", NewValue: "2026-11-05"},
			},
		}},
	}})
	service := Service{Repo: store, Clock: store, IDs: store, Notifier: store, Location: time.UTC}

	resolved, err := service.Resolve(context.Background(), ResolveCommand{
		Actor:     admin,
		RequestID: "LEGACY-2",
		Decision:  "approve",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Status != entities.StatusApproved {
		t.Fatalf("expected approved, got %s", resolved.Status)
	}

	record, err := store.GetRecord(context.Background(), ports.CampaignKey{CampaignID: "CMP-3", InfluencerID: "INF-3"}, true)
	if err != nil {
		t.Fatalf("get record failed: %v", err)
	}
	if got := record.Dates[entities.FieldDraftDate]; got != "2026-11-05" {
		t.Fatalf("expected draft_date 2026-11-05, got %q (dates %v)", got, record.Dates)
	}
	if _, leaked := record.Dates[entities.Field("draftDate")]; leaked {
		t.Fatalf("legacy field name must not be written, dates %v", record.Dates)
	}
}
