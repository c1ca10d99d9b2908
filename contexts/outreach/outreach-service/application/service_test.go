package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"musubime/contexts/outreach/outreach-service/adapters/memory"
	"musubime/contexts/outreach/outreach-service/domain/entities"
	domainerrors "musubime/contexts/outreach/outreach-service/domain/errors"
	"musubime/contexts/outreach/outreach-service/ports"
)

var admin = ports.Actor{ID: "admin", Role: ports.RoleAdmin}

func newService() (Service, *memory.Store) {
	store := memory.NewStore(
		[]entities.Candidate{
			{InfluencerID: "INF-101", Email: "haruto@example.com", Fields: map[string]string{"name_influencer": "Haruto", "platform": "tt"}},
			{InfluencerID: "INF-102", Email: "yui@example.com", Fields: map[string]string{"name_influencer": "Yui", "platform": "ig", "status": "contacted"}},
			{InfluencerID: "INF-103", Fields: map[string]string{"name_influencer": "No Mail", "platform": "tt"}},
			{InfluencerID: "INF-104", Email: "kai@example.com", Fields: map[string]string{"name_influencer": "Kai", "platform": "tt"}},
		},
		[]entities.Template{
			{
				ID:   "TPL-001",
				Name: "TikTok",
				Conditions: []entities.Condition{
					{Field: "platform", Operator: entities.OperatorEquals, Value: "tt"},
					{Field: "status", Operator: entities.OperatorEmpty},
				},
				Subject: "Hello {{name_influencer}}",
				Body:    "Body for {{name_influencer}}",
			},
		},
	)
	store.SetNow(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))
	return Service{Candidates: store, Templates: store, Mailer: store, Clock: store, IDs: store, Location: time.UTC}, store
}

func TestSendReportsAggregateCounts(t *testing.T) {
	service, store := newService()
	store.FailEnqueue("INF-104", errors.New("outbox down"))

	result, err := service.Send(context.Background(), SendCommand{
		Actor:         admin,
		TemplateID:    "TPL-001",
		InfluencerIDs: []string{"INF-101", "INF-102", "INF-103", "INF-104", "INF-999", "INF-101"},
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if result.Total != 5 || result.Sent != 1 || result.Skipped != 1 || result.Failed != 3 {
		t.Fatalf("unexpected counts %+v", result)
	}
	outbox := store.Outbox()
	if len(outbox) != 1 || outbox[0].Subject != "Hello Haruto" || outbox[0].To != "haruto@example.com" {
		t.Fatalf("unexpected outbox %+v", outbox)
	}

	candidates, _ := store.ListCandidates(context.Background(), false)
	if candidates[0].Field("status") != entities.StatusContacted || candidates[0].Field("date_outreach") != "2026-10-19" {
		t.Fatalf("expected candidate to be marked, got %+v", candidates[0].Fields)
	}
	if candidates[3].Field("status") != "" {
		t.Fatalf("failed enqueue must not mark the row")
	}
}

func TestSendIgnoringConditions(t *testing.T) {
	service, store := newService()
	result, err := service.Send(context.Background(), SendCommand{
		Actor:            admin,
		TemplateID:       "TPL-001",
		InfluencerIDs:    []string{"INF-102"},
		IgnoreConditions: true,
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if result.Sent != 1 || len(store.Outbox()) != 1 {
		t.Fatalf("expected forced send, got %+v", result)
	}
}

func TestSendValidation(t *testing.T) {
	service, _ := newService()
	if _, err := service.Send(context.Background(), SendCommand{Actor: ports.Actor{ID: "INF-101", Role: "influencer"}, TemplateID: "TPL-001", InfluencerIDs: []string{"INF-101"}}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := service.Send(context.Background(), SendCommand{Actor: admin, TemplateID: "TPL-001"}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := service.Send(context.Background(), SendCommand{Actor: admin, TemplateID: "TPL-404", InfluencerIDs: []string{"INF-101"}}); !errors.Is(err, domainerrors.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestListCandidatesAnnotatesTemplates(t *testing.T) {
	service, _ := newService()
	views, err := service.ListCandidates(context.Background(), admin, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views[0].MatchingTemplates) != 1 || len(views[1].MatchingTemplates) != 0 {
		t.Fatalf("unexpected matches %+v", views)
	}
}

func TestPreviewMergesCandidateAndFields(t *testing.T) {
	service, _ := newService()
	rendered, err := service.Preview(context.Background(), PreviewCommand{
		Actor:        admin,
		TemplateID:   "TPL-001",
		InfluencerID: "INF-102",
	})
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if rendered.Subject != "Hello Yui" {
		t.Fatalf("unexpected subject %q", rendered.Subject)
	}

	rendered, err = service.Preview(context.Background(), PreviewCommand{
		Actor:    admin,
		Template: &entities.Template{Subject: "Hi {{name}}", Body: "{{name}}!"},
		Fields:   map[string]string{"name": "Aoi"},
	})
	if err != nil {
		t.Fatalf("inline preview failed: %v", err)
	}
	if rendered.Body != "Aoi!" {
		t.Fatalf("unexpected body %q", rendered.Body)
	}
}

func TestSaveTemplate(t *testing.T) {
	service, store := newService()
	saved, created, err := service.SaveTemplate(context.Background(), admin, entities.Template{
		Name:    "Follow up",
		Subject: "Checking in",
		Body:    "Hi again {{name_influencer}}",
	})
	if err != nil || !created || saved.ID == "" {
		t.Fatalf("expected new template, got %+v created=%v err=%v", saved, created, err)
	}

	saved.Subject = "Checking in again"
	if _, created, err := service.SaveTemplate(context.Background(), admin, saved); err != nil || created {
		t.Fatalf("expected update, got created=%v err=%v", created, err)
	}
	templates, _ := store.ListTemplates(context.Background(), false)
	if len(templates) != 2 || templates[1].Subject != "Checking in again" {
		t.Fatalf("unexpected templates %+v", templates)
	}

	_, _, err = service.SaveTemplate(context.Background(), admin, entities.Template{
		Name: "Bad", Subject: "s", Body: "b",
		Conditions: []entities.Condition{{Field: "platform", Operator: "like"}},
	})
	if !errors.Is(err, domainerrors.ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
}
