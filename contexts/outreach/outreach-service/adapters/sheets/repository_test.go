package sheetsadapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"musubime/contexts/outreach/outreach-service/domain/entities"
	domainerrors "musubime/contexts/outreach/outreach-service/domain/errors"
	"musubime/internal/platform/cache"
	"musubime/internal/platform/rowstore"
	"musubime/internal/shared/sheetschema"
)

func newRepository(access rowstore.Access) (*Repository, *rowstore.MemoryClient) {
	client := rowstore.NewMemoryClient("sheet-test", access, sheetschema.SampleTables())
	store := rowstore.New(client, rowstore.Options{
		Cache:   cache.NewTTL[[][]string](time.Minute),
		Schemas: sheetschema.All(),
	})
	return NewRepository(store, nil), client
}

func TestListCandidatesAndTemplates(t *testing.T) {
	repo, _ := newRepository(rowstore.AccessReadWrite)
	candidates, err := repo.ListCandidates(context.Background(), false)
	if err != nil {
		t.Fatalf("list candidates failed: %v", err)
	}
	if len(candidates) != 2 || candidates[0].InfluencerID != "INF-101" || candidates[0].Field("name_display") != "haruto.tv" {
		t.Fatalf("unexpected candidates %+v", candidates)
	}

	templates, err := repo.ListTemplates(context.Background(), false)
	if err != nil {
		t.Fatalf("list templates failed: %v", err)
	}
	if len(templates) != 2 || len(templates[0].Conditions) != 2 || len(templates[1].Conditions) != 0 {
		t.Fatalf("unexpected templates %+v", templates)
	}
	if !templates[0].Matches(candidates[0]) || templates[0].Matches(candidates[1]) {
		t.Fatalf("unexpected condition evaluation")
	}
}

func TestMarkContactedWritesStatusAndDate(t *testing.T) {
	repo, client := newRepository(rowstore.AccessReadWrite)
	if err := repo.MarkContacted(context.Background(), "INF-101", entities.StatusContacted, "2026-10-19"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if client.Cell(sheetschema.SelectedSheet, 1, 7) != "contacted" || client.Cell(sheetschema.SelectedSheet, 1, 8) != "2026-10-19" {
		t.Fatalf("unexpected row %v", client.Table(sheetschema.SelectedSheet)[1])
	}
	if client.WriteCalls() != 1 {
		t.Fatalf("expected one batched write, got %d", client.WriteCalls())
	}
}

func TestSaveTemplateUpdatesOrAppends(t *testing.T) {
	repo, client := newRepository(rowstore.AccessReadWrite)
	created, err := repo.SaveTemplate(context.Background(), entities.Template{
		ID: "TPL-002", Name: "Generic v2", Subject: "s", Body: "b",
	})
	if err != nil || created {
		t.Fatalf("expected update, got created=%v err=%v", created, err)
	}
	if client.Cell(sheetschema.TemplatesSheet, 2, 1) != "Generic v2" || client.Cell(sheetschema.TemplatesSheet, 2, 2) != "[]" {
		t.Fatalf("unexpected template row %v", client.Table(sheetschema.TemplatesSheet)[2])
	}

	created, err = repo.SaveTemplate(context.Background(), entities.Template{
		ID: "TPL-003", Name: "New", Subject: "s", Body: "b",
		Conditions: []entities.Condition{{Field: "platform", Operator: entities.OperatorEquals, Value: "ig"}},
	})
	if err != nil || !created {
		t.Fatalf("expected append, got created=%v err=%v", created, err)
	}
	templates, err := repo.ListTemplates(context.Background(), false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(templates) != 3 || templates[2].ID != "TPL-003" || templates[2].Conditions[0].Value != "ig" {
		t.Fatalf("unexpected templates after append %+v", templates)
	}
}

func TestSaveTemplateReadOnly(t *testing.T) {
	repo, client := newRepository(rowstore.AccessReadOnly)
	_, err := repo.SaveTemplate(context.Background(), entities.Template{ID: "TPL-001", Name: "x", Subject: "s", Body: "b"})
	if !errors.Is(err, domainerrors.ErrWriteNotPermitted) {
		t.Fatalf("expected ErrWriteNotPermitted, got %v", err)
	}
	if client.WriteCalls() != 0 {
		t.Fatalf("expected no write calls, got %d", client.WriteCalls())
	}
}
