package rowstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"musubime/internal/platform/cache"

	"github.com/google/go-cmp/cmp"
)

func campaignTable() [][]string {
	return [][]string{
		{"id_campaign", "id_influencer", "status_dashboard", "message_dashboard", "url_plan"},
		{"reserved", "", "", "", ""},
		{"reserved", "", "", "", ""},
		{"reserved", "", "", "", ""},
		{"C-1", "INF-1", "plan_creating", "", ""},
		{"C-2", "INF-2", "draft_creating", "not json", ""},
		{"C-1", "INF-3", "scheduling"},
	}
}

func newTestStore(access Access) (*Store, *MemoryClient) {
	client := NewMemoryClient("sid", access, map[string][][]string{
		"campaigns": campaignTable(),
		"selected": {
			{"id_influencer", "contact_email"},
			{"INF-9", "a@example.com"},
		},
	})
	store := New(client, Options{
		Cache: cache.NewTTL[[][]string](30 * time.Second),
		Schemas: []Schema{
			{Sheet: "campaigns", DataStartRow: 4},
			{Sheet: "selected", DataStartRow: 1},
		},
	})
	return store, client
}

func TestFetchColumnsSkipsReservedRowsAndProjects(t *testing.T) {
	store, _ := newTestStore(AccessReadOnly)

	rows, err := store.FetchColumns(context.Background(), Query{
		Sheet:   "campaigns",
		Columns: []string{"id_campaign", "status_dashboard", "missing_column"},
	})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	want := []Row{
		{"id_campaign": "C-1", "status_dashboard": "plan_creating", "missing_column": ""},
		{"id_campaign": "C-2", "status_dashboard": "draft_creating", "missing_column": ""},
		{"id_campaign": "C-1", "status_dashboard": "scheduling", "missing_column": ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchColumnsSelectedSheetStartsAtRowOne(t *testing.T) {
	store, _ := newTestStore(AccessReadOnly)
	rows, err := store.FetchColumns(context.Background(), Query{Sheet: "selected"})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Get("id_influencer") != "INF-9" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestFetchColumnsFiltersByInfluencer(t *testing.T) {
	store, _ := newTestStore(AccessReadOnly)
	rows, err := store.FetchColumns(context.Background(), Query{
		Sheet:        "campaigns",
		Columns:      []string{"id_campaign"},
		InfluencerID: "INF-3",
	})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Get("id_campaign") != "C-1" {
		t.Fatalf("expected single row for INF-3, got %+v", rows)
	}
}

func TestFetchColumnsUsesCacheUntilForced(t *testing.T) {
	store, client := newTestStore(AccessReadOnly)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.FetchColumns(ctx, Query{Sheet: "campaigns"}); err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
	}
	if client.ReadCalls() != 1 {
		t.Fatalf("expected 1 network read, got %d", client.ReadCalls())
	}
	if _, err := store.FetchColumns(ctx, Query{Sheet: "campaigns", ForceRefresh: true}); err != nil {
		t.Fatalf("forced fetch failed: %v", err)
	}
	if client.ReadCalls() != 2 {
		t.Fatalf("expected forced refresh to bypass cache, got %d reads", client.ReadCalls())
	}
}

func TestWriteRejectedWithReadOnlyCredentials(t *testing.T) {
	store, client := newTestStore(AccessReadOnly)
	err := store.WriteCells(context.Background(), "campaigns",
		KeyOf("id_campaign", "C-1").And("id_influencer", "INF-1"),
		CellWrite{Column: "status_dashboard", Value: "plan_submitted"},
	)
	if !errors.Is(err, ErrWriteNotPermitted) {
		t.Fatalf("expected ErrWriteNotPermitted, got %v", err)
	}
	if client.WriteCalls() != 0 || client.ReadCalls() != 0 {
		t.Fatalf("expected zero network calls, reads=%d writes=%d", client.ReadCalls(), client.WriteCalls())
	}
}

func TestWriteCellsLocatesCompositeKey(t *testing.T) {
	store, client := newTestStore(AccessReadWrite)
	err := store.WriteCells(context.Background(), "campaigns",
		KeyOf("id_campaign", "C-1").And("id_influencer", "INF-3"),
		CellWrite{Column: "status_dashboard", Value: "scheduled"},
		CellWrite{Column: "url_plan", Value: "https://example.com/plan"},
	)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := client.Cell("campaigns", 6, 2); got != "scheduled" {
		t.Fatalf("expected status on row 6, got %q", got)
	}
	if got := client.Cell("campaigns", 4, 2); got != "plan_creating" {
		t.Fatalf("row for INF-1 must be untouched, got %q", got)
	}
	if got := client.Cell("campaigns", 6, 4); got != "https://example.com/plan" {
		t.Fatalf("expected url written past ragged row end, got %q", got)
	}
	if client.WriteCalls() != 1 {
		t.Fatalf("expected one batched write, got %d", client.WriteCalls())
	}
}

func TestWriteCellsErrors(t *testing.T) {
	store, _ := newTestStore(AccessReadWrite)
	ctx := context.Background()

	err := store.WriteCells(ctx, "campaigns", KeyOf("id_nope", "C-1"), CellWrite{Column: "status_dashboard", Value: "x"})
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}

	err = store.WriteCells(ctx, "campaigns", KeyOf("id_campaign", "C-404"), CellWrite{Column: "status_dashboard", Value: "x"})
	if !errors.Is(err, ErrRowNotFound) || !strings.Contains(err.Error(), "C-404") {
		t.Fatalf("expected ErrRowNotFound naming id, got %v", err)
	}

	err = store.WriteCells(ctx, "campaigns", KeyOf("id_campaign", "C-1"), CellWrite{Column: "unknown", Value: "x"})
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound for target column, got %v", err)
	}
}

func TestWriteSurfacesBatchFailure(t *testing.T) {
	store, client := newTestStore(AccessReadWrite)
	client.FailWrites = errors.New("quota exceeded")
	err := store.WriteCells(context.Background(), "campaigns", KeyOf("id_campaign", "C-2"), CellWrite{Column: "status_dashboard", Value: "x"})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected verbatim batch error, got %v", err)
	}
}

func TestWriteInvalidatesSheetCache(t *testing.T) {
	store, client := newTestStore(AccessReadWrite)
	ctx := context.Background()

	if _, err := store.FetchColumns(ctx, Query{Sheet: "selected"}); err != nil {
		t.Fatalf("fetch selected failed: %v", err)
	}
	if _, err := store.FetchColumns(ctx, Query{Sheet: "campaigns"}); err != nil {
		t.Fatalf("fetch campaigns failed: %v", err)
	}
	reads := client.ReadCalls()

	if err := store.WriteCells(ctx, "campaigns", KeyOf("id_campaign", "C-2"), CellWrite{Column: "status_dashboard", Value: "draft_submitted"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	afterWrite := client.ReadCalls()

	rows, err := store.FetchColumns(ctx, Query{Sheet: "campaigns", Columns: []string{"status_dashboard"}})
	if err != nil {
		t.Fatalf("refetch failed: %v", err)
	}
	if client.ReadCalls() != afterWrite+1 {
		t.Fatalf("expected campaigns cache eviction after write")
	}
	if rows[1].Get("status_dashboard") != "draft_submitted" {
		t.Fatalf("expected fresh value, got %q", rows[1].Get("status_dashboard"))
	}
	if _, err := store.FetchColumns(ctx, Query{Sheet: "selected"}); err != nil {
		t.Fatalf("fetch selected failed: %v", err)
	}
	if client.ReadCalls() != afterWrite+1 || afterWrite != reads+1 {
		t.Fatalf("selected sheet cache must survive a campaigns write")
	}
}

type logEntry struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func TestAppendJSONLogEntryIsOrderedAndToleratesCorruption(t *testing.T) {
	store, client := newTestStore(AccessReadWrite)
	ctx := context.Background()
	key := KeyOf("id_campaign", "C-2")

	if err := store.AppendJSONLogEntry(ctx, "campaigns", key, "message_dashboard", logEntry{Type: "reminder_sent", Content: "X"}); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if err := store.AppendJSONLogEntry(ctx, "campaigns", key, "message_dashboard", logEntry{Type: "revision_feedback", Content: "Y"}); err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	var got []logEntry
	if err := json.Unmarshal([]byte(client.Cell("campaigns", 5, 3)), &got); err != nil {
		t.Fatalf("log column is not a json array: %v", err)
	}
	want := []logEntry{{Type: "reminder_sent", Content: "X"}, {Type: "revision_feedback", Content: "Y"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendJSONLogEntryMonotonicFromEmpty(t *testing.T) {
	store, client := newTestStore(AccessReadWrite)
	ctx := context.Background()
	key := KeyOf("id_campaign", "C-1").And("id_influencer", "INF-1")

	const n = 5
	for i := 0; i < n; i++ {
		entry := logEntry{Type: "note", Content: string(rune('a' + i))}
		if err := store.AppendJSONLogEntry(ctx, "campaigns", key, "message_dashboard", entry); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}
	items := DecodeJSONArray(client.Cell("campaigns", 4, 3))
	if len(items) != n {
		t.Fatalf("expected %d entries, got %d", n, len(items))
	}
	var last logEntry
	_ = json.Unmarshal(items[n-1], &last)
	if last.Content != "e" {
		t.Fatalf("expected call order preserved, last=%q", last.Content)
	}
}

func TestApplyBatchesCellsWithAppend(t *testing.T) {
	store, client := newTestStore(AccessReadWrite)
	err := store.Apply(context.Background(), "campaigns", Update{
		Key:     KeyOf("id_campaign", "C-1").And("id_influencer", "INF-1"),
		Cells:   []CellWrite{{Column: "status_dashboard", Value: "plan_submitted"}},
		Appends: []JSONAppend{{Column: "message_dashboard", Entry: logEntry{Type: "submission"}}, {Column: "message_dashboard", Entry: logEntry{Type: "note"}}},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if client.WriteCalls() != 1 {
		t.Fatalf("expected one batch, got %d", client.WriteCalls())
	}
	if n := len(DecodeJSONArray(client.Cell("campaigns", 4, 3))); n != 2 {
		t.Fatalf("expected both appends in one write, got %d", n)
	}
}

func TestAppendRowOrdersByHeader(t *testing.T) {
	store, client := newTestStore(AccessReadWrite)
	err := store.AppendRow(context.Background(), "selected", map[string]string{
		"contact_email": "b@example.com",
		"id_influencer": "INF-10",
	})
	if err != nil {
		t.Fatalf("append row failed: %v", err)
	}
	table := client.Table("selected")
	if diff := cmp.Diff([]string{"INF-10", "b@example.com"}, table[len(table)-1]); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateSchemaReportsMissingColumns(t *testing.T) {
	store, _ := newTestStore(AccessReadOnly)
	missing, err := store.ValidateSchema(context.Background(), Schema{
		Sheet:   "campaigns",
		Columns: []string{"id_campaign", "date_live"},
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if diff := cmp.Diff([]string{"date_live"}, missing); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSONArrayDefaults(t *testing.T) {
	for _, raw := range []string{"", "   ", "garbage", `{"type":"x"}`, "null", "42"} {
		if got := DecodeJSONArray(raw); len(got) != 0 {
			t.Fatalf("expected empty array for %q, got %d items", raw, len(got))
		}
	}
}

// stallingClient holds its first read after taking the snapshot, so the
// returned table predates any write issued while it is held.
type stallingClient struct {
	*MemoryClient
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (c *stallingClient) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	table, err := c.MemoryClient.ReadRange(ctx, rng)
	c.once.Do(func() {
		close(c.started)
		<-c.release
	})
	return table, err
}

func TestApplyDoesNotReuseReadStartedBeforeEarlierWrite(t *testing.T) {
	client := &stallingClient{
		MemoryClient: NewMemoryClient("sid", AccessReadWrite, map[string][][]string{"campaigns": campaignTable()}),
		started:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	store := New(client, Options{
		Cache:   cache.NewTTL[[][]string](time.Minute),
		Schemas: []Schema{{Sheet: "campaigns", DataStartRow: 4}},
	})
	ctx := context.Background()
	key := KeyOf("id_campaign", "C-1").And("id_influencer", "INF-1")

	stale := make(chan error, 1)
	go func() {
		_, err := store.FetchColumns(ctx, Query{Sheet: "campaigns"})
		stale <- err
	}()
	<-client.started

	appended := make(chan error, 1)
	go func() {
		if err := store.AppendJSONLogEntry(ctx, "campaigns", key, "message_dashboard", logEntry{Type: "e1"}); err != nil {
			appended <- err
			return
		}
		appended <- store.AppendJSONLogEntry(ctx, "campaigns", key, "message_dashboard", logEntry{Type: "e2"})
	}()
	select {
	case err := <-appended:
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		close(client.release)
		t.Fatalf("appends waited on a read that started before them")
	}

	close(client.release)
	if err := <-stale; err != nil {
		t.Fatalf("stalled fetch failed: %v", err)
	}

	var got []logEntry
	if err := json.Unmarshal([]byte(client.Cell("campaigns", 4, 3)), &got); err != nil {
		t.Fatalf("log column is not a json array: %v", err)
	}
	if diff := cmp.Diff([]logEntry{{Type: "e1"}, {Type: "e2"}}, got); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}

	rows, err := store.FetchColumns(ctx, Query{Sheet: "campaigns", InfluencerID: "INF-1", Columns: []string{"message_dashboard"}})
	if err != nil {
		t.Fatalf("fetch after writes failed: %v", err)
	}
	if len(rows) != 1 || len(DecodeJSONArray(rows[0].Get("message_dashboard"))) != 2 {
		t.Fatalf("expected cached read to reflect both appends, got %+v", rows)
	}
}
