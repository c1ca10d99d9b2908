package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"musubime/internal/platform/config"
	"musubime/internal/platform/rowstore"
	"musubime/internal/shared/sheetschema"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9000":  ":9000",
		":7000": ":7000",
		" 81 ":  ":81",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEveryRunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- every(ctx, time.Millisecond, func(context.Context) {
			if calls.Add(1) == 3 {
				cancel()
			}
		})
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("loop did not stop after cancel")
	}
	if calls.Load() < 3 {
		t.Fatalf("expected at least 3 passes, got %d", calls.Load())
	}
}

func TestBuildRowStoreFallsBackToSampleData(t *testing.T) {
	store, err := buildRowStore(context.Background(), config.Config{
		Environment:    "development",
		SheetsCacheTTL: time.Minute,
	}, discardLogger())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !store.Writable() || store.SpreadsheetID() != "sample" {
		t.Fatalf("expected writable sample store, got id=%q", store.SpreadsheetID())
	}
	rows, err := store.FetchColumns(context.Background(), rowstore.Query{Sheet: sheetschema.CampaignsSheet})
	if err != nil || len(rows) == 0 {
		t.Fatalf("expected sample campaign rows, got %d rows err=%v", len(rows), err)
	}
}

func TestBuildRowStoreProductionWithoutCredentials(t *testing.T) {
	store, err := buildRowStore(context.Background(), config.Config{
		Environment:    "production",
		SpreadsheetID:  "sheet-1",
		SheetsCacheTTL: time.Minute,
	}, discardLogger())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	_, err = store.FetchColumns(context.Background(), rowstore.Query{Sheet: sheetschema.CampaignsSheet})
	if !errors.Is(err, rowstore.ErrCredentialsMissing) {
		t.Fatalf("expected ErrCredentialsMissing, got %v", err)
	}
}
