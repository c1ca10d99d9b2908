package cache

import (
	"testing"
	"time"
)

func TestTTLExpiresEntries(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewTTL[string](30 * time.Second).WithClock(func() time.Time { return now })

	c.Set("sheet/campaigns", "rows")
	if value, ok := c.Get("sheet/campaigns"); !ok || value != "rows" {
		t.Fatalf("expected cached value, got %q ok=%v", value, ok)
	}

	now = now.Add(30 * time.Second)
	if _, ok := c.Get("sheet/campaigns"); ok {
		t.Fatalf("expected entry to expire at ttl boundary")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", c.Len())
	}
}

func TestTTLInvalidatePrefixIsCoarse(t *testing.T) {
	c := NewTTL[int](time.Minute)
	c.Set("sid/'campaigns'", 1)
	c.Set("sid/'campaigns'!A1:C3", 2)
	c.Set("sid/'selected'", 3)

	removed := c.InvalidatePrefix("sid/'campaigns'")
	if removed != 2 {
		t.Fatalf("expected 2 entries removed, got %d", removed)
	}
	if _, ok := c.Get("sid/'selected'"); !ok {
		t.Fatalf("expected other sheet to stay cached")
	}
}

func TestTTLDisabledWhenZero(t *testing.T) {
	c := NewTTL[int](0)
	c.Set("k", 1)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("zero ttl must disable caching")
	}
}

func TestTTLSetIfGenerationRejectsLoadsOlderThanInvalidation(t *testing.T) {
	c := NewTTL[string](time.Minute)
	gen := c.Generation()

	c.InvalidatePrefix("sid/'campaigns'")
	if c.SetIfGeneration("sid/'campaigns'", "stale", gen) {
		t.Fatalf("expected set from an earlier generation to be rejected")
	}
	if _, ok := c.Get("sid/'campaigns'"); ok {
		t.Fatalf("expected stale value to stay out of the cache")
	}

	if !c.SetIfGeneration("sid/'campaigns'", "fresh", c.Generation()) {
		t.Fatalf("expected set from the current generation to succeed")
	}
	if value, ok := c.Get("sid/'campaigns'"); !ok || value != "fresh" {
		t.Fatalf("expected fresh value, got %q ok=%v", value, ok)
	}
}
