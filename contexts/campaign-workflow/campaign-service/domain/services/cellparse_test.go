package services

import (
	"testing"
	"time"

	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"

	"github.com/google/go-cmp/cmp"
)

func tokyo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestParsePriceDefaultsToZero(t *testing.T) {
	cases := map[string]int64{
		"¥50,000":       50000,
		" 120000 ":      120000,
		"￥１２,０００":       12000,
		"$1,234.56":     1234,
		"TBD":           0,
		"":              0,
		"-":             0,
		"1.2.3":         0,
		"NaN":           0,
		"50,000円":       50000,
		"TBD 2026":      0,
		"abc123":        0,
		"約5万円":          0,
		"phone 0901234": 0,
		"1e5":           0,
	}
	for raw, want := range cases {
		if got := ParsePrice(raw); got != want {
			t.Fatalf("ParsePrice(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestParseDateReturnsNilOnGarbage(t *testing.T) {
	for _, raw := range []string{"", "  ", "soon", "2026-13-45", "31/31/31"} {
		if got := ParseDate(raw, tokyo(t)); got != nil {
			t.Fatalf("ParseDate(%q) = %v, want nil", raw, got)
		}
	}
}

func TestParseDateRoundTripKeepsCalendarDay(t *testing.T) {
	loc := tokyo(t)
	for _, raw := range []string{"2026-01-01", "2026-03-31", "2026-12-31"} {
		parsed := ParseDate(raw, loc)
		if parsed == nil {
			t.Fatalf("ParseDate(%q) returned nil", raw)
		}
		if got := FormatDate(parsed, loc); got != raw {
			t.Fatalf("round trip %q -> %q", raw, got)
		}
		if parsed.Hour() != 0 || parsed.Location() != loc {
			t.Fatalf("expected local midnight, got %s", parsed)
		}
	}
}

func TestParseDateFallbackLayouts(t *testing.T) {
	loc := tokyo(t)
	parsed := ParseDate("2026/4/5", loc)
	if got := FormatDate(parsed, loc); got != "2026-04-05" {
		t.Fatalf("expected 2026-04-05, got %q", got)
	}
	stamp := ParseDate("2026-04-05T23:30:00Z", loc)
	if got := FormatDate(stamp, loc); got != "2026-04-06" {
		t.Fatalf("expected UTC stamp to land on the next Tokyo day, got %q", got)
	}
}

func TestSplitLinesDropsBlanks(t *testing.T) {
	got := SplitLines("first\r\n\n  second  \n\n")
	if diff := cmp.Diff([]string{"first", "second"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestParseMessageLogDefaults(t *testing.T) {
	if got := ParseMessageLog(`{"type":"x"}`); len(got) != 0 {
		t.Fatalf("expected non-array to read as empty, got %#v", got)
	}
	if got := ParseMessageLog(`[broken`); len(got) != 0 {
		t.Fatalf("expected corrupt cell to read as empty, got %#v", got)
	}
	got := ParseMessageLog(`[{"type":"reminder_sent","content":"X","timestamp":1700000000},"noise"]`)
	want := []entities.MessageEntry{{Type: "reminder_sent", Content: "X", Timestamp: "1700000000"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected log (-want +got):\n%s", diff)
	}
}

func TestAssembleScenario(t *testing.T) {
	campaign := Assemble(RawCampaign{
		CampaignID:   " CMP-9 ",
		InfluencerID: "INF-9",
		Status:       "",
		Platform:     "yts",
		Spend:        "¥50,000",
		DatePlan:     "not a date",
		DateLive:     "2026-05-01",
		MessageLog:   "oops",
		Requirements: "a\n\nb",
		Extras:       map[string]string{"contract_id": "K-1"},
	}, tokyo(t))

	if campaign.Status != entities.StatusNotStarted {
		t.Fatalf("expected not_started, got %s", campaign.Status)
	}
	if campaign.Platform != entities.PlatformYouTubeShorts {
		t.Fatalf("expected yts, got %s", campaign.Platform)
	}
	if campaign.ContractedPrice != 50000 {
		t.Fatalf("expected 50000, got %d", campaign.ContractedPrice)
	}
	if campaign.CampaignID != "CMP-9" {
		t.Fatalf("expected trimmed campaign id, got %q", campaign.CampaignID)
	}
	if campaign.Schedules.Plan != nil || campaign.Schedules.Live == nil {
		t.Fatalf("unexpected schedules %+v", campaign.Schedules)
	}
	if len(campaign.MessageLog) != 0 || len(campaign.Requirements) != 2 {
		t.Fatalf("unexpected lists: log=%v requirements=%v", campaign.MessageLog, campaign.Requirements)
	}
	if campaign.Extras["contract_id"] != "K-1" {
		t.Fatalf("expected pass-through extras, got %v", campaign.Extras)
	}
}
