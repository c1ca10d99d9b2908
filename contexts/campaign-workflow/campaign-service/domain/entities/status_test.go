package entities

import "testing"

func TestStepIsTotalOverStatuses(t *testing.T) {
	steps := make(map[Step]bool)
	for _, step := range AllSteps() {
		steps[step] = true
	}
	for _, status := range AllStatuses() {
		step := status.Step()
		if !steps[step] {
			t.Fatalf("status %s mapped to unknown step %q", status, step)
		}
	}
	if len(AllStatuses()) != 14 {
		t.Fatalf("expected 14 statuses, got %d", len(AllStatuses()))
	}
}

func TestStepMapping(t *testing.T) {
	cases := map[Status]Step{
		StatusNotStarted:        StepNotStarted,
		StatusMeetingScheduled:  StepMeeting,
		StatusPlanRevising:      StepPlanCreation,
		StatusDraftSubmitted:    StepDraftCreation,
		StatusScheduled:         StepScheduling,
		StatusPaymentProcessing: StepPayment,
		StatusCompleted:         StepPayment,
		StatusCancelled:         StepCancelled,
	}
	for status, want := range cases {
		if got := status.Step(); got != want {
			t.Fatalf("%s.Step() = %s, want %s", status, got, want)
		}
	}
}

func TestNormalizeStatusCoercesUnknownValues(t *testing.T) {
	cases := map[string]Status{
		"":                 StatusNotStarted,
		"garbage":          StatusNotStarted,
		" Plan_Submitted ": StatusPlanSubmitted,
		"plan_reviewing":   StatusPlanSubmitted,
		"draft_reviewing":  StatusDraftSubmitted,
		"cancelled":        StatusCancelled,
	}
	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Fatalf("NormalizeStatus(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestAdminActionTargetsIgnoreCurrentStatus(t *testing.T) {
	action, ok := ParseAdminAction("approve_plan")
	if !ok {
		t.Fatalf("expected approve_plan to parse")
	}
	if action.Target() != StatusDraftCreating {
		t.Fatalf("expected draft_creating, got %s", action.Target())
	}
	if _, ok := ParseAdminAction("bogus_action"); ok {
		t.Fatalf("expected bogus_action to be rejected")
	}
}

func TestSubmissionTable(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		kind URLKind
	}{
		{StatusPlanCreating, StatusPlanSubmitted, URLKindPlan},
		{StatusPlanRevising, StatusPlanSubmitted, URLKindPlan},
		{StatusDraftCreating, StatusDraftSubmitted, URLKindDraft},
		{StatusDraftRevising, StatusDraftSubmitted, URLKindDraft},
		{StatusScheduling, StatusScheduled, URLKindContent},
	}
	for _, tc := range cases {
		got, ok := SubmissionFor(tc.from)
		if !ok || got.To != tc.to || got.URLKind != tc.kind {
			t.Fatalf("SubmissionFor(%s) = %+v, %v", tc.from, got, ok)
		}
	}
	if _, ok := SubmissionFor(StatusPlanSubmitted); ok {
		t.Fatalf("plan_submitted must have no influencer action")
	}
}

func TestReachable(t *testing.T) {
	if !Reachable(StatusPlanSubmitted, StatusDraftCreating) {
		t.Fatalf("approving a submitted plan must be reachable")
	}
	if !Reachable(StatusScheduled, StatusPaymentProcessing) {
		t.Fatalf("payment after scheduling must be reachable")
	}
	if !Reachable(StatusDraftCreating, StatusCancelled) {
		t.Fatalf("cancel must be reachable from an open status")
	}
	if Reachable(StatusNotStarted, StatusCompleted) {
		t.Fatalf("jumping to completed must not be reachable")
	}
	if Reachable(StatusCompleted, StatusCancelled) {
		t.Fatalf("terminal statuses cannot be cancelled")
	}
}

func TestNextActions(t *testing.T) {
	actions := NextActions(StatusDraftSubmitted)
	if len(actions) != 2 || actions[0] != AdminActionApproveDraft || actions[1] != AdminActionReviseDraft {
		t.Fatalf("unexpected actions %#v", actions)
	}
	if len(NextActions(StatusNotStarted)) != 0 {
		t.Fatalf("expected no admin actions before submission")
	}
}

func TestParsePlatform(t *testing.T) {
	cases := map[string]Platform{
		"yts":             PlatformYouTubeShorts,
		"YouTube":         PlatformYouTube,
		"Instagram Reels": PlatformInstagramReels,
		"TikTok":          PlatformTikTok,
		"myspace":         PlatformYouTube,
		"":                PlatformYouTube,
	}
	for raw, want := range cases {
		if got := ParsePlatform(raw); got != want {
			t.Fatalf("ParsePlatform(%q) = %s, want %s", raw, got, want)
		}
	}
}
