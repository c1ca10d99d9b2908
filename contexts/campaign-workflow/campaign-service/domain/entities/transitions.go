package entities

import "strings"

type AdminAction string

const (
	AdminActionApprovePlan  AdminAction = "approve_plan"
	AdminActionRevisePlan   AdminAction = "revise_plan"
	AdminActionApproveDraft AdminAction = "approve_draft"
	AdminActionReviseDraft  AdminAction = "revise_draft"
)

var adminActionTargets = map[AdminAction]Status{
	AdminActionApprovePlan:  StatusDraftCreating,
	AdminActionRevisePlan:   StatusPlanRevising,
	AdminActionApproveDraft: StatusScheduling,
	AdminActionReviseDraft:  StatusDraftRevising,
}

// adminActionSources is the status a reviewer normally acts from. It only
// feeds Reachable and NextActions; Target ignores it.
var adminActionSources = map[AdminAction]Status{
	AdminActionApprovePlan:  StatusPlanSubmitted,
	AdminActionRevisePlan:   StatusPlanSubmitted,
	AdminActionApproveDraft: StatusDraftSubmitted,
	AdminActionReviseDraft:  StatusDraftSubmitted,
}

func ParseAdminAction(raw string) (AdminAction, bool) {
	action := AdminAction(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := adminActionTargets[action]; !ok {
		return "", false
	}
	return action, true
}

// Target is the status an admin action moves to, whatever the current status.
func (a AdminAction) Target() Status {
	return adminActionTargets[a]
}

func (a AdminAction) RequestsRevision() bool {
	return a == AdminActionRevisePlan || a == AdminActionReviseDraft
}

func (a AdminAction) EventName() string {
	switch a {
	case AdminActionApprovePlan:
		return "plan_approved"
	case AdminActionRevisePlan:
		return "plan_revision_requested"
	case AdminActionApproveDraft:
		return "draft_approved"
	case AdminActionReviseDraft:
		return "draft_revision_requested"
	default:
		return "admin_action"
	}
}

type URLKind string

const (
	URLKindPlan    URLKind = "plan"
	URLKindDraft   URLKind = "draft"
	URLKindContent URLKind = "content"
)

func ParseURLKind(raw string) (URLKind, bool) {
	switch kind := URLKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case URLKindPlan, URLKindDraft, URLKindContent:
		return kind, true
	default:
		return "", false
	}
}

// URLKindForStep is the URL an influencer records while a campaign is in step.
func URLKindForStep(step Step) (URLKind, bool) {
	switch step {
	case StepPlanCreation:
		return URLKindPlan, true
	case StepDraftCreation:
		return URLKindDraft, true
	case StepScheduling:
		return URLKindContent, true
	default:
		return "", false
	}
}

// Submission is one row of the influencer submission table.
type Submission struct {
	From    Status
	To      Status
	URLKind URLKind
}

var submissions = map[Status]Submission{
	StatusPlanCreating:  {From: StatusPlanCreating, To: StatusPlanSubmitted, URLKind: URLKindPlan},
	StatusPlanRevising:  {From: StatusPlanRevising, To: StatusPlanSubmitted, URLKind: URLKindPlan},
	StatusDraftCreating: {From: StatusDraftCreating, To: StatusDraftSubmitted, URLKind: URLKindDraft},
	StatusDraftRevising: {From: StatusDraftRevising, To: StatusDraftSubmitted, URLKind: URLKindDraft},
	StatusScheduling:    {From: StatusScheduling, To: StatusScheduled, URLKind: URLKindContent},
}

// SubmissionFor returns the submission available from current. Statuses
// outside the table have no influencer action.
func SubmissionFor(current Status) (Submission, bool) {
	item, ok := submissions[current]
	return item, ok
}

// operational moves that no table covers but the admin dashboard performs.
var progressions = map[Status][]Status{
	StatusNotStarted:        {StatusMeetingScheduling},
	StatusMeetingScheduling: {StatusMeetingScheduled},
	StatusMeetingScheduled:  {StatusPlanCreating},
	StatusScheduled:         {StatusPaymentProcessing},
	StatusPaymentProcessing: {StatusCompleted},
}

// Reachable reports whether to is one step away from from. Only consulted when
// the server enforces workflow order.
func Reachable(from Status, to Status) bool {
	if from == to {
		return true
	}
	if to == StatusCancelled {
		return !from.Terminal()
	}
	if submission, ok := SubmissionFor(from); ok && submission.To == to {
		return true
	}
	for action, source := range adminActionSources {
		if source == from && action.Target() == to {
			return true
		}
	}
	for _, next := range progressions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextActions lists the admin actions a reviewer is expected to take from current.
func NextActions(current Status) []AdminAction {
	out := make([]AdminAction, 0, 2)
	for _, action := range []AdminAction{AdminActionApprovePlan, AdminActionRevisePlan, AdminActionApproveDraft, AdminActionReviseDraft} {
		if adminActionSources[action] == current {
			out = append(out, action)
		}
	}
	return out
}
