package entities

import "strings"

type Status string
type Step string

const (
	StatusNotStarted        Status = "not_started"
	StatusMeetingScheduling Status = "meeting_scheduling"
	StatusMeetingScheduled  Status = "meeting_scheduled"
	StatusPlanCreating      Status = "plan_creating"
	StatusPlanSubmitted     Status = "plan_submitted"
	StatusPlanRevising      Status = "plan_revising"
	StatusDraftCreating     Status = "draft_creating"
	StatusDraftSubmitted    Status = "draft_submitted"
	StatusDraftRevising     Status = "draft_revising"
	StatusScheduling        Status = "scheduling"
	StatusScheduled         Status = "scheduled"
	StatusPaymentProcessing Status = "payment_processing"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"

	StepNotStarted    Step = "not_started"
	StepMeeting       Step = "meeting"
	StepPlanCreation  Step = "plan_creation"
	StepDraftCreation Step = "draft_creation"
	StepScheduling    Step = "scheduling"
	StepPayment       Step = "payment"
	StepCancelled     Step = "cancelled"
)

var allStatuses = []Status{
	StatusNotStarted,
	StatusMeetingScheduling,
	StatusMeetingScheduled,
	StatusPlanCreating,
	StatusPlanSubmitted,
	StatusPlanRevising,
	StatusDraftCreating,
	StatusDraftSubmitted,
	StatusDraftRevising,
	StatusScheduling,
	StatusScheduled,
	StatusPaymentProcessing,
	StatusCompleted,
	StatusCancelled,
}

// Review states shown by the influencer dashboard after a resubmission.
// They are stored as the matching *_submitted status.
var statusAliases = map[string]Status{
	"plan_reviewing":  StatusPlanSubmitted,
	"draft_reviewing": StatusDraftSubmitted,
}

func AllStatuses() []Status {
	return append([]Status(nil), allStatuses...)
}

func AllSteps() []Step {
	return []Step{
		StepNotStarted,
		StepMeeting,
		StepPlanCreation,
		StepDraftCreation,
		StepScheduling,
		StepPayment,
		StepCancelled,
	}
}

// ParseStatus accepts the enumerated values and the review aliases.
func ParseStatus(raw string) (Status, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := statusAliases[value]; ok {
		return alias, true
	}
	status := Status(value)
	if status.Valid() {
		return status, true
	}
	return "", false
}

// NormalizeStatus coerces a stored cell to a status. Anything unknown reads as
// not_started and the original text is dropped.
func NormalizeStatus(raw string) Status {
	if status, ok := ParseStatus(raw); ok {
		return status
	}
	return StatusNotStarted
}

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusMeetingScheduling, StatusMeetingScheduled,
		StatusPlanCreating, StatusPlanSubmitted, StatusPlanRevising,
		StatusDraftCreating, StatusDraftSubmitted, StatusDraftRevising,
		StatusScheduling, StatusScheduled, StatusPaymentProcessing,
		StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) Step() Step {
	switch s {
	case StatusMeetingScheduling, StatusMeetingScheduled:
		return StepMeeting
	case StatusPlanCreating, StatusPlanSubmitted, StatusPlanRevising:
		return StepPlanCreation
	case StatusDraftCreating, StatusDraftSubmitted, StatusDraftRevising:
		return StepDraftCreation
	case StatusScheduling, StatusScheduled:
		return StepScheduling
	case StatusPaymentProcessing, StatusCompleted:
		return StepPayment
	case StatusCancelled:
		return StepCancelled
	default:
		return StepNotStarted
	}
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
