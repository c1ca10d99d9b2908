package entities

import "time"

const (
	MessageTypeGeneral          = "message"
	MessageTypeStatusChanged    = "status_changed"
	MessageTypeSubmission       = "submission"
	MessageTypeRevisionFeedback = "revision_feedback"
	MessageTypeReminderSent     = "reminder_sent"
	MessageTypeOnboarding       = "onboarding"
)

// MessageEntry is one element of the append-only message log cell.
type MessageEntry struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type Schedules struct {
	Meeting *time.Time
	Plan    *time.Time
	Draft   *time.Time
	Live    *time.Time
}

// Campaign is one campaign row; a campaign id alone is not unique.
type Campaign struct {
	CampaignID      string
	InfluencerID    string
	InfluencerName  string
	ContactEmail    string
	Title           string
	ProductName     string
	Status          Status
	Platform        Platform
	ContractedPrice int64
	Schedules       Schedules
	PlanURL         string
	DraftURL        string
	ContentURL      string
	Notes           string
	MessageLog      []MessageEntry
	Requirements    []string
	ReferenceLinks  []string
	StatusUpdatedAt *time.Time
	// Extras carries every other header verbatim.
	Extras map[string]string
}

func (c Campaign) Step() Step {
	return c.Status.Step()
}

func (c Campaign) URL(kind URLKind) string {
	switch kind {
	case URLKindPlan:
		return c.PlanURL
	case URLKindDraft:
		return c.DraftURL
	case URLKindContent:
		return c.ContentURL
	default:
		return ""
	}
}

// HasMessage reports whether the log already holds an entry of this type and content.
func (c Campaign) HasMessage(messageType string, content string) bool {
	for _, entry := range c.MessageLog {
		if entry.Type == messageType && entry.Content == content {
			return true
		}
	}
	return false
}

type ReminderKind string

const (
	ReminderPlan  ReminderKind = "plan"
	ReminderDraft ReminderKind = "draft"
	ReminderLive  ReminderKind = "live"
)

func ParseReminderKind(raw string) (ReminderKind, bool) {
	switch kind := ReminderKind(raw); kind {
	case ReminderPlan, ReminderDraft, ReminderLive:
		return kind, true
	default:
		return "", false
	}
}

// DueDate is the schedule date a reminder of this kind refers to.
func (c Campaign) DueDate(kind ReminderKind) *time.Time {
	switch kind {
	case ReminderPlan:
		return c.Schedules.Plan
	case ReminderDraft:
		return c.Schedules.Draft
	case ReminderLive:
		return c.Schedules.Live
	default:
		return nil
	}
}

// PendingReminder is the reminder kind that applies to the current status, if any.
func (c Campaign) PendingReminder() (ReminderKind, bool) {
	switch c.Status {
	case StatusPlanCreating, StatusPlanRevising:
		return ReminderPlan, true
	case StatusDraftCreating, StatusDraftRevising:
		return ReminderDraft, true
	case StatusScheduling, StatusScheduled:
		return ReminderLive, true
	default:
		return "", false
	}
}
