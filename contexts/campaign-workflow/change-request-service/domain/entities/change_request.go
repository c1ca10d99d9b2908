package entities

import (
	"strings"
	"time"
)

type RequestType string

const (
	TypePlanDateChange  RequestType = "plan_date_change"
	TypeDraftDateChange RequestType = "draft_date_change"
	TypeLiveDateChange  RequestType = "live_date_change"
)

// Field names the campaign schedule a request may move.
type Field string

const (
	FieldPlanDate  Field = "plan_date"
	FieldDraftDate Field = "draft_date"
	FieldLiveDate  Field = "live_date"
)

var requestFields = map[RequestType]Field{
	TypePlanDateChange:  FieldPlanDate,
	TypeDraftDateChange: FieldDraftDate,
	TypeLiveDateChange:  FieldLiveDate,
}

func ParseRequestType(raw string) (RequestType, bool) {
	value := RequestType(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := requestFields[value]
	return value, ok
}

// Field returns the schedule field the request type changes.
func (t RequestType) Field() Field {
	return requestFields[t]
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Decision is what an admin may resolve a pending request to.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func ParseDecision(raw string) (Decision, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "approve", "approved":
		return DecisionApprove, true
	case "reject", "rejected":
		return DecisionReject, true
	default:
		return "", false
	}
}

func (d Decision) Status() Status {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusRejected
}

type FieldChange struct {
	Field        Field  `json:"field"`
	CurrentValue string `json:"currentValue"`
	NewValue     string `json:"newValue"`
}

type ChangeRequest struct {
	ID               string        `json:"id"`
	CampaignID       string        `json:"campaignId"`
	InfluencerID     string        `json:"influencerId"`
	Type             RequestType   `json:"type"`
	Status           Status        `json:"status"`
	RequestedChanges []FieldChange `json:"requestedChanges"`
	Reason           string        `json:"reason,omitempty"`
	AdminResponse    string        `json:"adminResponse,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	ResolvedAt       *time.Time    `json:"resolvedAt,omitempty"`
}

func (r ChangeRequest) Pending() bool {
	return r.Status == StatusPending
}

// NewValue returns the requested value for field, if any.
func (r ChangeRequest) NewValue(field Field) (string, bool) {
	for _, change := range r.RequestedChanges {
		if change.Field == field {
			return change.NewValue, true
		}
	}
	return "", false
}
