package ports

import (
	"context"
	"time"

	"musubime/contexts/campaign-workflow/change-request-service/domain/entities"
)

type CampaignKey struct {
	CampaignID   string
	InfluencerID string
}

type Filter struct {
	CampaignID   string
	InfluencerID string
	Status       entities.Status
	ForceRefresh bool
}

// CampaignRecord is the change request state of one campaign row.
type CampaignRecord struct {
	Key    CampaignKey
	Dates  map[entities.Field]string
	Events []entities.Event
	// Legacy holds requests imported from the old JSON column. They are never written back.
	Legacy []entities.ChangeRequest
}

func (r CampaignRecord) Requests() []entities.ChangeRequest {
	return entities.Fold(r.Events, r.Legacy)
}

// Logged reports whether the event log already knows requestID.
func (r CampaignRecord) Logged(requestID string) bool {
	for _, event := range r.Events {
		if event.Type == entities.EventCreated && event.RequestID == requestID {
			return true
		}
	}
	return false
}

type Repository interface {
	ListRecords(ctx context.Context, filter Filter) ([]CampaignRecord, error)
	GetRecord(ctx context.Context, key CampaignKey, forceRefresh bool) (CampaignRecord, error)
	// AppendEvents appends events to the row log and writes dates in the same batch.
	AppendEvents(ctx context.Context, key CampaignKey, events []entities.Event, dates map[entities.Field]string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Notifier publishes change request notifications after the write committed.
type Notifier interface {
	Notify(ctx context.Context, event string, request entities.ChangeRequest) error
}

const (
	RoleAdmin      = "admin"
	RoleInfluencer = "influencer"
)

type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) MayAccess(influencerID string) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleInfluencer:
		return a.ID != "" && a.ID == influencerID
	default:
		return false
	}
}
