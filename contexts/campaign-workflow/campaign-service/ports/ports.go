package ports

import (
	"context"
	"time"

	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
)

// CampaignKey addresses one campaign row.
type CampaignKey struct {
	CampaignID   string
	InfluencerID string
}

type CampaignFilter struct {
	InfluencerID string
	ForceRefresh bool
}

// CampaignChange is written to one row in a single batch. Zero fields are left untouched.
type CampaignChange struct {
	Key             CampaignKey
	Status          entities.Status
	StatusUpdatedAt time.Time
	URLKind         entities.URLKind
	URL             string
	Messages        []entities.MessageEntry
	// Survey answers keyed without the survey_ column prefix.
	Survey map[string]string
}

func (c CampaignChange) Empty() bool {
	return c.Status == "" && c.URL == "" && len(c.Messages) == 0 && len(c.Survey) == 0
}

type CampaignRepository interface {
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
	GetCampaign(ctx context.Context, key CampaignKey, forceRefresh bool) (entities.Campaign, error)
	ApplyChange(ctx context.Context, change CampaignChange) error
}

type Clock interface {
	Now() time.Time
}

// EffectDispatcher hands post-commit effects to delivery. It must not block on delivery.
type EffectDispatcher interface {
	Dispatch(ctx context.Context, effects []entities.Effect) error
}

const (
	RoleAdmin      = "admin"
	RoleInfluencer = "influencer"
)

// Actor is the caller as resolved from request headers.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// MayAccess reports whether the actor may read or change rows of influencerID.
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
