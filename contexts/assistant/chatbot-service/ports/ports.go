package ports

import (
	"context"

	"musubime/contexts/assistant/chatbot-service/domain/entities"
)

const (
	RoleAdmin      = "admin"
	RoleInfluencer = "influencer"
)

type KnowledgeBase interface {
	Entries(ctx context.Context) ([]entities.FAQEntry, error)
}

type CampaignContext interface {
	Snapshot(ctx context.Context, campaignID string, influencerID string) (entities.CampaignSnapshot, bool, error)
}

type Prompt struct {
	System   string
	Question string
}

type LanguageModel interface {
	Answer(ctx context.Context, prompt Prompt) (string, error)
}

type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) MayAccess(influencerID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == RoleInfluencer && a.ID != "" && a.ID == influencerID
}
