package commands

import (
	"strings"
	"time"

	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/campaign-service/domain/errors"
	"musubime/contexts/campaign-workflow/campaign-service/ports"
)

const moduleName = "campaign-workflow/campaign-service"

// MutationResult is returned by every row-changing use case. Effects are
// post-commit and left to the caller to dispatch.
type MutationResult struct {
	Key     ports.CampaignKey
	Status  entities.Status
	Effects []entities.Effect
}

func campaignKey(campaignID string, influencerID string) (ports.CampaignKey, error) {
	key := ports.CampaignKey{
		CampaignID:   strings.TrimSpace(campaignID),
		InfluencerID: strings.TrimSpace(influencerID),
	}
	if key.CampaignID == "" || key.InfluencerID == "" {
		return ports.CampaignKey{}, domainerrors.ErrInvalidCampaignInput
	}
	return key, nil
}

func authorize(actor ports.Actor, influencerID string) error {
	if !actor.MayAccess(influencerID) {
		return domainerrors.ErrForbidden
	}
	return nil
}

func message(messageType string, content string, now time.Time) entities.MessageEntry {
	return entities.MessageEntry{
		Type:      messageType,
		Content:   content,
		Timestamp: now.Format(time.RFC3339),
	}
}
