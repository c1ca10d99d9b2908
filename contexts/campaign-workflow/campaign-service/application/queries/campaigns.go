package queries

import (
	"context"
	"log/slog"
	"strings"

	application "musubime/contexts/campaign-workflow/campaign-service/application"
	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/campaign-service/domain/errors"
	"musubime/contexts/campaign-workflow/campaign-service/ports"
)

type ListCampaignsQuery struct {
	Actor        ports.Actor
	InfluencerID string
	ForceRefresh bool
}

type ListCampaignsUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

// Execute lists campaigns. Influencers only ever see their own rows.
func (uc ListCampaignsUseCase) Execute(ctx context.Context, query ListCampaignsQuery) ([]entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	influencerID, err := scopeInfluencer(query.Actor, query.InfluencerID)
	if err != nil {
		return nil, err
	}
	items, err := uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		InfluencerID: influencerID,
		ForceRefresh: query.ForceRefresh,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("campaigns listed",
		"event", "campaigns_listed",
		"module", "campaign-workflow/campaign-service",
		"layer", "application",
		"influencer_id", influencerID,
		"count", len(items),
	)
	return items, nil
}

type GetCampaignQuery struct {
	Actor        ports.Actor
	CampaignID   string
	InfluencerID string
	ForceRefresh bool
}

type GetCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

// Execute returns one campaign row. Without an influencer id the first row
// carrying the campaign id is returned.
func (uc GetCampaignUseCase) Execute(ctx context.Context, query GetCampaignQuery) (entities.Campaign, error) {
	campaignID := strings.TrimSpace(query.CampaignID)
	if campaignID == "" {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}
	influencerID, err := scopeInfluencer(query.Actor, query.InfluencerID)
	if err != nil {
		return entities.Campaign{}, err
	}
	if influencerID != "" {
		return uc.Campaigns.GetCampaign(ctx, ports.CampaignKey{
			CampaignID:   campaignID,
			InfluencerID: influencerID,
		}, query.ForceRefresh)
	}

	items, err := uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{ForceRefresh: query.ForceRefresh})
	if err != nil {
		return entities.Campaign{}, err
	}
	for _, item := range items {
		if item.CampaignID == campaignID {
			return item, nil
		}
	}
	return entities.Campaign{}, domainerrors.ErrCampaignNotFound
}

func scopeInfluencer(actor ports.Actor, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	switch actor.Role {
	case ports.RoleAdmin:
		return requested, nil
	case ports.RoleInfluencer:
		if actor.ID == "" || (requested != "" && requested != actor.ID) {
			return "", domainerrors.ErrForbidden
		}
		return actor.ID, nil
	default:
		return "", domainerrors.ErrForbidden
	}
}
