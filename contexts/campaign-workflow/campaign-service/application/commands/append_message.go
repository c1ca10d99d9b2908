package commands

import (
	"context"
	"log/slog"
	"strings"

	application "musubime/contexts/campaign-workflow/campaign-service/application"
	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/campaign-service/domain/errors"
	"musubime/contexts/campaign-workflow/campaign-service/ports"
)

type AppendMessageCommand struct {
	Actor        ports.Actor
	CampaignID   string
	InfluencerID string
	Type         string
	Content      string
}

type AppendMessageUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc AppendMessageUseCase) Execute(ctx context.Context, cmd AppendMessageCommand) (MutationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	key, err := campaignKey(cmd.CampaignID, cmd.InfluencerID)
	if err != nil {
		return MutationResult{}, err
	}
	if err := authorize(cmd.Actor, key.InfluencerID); err != nil {
		return MutationResult{}, err
	}
	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		return MutationResult{}, domainerrors.ErrInvalidCampaignInput
	}
	messageType := strings.TrimSpace(cmd.Type)
	if messageType == "" {
		messageType = entities.MessageTypeGeneral
	}

	now := uc.Clock.Now()
	if err := uc.Campaigns.ApplyChange(ctx, ports.CampaignChange{
		Key:      key,
		Messages: []entities.MessageEntry{message(messageType, content, now)},
	}); err != nil {
		return MutationResult{}, err
	}

	logger.Info("campaign message appended",
		"event", "campaign_message_appended",
		"module", moduleName,
		"layer", "application",
		"campaign_id", key.CampaignID,
		"influencer_id", key.InfluencerID,
		"message_type", messageType,
		"actor_role", cmd.Actor.Role,
	)

	campaign := entities.Campaign{CampaignID: key.CampaignID, InfluencerID: key.InfluencerID}
	if current, err := uc.Campaigns.GetCampaign(ctx, key, false); err == nil {
		campaign = current
	}
	return MutationResult{
		Key:    key,
		Status: campaign.Status,
		Effects: []entities.Effect{
			entities.WebhookEffect(entities.EventMessagePosted, campaign, map[string]string{
				"message_type": messageType,
				"content":      content,
				"author_role":  cmd.Actor.Role,
			}),
		},
	}, nil
}
