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

type SubmitCommand struct {
	Actor        ports.Actor
	CampaignID   string
	InfluencerID string
	URL          string
}

// SubmitUseCase records an influencer submission through the submission table.
type SubmitUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc SubmitUseCase) Execute(ctx context.Context, cmd SubmitCommand) (MutationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	key, err := campaignKey(cmd.CampaignID, cmd.InfluencerID)
	if err != nil {
		return MutationResult{}, err
	}
	if err := authorize(cmd.Actor, key.InfluencerID); err != nil {
		return MutationResult{}, err
	}
	url := strings.TrimSpace(cmd.URL)
	if url == "" {
		return MutationResult{}, domainerrors.ErrInvalidCampaignInput
	}

	current, err := uc.Campaigns.GetCampaign(ctx, key, true)
	if err != nil {
		return MutationResult{}, err
	}
	submission, ok := entities.SubmissionFor(current.Status)
	if !ok {
		return MutationResult{}, domainerrors.ErrNoActionAvailable
	}

	now := uc.Clock.Now()
	if err := uc.Campaigns.ApplyChange(ctx, ports.CampaignChange{
		Key:             key,
		Status:          submission.To,
		StatusUpdatedAt: now,
		URLKind:         submission.URLKind,
		URL:             url,
		Messages: []entities.MessageEntry{
			message(entities.MessageTypeSubmission, string(submission.URLKind)+": "+url, now),
		},
	}); err != nil {
		return MutationResult{}, err
	}

	logger.Info("campaign submission recorded",
		"event", "campaign_submission_recorded",
		"module", moduleName,
		"layer", "application",
		"campaign_id", key.CampaignID,
		"influencer_id", key.InfluencerID,
		"from_status", string(submission.From),
		"to_status", string(submission.To),
		"url_kind", string(submission.URLKind),
	)

	current.Status = submission.To
	return MutationResult{
		Key:    key,
		Status: submission.To,
		Effects: []entities.Effect{
			entities.WebhookEffect(entities.EventSubmitted, current, map[string]string{
				"previous_status": string(submission.From),
				"url_kind":        string(submission.URLKind),
				"submitted_url":   url,
			}),
		},
	}, nil
}
