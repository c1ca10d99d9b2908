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

type UpdateStatusCommand struct {
	Actor        ports.Actor
	CampaignID   string
	InfluencerID string
	NewStatus    string
	SubmittedURL string
	URLType      string
}

// UpdateStatusUseCase sets a status directly. Any enumerated status is
// accepted unless EnforceTransitions is on.
type UpdateStatusUseCase struct {
	Campaigns          ports.CampaignRepository
	Clock              ports.Clock
	EnforceTransitions bool
	Logger             *slog.Logger
}

func (uc UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (MutationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	key, err := campaignKey(cmd.CampaignID, cmd.InfluencerID)
	if err != nil {
		return MutationResult{}, err
	}
	if err := authorize(cmd.Actor, key.InfluencerID); err != nil {
		return MutationResult{}, err
	}
	status, ok := entities.ParseStatus(cmd.NewStatus)
	if !ok {
		return MutationResult{}, domainerrors.ErrInvalidStatus
	}
	kind, url, err := resolveURL(status, cmd.SubmittedURL, cmd.URLType)
	if err != nil {
		return MutationResult{}, err
	}

	current, err := uc.Campaigns.GetCampaign(ctx, key, uc.EnforceTransitions)
	if err != nil {
		return MutationResult{}, err
	}
	if uc.EnforceTransitions && !entities.Reachable(current.Status, status) {
		logger.Warn("campaign status transition rejected",
			"event", "campaign_status_transition_rejected",
			"module", moduleName,
			"layer", "application",
			"campaign_id", key.CampaignID,
			"influencer_id", key.InfluencerID,
			"from_status", string(current.Status),
			"to_status", string(status),
		)
		return MutationResult{}, domainerrors.ErrInvalidStateTransition
	}

	now := uc.Clock.Now()
	change := ports.CampaignChange{
		Key:             key,
		Status:          status,
		StatusUpdatedAt: now,
		URLKind:         kind,
		URL:             url,
	}
	if url != "" {
		change.Messages = append(change.Messages, message(entities.MessageTypeSubmission, string(kind)+": "+url, now))
	}
	if err := uc.Campaigns.ApplyChange(ctx, change); err != nil {
		return MutationResult{}, err
	}

	logger.Info("campaign status updated",
		"event", "campaign_status_updated",
		"module", moduleName,
		"layer", "application",
		"campaign_id", key.CampaignID,
		"influencer_id", key.InfluencerID,
		"from_status", string(current.Status),
		"to_status", string(status),
		"actor_role", cmd.Actor.Role,
	)

	previous := current.Status
	current.Status = status
	return MutationResult{
		Key:    key,
		Status: status,
		Effects: []entities.Effect{
			entities.WebhookEffect(entities.EventStatusChanged, current, map[string]string{
				"previous_status": string(previous),
				"submitted_url":   url,
			}),
		},
	}, nil
}

// resolveURL picks the URL column for a direct update. Without an explicit
// type the kind follows the target status' step.
func resolveURL(status entities.Status, rawURL string, rawType string) (entities.URLKind, string, error) {
	url := strings.TrimSpace(rawURL)
	urlType := strings.TrimSpace(rawType)
	if urlType != "" {
		kind, ok := entities.ParseURLKind(urlType)
		if !ok {
			return "", "", domainerrors.ErrInvalidURLType
		}
		if url == "" {
			return "", "", nil
		}
		return kind, url, nil
	}
	if url == "" {
		return "", "", nil
	}
	kind, ok := entities.URLKindForStep(status.Step())
	if !ok {
		return "", "", domainerrors.ErrInvalidURLType
	}
	return kind, url, nil
}
