package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "musubime/contexts/campaign-workflow/campaign-service/application"
	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/campaign-service/domain/errors"
	"musubime/contexts/campaign-workflow/campaign-service/ports"
)

type AdminActionCommand struct {
	Actor           ports.Actor
	CampaignID      string
	InfluencerID    string
	Action          string
	FeedbackMessage string
}

// AdminActionUseCase maps a reviewer action to its target status regardless of
// the current status.
type AdminActionUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc AdminActionUseCase) Execute(ctx context.Context, cmd AdminActionCommand) (MutationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	key, err := campaignKey(cmd.CampaignID, cmd.InfluencerID)
	if err != nil {
		return MutationResult{}, err
	}
	if !cmd.Actor.IsAdmin() {
		return MutationResult{}, domainerrors.ErrForbidden
	}
	action, ok := entities.ParseAdminAction(cmd.Action)
	if !ok {
		return MutationResult{}, domainerrors.ErrInvalidAction
	}

	current, err := uc.Campaigns.GetCampaign(ctx, key, false)
	if err != nil {
		return MutationResult{}, err
	}

	now := uc.Clock.Now()
	feedback := strings.TrimSpace(cmd.FeedbackMessage)
	change := ports.CampaignChange{
		Key:             key,
		Status:          action.Target(),
		StatusUpdatedAt: now,
	}
	if feedback != "" {
		messageType := entities.MessageTypeGeneral
		if action.RequestsRevision() {
			messageType = entities.MessageTypeRevisionFeedback
		}
		change.Messages = append(change.Messages, message(messageType, feedback, now))
	}
	if err := uc.Campaigns.ApplyChange(ctx, change); err != nil {
		return MutationResult{}, err
	}

	logger.Info("campaign admin action applied",
		"event", "campaign_admin_action_applied",
		"module", moduleName,
		"layer", "application",
		"campaign_id", key.CampaignID,
		"influencer_id", key.InfluencerID,
		"action", string(action),
		"from_status", string(current.Status),
		"to_status", string(action.Target()),
		"actor_id", cmd.Actor.ID,
	)

	previous := current.Status
	current.Status = action.Target()
	effects := []entities.Effect{
		entities.WebhookEffect(action.EventName(), current, map[string]string{
			"previous_status": string(previous),
			"action":          string(action),
			"feedback":        feedback,
		}),
	}
	if action.RequestsRevision() && current.ContactEmail != "" {
		effects = append(effects, entities.Effect{
			Kind:          entities.EffectEmail,
			Event:         action.EventName(),
			CampaignID:    current.CampaignID,
			InfluencerID:  current.InfluencerID,
			RecipientName: current.InfluencerName,
			Recipient:     current.ContactEmail,
			Subject:       fmt.Sprintf("[%s] Revision requested", current.Title),
			Body:          revisionBody(current, feedback),
		})
	}
	return MutationResult{Key: key, Status: current.Status, Effects: effects}, nil
}

func revisionBody(campaign entities.Campaign, feedback string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(campaign.InfluencerName))
	fmt.Fprintf(&b, "Your submission for %s needs a revision.\n", campaign.Title)
	if feedback != "" {
		fmt.Fprintf(&b, "\n%s\n", feedback)
	}
	return b.String()
}
