package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "musubime/contexts/campaign-workflow/campaign-service/application"
	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/campaign-service/domain/errors"
	"musubime/contexts/campaign-workflow/campaign-service/ports"
)

type SendReminderCommand struct {
	Actor        ports.Actor
	CampaignID   string
	InfluencerID string
	Kind         string
}

// SendReminderUseCase records a reminder_sent entry and returns the reminder
// notifications as effects.
type SendReminderUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc SendReminderUseCase) Execute(ctx context.Context, cmd SendReminderCommand) (MutationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	key, err := campaignKey(cmd.CampaignID, cmd.InfluencerID)
	if err != nil {
		return MutationResult{}, err
	}
	if !cmd.Actor.IsAdmin() {
		return MutationResult{}, domainerrors.ErrForbidden
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, key, true)
	if err != nil {
		return MutationResult{}, err
	}
	kind, ok := entities.ParseReminderKind(strings.ToLower(strings.TrimSpace(cmd.Kind)))
	if !ok {
		if strings.TrimSpace(cmd.Kind) != "" {
			return MutationResult{}, domainerrors.ErrInvalidCampaignInput
		}
		if kind, ok = campaign.PendingReminder(); !ok {
			return MutationResult{}, domainerrors.ErrNoActionAvailable
		}
	}

	change, effects, err := BuildReminder(campaign, kind, uc.Clock.Now())
	if err != nil {
		return MutationResult{}, err
	}
	if err := uc.Campaigns.ApplyChange(ctx, change); err != nil {
		return MutationResult{}, err
	}

	logger.Info("campaign reminder recorded",
		"event", "campaign_reminder_recorded",
		"module", moduleName,
		"layer", "application",
		"campaign_id", key.CampaignID,
		"influencer_id", key.InfluencerID,
		"reminder_kind", string(kind),
	)
	return MutationResult{Key: key, Status: campaign.Status, Effects: effects}, nil
}

// ReminderContent is the message log content that marks a reminder as sent.
func ReminderContent(kind entities.ReminderKind, due time.Time) string {
	return string(kind) + ":" + due.Format("2006-01-02")
}

// BuildReminder prepares the audit append and notifications for one reminder.
func BuildReminder(campaign entities.Campaign, kind entities.ReminderKind, now time.Time) (ports.CampaignChange, []entities.Effect, error) {
	due := campaign.DueDate(kind)
	if due == nil {
		return ports.CampaignChange{}, nil, domainerrors.ErrReminderNotDue
	}
	dueDate := due.Format("2006-01-02")
	change := ports.CampaignChange{
		Key: ports.CampaignKey{CampaignID: campaign.CampaignID, InfluencerID: campaign.InfluencerID},
		Messages: []entities.MessageEntry{
			message(entities.MessageTypeReminderSent, ReminderContent(kind, *due), now),
		},
	}
	effects := []entities.Effect{
		entities.WebhookEffect(entities.EventReminderDue, campaign, map[string]string{
			"reminder_kind": string(kind),
			"due_date":      dueDate,
		}),
	}
	if campaign.ContactEmail != "" {
		effects = append(effects, entities.Effect{
			Kind:          entities.EffectEmail,
			Event:         entities.EventReminderDue,
			CampaignID:    campaign.CampaignID,
			InfluencerID:  campaign.InfluencerID,
			RecipientName: campaign.InfluencerName,
			Recipient:     campaign.ContactEmail,
			Subject:       fmt.Sprintf("[%s] %s due on %s", campaign.Title, reminderLabel(kind), dueDate),
			Body: fmt.Sprintf("%s\n\nThis is a reminder that the %s for %s is due on %s.\n",
				campaign.InfluencerName, reminderLabel(kind), campaign.Title, dueDate),
		})
	}
	return change, effects, nil
}

func reminderLabel(kind entities.ReminderKind) string {
	switch kind {
	case entities.ReminderPlan:
		return "plan"
	case entities.ReminderDraft:
		return "draft"
	default:
		return "publication"
	}
}
