package workers

import (
	"context"
	"log/slog"
	"time"

	application "musubime/contexts/campaign-workflow/campaign-service/application"
	"musubime/contexts/campaign-workflow/campaign-service/application/commands"
	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	"musubime/contexts/campaign-workflow/campaign-service/ports"
)

// ReminderSweep sends a reminder for every open campaign whose next due date
// falls within LeadDays. A reminder_sent entry for the same kind and date
// suppresses repeats.
type ReminderSweep struct {
	Campaigns  ports.CampaignRepository
	Dispatcher ports.EffectDispatcher
	Clock      ports.Clock
	LeadDays   int
	Logger     *slog.Logger
}

type SweepResult struct {
	Scanned int
	Sent    int
	Failed  int
}

func (w ReminderSweep) RunOnce(ctx context.Context) (SweepResult, error) {
	logger := application.ResolveLogger(w.Logger)
	campaigns, err := w.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{ForceRefresh: true})
	if err != nil {
		logger.Error("reminder sweep list failed",
			"event", "campaign_reminder_sweep_list_failed",
			"module", "campaign-workflow/campaign-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return SweepResult{}, err
	}

	now := time.Now()
	if w.Clock != nil {
		now = w.Clock.Now()
	}
	lead := w.LeadDays
	if lead <= 0 {
		lead = 2
	}

	result := SweepResult{Scanned: len(campaigns)}
	for _, campaign := range campaigns {
		kind, ok := campaign.PendingReminder()
		if !ok {
			continue
		}
		due := campaign.DueDate(kind)
		if due == nil || !withinLead(now, *due, lead) {
			continue
		}
		if campaign.HasMessage(entities.MessageTypeReminderSent, commands.ReminderContent(kind, *due)) {
			continue
		}

		change, effects, err := commands.BuildReminder(campaign, kind, now)
		if err == nil {
			err = w.Campaigns.ApplyChange(ctx, change)
		}
		if err != nil {
			result.Failed++
			logger.Warn("reminder sweep write failed",
				"event", "campaign_reminder_sweep_write_failed",
				"module", "campaign-workflow/campaign-service",
				"layer", "worker",
				"campaign_id", campaign.CampaignID,
				"influencer_id", campaign.InfluencerID,
				"error", err.Error(),
			)
			continue
		}
		result.Sent++
		if w.Dispatcher != nil {
			if err := w.Dispatcher.Dispatch(ctx, effects); err != nil {
				logger.Warn("reminder effects dispatch failed",
					"event", "campaign_reminder_dispatch_failed",
					"module", "campaign-workflow/campaign-service",
					"layer", "worker",
					"campaign_id", campaign.CampaignID,
					"error", err.Error(),
				)
			}
		}
	}

	if result.Sent > 0 || result.Failed > 0 {
		logger.Info("reminder sweep completed",
			"event", "campaign_reminder_sweep_completed",
			"module", "campaign-workflow/campaign-service",
			"layer", "worker",
			"scanned", result.Scanned,
			"sent", result.Sent,
			"failed", result.Failed,
		)
	}
	return result, nil
}

// withinLead reports whether due is today or up to lead calendar days ahead,
// counted in due's zone.
func withinLead(now time.Time, due time.Time, lead int) bool {
	loc := due.Location()
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dy, dm, dd := due.Date()
	dueDay := time.Date(dy, dm, dd, 0, 0, 0, 0, loc)
	if dueDay.Before(today) {
		return false
	}
	return !dueDay.After(today.AddDate(0, 0, lead))
}
