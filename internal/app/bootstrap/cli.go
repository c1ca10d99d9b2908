package bootstrap

import (
	"context"

	campaignservice "musubime/contexts/campaign-workflow/campaign-service"
	"musubime/contexts/campaign-workflow/campaign-service/application/workers"
	notificationservice "musubime/contexts/notifications/notification-service"
	notificationworkers "musubime/contexts/notifications/notification-service/application/workers"
	outreachservice "musubime/contexts/outreach/outreach-service"
)

// CLIApp exposes the modules the ops CLI drives directly.
type CLIApp struct {
	rt *runtime
}

func BuildCLI(ctx context.Context) (*CLIApp, error) {
	rt, err := buildRuntime(ctx, runtimeOptions{process: "cli"})
	if err != nil {
		return nil, err
	}
	return &CLIApp{rt: rt}, nil
}

func (c *CLIApp) Campaigns() campaignservice.Module {
	return c.rt.campaigns
}

func (c *CLIApp) Outreach() outreachservice.Module {
	return c.rt.outreach
}

func (c *CLIApp) Notifications() notificationservice.Module {
	return c.rt.notifications
}

// SweepReminders runs one reminder pass and, when the outbox lives in this
// process, delivers what it queued.
func (c *CLIApp) SweepReminders(ctx context.Context) (workers.SweepResult, notificationworkers.RelayResult, error) {
	sweep, err := c.rt.campaigns.Sweep.RunOnce(ctx)
	if err != nil {
		return sweep, notificationworkers.RelayResult{}, err
	}
	if !c.rt.inProcessRelay() {
		return sweep, notificationworkers.RelayResult{}, nil
	}
	relay, err := c.rt.notifications.Relay.RunOnce(ctx)
	return sweep, relay, err
}

func (c *CLIApp) Close() error {
	return c.rt.Close()
}
