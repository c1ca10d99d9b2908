package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"musubime/internal/platform/httpserver"

	"golang.org/x/sync/errgroup"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	rt     *runtime
	server *httpserver.Server
	logger *slog.Logger
}

type WorkerApp struct {
	rt     *runtime
	logger *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	rt, err := buildRuntime(ctx, runtimeOptions{process: "api", withAssistant: true})
	if err != nil {
		return nil, err
	}
	server := httpserver.New(httpserver.Modules{
		Campaigns:      rt.campaigns,
		ChangeRequests: rt.changeRequests,
		Auth:           rt.auth,
		Outreach:       rt.outreach,
		Assistant:      rt.assistant,
		Notifications:  rt.notifications,
	}, rt.logger, normalizeAddr(rt.cfg.HTTPPort))
	return &APIApp{
		rt:     rt,
		server: server,
		logger: rt.logger,
	}, nil
}

func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	rt, err := buildRuntime(ctx, runtimeOptions{process: "worker", requirePostgres: true})
	if err != nil {
		return nil, err
	}
	return &WorkerApp{rt: rt, logger: rt.logger}, nil
}

// Run serves HTTP until ctx is cancelled. Without Postgres the api process
// also drives outbox delivery and the reminder sweep.
func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", moduleName,
		"layer", "platform",
		"in_process_relay", a.rt.inProcessRelay(),
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.server.Start()
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.rt.cfg.ShutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})
	if a.rt.inProcessRelay() {
		group.Go(func() error {
			return a.rt.relayLoop(groupCtx)
		})
		group.Go(func() error {
			return a.rt.sweepLoop(groupCtx)
		})
	}
	return group.Wait()
}

func (a *APIApp) Close() error {
	return a.rt.Close()
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", moduleName,
		"layer", "platform",
		"poll_interval", w.rt.cfg.OutboxPollInterval.String(),
		"reminder_interval", w.rt.cfg.ReminderInterval.String(),
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return w.rt.relayLoop(groupCtx)
	})
	group.Go(func() error {
		return w.rt.sweepLoop(groupCtx)
	})
	return group.Wait()
}

func (w *WorkerApp) Close() error {
	return w.rt.Close()
}

func (rt *runtime) relayLoop(ctx context.Context) error {
	return every(ctx, rt.cfg.OutboxPollInterval, func(ctx context.Context) {
		if _, err := rt.notifications.Relay.RunOnce(ctx); err != nil && ctx.Err() == nil {
			rt.logger.Error("outbox relay pass failed",
				"event", "bootstrap_outbox_relay_failed",
				"module", moduleName,
				"layer", "platform",
				"error", err.Error(),
			)
		}
	})
}

func (rt *runtime) sweepLoop(ctx context.Context) error {
	return every(ctx, rt.cfg.ReminderInterval, func(ctx context.Context) {
		if _, err := rt.campaigns.Sweep.RunOnce(ctx); err != nil && ctx.Err() == nil {
			rt.logger.Error("reminder sweep failed",
				"event", "bootstrap_reminder_sweep_failed",
				"module", moduleName,
				"layer", "platform",
				"error", err.Error(),
			)
		}
	})
}

// every runs fn immediately and then on each tick until ctx is done.
func every(ctx context.Context, interval time.Duration, fn func(context.Context)) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		fn(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
