package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	chatbotservice "musubime/contexts/assistant/chatbot-service"
	faqadapter "musubime/contexts/assistant/chatbot-service/adapters/faq"
	geminiadapter "musubime/contexts/assistant/chatbot-service/adapters/gemini"
	chatbotsheets "musubime/contexts/assistant/chatbot-service/adapters/sheets"
	campaignservice "musubime/contexts/campaign-workflow/campaign-service"
	campaignevents "musubime/contexts/campaign-workflow/campaign-service/adapters/events"
	campaignsheets "musubime/contexts/campaign-workflow/campaign-service/adapters/sheets"
	changerequestservice "musubime/contexts/campaign-workflow/change-request-service"
	changerequestevents "musubime/contexts/campaign-workflow/change-request-service/adapters/events"
	changerequestsheets "musubime/contexts/campaign-workflow/change-request-service/adapters/sheets"
	authservice "musubime/contexts/identity-access/auth-service"
	authsheets "musubime/contexts/identity-access/auth-service/adapters/sheets"
	notificationservice "musubime/contexts/notifications/notification-service"
	notificationpostgres "musubime/contexts/notifications/notification-service/adapters/postgres"
	smtpadapter "musubime/contexts/notifications/notification-service/adapters/smtp"
	webhookadapter "musubime/contexts/notifications/notification-service/adapters/webhook"
	notificationentities "musubime/contexts/notifications/notification-service/domain/entities"
	outreachservice "musubime/contexts/outreach/outreach-service"
	outreachevents "musubime/contexts/outreach/outreach-service/adapters/events"
	outreachsheets "musubime/contexts/outreach/outreach-service/adapters/sheets"
	"musubime/internal/platform/cache"
	"musubime/internal/platform/config"
	"musubime/internal/platform/db"
	"musubime/internal/platform/logging"
	"musubime/internal/platform/messaging"
	"musubime/internal/platform/rowstore"
	"musubime/internal/shared/events"
	"musubime/internal/shared/sheetschema"
)

const moduleName = "internal/app/bootstrap"

// runtime is the wiring shared by the api, worker and cli processes.
type runtime struct {
	cfg       config.Config
	logger    *slog.Logger
	logCloser io.Closer
	location  *time.Location
	store     *rowstore.Store
	postgres  *db.Postgres

	campaigns      campaignservice.Module
	changeRequests changerequestservice.Module
	auth           authservice.Module
	outreach       outreachservice.Module
	assistant      chatbotservice.Module
	notifications  notificationservice.Module
}

type runtimeOptions struct {
	process         string
	requirePostgres bool
	withAssistant   bool
}

func buildRuntime(ctx context.Context, opts runtimeOptions) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, logCloser := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	logger = logger.With("service", cfg.ServiceName, "process", opts.process)
	slog.SetDefault(logger)

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	rt := &runtime{
		cfg:       cfg,
		logger:    logger,
		logCloser: logCloser,
		location:  location,
	}

	store, err := buildRowStore(ctx, cfg, logger)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.store = store

	if opts.requirePostgres && strings.TrimSpace(cfg.PostgresDSN) == "" {
		_ = rt.Close()
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if err := rt.buildNotifications(ctx); err != nil {
		_ = rt.Close()
		return nil, err
	}

	sender := events.Sender{Name: cfg.SenderName, Email: cfg.SenderEmail}
	bus := messaging.NewBus(logger)
	bus.Subscribe(events.TypeWebhookRequested, rt.notifications.Publisher)
	bus.Subscribe(events.TypeEmailRequested, rt.notifications.Publisher)
	publisher := bus
	clock := campaignsheets.SystemClock{Location: location}

	rt.campaigns = campaignservice.NewModule(campaignservice.Dependencies{
		Campaigns: campaignsheets.NewRepository(store, location, logger),
		Clock:     clock,
		Dispatcher: campaignevents.Dispatcher{
			Publisher: publisher,
			Sender:    sender,
			Logger:    logger,
		},
		EnforceTransitions: cfg.EnforceTransitions,
		ReminderLeadDays:   cfg.ReminderLeadDays,
		Location:           location,
		Logger:             logger,
	})
	rt.changeRequests = changerequestservice.NewModule(changerequestservice.Dependencies{
		Repository: changerequestsheets.NewRepository(store, logger),
		Clock:      clock,
		IDs:        changerequestsheets.UUIDGenerator{},
		Notifier:   changerequestevents.Notifier{Publisher: publisher, Sender: sender},
		Location:   location,
		Logger:     logger,
	})
	rt.auth = authservice.NewModule(authservice.Dependencies{
		Credentials:       authsheets.CredentialStore{Store: store},
		AdminIDs:          cfg.AdminIDs,
		AdminEmailDomain:  cfg.AdminEmailDomain,
		AdminPasswordHash: cfg.AdminPasswordHash,
		Logger:            logger,
	})
	outreachRepo := outreachsheets.NewRepository(store, logger)
	rt.outreach = outreachservice.NewModule(outreachservice.Dependencies{
		Candidates: outreachRepo,
		Templates:  outreachRepo,
		Mailer:     outreachevents.Mailer{Publisher: publisher, Sender: sender},
		Clock:      clock,
		IDs:        notificationpostgres.UUIDGenerator{},
		Location:   location,
		Logger:     logger,
	})
	if opts.withAssistant {
		assistant, err := rt.buildAssistant(ctx)
		if err != nil {
			_ = rt.Close()
			return nil, err
		}
		rt.assistant = assistant
	}
	return rt, nil
}

// buildRowStore connects to the spreadsheet. Non-production processes without
// credentials run on the bundled sample sheets; production runs on a client
// that reports ErrCredentialsMissing for every call.
func buildRowStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*rowstore.Store, error) {
	creds := rowstore.Credentials{
		ServiceAccountJSON: []byte(strings.TrimSpace(cfg.GoogleCredentialsJSON)),
		ServiceAccountFile: cfg.GoogleCredentialsFile,
		APIKey:             cfg.GoogleAPIKey,
	}

	var client rowstore.Client
	switch {
	case creds.Configured() && strings.TrimSpace(cfg.SpreadsheetID) != "":
		sheetsClient, err := rowstore.NewSheetsClient(ctx, cfg.SpreadsheetID, creds)
		if err != nil {
			return nil, fmt.Errorf("build sheets client: %w", err)
		}
		client = sheetsClient
	case cfg.IsProduction():
		logger.Error("spreadsheet credentials missing",
			"event", "bootstrap_rowstore_unconfigured",
			"module", moduleName,
			"layer", "platform",
		)
		client = rowstore.UnconfiguredClient{ID: cfg.SpreadsheetID}
	default:
		logger.Warn("spreadsheet credentials missing, serving sample data",
			"event", "bootstrap_rowstore_sample",
			"module", moduleName,
			"layer", "platform",
		)
		client = rowstore.NewMemoryClient("sample", rowstore.AccessReadWrite, sheetschema.SampleTables())
	}

	store := rowstore.New(client, rowstore.Options{
		Cache:   cache.NewTTL[[][]string](cfg.SheetsCacheTTL),
		Schemas: sheetschema.All(),
		Logger:  logger,
	})
	logger.Info("row store ready",
		"event", "bootstrap_rowstore_ready",
		"module", moduleName,
		"layer", "platform",
		"spreadsheet_id", store.SpreadsheetID(),
		"access", client.Access().String(),
	)
	validateSchemas(ctx, store, logger)
	return store, nil
}

func validateSchemas(ctx context.Context, store *rowstore.Store, logger *slog.Logger) {
	for _, schema := range sheetschema.All() {
		missing, err := store.ValidateSchema(ctx, schema)
		if err != nil {
			logger.Warn("sheet schema check skipped",
				"event", "bootstrap_schema_check_skipped",
				"module", moduleName,
				"layer", "platform",
				"sheet", schema.Sheet,
				"error", err.Error(),
			)
			continue
		}
		if len(missing) > 0 {
			logger.Warn("sheet columns missing",
				"event", "bootstrap_schema_columns_missing",
				"module", moduleName,
				"layer", "platform",
				"sheet", schema.Sheet,
				"missing", missing,
			)
		}
	}
}

// buildNotifications keeps the outbox in Postgres when a DSN is configured and
// in process memory otherwise.
func (rt *runtime) buildNotifications(ctx context.Context) error {
	cfg := rt.cfg
	webhooks := webhookadapter.NewSender(cfg.WebhookURL, cfg.WebhookTimeout)
	mailer := smtpadapter.NewMailer(smtpadapter.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromName:  cfg.SenderName,
		FromEmail: cfg.SenderEmail,
	})
	policy := notificationentities.RetryPolicy{MaxAttempts: cfg.OutboxMaxAttempts}

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		rt.notifications = notificationservice.NewInMemoryModule(webhooks, mailer, policy, rt.logger)
		rt.notifications.Relay.BatchSize = cfg.OutboxBatchSize
		return nil
	}

	pg, err := db.Connect(ctx, cfg.PostgresDSN, db.Options{
		MaxOpenConns:    cfg.PostgresMaxOpenConns,
		MaxIdleConns:    cfg.PostgresMaxOpenConns / 2,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return err
	}
	rt.postgres = pg

	repo := notificationpostgres.NewRepository(pg.DB, rt.logger)
	if err := repo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate notification outbox: %w", err)
	}
	rt.notifications = notificationservice.NewModule(notificationservice.Dependencies{
		Outbox:    repo,
		Webhooks:  webhooks,
		Mailer:    mailer,
		Clock:     notificationpostgres.SystemClock{},
		IDs:       notificationpostgres.UUIDGenerator{},
		Policy:    policy,
		BatchSize: cfg.OutboxBatchSize,
		Logger:    rt.logger,
	})
	return nil
}

func (rt *runtime) buildAssistant(ctx context.Context) (chatbotservice.Module, error) {
	faq, err := faqadapter.Load(rt.cfg.FAQFile)
	if err != nil {
		return chatbotservice.Module{}, err
	}
	deps := chatbotservice.Dependencies{
		FAQ:       faq,
		Campaigns: chatbotsheets.CampaignContext{Store: rt.store},
		Logger:    rt.logger,
	}
	if key := strings.TrimSpace(rt.cfg.GeminiAPIKey); key != "" {
		model, err := geminiadapter.NewModel(ctx, key, rt.cfg.GeminiModel)
		if err != nil {
			return chatbotservice.Module{}, fmt.Errorf("build assistant model: %w", err)
		}
		deps.Model = model
	} else {
		rt.logger.Info("assistant model disabled",
			"event", "bootstrap_assistant_model_disabled",
			"module", moduleName,
			"layer", "platform",
		)
	}
	return chatbotservice.NewModule(deps), nil
}

// inProcessRelay reports whether this process owns outbox delivery: the
// in-memory outbox is invisible to the worker process.
func (rt *runtime) inProcessRelay() bool {
	return rt.postgres == nil
}

func (rt *runtime) Close() error {
	var errs []error
	if rt.postgres != nil {
		errs = append(errs, rt.postgres.Close())
	}
	if rt.logCloser != nil {
		errs = append(errs, rt.logCloser.Close())
	}
	return errors.Join(errs...)
}
