package notificationservice

import (
	"log/slog"

	eventsadapter "musubime/contexts/notifications/notification-service/adapters/events"
	httpadapter "musubime/contexts/notifications/notification-service/adapters/http"
	"musubime/contexts/notifications/notification-service/adapters/memory"
	"musubime/contexts/notifications/notification-service/application"
	"musubime/contexts/notifications/notification-service/application/workers"
	"musubime/contexts/notifications/notification-service/domain/entities"
	"musubime/contexts/notifications/notification-service/ports"

	"github.com/go-playground/validator/v10"
)

// Module exposes the notification outbox: the publisher other contexts emit
// into, the relay that delivers, and the admin read endpoint.
type Module struct {
	Handler   httpadapter.Handler
	Publisher eventsadapter.Publisher
	Relay     workers.OutboxRelay
	Store     *memory.Store
}

type Dependencies struct {
	Outbox    ports.OutboxRepository
	Webhooks  ports.WebhookSender
	Mailer    ports.Mailer
	Clock     ports.Clock
	IDs       ports.IDGenerator
	Policy    entities.RetryPolicy
	BatchSize int
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDs:    deps.IDs,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service:  service,
			Validate: validator.New(),
			Logger:   deps.Logger,
		},
		Publisher: eventsadapter.Publisher{Service: service},
		Relay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Webhooks:  deps.Webhooks,
			Mailer:    deps.Mailer,
			Clock:     deps.Clock,
			Policy:    deps.Policy,
			BatchSize: deps.BatchSize,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule keeps the outbox in process. Delivery goes through the
// given senders, or through the store's recorder when they are nil.
func NewInMemoryModule(webhooks ports.WebhookSender, mailer ports.Mailer, policy entities.RetryPolicy, logger *slog.Logger) Module {
	store := memory.NewStore()
	if webhooks == nil {
		webhooks = store
	}
	if mailer == nil {
		mailer = store
	}
	module := NewModule(Dependencies{
		Outbox:   store,
		Webhooks: webhooks,
		Mailer:   mailer,
		Clock:    store,
		IDs:      store,
		Policy:   policy,
		Logger:   logger,
	})
	module.Store = store
	return module
}
