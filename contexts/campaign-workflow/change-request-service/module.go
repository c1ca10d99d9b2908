package changerequestservice

import (
	"log/slog"
	"time"

	httpadapter "musubime/contexts/campaign-workflow/change-request-service/adapters/http"
	"musubime/contexts/campaign-workflow/change-request-service/adapters/memory"
	"musubime/contexts/campaign-workflow/change-request-service/application"
	"musubime/contexts/campaign-workflow/change-request-service/ports"

	"github.com/go-playground/validator/v10"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Notifier   ports.Notifier
	Location   *time.Location
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Repo:     deps.Repository,
				Clock:    deps.Clock,
				IDs:      deps.IDs,
				Notifier: deps.Notifier,
				Location: deps.Location,
				Logger:   deps.Logger,
			},
			Validate: validator.New(),
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []ports.CampaignRecord, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDs:        store,
		Notifier:   store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
