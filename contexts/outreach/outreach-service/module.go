package outreachservice

import (
	"log/slog"
	"time"

	httpadapter "musubime/contexts/outreach/outreach-service/adapters/http"
	"musubime/contexts/outreach/outreach-service/adapters/memory"
	"musubime/contexts/outreach/outreach-service/application"
	"musubime/contexts/outreach/outreach-service/domain/entities"
	"musubime/contexts/outreach/outreach-service/ports"

	"github.com/go-playground/validator/v10"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Candidates ports.CandidateRepository
	Templates  ports.TemplateRepository
	Mailer     ports.Mailer
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Location   *time.Location
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Candidates: deps.Candidates,
				Templates:  deps.Templates,
				Mailer:     deps.Mailer,
				Clock:      deps.Clock,
				IDs:        deps.IDs,
				Location:   deps.Location,
				Logger:     deps.Logger,
			},
			Validate: validator.New(),
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(candidates []entities.Candidate, templates []entities.Template, logger *slog.Logger) Module {
	store := memory.NewStore(candidates, templates)
	module := NewModule(Dependencies{
		Candidates: store,
		Templates:  store,
		Mailer:     store,
		Clock:      store,
		IDs:        store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
