package campaignservice

import (
	"log/slog"
	"time"

	httpadapter "musubime/contexts/campaign-workflow/campaign-service/adapters/http"
	"musubime/contexts/campaign-workflow/campaign-service/adapters/memory"
	"musubime/contexts/campaign-workflow/campaign-service/application/commands"
	"musubime/contexts/campaign-workflow/campaign-service/application/queries"
	"musubime/contexts/campaign-workflow/campaign-service/application/workers"
	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	"musubime/contexts/campaign-workflow/campaign-service/ports"

	"github.com/go-playground/validator/v10"
)

type Module struct {
	Handler httpadapter.Handler
	Sweep   workers.ReminderSweep
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns          ports.CampaignRepository
	Clock              ports.Clock
	Dispatcher         ports.EffectDispatcher
	EnforceTransitions bool
	ReminderLeadDays   int
	Location           *time.Location
	Logger             *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			ListCampaigns: queries.ListCampaignsUseCase{
				Campaigns: deps.Campaigns,
				Logger:    deps.Logger,
			},
			GetCampaign: queries.GetCampaignUseCase{
				Campaigns: deps.Campaigns,
				Logger:    deps.Logger,
			},
			UpdateStatus: commands.UpdateStatusUseCase{
				Campaigns:          deps.Campaigns,
				Clock:              deps.Clock,
				EnforceTransitions: deps.EnforceTransitions,
				Logger:             deps.Logger,
			},
			Submit: commands.SubmitUseCase{
				Campaigns: deps.Campaigns,
				Clock:     deps.Clock,
				Logger:    deps.Logger,
			},
			AdminAction: commands.AdminActionUseCase{
				Campaigns: deps.Campaigns,
				Clock:     deps.Clock,
				Logger:    deps.Logger,
			},
			AppendMessage: commands.AppendMessageUseCase{
				Campaigns: deps.Campaigns,
				Clock:     deps.Clock,
				Logger:    deps.Logger,
			},
			SendReminder: commands.SendReminderUseCase{
				Campaigns: deps.Campaigns,
				Clock:     deps.Clock,
				Logger:    deps.Logger,
			},
			Onboarding: commands.OnboardingUseCase{
				Campaigns: deps.Campaigns,
				Logger:    deps.Logger,
			},
			Dispatcher: deps.Dispatcher,
			Validate:   validator.New(),
			Location:   deps.Location,
			Logger:     deps.Logger,
		},
		Sweep: workers.ReminderSweep{
			Campaigns:  deps.Campaigns,
			Dispatcher: deps.Dispatcher,
			Clock:      deps.Clock,
			LeadDays:   deps.ReminderLeadDays,
			Logger:     deps.Logger,
		},
	}
}

// NewInMemoryModule backs the module with a memory store that also records
// dispatched effects.
func NewInMemoryModule(seed []entities.Campaign, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Campaigns:        store,
		Clock:            store,
		Dispatcher:       store,
		ReminderLeadDays: 2,
		Logger:           logger,
	})
	module.Store = store
	return module
}
