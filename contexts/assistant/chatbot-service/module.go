package chatbotservice

import (
	"log/slog"

	httpadapter "musubime/contexts/assistant/chatbot-service/adapters/http"
	"musubime/contexts/assistant/chatbot-service/adapters/memory"
	"musubime/contexts/assistant/chatbot-service/application"
	"musubime/contexts/assistant/chatbot-service/ports"

	"github.com/go-playground/validator/v10"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	FAQ        ports.KnowledgeBase
	Campaigns  ports.CampaignContext
	Model      ports.LanguageModel
	Confidence float64
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				FAQ:        deps.FAQ,
				Campaigns:  deps.Campaigns,
				Model:      deps.Model,
				Confidence: deps.Confidence,
				Logger:     deps.Logger,
			},
			Validate: validator.New(),
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule answers from faq and uses the store as both campaign
// context and scripted model.
func NewInMemoryModule(faq ports.KnowledgeBase, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		FAQ:       faq,
		Campaigns: store,
		Model:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
