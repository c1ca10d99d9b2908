package authservice

import (
	"log/slog"

	cryptoadapter "musubime/contexts/identity-access/auth-service/adapters/crypto"
	httpadapter "musubime/contexts/identity-access/auth-service/adapters/http"
	"musubime/contexts/identity-access/auth-service/adapters/memory"
	"musubime/contexts/identity-access/auth-service/application"
	"musubime/contexts/identity-access/auth-service/domain/entities"
	"musubime/contexts/identity-access/auth-service/ports"

	"github.com/go-playground/validator/v10"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Credentials       ports.CredentialStore
	AdminIDs          []string
	AdminEmailDomain  string
	AdminPasswordHash string
	Logger            *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Credentials: deps.Credentials,
				Passwords:   cryptoadapter.PasswordChecker{},
				Policy: entities.AdminPolicy{
					IDs:         deps.AdminIDs,
					EmailDomain: deps.AdminEmailDomain,
				},
				AdminPasswordHash: deps.AdminPasswordHash,
				Logger:            deps.Logger,
			},
			Validate: validator.New(),
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []ports.Credential, deps Dependencies) Module {
	store := memory.NewStore(seed)
	deps.Credentials = store
	module := NewModule(deps)
	module.Store = store
	return module
}
