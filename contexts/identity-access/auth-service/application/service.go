package application

import (
	"context"
	"log/slog"
	"strings"

	"musubime/contexts/identity-access/auth-service/domain/entities"
	domainerrors "musubime/contexts/identity-access/auth-service/domain/errors"
	"musubime/contexts/identity-access/auth-service/ports"
)

const moduleName = "identity-access/auth-service"

type Service struct {
	Credentials       ports.CredentialStore
	Passwords         ports.PasswordChecker
	Policy            entities.AdminPolicy
	AdminPasswordHash string
	Logger            *slog.Logger
}

// Login resolves the caller. Admin logins check the configured admin hash;
// everyone else is matched against the campaigns sheet.
func (s Service) Login(ctx context.Context, login string, password string) (entities.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return entities.User{}, domainerrors.ErrInvalidLoginInput
	}
	logger := ResolveLogger(s.Logger)

	if s.Policy.IsAdmin(login) {
		if !s.Passwords.Matches(s.AdminPasswordHash, password) {
			s.rejected(logger, login, "admin_password_mismatch")
			return entities.User{}, domainerrors.ErrInvalidCredentials
		}
		user := entities.User{ID: login, Name: "Admin", Role: entities.RoleAdmin}
		if strings.Contains(login, "@") {
			user.Email = login
		}
		s.accepted(logger, user)
		return user, nil
	}

	credential, ok, err := s.Credentials.FindCredential(ctx, login)
	if err != nil {
		return entities.User{}, err
	}
	if !ok || !s.Passwords.Matches(credential.Password, password) {
		s.rejected(logger, login, "credential_mismatch")
		return entities.User{}, domainerrors.ErrInvalidCredentials
	}
	user := entities.User{
		ID:    credential.ID,
		Name:  credential.Name,
		Email: credential.Email,
		Role:  s.Policy.Role(credential.ID, credential.Email),
	}
	s.accepted(logger, user)
	return user, nil
}

func (s Service) accepted(logger *slog.Logger, user entities.User) {
	logger.Info("login accepted",
		"event", "auth_login_accepted",
		"module", moduleName,
		"layer", "application",
		"user_id", user.ID,
		"role", string(user.Role),
	)
}

func (s Service) rejected(logger *slog.Logger, login string, reason string) {
	logger.Warn("login rejected",
		"event", "auth_login_rejected",
		"module", moduleName,
		"layer", "application",
		"login", login,
		"reason", reason,
	)
}
