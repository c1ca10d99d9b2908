package ports

import "context"

// Credential is the stored login record of an influencer.
type Credential struct {
	ID       string
	Name     string
	Email    string
	Password string
}

type CredentialStore interface {
	// FindCredential matches an influencer id or contact email. Missing
	// records return ok=false without error.
	FindCredential(ctx context.Context, login string) (Credential, bool, error)
}

type PasswordChecker interface {
	Matches(stored string, password string) bool
}
