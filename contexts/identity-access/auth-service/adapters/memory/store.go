package memory

import (
	"context"
	"strings"
	"sync"

	"musubime/contexts/identity-access/auth-service/ports"
)

type Store struct {
	mu          sync.RWMutex
	credentials []ports.Credential
}

func NewStore(seed []ports.Credential) *Store {
	return &Store{credentials: append([]ports.Credential(nil), seed...)}
}

func (s *Store) FindCredential(_ context.Context, login string) (ports.Credential, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	login = strings.TrimSpace(login)
	for _, credential := range s.credentials {
		if credential.ID == login || strings.EqualFold(credential.Email, login) {
			return credential, true, nil
		}
	}
	return ports.Credential{}, false, nil
}
