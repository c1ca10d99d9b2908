package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"musubime/contexts/outreach/outreach-service/domain/entities"
	domainerrors "musubime/contexts/outreach/outreach-service/domain/errors"
	"musubime/contexts/outreach/outreach-service/ports"

	"github.com/google/uuid"
)

// Store keeps candidates, templates and queued emails in process.
type Store struct {
	mu sync.RWMutex

	candidates []entities.Candidate
	templates  []entities.Template
	outbox     []ports.OutboundEmail
	failFor    map[string]error
	now        time.Time
}

func NewStore(candidates []entities.Candidate, templates []entities.Template) *Store {
	store := &Store{failFor: make(map[string]error)}
	for _, candidate := range candidates {
		store.candidates = append(store.candidates, cloneCandidate(candidate))
	}
	store.templates = append(store.templates, templates...)
	return store
}

// FailEnqueue makes Enqueue fail for one influencer.
func (s *Store) FailEnqueue(influencerID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failFor[influencerID] = err
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now.IsZero() {
		return time.Now()
	}
	return s.now
}

func (s *Store) NewID(context.Context) (string, error) {
	return "TPL-" + strings.ToUpper(uuid.NewString()[:8]), nil
}

func (s *Store) Outbox() []ports.OutboundEmail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.OutboundEmail(nil), s.outbox...)
}

func (s *Store) ListCandidates(context.Context, bool) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Candidate, 0, len(s.candidates))
	for _, candidate := range s.candidates {
		out = append(out, cloneCandidate(candidate))
	}
	return out, nil
}

func (s *Store) MarkContacted(_ context.Context, influencerID string, status string, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, candidate := range s.candidates {
		if candidate.InfluencerID != influencerID {
			continue
		}
		if candidate.Fields == nil {
			candidate.Fields = make(map[string]string)
		}
		candidate.Fields["status"] = status
		candidate.Fields["date_outreach"] = date
		s.candidates[i] = candidate
		return nil
	}
	return domainerrors.ErrCandidateNotFound
}

func (s *Store) ListTemplates(context.Context, bool) ([]entities.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Template(nil), s.templates...), nil
}

func (s *Store) SaveTemplate(_ context.Context, template entities.Template) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.templates {
		if existing.ID == template.ID {
			s.templates[i] = template
			return false, nil
		}
	}
	s.templates = append(s.templates, template)
	return true, nil
}

func (s *Store) Enqueue(_ context.Context, email ports.OutboundEmail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failFor[email.InfluencerID]; err != nil {
		return err
	}
	s.outbox = append(s.outbox, email)
	return nil
}

func cloneCandidate(candidate entities.Candidate) entities.Candidate {
	fields := make(map[string]string, len(candidate.Fields))
	for key, value := range candidate.Fields {
		fields[key] = value
	}
	candidate.Fields = fields
	return candidate
}
