package memory

import (
	"context"
	"sync"

	"musubime/contexts/assistant/chatbot-service/domain/entities"
	"musubime/contexts/assistant/chatbot-service/ports"
)

// Store serves snapshots from memory and records prompts sent to a scripted model.
type Store struct {
	mu        sync.Mutex
	snapshots map[[2]string]entities.CampaignSnapshot
	answers   []string
	modelErr  error
	prompts   []ports.Prompt
}

func NewStore(snapshots ...entities.CampaignSnapshot) *Store {
	store := &Store{snapshots: make(map[[2]string]entities.CampaignSnapshot, len(snapshots))}
	for _, snapshot := range snapshots {
		store.snapshots[[2]string{snapshot.CampaignID, snapshot.InfluencerID}] = snapshot
	}
	return store
}

// Script queues model answers returned in order. When the queue is empty the
// model returns err.
func (s *Store) Script(err error, answers ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, answers...)
	s.modelErr = err
}

func (s *Store) Prompts() []ports.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.Prompt(nil), s.prompts...)
}

func (s *Store) Snapshot(_ context.Context, campaignID string, influencerID string) (entities.CampaignSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[[2]string{campaignID, influencerID}]
	return snapshot, ok, nil
}

func (s *Store) Answer(_ context.Context, prompt ports.Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", s.modelErr
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}
