package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/campaign-service/domain/errors"
	"musubime/contexts/campaign-workflow/campaign-service/ports"
)

// Store keeps campaign rows in process. It also serves as clock and effect
// sink for tests and local runs.
type Store struct {
	mu sync.RWMutex

	campaigns  []entities.Campaign
	readOnly   bool
	writes     int
	now        time.Time
	dispatched []entities.Effect
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make([]entities.Campaign, 0, len(seed))
	for _, item := range seed {
		campaigns = append(campaigns, clone(item))
	}
	return &Store{campaigns: campaigns}
}

// SetReadOnly makes every write fail as if only read credentials were configured.
func (s *Store) SetReadOnly(readOnly bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = readOnly
}

// SetNow pins the clock; a zero time restores the wall clock.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func (s *Store) Dispatched() []entities.Effect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Effect(nil), s.dispatched...)
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now.IsZero() {
		return time.Now()
	}
	return s.now
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	influencerID := strings.TrimSpace(filter.InfluencerID)
	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, item := range s.campaigns {
		if influencerID != "" && item.InfluencerID != influencerID {
			continue
		}
		items = append(items, clone(item))
	}
	return items, nil
}

func (s *Store) GetCampaign(_ context.Context, key ports.CampaignKey, _ bool) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(key)
	if idx < 0 {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return clone(s.campaigns[idx]), nil
}

func (s *Store) ApplyChange(_ context.Context, change ports.CampaignChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return domainerrors.ErrWriteNotPermitted
	}
	idx := s.indexOf(change.Key)
	if idx < 0 {
		return domainerrors.ErrCampaignNotFound
	}
	if change.Empty() {
		return nil
	}

	item := s.campaigns[idx]
	if change.Status != "" {
		item.Status = change.Status
		updated := change.StatusUpdatedAt
		item.StatusUpdatedAt = &updated
	}
	switch change.URLKind {
	case entities.URLKindPlan:
		item.PlanURL = change.URL
	case entities.URLKindDraft:
		item.DraftURL = change.URL
	case entities.URLKindContent:
		item.ContentURL = change.URL
	}
	item.MessageLog = append(item.MessageLog, change.Messages...)
	if len(change.Survey) > 0 {
		if item.Extras == nil {
			item.Extras = make(map[string]string, len(change.Survey))
		}
		for key, value := range change.Survey {
			item.Extras["survey_"+key] = value
		}
	}
	s.campaigns[idx] = item
	s.writes++
	return nil
}

func (s *Store) Dispatch(_ context.Context, effects []entities.Effect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatched = append(s.dispatched, effects...)
	return nil
}

func (s *Store) indexOf(key ports.CampaignKey) int {
	campaignID := strings.TrimSpace(key.CampaignID)
	influencerID := strings.TrimSpace(key.InfluencerID)
	for i, item := range s.campaigns {
		if item.CampaignID == campaignID && item.InfluencerID == influencerID {
			return i
		}
	}
	return -1
}

func clone(item entities.Campaign) entities.Campaign {
	item.MessageLog = append([]entities.MessageEntry(nil), item.MessageLog...)
	item.Requirements = append([]string(nil), item.Requirements...)
	item.ReferenceLinks = append([]string(nil), item.ReferenceLinks...)
	if item.Extras != nil {
		extras := make(map[string]string, len(item.Extras))
		for key, value := range item.Extras {
			extras[key] = value
		}
		item.Extras = extras
	}
	return item
}
