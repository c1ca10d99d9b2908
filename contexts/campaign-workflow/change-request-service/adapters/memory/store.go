package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"musubime/contexts/campaign-workflow/change-request-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/change-request-service/domain/errors"
	"musubime/contexts/campaign-workflow/change-request-service/ports"

	"github.com/google/uuid"
)

// Store keeps change request logs per campaign row in process.
type Store struct {
	mu sync.RWMutex

	records  []ports.CampaignRecord
	readOnly bool
	writes   int
	now      time.Time
	notified []string
}

func NewStore(seed []ports.CampaignRecord) *Store {
	records := make([]ports.CampaignRecord, 0, len(seed))
	for _, record := range seed {
		records = append(records, clone(record))
	}
	return &Store{records: records}
}

func (s *Store) SetReadOnly(readOnly bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = readOnly
}

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

// Notified lists "event:request_id" pairs in the order they were sent.
func (s *Store) Notified() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.notified...)
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
	return uuid.NewString(), nil
}

func (s *Store) ListRecords(_ context.Context, filter ports.Filter) ([]ports.CampaignRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	influencerID := strings.TrimSpace(filter.InfluencerID)
	out := make([]ports.CampaignRecord, 0, len(s.records))
	for _, record := range s.records {
		if influencerID != "" && record.Key.InfluencerID != influencerID {
			continue
		}
		out = append(out, clone(record))
	}
	return out, nil
}

func (s *Store) GetRecord(_ context.Context, key ports.CampaignKey, _ bool) (ports.CampaignRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(key)
	if idx < 0 {
		return ports.CampaignRecord{}, domainerrors.ErrCampaignNotFound
	}
	return clone(s.records[idx]), nil
}

func (s *Store) AppendEvents(_ context.Context, key ports.CampaignKey, events []entities.Event, dates map[entities.Field]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return domainerrors.ErrWriteNotPermitted
	}
	idx := s.indexOf(key)
	if idx < 0 {
		return domainerrors.ErrCampaignNotFound
	}
	record := s.records[idx]
	record.Events = append(record.Events, events...)
	if len(dates) > 0 && record.Dates == nil {
		record.Dates = make(map[entities.Field]string, len(dates))
	}
	for field, value := range dates {
		record.Dates[field] = value
	}
	s.records[idx] = record
	s.writes++
	return nil
}

func (s *Store) Notify(_ context.Context, event string, request entities.ChangeRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notified = append(s.notified, event+":"+request.ID)
	return nil
}

func (s *Store) indexOf(key ports.CampaignKey) int {
	for i, record := range s.records {
		if record.Key.CampaignID == strings.TrimSpace(key.CampaignID) &&
			record.Key.InfluencerID == strings.TrimSpace(key.InfluencerID) {
			return i
		}
	}
	return -1
}

func clone(record ports.CampaignRecord) ports.CampaignRecord {
	dates := make(map[entities.Field]string, len(record.Dates))
	for field, value := range record.Dates {
		dates[field] = value
	}
	record.Dates = dates
	record.Events = append([]entities.Event(nil), record.Events...)
	record.Legacy = append([]entities.ChangeRequest(nil), record.Legacy...)
	return record
}
