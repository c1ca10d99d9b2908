package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"musubime/contexts/notifications/notification-service/adapters/outboxrow"
	"musubime/contexts/notifications/notification-service/domain/entities"
	domainerrors "musubime/contexts/notifications/notification-service/domain/errors"
	"musubime/contexts/notifications/notification-service/ports"
	"musubime/internal/shared/outbox"

	"github.com/google/uuid"
)

// Store is the process-local outbox used when no database is configured.
// It also records deliveries so tests can stand in for webhook and SMTP.
type Store struct {
	mu       sync.Mutex
	rows     map[string]outbox.Message
	order    []string
	now      time.Time
	sent     []entities.Notification
	failWith error
	disabled bool
}

func NewStore() *Store {
	return &Store{rows: make(map[string]outbox.Message)}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now.UTC()
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func (s *Store) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}

// FailDeliveries makes subsequent sends return err. Passing nil restores delivery.
func (s *Store) FailDeliveries(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// DisableDelivery makes sends report an unconfigured channel.
func (s *Store) DisableDelivery(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = disabled
}

func (s *Store) Sent() []entities.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Notification(nil), s.sent...)
}

func (s *Store) Append(_ context.Context, notification entities.Notification) error {
	row, err := outboxrow.ToMessage(notification)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[row.ID]; exists {
		return nil
	}
	s.rows[row.ID] = row
	s.order = append(s.order, row.ID)
	return nil
}

func (s *Store) ListDue(_ context.Context, now time.Time, limit int) ([]entities.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	due := make([]outbox.Message, 0)
	for _, id := range s.order {
		row := s.rows[id]
		if row.Due(now) {
			due = append(due, row)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextAttemptAt.Before(due[j].NextAttemptAt)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return decode(due)
}

func (s *Store) MarkDelivered(_ context.Context, id string, attempts int, at time.Time, skipped bool) error {
	return s.update(id, func(row *outbox.Message) {
		row.Status = outbox.StatusDelivered
		if skipped {
			row.Status = outbox.StatusSkipped
		}
		row.RetryCount = attempts
		row.LastError = ""
		deliveredAt := at.UTC()
		row.DeliveredAt = &deliveredAt
	})
}

func (s *Store) MarkRetry(_ context.Context, id string, attempts int, next time.Time, lastError string) error {
	return s.update(id, func(row *outbox.Message) {
		row.RetryCount = attempts
		row.NextAttemptAt = next.UTC()
		row.LastError = lastError
	})
}

func (s *Store) MarkFailed(_ context.Context, id string, attempts int, lastError string) error {
	return s.update(id, func(row *outbox.Message) {
		row.Status = outbox.StatusFailed
		row.RetryCount = attempts
		row.LastError = lastError
	})
}

func (s *Store) List(_ context.Context, filter ports.Filter) ([]entities.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]outbox.Message, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		row := s.rows[s.order[i]]
		if filter.Status != "" && string(row.Status) != string(filter.Status) {
			continue
		}
		if filter.Channel != "" && row.Channel != string(filter.Channel) {
			continue
		}
		if filter.CampaignID != "" && row.CampaignID != filter.CampaignID {
			continue
		}
		rows = append(rows, row)
		if filter.Limit > 0 && len(rows) == filter.Limit {
			break
		}
	}
	return decode(rows)
}

func (s *Store) SendWebhook(_ context.Context, webhook entities.Webhook) (bool, error) {
	return s.record(entities.Notification{Channel: entities.ChannelWebhook, Webhook: &webhook})
}

func (s *Store) SendEmail(_ context.Context, email entities.Email) (bool, error) {
	return s.record(entities.Notification{Channel: entities.ChannelEmail, Email: &email})
}

func (s *Store) record(notification entities.Notification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}
	if s.disabled {
		return false, nil
	}
	s.sent = append(s.sent, notification)
	return true, nil
}

func (s *Store) update(id string, apply func(*outbox.Message)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return domainerrors.ErrNotificationNotFound
	}
	apply(&row)
	s.rows[id] = row
	return nil
}

func decode(rows []outbox.Message) ([]entities.Notification, error) {
	items := make([]entities.Notification, 0, len(rows))
	for _, row := range rows {
		item, err := outboxrow.FromMessage(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
