package outbox

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Message is one outbox row. Relays read due pending rows, deliver them and
// record the attempt outcome on the same row.
type Message struct {
	ID            string
	EventID       string
	EventType     string
	Source        string
	Channel       string
	CampaignID    string
	Payload       []byte
	Status        Status
	RetryCount    int
	LastError     string
	NextAttemptAt time.Time
	CreatedAt     time.Time
	DeliveredAt   *time.Time
}

// Due reports whether the row should be picked up at now.
func (m Message) Due(now time.Time) bool {
	return m.Status == StatusPending && !m.NextAttemptAt.After(now)
}
