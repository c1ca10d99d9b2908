package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TypeWebhookRequested = "notification.webhook_requested"
	TypeEmailRequested   = "notification.email_requested"
)

// Envelope is the event shape exchanged between contexts and persisted in the
// notification outbox.
type Envelope struct {
	EventID        string          `json:"event_id"`
	EventType      string          `json:"event_type"`
	SourceService  string          `json:"source_service"`
	OccurredAtUTC  time.Time       `json:"occurred_at_utc"`
	CorrelationID  string          `json:"correlation_id"`
	EntityType     string          `json:"entity_type"`
	EntityID       string          `json:"entity_id"`
	PayloadVersion int             `json:"payload_version"`
	Payload        json.RawMessage `json:"payload"`
}

// Publisher accepts envelopes for asynchronous delivery.
type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
}

// New wraps payload in an envelope with a fresh event id.
func New(eventType string, source string, entityType string, entityID string, payload any, occurredAt time.Time) (Envelope, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	eventID := uuid.NewString()
	return Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  source,
		OccurredAtUTC:  occurredAt.UTC(),
		CorrelationID:  eventID,
		EntityType:     entityType,
		EntityID:       entityID,
		PayloadVersion: 1,
		Payload:        encoded,
	}, nil
}

// Sender is the fixed "from" metadata attached to outbound notifications.
type Sender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type WebhookPayload struct {
	Event        string            `json:"event"`
	CampaignID   string            `json:"campaign_id,omitempty"`
	InfluencerID string            `json:"influencer_id,omitempty"`
	Sender       Sender            `json:"sender"`
	Fields       map[string]string `json:"fields,omitempty"`
}

type EmailPayload struct {
	Event        string `json:"event"`
	CampaignID   string `json:"campaign_id,omitempty"`
	InfluencerID string `json:"influencer_id,omitempty"`
	Sender       Sender `json:"sender"`
	To           string `json:"to"`
	ToName       string `json:"to_name,omitempty"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
}
