// Package outboxrow converts notifications to and from the shared outbox row shape.
package outboxrow

import (
	"encoding/json"
	"fmt"

	"musubime/contexts/notifications/notification-service/domain/entities"
	"musubime/internal/shared/outbox"
)

func ToMessage(n entities.Notification) (outbox.Message, error) {
	var (
		payload []byte
		err     error
	)
	switch n.Channel {
	case entities.ChannelWebhook:
		payload, err = json.Marshal(n.Webhook)
	case entities.ChannelEmail:
		payload, err = json.Marshal(n.Email)
	default:
		return outbox.Message{}, fmt.Errorf("encode notification %s: unknown channel %q", n.ID, n.Channel)
	}
	if err != nil {
		return outbox.Message{}, fmt.Errorf("encode notification %s: %w", n.ID, err)
	}
	return outbox.Message{
		ID:            n.ID,
		EventID:       n.EventID,
		EventType:     n.Event(),
		Source:        n.Source,
		Channel:       string(n.Channel),
		CampaignID:    n.CampaignID(),
		Payload:       payload,
		Status:        outbox.Status(n.Status),
		RetryCount:    n.Attempts,
		LastError:     n.LastError,
		NextAttemptAt: n.NextAttemptAt.UTC(),
		CreatedAt:     n.CreatedAt.UTC(),
		DeliveredAt:   n.DeliveredAt,
	}, nil
}

func FromMessage(m outbox.Message) (entities.Notification, error) {
	n := entities.Notification{
		ID:            m.ID,
		EventID:       m.EventID,
		Source:        m.Source,
		Channel:       entities.Channel(m.Channel),
		Status:        entities.Status(m.Status),
		Attempts:      m.RetryCount,
		LastError:     m.LastError,
		NextAttemptAt: m.NextAttemptAt.UTC(),
		CreatedAt:     m.CreatedAt.UTC(),
		DeliveredAt:   m.DeliveredAt,
	}
	switch n.Channel {
	case entities.ChannelWebhook:
		var webhook entities.Webhook
		if err := json.Unmarshal(m.Payload, &webhook); err != nil {
			return entities.Notification{}, fmt.Errorf("decode notification %s: %w", m.ID, err)
		}
		n.Webhook = &webhook
	case entities.ChannelEmail:
		var email entities.Email
		if err := json.Unmarshal(m.Payload, &email); err != nil {
			return entities.Notification{}, fmt.Errorf("decode notification %s: %w", m.ID, err)
		}
		n.Email = &email
	default:
		return entities.Notification{}, fmt.Errorf("decode notification %s: unknown channel %q", m.ID, m.Channel)
	}
	return n, nil
}
