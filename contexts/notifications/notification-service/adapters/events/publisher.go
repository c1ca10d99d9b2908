package eventsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	application "musubime/contexts/notifications/notification-service/application"
	"musubime/contexts/notifications/notification-service/domain/entities"
	domainerrors "musubime/contexts/notifications/notification-service/domain/errors"
	"musubime/internal/shared/events"
)

// Publisher accepts notification envelopes from other contexts and stores them
// in the outbox. The envelope event id becomes the notification id, so a
// republished envelope is not delivered twice.
type Publisher struct {
	Service application.Service
}

func (p Publisher) Publish(ctx context.Context, envelope events.Envelope) error {
	notification, err := decode(envelope)
	if err != nil {
		return err
	}
	_, err = p.Service.Enqueue(ctx, notification)
	return err
}

func decode(envelope events.Envelope) (entities.Notification, error) {
	notification := entities.Notification{
		ID:        envelope.EventID,
		EventID:   envelope.EventID,
		Source:    envelope.SourceService,
		CreatedAt: envelope.OccurredAtUTC,
	}
	switch envelope.EventType {
	case events.TypeWebhookRequested:
		var payload events.WebhookPayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return entities.Notification{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidNotification, err)
		}
		notification.Channel = entities.ChannelWebhook
		notification.Webhook = &entities.Webhook{
			Event:        payload.Event,
			CampaignID:   payload.CampaignID,
			InfluencerID: payload.InfluencerID,
			SenderName:   payload.Sender.Name,
			SenderEmail:  payload.Sender.Email,
			Fields:       payload.Fields,
		}
	case events.TypeEmailRequested:
		var payload events.EmailPayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return entities.Notification{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidNotification, err)
		}
		notification.Channel = entities.ChannelEmail
		notification.Email = &entities.Email{
			Event:        payload.Event,
			CampaignID:   payload.CampaignID,
			InfluencerID: payload.InfluencerID,
			FromName:     payload.Sender.Name,
			FromEmail:    payload.Sender.Email,
			To:           payload.To,
			ToName:       payload.ToName,
			Subject:      payload.Subject,
			Body:         payload.Body,
		}
	default:
		return entities.Notification{}, fmt.Errorf("%w: event type %q", domainerrors.ErrInvalidNotification, envelope.EventType)
	}
	return notification, nil
}
