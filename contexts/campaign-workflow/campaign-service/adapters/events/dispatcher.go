package eventsadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	"musubime/internal/shared/events"
)

const sourceService = "campaign-service"

// Dispatcher turns post-commit effects into notification envelopes.
type Dispatcher struct {
	Publisher events.Publisher
	Sender    events.Sender
	Logger    *slog.Logger
}

func (d Dispatcher) Dispatch(ctx context.Context, effects []entities.Effect) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var errs []error
	for _, effect := range effects {
		envelope, err := d.envelope(effect)
		if err == nil {
			err = d.Publisher.Publish(ctx, envelope)
		}
		if err != nil {
			logger.Warn("campaign effect dispatch failed",
				"event", "campaign_effect_dispatch_failed",
				"module", "campaign-workflow/campaign-service",
				"layer", "adapter",
				"effect_kind", string(effect.Kind),
				"effect_event", effect.Event,
				"campaign_id", effect.CampaignID,
				"error", err.Error(),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d Dispatcher) envelope(effect entities.Effect) (events.Envelope, error) {
	entityID := effect.CampaignID + "/" + effect.InfluencerID
	now := time.Now()
	switch effect.Kind {
	case entities.EffectEmail:
		return events.New(events.TypeEmailRequested, sourceService, "campaign", entityID, events.EmailPayload{
			Event:        effect.Event,
			CampaignID:   effect.CampaignID,
			InfluencerID: effect.InfluencerID,
			Sender:       d.Sender,
			To:           effect.Recipient,
			ToName:       effect.RecipientName,
			Subject:      effect.Subject,
			Body:         effect.Body,
		}, now)
	default:
		return events.New(events.TypeWebhookRequested, sourceService, "campaign", entityID, events.WebhookPayload{
			Event:        effect.Event,
			CampaignID:   effect.CampaignID,
			InfluencerID: effect.InfluencerID,
			Sender:       d.Sender,
			Fields:       effect.Fields,
		}, now)
	}
}
