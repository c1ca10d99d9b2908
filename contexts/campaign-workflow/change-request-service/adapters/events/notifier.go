package eventsadapter

import (
	"context"
	"time"

	"musubime/contexts/campaign-workflow/change-request-service/domain/entities"
	"musubime/internal/shared/events"
)

// Notifier publishes change request webhooks through the notification outbox.
type Notifier struct {
	Publisher events.Publisher
	Sender    events.Sender
}

func (n Notifier) Notify(ctx context.Context, event string, request entities.ChangeRequest) error {
	fields := map[string]string{
		"request_id":     request.ID,
		"request_type":   string(request.Type),
		"request_status": string(request.Status),
	}
	if request.Reason != "" {
		fields["reason"] = request.Reason
	}
	if request.AdminResponse != "" {
		fields["admin_response"] = request.AdminResponse
	}
	for _, change := range request.RequestedChanges {
		fields[string(change.Field)+"_current"] = change.CurrentValue
		fields[string(change.Field)+"_new"] = change.NewValue
	}
	envelope, err := events.New(
		events.TypeWebhookRequested,
		"change-request-service",
		"change_request",
		request.ID,
		events.WebhookPayload{
			Event:        event,
			CampaignID:   request.CampaignID,
			InfluencerID: request.InfluencerID,
			Sender:       n.Sender,
			Fields:       fields,
		},
		time.Now(),
	)
	if err != nil {
		return err
	}
	return n.Publisher.Publish(ctx, envelope)
}
