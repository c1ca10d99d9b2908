package eventsadapter

import (
	"context"
	"time"

	"musubime/contexts/outreach/outreach-service/ports"
	"musubime/internal/shared/events"
)

const outreachEvent = "outreach_sent"

// Mailer queues outreach emails in the notification outbox.
type Mailer struct {
	Publisher events.Publisher
	Sender    events.Sender
}

func (m Mailer) Enqueue(ctx context.Context, email ports.OutboundEmail) error {
	envelope, err := events.New(
		events.TypeEmailRequested,
		"outreach-service",
		"candidate",
		email.InfluencerID,
		events.EmailPayload{
			Event:        outreachEvent,
			InfluencerID: email.InfluencerID,
			Sender:       m.Sender,
			To:           email.To,
			ToName:       email.ToName,
			Subject:      email.Subject,
			Body:         email.Body,
		},
		time.Now(),
	)
	if err != nil {
		return err
	}
	return m.Publisher.Publish(ctx, envelope)
}
