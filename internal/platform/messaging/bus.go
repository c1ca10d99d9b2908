package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"musubime/internal/shared/events"
)

// ErrNoSubscriber means an envelope type has no registered handler.
var ErrNoSubscriber = errors.New("no subscriber for event type")

// Bus routes envelopes to the publishers subscribed to their event type.
// Delivery is synchronous: Publish returns once every subscriber accepted
// (or rejected) the envelope, so producers see outbox write failures.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]events.Publisher
	logger      *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[string][]events.Publisher),
		logger:      logger,
	}
}

func (b *Bus) Subscribe(eventType string, subscriber events.Publisher) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], subscriber)
}

func (b *Bus) Publish(ctx context.Context, envelope events.Envelope) error {
	b.mu.RLock()
	subs := append([]events.Publisher(nil), b.subscribers[envelope.EventType]...)
	b.mu.RUnlock()

	if len(subs) == 0 {
		b.logger.Warn("event has no subscriber",
			"event", "bus_publish_unrouted",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"event_id", envelope.EventID,
			"event_type", envelope.EventType,
		)
		return fmt.Errorf("%w: %s", ErrNoSubscriber, envelope.EventType)
	}

	var errs []error
	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sub.Publish(ctx, envelope); err != nil {
			b.logger.Error("subscriber rejected event",
				"event", "bus_publish_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"event_id", envelope.EventID,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	b.logger.Debug("event published",
		"event", "bus_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"event_id", envelope.EventID,
		"event_type", envelope.EventType,
		"source_service", envelope.SourceService,
		"subscribers", len(subs),
	)
	return nil
}
