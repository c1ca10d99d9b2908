package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	application "musubime/contexts/notifications/notification-service/application"
	"musubime/contexts/notifications/notification-service/domain/entities"
	"musubime/contexts/notifications/notification-service/ports"
)

const moduleName = "notifications/notification-service"

var errUnsupportedChannel = errors.New("unsupported notification channel")

// OutboxRelay delivers due notifications and records each attempt. Failed
// deliveries are rescheduled with backoff until the retry policy is exhausted.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Webhooks  ports.WebhookSender
	Mailer    ports.Mailer
	Clock     ports.Clock
	Policy    entities.RetryPolicy
	BatchSize int
	Logger    *slog.Logger
}

type RelayResult struct {
	Picked    int
	Delivered int
	Skipped   int
	Retried   int
	Failed    int
}

func (r OutboxRelay) RunOnce(ctx context.Context) (RelayResult, error) {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 50
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	due, err := r.Outbox.ListDue(ctx, now, limit)
	if err != nil {
		logger.Error("notification outbox list failed",
			"event", "notification_outbox_list_failed",
			"module", moduleName,
			"layer", "worker",
			"error", err.Error(),
		)
		return RelayResult{}, err
	}

	result := RelayResult{Picked: len(due)}
	for _, item := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		attempts := item.Attempts + 1
		delivered, sendErr := r.deliver(ctx, item)
		if sendErr == nil {
			if err := r.Outbox.MarkDelivered(ctx, item.ID, attempts, now, !delivered); err != nil {
				logger.Error("notification outbox mark delivered failed",
					"event", "notification_outbox_mark_delivered_failed",
					"module", moduleName,
					"layer", "worker",
					"notification_id", item.ID,
					"error", err.Error(),
				)
				return result, err
			}
			if delivered {
				result.Delivered++
			} else {
				result.Skipped++
			}
			continue
		}

		next, exhausted := r.Policy.Next(attempts, now)
		if exhausted {
			err = r.Outbox.MarkFailed(ctx, item.ID, attempts, sendErr.Error())
			result.Failed++
		} else {
			err = r.Outbox.MarkRetry(ctx, item.ID, attempts, next, sendErr.Error())
			result.Retried++
		}
		logger.Warn("notification delivery failed",
			"event", "notification_delivery_failed",
			"module", moduleName,
			"layer", "worker",
			"notification_id", item.ID,
			"channel", string(item.Channel),
			"attempts", attempts,
			"exhausted", exhausted,
			"error", sendErr.Error(),
		)
		if err != nil {
			logger.Error("notification outbox mark attempt failed",
				"event", "notification_outbox_mark_attempt_failed",
				"module", moduleName,
				"layer", "worker",
				"notification_id", item.ID,
				"error", err.Error(),
			)
			return result, err
		}
	}

	if len(due) > 0 {
		logger.Info("notification outbox relay cycle completed",
			"event", "notification_outbox_relay_completed",
			"module", moduleName,
			"layer", "worker",
			"picked_count", result.Picked,
			"delivered_count", result.Delivered,
			"skipped_count", result.Skipped,
			"retried_count", result.Retried,
			"failed_count", result.Failed,
		)
	}
	return result, nil
}

func (r OutboxRelay) deliver(ctx context.Context, item entities.Notification) (bool, error) {
	switch {
	case item.Channel == entities.ChannelWebhook && item.Webhook != nil && r.Webhooks != nil:
		return r.Webhooks.SendWebhook(ctx, *item.Webhook)
	case item.Channel == entities.ChannelEmail && item.Email != nil && r.Mailer != nil:
		return r.Mailer.SendEmail(ctx, *item.Email)
	case item.Channel == entities.ChannelWebhook || item.Channel == entities.ChannelEmail:
		return false, nil
	default:
		return false, errUnsupportedChannel
	}
}
