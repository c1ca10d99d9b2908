package ports

import (
	"context"
	"time"

	"musubime/contexts/notifications/notification-service/domain/entities"
)

const RoleAdmin = "admin"

type Filter struct {
	Status     entities.Status
	Channel    entities.Channel
	CampaignID string
	Limit      int
}

// OutboxRepository persists notifications between enqueue and delivery.
// Append is idempotent on the notification id.
type OutboxRepository interface {
	Append(ctx context.Context, notification entities.Notification) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]entities.Notification, error)
	MarkDelivered(ctx context.Context, id string, attempts int, at time.Time, skipped bool) error
	MarkRetry(ctx context.Context, id string, attempts int, next time.Time, lastError string) error
	MarkFailed(ctx context.Context, id string, attempts int, lastError string) error
	List(ctx context.Context, filter Filter) ([]entities.Notification, error)
}

// WebhookSender reports delivered=false without error when no endpoint is configured.
type WebhookSender interface {
	SendWebhook(ctx context.Context, webhook entities.Webhook) (bool, error)
}

// Mailer reports delivered=false without error when no mail server is configured.
type Mailer interface {
	SendEmail(ctx context.Context, email entities.Email) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
