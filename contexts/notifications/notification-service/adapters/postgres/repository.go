package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"musubime/contexts/notifications/notification-service/adapters/outboxrow"
	"musubime/contexts/notifications/notification-service/domain/entities"
	domainerrors "musubime/contexts/notifications/notification-service/domain/errors"
	"musubime/contexts/notifications/notification-service/ports"
	"musubime/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository stores the notification outbox in Postgres so the worker process
// can deliver what the API enqueued.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&notificationModel{})
}

func (r *Repository) Append(ctx context.Context, notification entities.Notification) error {
	message, err := outboxrow.ToMessage(notification)
	if err != nil {
		return err
	}
	row := notificationModelFromMessage(message)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notification_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Debug("notification already enqueued",
			"event", "notification_outbox_duplicate",
			"module", "notifications/notification-service",
			"layer", "adapter",
			"notification_id", row.NotificationID,
		)
	}
	return nil
}

func (r *Repository) ListDue(ctx context.Context, now time.Time, limit int) ([]entities.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []notificationModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", string(outbox.StatusPending), now.UTC()).
		Order("next_attempt_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return r.toEntities(rows)
}

func (r *Repository) MarkDelivered(ctx context.Context, id string, attempts int, at time.Time, skipped bool) error {
	status := outbox.StatusDelivered
	if skipped {
		status = outbox.StatusSkipped
	}
	return r.update(ctx, id, map[string]any{
		"status":       string(status),
		"retry_count":  attempts,
		"last_error":   "",
		"delivered_at": at.UTC(),
	})
}

func (r *Repository) MarkRetry(ctx context.Context, id string, attempts int, next time.Time, lastError string) error {
	return r.update(ctx, id, map[string]any{
		"retry_count":     attempts,
		"next_attempt_at": next.UTC(),
		"last_error":      lastError,
	})
}

func (r *Repository) MarkFailed(ctx context.Context, id string, attempts int, lastError string) error {
	return r.update(ctx, id, map[string]any{
		"status":      string(outbox.StatusFailed),
		"retry_count": attempts,
		"last_error":  lastError,
	})
}

func (r *Repository) List(ctx context.Context, filter ports.Filter) ([]entities.Notification, error) {
	query := r.db.WithContext(ctx).Model(&notificationModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Channel != "" {
		query = query.Where("channel = ?", string(filter.Channel))
	}
	if campaignID := strings.TrimSpace(filter.CampaignID); campaignID != "" {
		query = query.Where("campaign_id = ?", campaignID)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	var rows []notificationModel
	if err := query.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toEntities(rows)
}

func (r *Repository) update(ctx context.Context, id string, values map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("notification_id = ?", strings.TrimSpace(id)).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotificationNotFound
	}
	return nil
}

// toEntities drops rows whose payload no longer decodes so one bad row cannot
// stall the relay.
func (r *Repository) toEntities(rows []notificationModel) ([]entities.Notification, error) {
	items := make([]entities.Notification, 0, len(rows))
	for _, row := range rows {
		item, err := outboxrow.FromMessage(row.toMessage())
		if err != nil {
			r.logger.Warn("notification row skipped",
				"event", "notification_outbox_decode_failed",
				"module", "notifications/notification-service",
				"layer", "adapter",
				"notification_id", row.NotificationID,
				"error", err.Error(),
			)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

type notificationModel struct {
	NotificationID string     `gorm:"column:notification_id;primaryKey"`
	EventID        string     `gorm:"column:event_id;index"`
	EventType      string     `gorm:"column:event_type"`
	Source         string     `gorm:"column:source"`
	Channel        string     `gorm:"column:channel"`
	CampaignID     string     `gorm:"column:campaign_id;index"`
	Payload        []byte     `gorm:"column:payload"`
	Status         string     `gorm:"column:status;index:idx_notification_due,priority:1"`
	RetryCount     int        `gorm:"column:retry_count"`
	LastError      string     `gorm:"column:last_error"`
	NextAttemptAt  time.Time  `gorm:"column:next_attempt_at;index:idx_notification_due,priority:2"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	DeliveredAt    *time.Time `gorm:"column:delivered_at"`
}

func (notificationModel) TableName() string {
	return "notification_outbox"
}

func notificationModelFromMessage(message outbox.Message) notificationModel {
	return notificationModel{
		NotificationID: message.ID,
		EventID:        message.EventID,
		EventType:      message.EventType,
		Source:         message.Source,
		Channel:        message.Channel,
		CampaignID:     message.CampaignID,
		Payload:        append([]byte(nil), message.Payload...),
		Status:         string(message.Status),
		RetryCount:     message.RetryCount,
		LastError:      message.LastError,
		NextAttemptAt:  message.NextAttemptAt.UTC(),
		CreatedAt:      message.CreatedAt.UTC(),
		DeliveredAt:    message.DeliveredAt,
	}
}

func (m notificationModel) toMessage() outbox.Message {
	return outbox.Message{
		ID:            m.NotificationID,
		EventID:       m.EventID,
		EventType:     m.EventType,
		Source:        m.Source,
		Channel:       m.Channel,
		CampaignID:    m.CampaignID,
		Payload:       append([]byte(nil), m.Payload...),
		Status:        outbox.Status(m.Status),
		RetryCount:    m.RetryCount,
		LastError:     m.LastError,
		NextAttemptAt: m.NextAttemptAt.UTC(),
		CreatedAt:     m.CreatedAt.UTC(),
		DeliveredAt:   m.DeliveredAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
