package httpadapter

import (
	"context"
	"fmt"
	"log/slog"

	"musubime/contexts/notifications/notification-service/application"
	"musubime/contexts/notifications/notification-service/domain/entities"
	domainerrors "musubime/contexts/notifications/notification-service/domain/errors"
	"musubime/contexts/notifications/notification-service/ports"
	httptransport "musubime/contexts/notifications/notification-service/transport/http"

	"github.com/go-playground/validator/v10"
)

type Handler struct {
	Service  application.Service
	Validate *validator.Validate
	Logger   *slog.Logger
}

func (h Handler) ListNotificationsHandler(ctx context.Context, actor ports.Actor, query httptransport.ListNotificationsQuery) (httptransport.ListNotificationsResponse, error) {
	v := h.Validate
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(query); err != nil {
		return httptransport.ListNotificationsResponse{}, fmt.Errorf("%w: %s", domainerrors.ErrInvalidRequest, err.Error())
	}
	items, err := h.Service.List(ctx, actor, ports.Filter{
		Status:     entities.Status(query.Status),
		Channel:    entities.Channel(query.Channel),
		CampaignID: query.CampaignID,
		Limit:      query.Limit,
	})
	if err != nil {
		return httptransport.ListNotificationsResponse{}, err
	}
	out := make([]httptransport.NotificationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toDTO(item))
	}
	return httptransport.ListNotificationsResponse{Success: true, Notifications: out}, nil
}

func toDTO(item entities.Notification) httptransport.NotificationDTO {
	dto := httptransport.NotificationDTO{
		ID:            item.ID,
		EventID:       item.EventID,
		Event:         item.Event(),
		Source:        item.Source,
		Channel:       string(item.Channel),
		CampaignID:    item.CampaignID(),
		Status:        string(item.Status),
		Attempts:      item.Attempts,
		LastError:     item.LastError,
		NextAttemptAt: item.NextAttemptAt,
		CreatedAt:     item.CreatedAt,
		DeliveredAt:   item.DeliveredAt,
	}
	switch {
	case item.Webhook != nil:
		dto.Fields = item.Webhook.Fields
	case item.Email != nil:
		dto.Recipient = item.Email.To
		dto.Subject = item.Email.Subject
	}
	return dto
}
