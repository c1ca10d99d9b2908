package http

import "time"

type ListNotificationsQuery struct {
	Status     string `validate:"omitempty,oneof=pending delivered skipped failed"`
	Channel    string `validate:"omitempty,oneof=webhook email"`
	CampaignID string `validate:"omitempty,max=128"`
	Limit      int    `validate:"gte=0,lte=500"`
}

type NotificationDTO struct {
	ID            string            `json:"id"`
	EventID       string            `json:"eventId"`
	Event         string            `json:"event"`
	Source        string            `json:"source"`
	Channel       string            `json:"channel"`
	CampaignID    string            `json:"campaignId,omitempty"`
	Recipient     string            `json:"recipient,omitempty"`
	Subject       string            `json:"subject,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
	Status        string            `json:"status"`
	Attempts      int               `json:"attempts"`
	LastError     string            `json:"lastError,omitempty"`
	NextAttemptAt time.Time         `json:"nextAttemptAt"`
	CreatedAt     time.Time         `json:"createdAt"`
	DeliveredAt   *time.Time        `json:"deliveredAt,omitempty"`
}

type ListNotificationsResponse struct {
	Success       bool              `json:"success"`
	Notifications []NotificationDTO `json:"notifications"`
}
