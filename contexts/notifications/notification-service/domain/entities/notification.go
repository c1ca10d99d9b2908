package entities

import "time"

type Channel string

const (
	ChannelWebhook Channel = "webhook"
	ChannelEmail   Channel = "email"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	// StatusSkipped marks rows whose channel is not configured in this deployment.
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

type Webhook struct {
	Event        string            `json:"event"`
	CampaignID   string            `json:"campaign_id,omitempty"`
	InfluencerID string            `json:"influencer_id,omitempty"`
	SenderName   string            `json:"sender_name,omitempty"`
	SenderEmail  string            `json:"sender_email,omitempty"`
	Fields       map[string]string `json:"fields,omitempty"`
}

type Email struct {
	Event        string `json:"event"`
	CampaignID   string `json:"campaign_id,omitempty"`
	InfluencerID string `json:"influencer_id,omitempty"`
	FromName     string `json:"from_name,omitempty"`
	FromEmail    string `json:"from_email,omitempty"`
	To           string `json:"to"`
	ToName       string `json:"to_name,omitempty"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
}

// Notification is one outbound delivery. Exactly one of Webhook or Email is set.
type Notification struct {
	ID            string
	EventID       string
	Source        string
	Channel       Channel
	Webhook       *Webhook
	Email         *Email
	Status        Status
	Attempts      int
	LastError     string
	NextAttemptAt time.Time
	CreatedAt     time.Time
	DeliveredAt   *time.Time
}

func (n Notification) Event() string {
	switch {
	case n.Webhook != nil:
		return n.Webhook.Event
	case n.Email != nil:
		return n.Email.Event
	default:
		return ""
	}
}

func (n Notification) CampaignID() string {
	switch {
	case n.Webhook != nil:
		return n.Webhook.CampaignID
	case n.Email != nil:
		return n.Email.CampaignID
	default:
		return ""
	}
}

func (n Notification) Valid() bool {
	switch n.Channel {
	case ChannelWebhook:
		return n.Webhook != nil && n.Webhook.Event != ""
	case ChannelEmail:
		return n.Email != nil && n.Email.To != ""
	default:
		return false
	}
}
