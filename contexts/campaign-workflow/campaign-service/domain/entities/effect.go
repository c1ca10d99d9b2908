package entities

type EffectKind string

const (
	EffectWebhook EffectKind = "webhook"
	EffectEmail   EffectKind = "email"
)

const (
	EventStatusChanged = "status_changed"
	EventSubmitted     = "submission_received"
	EventReminderDue   = "reminder_due"
	EventMessagePosted = "message_posted"
)

// Effect is a post-commit side effect. Use cases return effects after the
// row write succeeded; delivering them never changes the write's outcome.
type Effect struct {
	Kind          EffectKind
	Event         string
	CampaignID    string
	InfluencerID  string
	RecipientName string
	Recipient     string
	Subject       string
	Body          string
	Fields        map[string]string
}

// WebhookEffect builds a webhook effect carrying the campaign context.
func WebhookEffect(event string, campaign Campaign, fields map[string]string) Effect {
	data := map[string]string{
		"influencer_name": campaign.InfluencerName,
		"campaign_title":  campaign.Title,
		"platform":        string(campaign.Platform),
		"platform_label":  campaign.Platform.Label(),
		"status":          string(campaign.Status),
	}
	for key, value := range fields {
		data[key] = value
	}
	return Effect{
		Kind:         EffectWebhook,
		Event:        event,
		CampaignID:   campaign.CampaignID,
		InfluencerID: campaign.InfluencerID,
		Fields:       data,
	}
}
