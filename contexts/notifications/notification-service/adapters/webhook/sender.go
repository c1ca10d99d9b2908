package webhookadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"musubime/contexts/notifications/notification-service/domain/entities"
)

// Sender posts webhook notifications as JSON to a single endpoint.
type Sender struct {
	URL    string
	Client *http.Client
}

func NewSender(url string, timeout time.Duration) Sender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return Sender{
		URL:    strings.TrimSpace(url),
		Client: &http.Client{Timeout: timeout},
	}
}

type requestBody struct {
	Event        string            `json:"event"`
	CampaignID   string            `json:"campaign_id,omitempty"`
	InfluencerID string            `json:"influencer_id,omitempty"`
	Sender       senderBody        `json:"sender"`
	Data         map[string]string `json:"data,omitempty"`
	SentAt       string            `json:"sent_at"`
}

type senderBody struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (s Sender) SendWebhook(ctx context.Context, webhook entities.Webhook) (bool, error) {
	if s.URL == "" {
		return false, nil
	}
	body, err := json.Marshal(requestBody{
		Event:        webhook.Event,
		CampaignID:   webhook.CampaignID,
		InfluencerID: webhook.InfluencerID,
		Sender:       senderBody{Name: webhook.SenderName, Email: webhook.SenderEmail},
		Data:         webhook.Fields,
		SentAt:       time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return false, fmt.Errorf("encode webhook: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("post webhook: unexpected status %d", resp.StatusCode)
	}
	return true, nil
}
