package http

type ChatRequest struct {
	CampaignID   string `json:"campaignId"`
	InfluencerID string `json:"influencerId"`
	Message      string `json:"message" validate:"required,max=8000"`
}

type ChatResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer"`
	Source  string `json:"source"`
	FAQID   string `json:"faqId,omitempty"`
}
