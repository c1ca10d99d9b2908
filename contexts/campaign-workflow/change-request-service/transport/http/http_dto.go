package http

type FieldChangeDTO struct {
	Field        string `json:"field"`
	CurrentValue string `json:"currentValue"`
	NewValue     string `json:"newValue"`
}

type ChangeRequestDTO struct {
	ID               string           `json:"id"`
	CampaignID       string           `json:"campaignId"`
	InfluencerID     string           `json:"influencerId"`
	Type             string           `json:"type"`
	Status           string           `json:"status"`
	RequestedChanges []FieldChangeDTO `json:"requestedChanges"`
	Reason           string           `json:"reason,omitempty"`
	AdminResponse    string           `json:"adminResponse,omitempty"`
	CreatedAt        string           `json:"createdAt"`
	ResolvedAt       *string          `json:"resolvedAt"`
}

type ListChangeRequestsResponse struct {
	Success        bool               `json:"success"`
	ChangeRequests []ChangeRequestDTO `json:"changeRequests"`
}

type CreateChangeRequestRequest struct {
	CampaignID   string `json:"campaignId" validate:"required"`
	InfluencerID string `json:"influencerId" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=plan_date_change draft_date_change live_date_change"`
	NewValue     string `json:"newValue" validate:"required,datetime=2006-01-02"`
	Reason       string `json:"reason,omitempty" validate:"max=1000"`
}

type ResolveChangeRequestRequest struct {
	ID            string `json:"id" validate:"required"`
	CampaignID    string `json:"campaignId,omitempty"`
	InfluencerID  string `json:"influencerId,omitempty"`
	Decision      string `json:"decision" validate:"required"`
	AdminResponse string `json:"adminResponse,omitempty" validate:"max=1000"`
}

type ChangeRequestResponse struct {
	Success       bool             `json:"success"`
	ChangeRequest ChangeRequestDTO `json:"changeRequest"`
}
