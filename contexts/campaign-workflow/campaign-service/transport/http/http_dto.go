package http

type MessageDTO struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type SchedulesDTO struct {
	Meeting *string `json:"meeting"`
	Plan    *string `json:"plan"`
	Draft   *string `json:"draft"`
	Live    *string `json:"live"`
}

type CampaignDTO struct {
	CampaignID          string            `json:"campaignId"`
	InfluencerID        string            `json:"influencerId"`
	InfluencerName      string            `json:"influencerName"`
	ContactEmail        string            `json:"contactEmail,omitempty"`
	Title               string            `json:"title"`
	ProductName         string            `json:"productName"`
	Status              string            `json:"status"`
	Step                string            `json:"step"`
	Platform            string            `json:"platform"`
	PlatformLabel       string            `json:"platformLabel"`
	ContractedPrice     int64             `json:"contractedPrice"`
	Schedules           SchedulesDTO      `json:"schedules"`
	PlanURL             string            `json:"planUrl,omitempty"`
	DraftURL            string            `json:"draftUrl,omitempty"`
	ContentURL          string            `json:"contentUrl,omitempty"`
	Notes               string            `json:"notes,omitempty"`
	MessageLog          []MessageDTO      `json:"messageLog"`
	Requirements        []string          `json:"requirements"`
	ReferenceLinks      []string          `json:"referenceLinks"`
	StatusUpdatedAt     *string           `json:"statusUpdatedAt"`
	AvailableActions    []string          `json:"availableActions"`
	SubmissionAvailable bool              `json:"submissionAvailable"`
	Extras              map[string]string `json:"extras,omitempty"`
}

type ListCampaignsResponse struct {
	Success   bool          `json:"success"`
	Campaigns []CampaignDTO `json:"campaigns"`
}

type GetCampaignResponse struct {
	Success  bool        `json:"success"`
	Campaign CampaignDTO `json:"campaign"`
}

type UpdateStatusRequest struct {
	CampaignID   string `json:"campaignId" validate:"required"`
	InfluencerID string `json:"influencerId" validate:"required"`
	NewStatus    string `json:"newStatus" validate:"required"`
	SubmittedURL string `json:"submittedUrl,omitempty" validate:"omitempty,url"`
	URLType      string `json:"urlType,omitempty"`
}

type SubmitRequest struct {
	CampaignID   string `json:"campaignId" validate:"required"`
	InfluencerID string `json:"influencerId" validate:"required"`
	URL          string `json:"url" validate:"required,url"`
}

type AdminActionRequest struct {
	CampaignID      string `json:"campaignId" validate:"required"`
	InfluencerID    string `json:"influencerId" validate:"required"`
	Action          string `json:"action" validate:"required"`
	FeedbackMessage string `json:"feedbackMessage,omitempty"`
}

type AppendMessageRequest struct {
	CampaignID   string `json:"campaignId" validate:"required"`
	InfluencerID string `json:"influencerId" validate:"required"`
	Type         string `json:"type,omitempty"`
	Content      string `json:"content" validate:"required"`
}

type ReminderRequest struct {
	CampaignID   string `json:"campaignId" validate:"required"`
	InfluencerID string `json:"influencerId" validate:"required"`
	Kind         string `json:"kind,omitempty" validate:"omitempty,oneof=plan draft live"`
}

type MutationResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status,omitempty"`
	Step    string `json:"step,omitempty"`
}

type OnboardingRequest struct {
	InfluencerID string            `json:"influencerId" validate:"required"`
	Answers      map[string]string `json:"answers" validate:"required,min=1"`
}

type OnboardingRowDTO struct {
	CampaignID string `json:"campaignId"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

type OnboardingResponse struct {
	Success   bool               `json:"success"`
	Total     int                `json:"total"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Rows      []OnboardingRowDTO `json:"rows"`
}
