package http

type CandidateDTO struct {
	InfluencerID      string            `json:"influencerId"`
	Email             string            `json:"email"`
	Fields            map[string]string `json:"fields"`
	MatchingTemplates []string          `json:"matchingTemplates"`
}

type ListCandidatesResponse struct {
	Success    bool           `json:"success"`
	Candidates []CandidateDTO `json:"candidates"`
}

type ConditionDTO struct {
	Field    string `json:"field" validate:"required"`
	Operator string `json:"operator" validate:"required,oneof=equals not_equals contains not_contains empty not_empty"`
	Value    string `json:"value"`
}

type TemplateDTO struct {
	ID         string         `json:"id"`
	Name       string         `json:"name" validate:"required"`
	Conditions []ConditionDTO `json:"conditions" validate:"dive"`
	Subject    string         `json:"subject" validate:"required"`
	Body       string         `json:"body" validate:"required"`
}

type ListTemplatesResponse struct {
	Success   bool          `json:"success"`
	Templates []TemplateDTO `json:"templates"`
}

type SaveTemplateResponse struct {
	Success  bool        `json:"success"`
	Created  bool        `json:"created"`
	Template TemplateDTO `json:"template"`
}

type PreviewRequest struct {
	TemplateID   string            `json:"templateId,omitempty"`
	Template     *TemplateDTO      `json:"template,omitempty"`
	InfluencerID string            `json:"influencerId,omitempty"`
	Fields       map[string]string `json:"fields,omitempty"`
}

type PreviewResponse struct {
	Success bool   `json:"success"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type SendRequest struct {
	TemplateID       string   `json:"templateId" validate:"required"`
	InfluencerIDs    []string `json:"influencerIds" validate:"required,min=1,max=500"`
	IgnoreConditions bool     `json:"ignoreConditions,omitempty"`
}

type SendItemDTO struct {
	InfluencerID string `json:"influencerId"`
	Success      bool   `json:"success"`
	Skipped      bool   `json:"skipped,omitempty"`
	Error        string `json:"error,omitempty"`
}

type SendResponse struct {
	Success bool          `json:"success"`
	Total   int           `json:"total"`
	Sent    int           `json:"sent"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
	Items   []SendItemDTO `json:"items"`
}
