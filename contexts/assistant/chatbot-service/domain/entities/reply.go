package entities

type Source string

const (
	SourceFAQ       Source = "faq"
	SourceAssistant Source = "assistant"
	SourceFallback  Source = "fallback"
)

const FallbackAnswer = "ご質問ありがとうございます。担当者が確認のうえご連絡いたします。お急ぎの場合は担当者まで直接お問い合わせください。"

type Reply struct {
	Answer string
	Source Source
	FAQID  string
}

// CampaignSnapshot is the campaign context handed to the assistant.
type CampaignSnapshot struct {
	CampaignID     string
	InfluencerID   string
	InfluencerName string
	Title          string
	Product        string
	Status         string
	Platform       string
	PlanDate       string
	DraftDate      string
	LiveDate       string
	Requirements   string
}

// Lines renders the non-empty snapshot fields as "label: value" lines.
func (s CampaignSnapshot) Lines() []string {
	pairs := [][2]string{
		{"campaign", s.CampaignID},
		{"influencer", s.InfluencerName},
		{"title", s.Title},
		{"product", s.Product},
		{"status", s.Status},
		{"platform", s.Platform},
		{"plan date", s.PlanDate},
		{"draft date", s.DraftDate},
		{"live date", s.LiveDate},
		{"requirements", s.Requirements},
	}
	lines := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if pair[1] != "" {
			lines = append(lines, pair[0]+": "+pair[1])
		}
	}
	return lines
}
