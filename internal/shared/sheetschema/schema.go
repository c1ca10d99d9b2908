// Package sheetschema names the sheets and columns of the Musubime spreadsheet.
// Every context reads the spreadsheet through these constants so that a header
// rename is a one-line change.
package sheetschema

import "musubime/internal/platform/rowstore"

const (
	CampaignsSheet = "campaigns"
	SelectedSheet  = "selected"
	TemplatesSheet = "templates"
)

// campaigns sheet.
const (
	CampaignID        = "id_campaign"
	InfluencerID      = "id_influencer"
	InfluencerName    = "name_influencer"
	ContactEmail      = "contact_email"
	CampaignTitle     = "title_campaign"
	ProductName       = "name_product"
	Status            = "status_dashboard"
	Platform          = "platform"
	Spend             = "spend_jpy"
	DateMeeting       = "date_meeting"
	DatePlan          = "date_plan"
	DateDraft         = "date_draft"
	DateLive          = "date_live"
	DateStatusUpdated = "date_status_updated"
	MessageLog        = "message_dashboard"
	URLPlan           = "url_plan"
	URLDraft          = "url_draft"
	URLContent        = "url_content"
	LegacyRequests    = "requests_dashboard"
	EventLog          = "log_events"
	Notes             = "notes_dashboard"
	Requirements      = "requirements"
	ReferenceLinks    = "url_reference"
	Password          = "password_dashboard"

	// SurveyPrefix marks onboarding-survey answer columns such as survey_address.
	SurveyPrefix = "survey_"
)

// selected sheet.
const (
	SelectedName         = "name_influencer"
	SelectedDisplayName  = "name_display"
	SelectedSender       = "sender"
	SelectedHadResponse  = "had_response"
	SelectedStatus       = "status"
	SelectedDateOutreach = "date_outreach"
)

// templates sheet.
const (
	TemplateID         = "id"
	TemplateName       = "name"
	TemplateConditions = "conditions_json"
	TemplateSubject    = "subject"
	TemplateBody       = "body"
)

var Campaigns = rowstore.Schema{
	Sheet:        CampaignsSheet,
	DataStartRow: 4,
	Columns: []string{
		CampaignID, InfluencerID, InfluencerName, ContactEmail, CampaignTitle, ProductName,
		Status, Platform, Spend, DateMeeting, DatePlan, DateDraft, DateLive, DateStatusUpdated,
		MessageLog, URLPlan, URLDraft, URLContent, LegacyRequests, EventLog, Notes,
		Requirements, ReferenceLinks,
	},
}

var Selected = rowstore.Schema{
	Sheet:        SelectedSheet,
	DataStartRow: 1,
	Columns: []string{
		InfluencerID, SelectedName, SelectedDisplayName, ContactEmail, Platform,
		SelectedSender, SelectedHadResponse, SelectedStatus, SelectedDateOutreach,
	},
}

var Templates = rowstore.Schema{
	Sheet:        TemplatesSheet,
	DataStartRow: 1,
	Columns:      []string{TemplateID, TemplateName, TemplateConditions, TemplateSubject, TemplateBody},
}

func All() []rowstore.Schema {
	return []rowstore.Schema{Campaigns, Selected, Templates}
}

// CampaignKey addresses one campaign row; campaign ids repeat across influencers.
func CampaignKey(campaignID string, influencerID string) rowstore.Key {
	return rowstore.KeyOf(CampaignID, campaignID).And(InfluencerID, influencerID)
}
