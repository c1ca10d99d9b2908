package services

import (
	"strings"
	"time"

	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
)

// RawCampaign is a campaign row as untrusted strings, one field per known column.
type RawCampaign struct {
	CampaignID        string
	InfluencerID      string
	InfluencerName    string
	ContactEmail      string
	Title             string
	ProductName       string
	Status            string
	Platform          string
	Spend             string
	DateMeeting       string
	DatePlan          string
	DateDraft         string
	DateLive          string
	DateStatusUpdated string
	MessageLog        string
	URLPlan           string
	URLDraft          string
	URLContent        string
	Notes             string
	Requirements      string
	ReferenceLinks    string
	Extras            map[string]string
}

// Assemble builds a Campaign. It never fails; every field has a default.
func Assemble(raw RawCampaign, loc *time.Location) entities.Campaign {
	extras := make(map[string]string, len(raw.Extras))
	for key, value := range raw.Extras {
		extras[key] = value
	}
	return entities.Campaign{
		CampaignID:      strings.TrimSpace(raw.CampaignID),
		InfluencerID:    strings.TrimSpace(raw.InfluencerID),
		InfluencerName:  strings.TrimSpace(raw.InfluencerName),
		ContactEmail:    strings.TrimSpace(raw.ContactEmail),
		Title:           strings.TrimSpace(raw.Title),
		ProductName:     strings.TrimSpace(raw.ProductName),
		Status:          entities.NormalizeStatus(raw.Status),
		Platform:        entities.ParsePlatform(raw.Platform),
		ContractedPrice: ParsePrice(raw.Spend),
		Schedules: entities.Schedules{
			Meeting: ParseDate(raw.DateMeeting, loc),
			Plan:    ParseDate(raw.DatePlan, loc),
			Draft:   ParseDate(raw.DateDraft, loc),
			Live:    ParseDate(raw.DateLive, loc),
		},
		PlanURL:         strings.TrimSpace(raw.URLPlan),
		DraftURL:        strings.TrimSpace(raw.URLDraft),
		ContentURL:      strings.TrimSpace(raw.URLContent),
		Notes:           raw.Notes,
		MessageLog:      ParseMessageLog(raw.MessageLog),
		Requirements:    SplitLines(raw.Requirements),
		ReferenceLinks:  SplitLines(raw.ReferenceLinks),
		StatusUpdatedAt: ParseDate(raw.DateStatusUpdated, loc),
		Extras:          extras,
	}
}
