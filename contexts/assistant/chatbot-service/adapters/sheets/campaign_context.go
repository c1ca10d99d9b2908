package sheetsadapter

import (
	"context"
	"errors"
	"strings"

	"musubime/contexts/assistant/chatbot-service/domain/entities"
	"musubime/internal/platform/rowstore"
	"musubime/internal/shared/sheetschema"
)

var snapshotColumns = []string{
	sheetschema.CampaignID,
	sheetschema.InfluencerID,
	sheetschema.InfluencerName,
	sheetschema.CampaignTitle,
	sheetschema.ProductName,
	sheetschema.Status,
	sheetschema.Platform,
	sheetschema.DatePlan,
	sheetschema.DateDraft,
	sheetschema.DateLive,
	sheetschema.Requirements,
}

// CampaignContext reads the columns the assistant may quote. Contact details
// and passwords are never fetched.
type CampaignContext struct {
	Store *rowstore.Store
}

func (c CampaignContext) Snapshot(ctx context.Context, campaignID string, influencerID string) (entities.CampaignSnapshot, bool, error) {
	rows, err := c.Store.FetchColumns(ctx, rowstore.Query{
		Sheet:        sheetschema.CampaignsSheet,
		Columns:      snapshotColumns,
		InfluencerID: influencerID,
	})
	if err != nil {
		if errors.Is(err, rowstore.ErrCredentialsMissing) {
			return entities.CampaignSnapshot{}, false, nil
		}
		return entities.CampaignSnapshot{}, false, err
	}
	for _, row := range rows {
		if strings.TrimSpace(row.Get(sheetschema.CampaignID)) != campaignID {
			continue
		}
		return entities.CampaignSnapshot{
			CampaignID:     campaignID,
			InfluencerID:   influencerID,
			InfluencerName: strings.TrimSpace(row.Get(sheetschema.InfluencerName)),
			Title:          strings.TrimSpace(row.Get(sheetschema.CampaignTitle)),
			Product:        strings.TrimSpace(row.Get(sheetschema.ProductName)),
			Status:         strings.TrimSpace(row.Get(sheetschema.Status)),
			Platform:       strings.TrimSpace(row.Get(sheetschema.Platform)),
			PlanDate:       strings.TrimSpace(row.Get(sheetschema.DatePlan)),
			DraftDate:      strings.TrimSpace(row.Get(sheetschema.DateDraft)),
			LiveDate:       strings.TrimSpace(row.Get(sheetschema.DateLive)),
			Requirements:   strings.TrimSpace(row.Get(sheetschema.Requirements)),
		}, true, nil
	}
	return entities.CampaignSnapshot{}, false, nil
}
