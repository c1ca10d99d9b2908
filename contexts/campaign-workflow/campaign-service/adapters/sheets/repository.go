package sheetsadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/campaign-service/domain/errors"
	"musubime/contexts/campaign-workflow/campaign-service/domain/services"
	"musubime/contexts/campaign-workflow/campaign-service/ports"
	"musubime/internal/platform/rowstore"
	"musubime/internal/shared/sheetschema"
)

// hidden columns never leave the adapter.
var hidden = map[string]bool{
	sheetschema.Password:       true,
	sheetschema.LegacyRequests: true,
	sheetschema.EventLog:       true,
}

var known = func() map[string]bool {
	out := make(map[string]bool, len(sheetschema.Campaigns.Columns))
	for _, column := range sheetschema.Campaigns.Columns {
		out[column] = true
	}
	return out
}()

// Repository reads and writes the campaigns sheet.
type Repository struct {
	store    *rowstore.Store
	location *time.Location
	logger   *slog.Logger
}

func NewRepository(store *rowstore.Store, location *time.Location, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	if location == nil {
		location = time.Local
	}
	return &Repository{store: store, location: location, logger: logger}
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	rows, err := r.store.FetchColumns(ctx, rowstore.Query{
		Sheet:        sheetschema.CampaignsSheet,
		InfluencerID: filter.InfluencerID,
		ForceRefresh: filter.ForceRefresh,
	})
	if err != nil {
		return nil, translate(err)
	}
	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		if row.Get(sheetschema.CampaignID) == "" {
			continue
		}
		items = append(items, services.Assemble(toRaw(row), r.location))
	}
	return items, nil
}

func (r *Repository) GetCampaign(ctx context.Context, key ports.CampaignKey, forceRefresh bool) (entities.Campaign, error) {
	items, err := r.ListCampaigns(ctx, ports.CampaignFilter{
		InfluencerID: key.InfluencerID,
		ForceRefresh: forceRefresh,
	})
	if err != nil {
		return entities.Campaign{}, err
	}
	for _, item := range items {
		if item.CampaignID == key.CampaignID && item.InfluencerID == key.InfluencerID {
			return item, nil
		}
	}
	return entities.Campaign{}, domainerrors.ErrCampaignNotFound
}

// ApplyChange issues one batched write: status, timestamp, URL, survey cells
// and message log appends together.
func (r *Repository) ApplyChange(ctx context.Context, change ports.CampaignChange) error {
	update := rowstore.Update{Key: sheetschema.CampaignKey(change.Key.CampaignID, change.Key.InfluencerID)}
	if change.Status != "" {
		update.Cells = append(update.Cells,
			rowstore.CellWrite{Column: sheetschema.Status, Value: string(change.Status)},
			rowstore.CellWrite{Column: sheetschema.DateStatusUpdated, Value: change.StatusUpdatedAt.In(r.location).Format(time.RFC3339)},
		)
	}
	if change.URL != "" {
		column, ok := urlColumn(change.URLKind)
		if !ok {
			return domainerrors.ErrInvalidURLType
		}
		update.Cells = append(update.Cells, rowstore.CellWrite{Column: column, Value: change.URL})
	}
	surveyKeys := make([]string, 0, len(change.Survey))
	for key := range change.Survey {
		surveyKeys = append(surveyKeys, key)
	}
	sort.Strings(surveyKeys)
	for _, key := range surveyKeys {
		update.Cells = append(update.Cells, rowstore.CellWrite{
			Column: sheetschema.SurveyPrefix + key,
			Value:  change.Survey[key],
		})
	}
	for _, entry := range change.Messages {
		update.Appends = append(update.Appends, rowstore.JSONAppend{Column: sheetschema.MessageLog, Entry: entry})
	}

	if err := r.store.Apply(ctx, sheetschema.CampaignsSheet, update); err != nil {
		r.logger.Warn("campaign row write failed",
			"event", "campaign_row_write_failed",
			"module", "campaign-workflow/campaign-service",
			"layer", "adapter",
			"campaign_id", change.Key.CampaignID,
			"influencer_id", change.Key.InfluencerID,
			"error", err.Error(),
		)
		return translate(err)
	}
	return nil
}

func urlColumn(kind entities.URLKind) (string, bool) {
	switch kind {
	case entities.URLKindPlan:
		return sheetschema.URLPlan, true
	case entities.URLKindDraft:
		return sheetschema.URLDraft, true
	case entities.URLKindContent:
		return sheetschema.URLContent, true
	default:
		return "", false
	}
}

func toRaw(row rowstore.Row) services.RawCampaign {
	extras := make(map[string]string)
	for column, value := range row {
		if known[column] || hidden[column] {
			continue
		}
		extras[column] = value
	}
	return services.RawCampaign{
		CampaignID:        row.Get(sheetschema.CampaignID),
		InfluencerID:      row.Get(sheetschema.InfluencerID),
		InfluencerName:    row.Get(sheetschema.InfluencerName),
		ContactEmail:      row.Get(sheetschema.ContactEmail),
		Title:             row.Get(sheetschema.CampaignTitle),
		ProductName:       row.Get(sheetschema.ProductName),
		Status:            row.Get(sheetschema.Status),
		Platform:          row.Get(sheetschema.Platform),
		Spend:             row.Get(sheetschema.Spend),
		DateMeeting:       row.Get(sheetschema.DateMeeting),
		DatePlan:          row.Get(sheetschema.DatePlan),
		DateDraft:         row.Get(sheetschema.DateDraft),
		DateLive:          row.Get(sheetschema.DateLive),
		DateStatusUpdated: row.Get(sheetschema.DateStatusUpdated),
		MessageLog:        row.Get(sheetschema.MessageLog),
		URLPlan:           row.Get(sheetschema.URLPlan),
		URLDraft:          row.Get(sheetschema.URLDraft),
		URLContent:        row.Get(sheetschema.URLContent),
		Notes:             row.Get(sheetschema.Notes),
		Requirements:      row.Get(sheetschema.Requirements),
		ReferenceLinks:    row.Get(sheetschema.ReferenceLinks),
		Extras:            extras,
	}
}

func translate(err error) error {
	switch {
	case errors.Is(err, rowstore.ErrWriteNotPermitted), errors.Is(err, rowstore.ErrCredentialsMissing):
		return fmt.Errorf("%w: %w", domainerrors.ErrWriteNotPermitted, err)
	case errors.Is(err, rowstore.ErrRowNotFound):
		return fmt.Errorf("%w: %w", domainerrors.ErrCampaignNotFound, err)
	case errors.Is(err, rowstore.ErrColumnNotFound):
		return fmt.Errorf("%w: %w", domainerrors.ErrInvalidCampaignInput, err)
	default:
		return err
	}
}
