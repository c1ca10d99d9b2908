package sheetsadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"musubime/contexts/campaign-workflow/change-request-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/change-request-service/domain/errors"
	"musubime/contexts/campaign-workflow/change-request-service/ports"
	"musubime/internal/platform/rowstore"
	"musubime/internal/shared/sheetschema"
)

var dateColumns = map[entities.Field]string{
	entities.FieldPlanDate:  sheetschema.DatePlan,
	entities.FieldDraftDate: sheetschema.DateDraft,
	entities.FieldLiveDate:  sheetschema.DateLive,
}

var readColumns = []string{
	sheetschema.CampaignID,
	sheetschema.InfluencerID,
	sheetschema.DatePlan,
	sheetschema.DateDraft,
	sheetschema.DateLive,
	sheetschema.EventLog,
	sheetschema.LegacyRequests,
}

// Repository keeps change requests as events in the log_events column.
// requests_dashboard is read as a legacy import source and never written.
type Repository struct {
	store  *rowstore.Store
	logger *slog.Logger
}

func NewRepository(store *rowstore.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, logger: logger}
}

func (r *Repository) ListRecords(ctx context.Context, filter ports.Filter) ([]ports.CampaignRecord, error) {
	rows, err := r.store.FetchColumns(ctx, rowstore.Query{
		Sheet:        sheetschema.CampaignsSheet,
		Columns:      readColumns,
		InfluencerID: filter.InfluencerID,
		ForceRefresh: filter.ForceRefresh,
	})
	if err != nil {
		return nil, translate(err)
	}
	records := make([]ports.CampaignRecord, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Get(sheetschema.CampaignID)) == "" {
			continue
		}
		records = append(records, r.toRecord(row))
	}
	return records, nil
}

func (r *Repository) GetRecord(ctx context.Context, key ports.CampaignKey, forceRefresh bool) (ports.CampaignRecord, error) {
	records, err := r.ListRecords(ctx, ports.Filter{InfluencerID: key.InfluencerID, ForceRefresh: forceRefresh})
	if err != nil {
		return ports.CampaignRecord{}, err
	}
	for _, record := range records {
		if record.Key == key {
			return record, nil
		}
	}
	return ports.CampaignRecord{}, domainerrors.ErrCampaignNotFound
}

func (r *Repository) AppendEvents(
	ctx context.Context,
	key ports.CampaignKey,
	events []entities.Event,
	dates map[entities.Field]string,
) error {
	update := rowstore.Update{Key: sheetschema.CampaignKey(key.CampaignID, key.InfluencerID)}
	fields := make([]string, 0, len(dates))
	for field := range dates {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)
	for _, field := range fields {
		column, ok := dateColumns[entities.Field(field)]
		if !ok {
			return fmt.Errorf("%w: unknown field %s", domainerrors.ErrInvalidRequest, field)
		}
		update.Cells = append(update.Cells, rowstore.CellWrite{Column: column, Value: dates[entities.Field(field)]})
	}
	for _, event := range events {
		update.Appends = append(update.Appends, rowstore.JSONAppend{Column: sheetschema.EventLog, Entry: event})
	}
	if err := r.store.Apply(ctx, sheetschema.CampaignsSheet, update); err != nil {
		r.logger.Warn("change request write failed",
			"event", "change_request_write_failed",
			"module", "campaign-workflow/change-request-service",
			"layer", "adapter",
			"campaign_id", key.CampaignID,
			"influencer_id", key.InfluencerID,
			"error", err.Error(),
		)
		return translate(err)
	}
	return nil
}

func (r *Repository) toRecord(row rowstore.Row) ports.CampaignRecord {
	record := ports.CampaignRecord{
		Key: ports.CampaignKey{
			CampaignID:   strings.TrimSpace(row.Get(sheetschema.CampaignID)),
			InfluencerID: strings.TrimSpace(row.Get(sheetschema.InfluencerID)),
		},
		Dates: make(map[entities.Field]string, len(dateColumns)),
	}
	for field, column := range dateColumns {
		record.Dates[field] = strings.TrimSpace(row.Get(column))
	}
	for _, raw := range rowstore.DecodeJSONArray(row.Get(sheetschema.EventLog)) {
		var event entities.Event
		if err := json.Unmarshal(raw, &event); err != nil || event.RequestID == "" {
			continue
		}
		record.Events = append(record.Events, event)
	}
	for _, raw := range rowstore.DecodeJSONArray(row.Get(sheetschema.LegacyRequests)) {
		request, ok := decodeLegacy(raw, record.Key)
		if !ok {
			continue
		}
		record.Legacy = append(record.Legacy, request)
	}
	return record
}

type legacyRequest struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	Status           string `json:"status"`
	RequestedChanges []struct {
		Field        string `json:"field"`
		CurrentValue string `json:"currentValue"`
		NewValue     string `json:"newValue"`
	} `json:"requestedChanges"`
	Reason        string `json:"reason"`
	AdminResponse string `json:"adminResponse"`
	CreatedAt     string `json:"createdAt"`
	ResolvedAt    string `json:"resolvedAt"`
}

func decodeLegacy(raw json.RawMessage, key ports.CampaignKey) (entities.ChangeRequest, bool) {
	var legacy legacyRequest
	if err := json.Unmarshal(raw, &legacy); err != nil || strings.TrimSpace(legacy.ID) == "" {
		return entities.ChangeRequest{}, false
	}
	requestType, ok := entities.ParseRequestType(legacy.Type)
	if !ok {
		return entities.ChangeRequest{}, false
	}
	request := entities.ChangeRequest{
		ID:            strings.TrimSpace(legacy.ID),
		CampaignID:    key.CampaignID,
		InfluencerID:  key.InfluencerID,
		Type:          requestType,
		Status:        entities.StatusPending,
		Reason:        legacy.Reason,
		AdminResponse: legacy.AdminResponse,
	}
	switch entities.Status(strings.ToLower(strings.TrimSpace(legacy.Status))) {
	case entities.StatusApproved:
		request.Status = entities.StatusApproved
	case entities.StatusRejected:
		request.Status = entities.StatusRejected
	}
	for _, change := range legacy.RequestedChanges {
		request.RequestedChanges = append(request.RequestedChanges, entities.FieldChange{
			Field:        entities.Field(change.Field),
			CurrentValue: change.CurrentValue,
			NewValue:     change.NewValue,
		})
	}
	if created, err := time.Parse(time.RFC3339, strings.TrimSpace(legacy.CreatedAt)); err == nil {
		request.CreatedAt = created
	}
	if resolved, err := time.Parse(time.RFC3339, strings.TrimSpace(legacy.ResolvedAt)); err == nil && !request.Pending() {
		request.ResolvedAt = &resolved
	}
	return request, true
}

func translate(err error) error {
	switch {
	case errors.Is(err, rowstore.ErrWriteNotPermitted), errors.Is(err, rowstore.ErrCredentialsMissing):
		return fmt.Errorf("%w: %w", domainerrors.ErrWriteNotPermitted, err)
	case errors.Is(err, rowstore.ErrRowNotFound):
		return fmt.Errorf("%w: %w", domainerrors.ErrCampaignNotFound, err)
	case errors.Is(err, rowstore.ErrColumnNotFound):
		return fmt.Errorf("%w: %w", domainerrors.ErrInvalidRequest, err)
	default:
		return err
	}
}
