package sheetsadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"musubime/contexts/outreach/outreach-service/domain/entities"
	domainerrors "musubime/contexts/outreach/outreach-service/domain/errors"
	"musubime/internal/platform/rowstore"
	"musubime/internal/shared/sheetschema"
)

// Repository serves candidates from the selected sheet and templates from the
// templates sheet.
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

func (r *Repository) ListCandidates(ctx context.Context, forceRefresh bool) ([]entities.Candidate, error) {
	rows, err := r.store.FetchColumns(ctx, rowstore.Query{
		Sheet:        sheetschema.SelectedSheet,
		ForceRefresh: forceRefresh,
	})
	if err != nil {
		return nil, translate(err)
	}
	out := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(row.Get(sheetschema.InfluencerID))
		if id == "" {
			continue
		}
		fields := make(map[string]string, len(row))
		for column, value := range row {
			fields[column] = strings.TrimSpace(value)
		}
		out = append(out, entities.Candidate{
			InfluencerID: id,
			Email:        strings.TrimSpace(row.Get(sheetschema.ContactEmail)),
			Fields:       fields,
		})
	}
	return out, nil
}

func (r *Repository) MarkContacted(ctx context.Context, influencerID string, status string, date string) error {
	err := r.store.WriteCells(ctx, sheetschema.SelectedSheet,
		rowstore.KeyOf(sheetschema.InfluencerID, influencerID),
		rowstore.CellWrite{Column: sheetschema.SelectedStatus, Value: status},
		rowstore.CellWrite{Column: sheetschema.SelectedDateOutreach, Value: date},
	)
	return translate(err)
}

func (r *Repository) ListTemplates(ctx context.Context, forceRefresh bool) ([]entities.Template, error) {
	rows, err := r.store.FetchColumns(ctx, rowstore.Query{
		Sheet:        sheetschema.TemplatesSheet,
		Columns:      sheetschema.Templates.Columns,
		ForceRefresh: forceRefresh,
	})
	if err != nil {
		return nil, translate(err)
	}
	out := make([]entities.Template, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(row.Get(sheetschema.TemplateID))
		if id == "" {
			continue
		}
		conditions, ok := entities.ParseConditions(row.Get(sheetschema.TemplateConditions))
		if !ok {
			r.logger.Warn("outreach template skipped",
				"event", "outreach_template_conditions_malformed",
				"module", "outreach/outreach-service",
				"layer", "adapter",
				"template_id", id,
			)
			continue
		}
		out = append(out, entities.Template{
			ID:         id,
			Name:       strings.TrimSpace(row.Get(sheetschema.TemplateName)),
			Conditions: conditions,
			Subject:    row.Get(sheetschema.TemplateSubject),
			Body:       row.Get(sheetschema.TemplateBody),
		})
	}
	return out, nil
}

func (r *Repository) SaveTemplate(ctx context.Context, template entities.Template) (bool, error) {
	conditions, err := entities.EncodeConditions(template.Conditions)
	if err != nil {
		return false, err
	}
	values := map[string]string{
		sheetschema.TemplateID:         template.ID,
		sheetschema.TemplateName:       template.Name,
		sheetschema.TemplateConditions: conditions,
		sheetschema.TemplateSubject:    template.Subject,
		sheetschema.TemplateBody:       template.Body,
	}

	err = r.store.WriteCells(ctx, sheetschema.TemplatesSheet,
		rowstore.KeyOf(sheetschema.TemplateID, template.ID),
		rowstore.CellWrite{Column: sheetschema.TemplateName, Value: values[sheetschema.TemplateName]},
		rowstore.CellWrite{Column: sheetschema.TemplateConditions, Value: values[sheetschema.TemplateConditions]},
		rowstore.CellWrite{Column: sheetschema.TemplateSubject, Value: values[sheetschema.TemplateSubject]},
		rowstore.CellWrite{Column: sheetschema.TemplateBody, Value: values[sheetschema.TemplateBody]},
	)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, rowstore.ErrRowNotFound):
		if err := r.store.AppendRow(ctx, sheetschema.TemplatesSheet, values); err != nil {
			return false, translate(err)
		}
		return true, nil
	default:
		return false, translate(err)
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rowstore.ErrWriteNotPermitted), errors.Is(err, rowstore.ErrCredentialsMissing):
		return fmt.Errorf("%w: %w", domainerrors.ErrWriteNotPermitted, err)
	case errors.Is(err, rowstore.ErrRowNotFound):
		return fmt.Errorf("%w: %w", domainerrors.ErrCandidateNotFound, err)
	case errors.Is(err, rowstore.ErrColumnNotFound):
		return fmt.Errorf("%w: %w", domainerrors.ErrInvalidRequest, err)
	default:
		return err
	}
}
