package httpadapter

import (
	"context"
	"fmt"
	"log/slog"

	"musubime/contexts/outreach/outreach-service/application"
	"musubime/contexts/outreach/outreach-service/domain/entities"
	domainerrors "musubime/contexts/outreach/outreach-service/domain/errors"
	"musubime/contexts/outreach/outreach-service/ports"
	httptransport "musubime/contexts/outreach/outreach-service/transport/http"

	"github.com/go-playground/validator/v10"
)

type Handler struct {
	Service  application.Service
	Validate *validator.Validate
	Logger   *slog.Logger
}

func (h Handler) ListCandidatesHandler(ctx context.Context, actor ports.Actor, refresh bool) (httptransport.ListCandidatesResponse, error) {
	views, err := h.Service.ListCandidates(ctx, actor, refresh)
	if err != nil {
		return httptransport.ListCandidatesResponse{}, err
	}
	out := make([]httptransport.CandidateDTO, 0, len(views))
	for _, view := range views {
		out = append(out, httptransport.CandidateDTO{
			InfluencerID:      view.Candidate.InfluencerID,
			Email:             view.Candidate.Email,
			Fields:            view.Candidate.Fields,
			MatchingTemplates: view.MatchingTemplates,
		})
	}
	return httptransport.ListCandidatesResponse{Success: true, Candidates: out}, nil
}

func (h Handler) ListTemplatesHandler(ctx context.Context, actor ports.Actor, refresh bool) (httptransport.ListTemplatesResponse, error) {
	templates, err := h.Service.ListTemplates(ctx, actor, refresh)
	if err != nil {
		return httptransport.ListTemplatesResponse{}, err
	}
	out := make([]httptransport.TemplateDTO, 0, len(templates))
	for _, template := range templates {
		out = append(out, toDTO(template))
	}
	return httptransport.ListTemplatesResponse{Success: true, Templates: out}, nil
}

func (h Handler) SaveTemplateHandler(ctx context.Context, actor ports.Actor, req httptransport.TemplateDTO) (httptransport.SaveTemplateResponse, error) {
	if err := h.validate(req); err != nil {
		return httptransport.SaveTemplateResponse{}, err
	}
	saved, created, err := h.Service.SaveTemplate(ctx, actor, fromDTO(req))
	if err != nil {
		return httptransport.SaveTemplateResponse{}, err
	}
	return httptransport.SaveTemplateResponse{Success: true, Created: created, Template: toDTO(saved)}, nil
}

func (h Handler) PreviewHandler(ctx context.Context, actor ports.Actor, req httptransport.PreviewRequest) (httptransport.PreviewResponse, error) {
	cmd := application.PreviewCommand{
		Actor:        actor,
		TemplateID:   req.TemplateID,
		InfluencerID: req.InfluencerID,
		Fields:       req.Fields,
	}
	if req.Template != nil {
		if err := h.validate(*req.Template); err != nil {
			return httptransport.PreviewResponse{}, err
		}
		template := fromDTO(*req.Template)
		cmd.Template = &template
	}
	rendered, err := h.Service.Preview(ctx, cmd)
	if err != nil {
		return httptransport.PreviewResponse{}, err
	}
	return httptransport.PreviewResponse{Success: true, Subject: rendered.Subject, Body: rendered.Body}, nil
}

func (h Handler) SendHandler(ctx context.Context, actor ports.Actor, req httptransport.SendRequest) (httptransport.SendResponse, error) {
	if err := h.validate(req); err != nil {
		return httptransport.SendResponse{}, err
	}
	result, err := h.Service.Send(ctx, application.SendCommand{
		Actor:            actor,
		TemplateID:       req.TemplateID,
		InfluencerIDs:    req.InfluencerIDs,
		IgnoreConditions: req.IgnoreConditions,
	})
	if err != nil {
		return httptransport.SendResponse{}, err
	}
	items := make([]httptransport.SendItemDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, httptransport.SendItemDTO{
			InfluencerID: item.InfluencerID,
			Success:      item.Success,
			Skipped:      item.Skipped,
			Error:        item.Error,
		})
	}
	return httptransport.SendResponse{
		Success: result.Failed == 0,
		Total:   result.Total,
		Sent:    result.Sent,
		Failed:  result.Failed,
		Skipped: result.Skipped,
		Items:   items,
	}, nil
}

func (h Handler) validate(req any) error {
	v := h.Validate
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", domainerrors.ErrInvalidRequest, err.Error())
	}
	return nil
}

func toDTO(template entities.Template) httptransport.TemplateDTO {
	conditions := make([]httptransport.ConditionDTO, 0, len(template.Conditions))
	for _, condition := range template.Conditions {
		conditions = append(conditions, httptransport.ConditionDTO{
			Field:    condition.Field,
			Operator: string(condition.Operator),
			Value:    condition.Value,
		})
	}
	return httptransport.TemplateDTO{
		ID:         template.ID,
		Name:       template.Name,
		Conditions: conditions,
		Subject:    template.Subject,
		Body:       template.Body,
	}
}

func fromDTO(dto httptransport.TemplateDTO) entities.Template {
	conditions := make([]entities.Condition, 0, len(dto.Conditions))
	for _, condition := range dto.Conditions {
		conditions = append(conditions, entities.Condition{
			Field:    condition.Field,
			Operator: entities.Operator(condition.Operator),
			Value:    condition.Value,
		})
	}
	return entities.Template{
		ID:         dto.ID,
		Name:       dto.Name,
		Conditions: conditions,
		Subject:    dto.Subject,
		Body:       dto.Body,
	}
}
