package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"musubime/contexts/campaign-workflow/change-request-service/application"
	"musubime/contexts/campaign-workflow/change-request-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/change-request-service/domain/errors"
	"musubime/contexts/campaign-workflow/change-request-service/ports"
	httptransport "musubime/contexts/campaign-workflow/change-request-service/transport/http"

	"github.com/go-playground/validator/v10"
)

type Handler struct {
	Service  application.Service
	Validate *validator.Validate
	Logger   *slog.Logger
}

func (h Handler) ListChangeRequestsHandler(
	ctx context.Context,
	actor ports.Actor,
	campaignID string,
	influencerID string,
	status string,
	refresh bool,
) (httptransport.ListChangeRequestsResponse, error) {
	filter := ports.Filter{
		CampaignID:   campaignID,
		InfluencerID: influencerID,
		ForceRefresh: refresh,
	}
	if value := strings.ToLower(strings.TrimSpace(status)); value != "" {
		switch entities.Status(value) {
		case entities.StatusPending, entities.StatusApproved, entities.StatusRejected:
			filter.Status = entities.Status(value)
		default:
			return httptransport.ListChangeRequestsResponse{}, domainerrors.ErrInvalidRequest
		}
	}
	items, err := h.Service.List(ctx, actor, filter)
	if err != nil {
		return httptransport.ListChangeRequestsResponse{}, err
	}
	out := make([]httptransport.ChangeRequestDTO, 0, len(items))
	for _, item := range items {
		out = append(out, mapChangeRequest(item))
	}
	return httptransport.ListChangeRequestsResponse{Success: true, ChangeRequests: out}, nil
}

func (h Handler) CreateChangeRequestHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.CreateChangeRequestRequest,
) (httptransport.ChangeRequestResponse, error) {
	if err := h.validate(req); err != nil {
		return httptransport.ChangeRequestResponse{}, err
	}
	item, err := h.Service.Create(ctx, application.CreateCommand{
		Actor:        actor,
		CampaignID:   req.CampaignID,
		InfluencerID: req.InfluencerID,
		Type:         req.Type,
		NewValue:     req.NewValue,
		Reason:       req.Reason,
	})
	if err != nil {
		return httptransport.ChangeRequestResponse{}, err
	}
	return httptransport.ChangeRequestResponse{Success: true, ChangeRequest: mapChangeRequest(item)}, nil
}

func (h Handler) ResolveChangeRequestHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.ResolveChangeRequestRequest,
) (httptransport.ChangeRequestResponse, error) {
	if err := h.validate(req); err != nil {
		return httptransport.ChangeRequestResponse{}, err
	}
	item, err := h.Service.Resolve(ctx, application.ResolveCommand{
		Actor:         actor,
		RequestID:     req.ID,
		CampaignID:    req.CampaignID,
		InfluencerID:  req.InfluencerID,
		Decision:      req.Decision,
		AdminResponse: req.AdminResponse,
	})
	if err != nil {
		return httptransport.ChangeRequestResponse{}, err
	}
	return httptransport.ChangeRequestResponse{Success: true, ChangeRequest: mapChangeRequest(item)}, nil
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

func mapChangeRequest(item entities.ChangeRequest) httptransport.ChangeRequestDTO {
	changes := make([]httptransport.FieldChangeDTO, 0, len(item.RequestedChanges))
	for _, change := range item.RequestedChanges {
		changes = append(changes, httptransport.FieldChangeDTO{
			Field:        string(change.Field),
			CurrentValue: change.CurrentValue,
			NewValue:     change.NewValue,
		})
	}
	dto := httptransport.ChangeRequestDTO{
		ID:               item.ID,
		CampaignID:       item.CampaignID,
		InfluencerID:     item.InfluencerID,
		Type:             string(item.Type),
		Status:           string(item.Status),
		RequestedChanges: changes,
		Reason:           item.Reason,
		AdminResponse:    item.AdminResponse,
	}
	if !item.CreatedAt.IsZero() {
		dto.CreatedAt = item.CreatedAt.Format(time.RFC3339)
	}
	if item.ResolvedAt != nil {
		resolved := item.ResolvedAt.Format(time.RFC3339)
		dto.ResolvedAt = &resolved
	}
	return dto
}
