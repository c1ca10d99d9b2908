package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	application "musubime/contexts/campaign-workflow/campaign-service/application"
	"musubime/contexts/campaign-workflow/campaign-service/application/commands"
	"musubime/contexts/campaign-workflow/campaign-service/application/queries"
	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/campaign-service/domain/errors"
	"musubime/contexts/campaign-workflow/campaign-service/ports"
	httptransport "musubime/contexts/campaign-workflow/campaign-service/transport/http"

	"github.com/go-playground/validator/v10"
)

type Handler struct {
	ListCampaigns queries.ListCampaignsUseCase
	GetCampaign   queries.GetCampaignUseCase
	UpdateStatus  commands.UpdateStatusUseCase
	Submit        commands.SubmitUseCase
	AdminAction   commands.AdminActionUseCase
	AppendMessage commands.AppendMessageUseCase
	SendReminder  commands.SendReminderUseCase
	Onboarding    commands.OnboardingUseCase
	Dispatcher    ports.EffectDispatcher
	Validate      *validator.Validate
	Location      *time.Location
	Logger        *slog.Logger
}

func (h Handler) ListCampaignsHandler(
	ctx context.Context,
	actor ports.Actor,
	influencerID string,
	refresh bool,
) (httptransport.ListCampaignsResponse, error) {
	items, err := h.ListCampaigns.Execute(ctx, queries.ListCampaignsQuery{
		Actor:        actor,
		InfluencerID: influencerID,
		ForceRefresh: refresh,
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, h.mapCampaign(item, actor))
	}
	return httptransport.ListCampaignsResponse{Success: true, Campaigns: result}, nil
}

func (h Handler) GetCampaignHandler(
	ctx context.Context,
	actor ports.Actor,
	campaignID string,
	influencerID string,
	refresh bool,
) (httptransport.GetCampaignResponse, error) {
	item, err := h.GetCampaign.Execute(ctx, queries.GetCampaignQuery{
		Actor:        actor,
		CampaignID:   campaignID,
		InfluencerID: influencerID,
		ForceRefresh: refresh,
	})
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	return httptransport.GetCampaignResponse{Success: true, Campaign: h.mapCampaign(item, actor)}, nil
}

func (h Handler) UpdateStatusHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.UpdateStatusRequest,
) (httptransport.MutationResponse, error) {
	if err := h.validate(req); err != nil {
		return httptransport.MutationResponse{}, err
	}
	result, err := h.UpdateStatus.Execute(ctx, commands.UpdateStatusCommand{
		Actor:        actor,
		CampaignID:   req.CampaignID,
		InfluencerID: req.InfluencerID,
		NewStatus:    req.NewStatus,
		SubmittedURL: req.SubmittedURL,
		URLType:      req.URLType,
	})
	return h.finish(ctx, result, err)
}

func (h Handler) SubmitHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.SubmitRequest,
) (httptransport.MutationResponse, error) {
	if err := h.validate(req); err != nil {
		return httptransport.MutationResponse{}, err
	}
	result, err := h.Submit.Execute(ctx, commands.SubmitCommand{
		Actor:        actor,
		CampaignID:   req.CampaignID,
		InfluencerID: req.InfluencerID,
		URL:          req.URL,
	})
	return h.finish(ctx, result, err)
}

func (h Handler) AdminActionHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.AdminActionRequest,
) (httptransport.MutationResponse, error) {
	if err := h.validate(req); err != nil {
		return httptransport.MutationResponse{}, err
	}
	result, err := h.AdminAction.Execute(ctx, commands.AdminActionCommand{
		Actor:           actor,
		CampaignID:      req.CampaignID,
		InfluencerID:    req.InfluencerID,
		Action:          req.Action,
		FeedbackMessage: req.FeedbackMessage,
	})
	return h.finish(ctx, result, err)
}

func (h Handler) AppendMessageHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.AppendMessageRequest,
) (httptransport.MutationResponse, error) {
	if err := h.validate(req); err != nil {
		return httptransport.MutationResponse{}, err
	}
	result, err := h.AppendMessage.Execute(ctx, commands.AppendMessageCommand{
		Actor:        actor,
		CampaignID:   req.CampaignID,
		InfluencerID: req.InfluencerID,
		Type:         req.Type,
		Content:      req.Content,
	})
	return h.finish(ctx, result, err)
}

func (h Handler) SendReminderHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.ReminderRequest,
) (httptransport.MutationResponse, error) {
	if err := h.validate(req); err != nil {
		return httptransport.MutationResponse{}, err
	}
	result, err := h.SendReminder.Execute(ctx, commands.SendReminderCommand{
		Actor:        actor,
		CampaignID:   req.CampaignID,
		InfluencerID: req.InfluencerID,
		Kind:         req.Kind,
	})
	return h.finish(ctx, result, err)
}

func (h Handler) OnboardingHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.OnboardingRequest,
) (httptransport.OnboardingResponse, error) {
	if err := h.validate(req); err != nil {
		return httptransport.OnboardingResponse{}, err
	}
	result, err := h.Onboarding.Execute(ctx, commands.OnboardingCommand{
		Actor:        actor,
		InfluencerID: req.InfluencerID,
		Answers:      req.Answers,
	})
	if err != nil {
		return httptransport.OnboardingResponse{}, err
	}
	h.dispatch(ctx, result.Effects)

	rows := make([]httptransport.OnboardingRowDTO, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, httptransport.OnboardingRowDTO{
			CampaignID: row.CampaignID,
			Success:    row.Success,
			Error:      row.Error,
		})
	}
	return httptransport.OnboardingResponse{
		Success:   result.Failed == 0,
		Total:     result.Total,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Rows:      rows,
	}, nil
}

func (h Handler) finish(ctx context.Context, result commands.MutationResult, err error) (httptransport.MutationResponse, error) {
	if err != nil {
		return httptransport.MutationResponse{}, err
	}
	h.dispatch(ctx, result.Effects)
	response := httptransport.MutationResponse{Success: true}
	if result.Status != "" {
		response.Status = string(result.Status)
		response.Step = string(result.Status.Step())
	}
	return response, nil
}

// dispatch hands effects over after the write committed. Failures are logged
// and never reach the caller.
func (h Handler) dispatch(ctx context.Context, effects []entities.Effect) {
	if h.Dispatcher == nil || len(effects) == 0 {
		return
	}
	if err := h.Dispatcher.Dispatch(context.WithoutCancel(ctx), effects); err != nil {
		application.ResolveLogger(h.Logger).Warn("campaign effects dropped",
			"event", "campaign_effects_dropped",
			"module", "campaign-workflow/campaign-service",
			"layer", "transport",
			"effects", len(effects),
			"error", err.Error(),
		)
	}
}

func (h Handler) validate(req any) error {
	v := h.Validate
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", domainerrors.ErrInvalidCampaignInput, err.Error())
	}
	return nil
}

func (h Handler) mapCampaign(item entities.Campaign, actor ports.Actor) httptransport.CampaignDTO {
	messages := make([]httptransport.MessageDTO, 0, len(item.MessageLog))
	for _, entry := range item.MessageLog {
		messages = append(messages, httptransport.MessageDTO{
			Type:      entry.Type,
			Content:   entry.Content,
			Timestamp: entry.Timestamp,
		})
	}
	actions := make([]string, 0, 2)
	if actor.IsAdmin() {
		for _, action := range entities.NextActions(item.Status) {
			actions = append(actions, string(action))
		}
	}
	_, canSubmit := entities.SubmissionFor(item.Status)

	dto := httptransport.CampaignDTO{
		CampaignID:      item.CampaignID,
		InfluencerID:    item.InfluencerID,
		InfluencerName:  item.InfluencerName,
		ContactEmail:    item.ContactEmail,
		Title:           item.Title,
		ProductName:     item.ProductName,
		Status:          string(item.Status),
		Step:            string(item.Step()),
		Platform:        string(item.Platform),
		PlatformLabel:   item.Platform.Label(),
		ContractedPrice: item.ContractedPrice,
		Schedules: httptransport.SchedulesDTO{
			Meeting: h.formatDate(item.Schedules.Meeting),
			Plan:    h.formatDate(item.Schedules.Plan),
			Draft:   h.formatDate(item.Schedules.Draft),
			Live:    h.formatDate(item.Schedules.Live),
		},
		PlanURL:             item.PlanURL,
		DraftURL:            item.DraftURL,
		ContentURL:          item.ContentURL,
		Notes:               item.Notes,
		MessageLog:          messages,
		Requirements:        append([]string{}, item.Requirements...),
		ReferenceLinks:      append([]string{}, item.ReferenceLinks...),
		AvailableActions:    actions,
		SubmissionAvailable: canSubmit,
	}
	if item.StatusUpdatedAt != nil {
		stamp := item.StatusUpdatedAt.In(h.location()).Format(time.RFC3339)
		dto.StatusUpdatedAt = &stamp
	}
	if actor.IsAdmin() && len(item.Extras) > 0 {
		dto.Extras = item.Extras
	}
	return dto
}

func (h Handler) formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.In(h.location()).Format("2006-01-02")
	return &formatted
}

func (h Handler) location() *time.Location {
	if h.Location == nil {
		return time.Local
	}
	return h.Location
}
