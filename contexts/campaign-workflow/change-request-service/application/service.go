package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"musubime/contexts/campaign-workflow/change-request-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/change-request-service/domain/errors"
	"musubime/contexts/campaign-workflow/change-request-service/ports"
)

const moduleName = "campaign-workflow/change-request-service"

const (
	NotifyCreated  = "change_request_created"
	NotifyApproved = "change_request_approved"
	NotifyRejected = "change_request_rejected"
)

type Service struct {
	Repo     ports.Repository
	Clock    ports.Clock
	IDs      ports.IDGenerator
	Notifier ports.Notifier
	Location *time.Location
	Logger   *slog.Logger
}

type CreateCommand struct {
	Actor        ports.Actor
	CampaignID   string
	InfluencerID string
	Type         string
	NewValue     string
	Reason       string
}

type ResolveCommand struct {
	Actor         ports.Actor
	RequestID     string
	CampaignID    string
	InfluencerID  string
	Decision      string
	AdminResponse string
}

func (s Service) List(ctx context.Context, actor ports.Actor, filter ports.Filter) ([]entities.ChangeRequest, error) {
	filter.CampaignID = strings.TrimSpace(filter.CampaignID)
	filter.InfluencerID = strings.TrimSpace(filter.InfluencerID)
	switch {
	case actor.IsAdmin():
	case actor.Role == ports.RoleInfluencer && actor.ID != "":
		if filter.InfluencerID != "" && filter.InfluencerID != actor.ID {
			return nil, domainerrors.ErrForbidden
		}
		filter.InfluencerID = actor.ID
	default:
		return nil, domainerrors.ErrForbidden
	}

	records, err := s.Repo.ListRecords(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]entities.ChangeRequest, 0)
	for _, record := range records {
		if filter.CampaignID != "" && record.Key.CampaignID != filter.CampaignID {
			continue
		}
		for _, request := range record.Requests() {
			if filter.Status != "" && request.Status != filter.Status {
				continue
			}
			items = append(items, request)
		}
	}
	return items, nil
}

func (s Service) Create(ctx context.Context, cmd CreateCommand) (entities.ChangeRequest, error) {
	key := ports.CampaignKey{
		CampaignID:   strings.TrimSpace(cmd.CampaignID),
		InfluencerID: strings.TrimSpace(cmd.InfluencerID),
	}
	if key.CampaignID == "" || key.InfluencerID == "" {
		return entities.ChangeRequest{}, domainerrors.ErrInvalidRequest
	}
	if !cmd.Actor.MayAccess(key.InfluencerID) {
		return entities.ChangeRequest{}, domainerrors.ErrForbidden
	}
	requestType, ok := entities.ParseRequestType(cmd.Type)
	if !ok {
		return entities.ChangeRequest{}, domainerrors.ErrInvalidRequestType
	}
	newValue := strings.TrimSpace(cmd.NewValue)
	if _, err := time.ParseInLocation("2006-01-02", newValue, s.location()); err != nil {
		return entities.ChangeRequest{}, fmt.Errorf("%w: new value must be yyyy-mm-dd", domainerrors.ErrInvalidRequest)
	}

	record, err := s.Repo.GetRecord(ctx, key, true)
	if err != nil {
		return entities.ChangeRequest{}, err
	}
	for _, existing := range record.Requests() {
		if existing.Type == requestType && existing.Pending() {
			return entities.ChangeRequest{}, domainerrors.ErrPendingRequestExists
		}
	}

	id, err := s.IDs.NewID(ctx)
	if err != nil {
		return entities.ChangeRequest{}, err
	}
	field := requestType.Field()
	request := entities.ChangeRequest{
		ID:           id,
		CampaignID:   key.CampaignID,
		InfluencerID: key.InfluencerID,
		Type:         requestType,
		Status:       entities.StatusPending,
		RequestedChanges: []entities.FieldChange{{
			Field:        field,
			CurrentValue: record.Dates[field],
			NewValue:     newValue,
		}},
		Reason:    strings.TrimSpace(cmd.Reason),
		CreatedAt: s.now(),
	}
	if err := s.Repo.AppendEvents(ctx, key, []entities.Event{entities.CreatedEvent(request)}, nil); err != nil {
		return entities.ChangeRequest{}, err
	}

	ResolveLogger(s.Logger).Info("change request created",
		"event", "change_request_created",
		"module", moduleName,
		"layer", "application",
		"request_id", request.ID,
		"campaign_id", key.CampaignID,
		"influencer_id", key.InfluencerID,
		"type", string(requestType),
	)
	s.notify(ctx, NotifyCreated, request)
	return request, nil
}

// Resolve moves a pending request to approved or rejected. Approval writes the
// new date into the campaign row in the same batch as the log entry.
func (s Service) Resolve(ctx context.Context, cmd ResolveCommand) (entities.ChangeRequest, error) {
	requestID := strings.TrimSpace(cmd.RequestID)
	if requestID == "" {
		return entities.ChangeRequest{}, domainerrors.ErrInvalidRequest
	}
	if !cmd.Actor.IsAdmin() {
		return entities.ChangeRequest{}, domainerrors.ErrForbidden
	}
	decision, ok := entities.ParseDecision(cmd.Decision)
	if !ok {
		return entities.ChangeRequest{}, domainerrors.ErrInvalidDecision
	}

	record, request, err := s.locate(ctx, requestID, ports.CampaignKey{
		CampaignID:   strings.TrimSpace(cmd.CampaignID),
		InfluencerID: strings.TrimSpace(cmd.InfluencerID),
	})
	if err != nil {
		return entities.ChangeRequest{}, err
	}
	if !request.Pending() {
		return entities.ChangeRequest{}, domainerrors.ErrAlreadyResolved
	}

	now := s.now()
	status := decision.Status()
	events := make([]entities.Event, 0, 2)
	if !record.Logged(request.ID) {
		events = append(events, entities.CreatedEvent(request))
	}
	adminResponse := strings.TrimSpace(cmd.AdminResponse)
	events = append(events, entities.ResolvedEvent(request.ID, status, adminResponse, now))

	var dates map[entities.Field]string
	if status == entities.StatusApproved {
		if value, ok := approvedDate(request); ok {
			dates = map[entities.Field]string{request.Type.Field(): value}
		}
	}
	if err := s.Repo.AppendEvents(ctx, record.Key, events, dates); err != nil {
		return entities.ChangeRequest{}, err
	}

	request.Status = status
	request.AdminResponse = adminResponse
	request.ResolvedAt = &now

	ResolveLogger(s.Logger).Info("change request resolved",
		"event", "change_request_resolved",
		"module", moduleName,
		"layer", "application",
		"request_id", request.ID,
		"campaign_id", request.CampaignID,
		"influencer_id", request.InfluencerID,
		"status", string(status),
	)
	if status == entities.StatusApproved {
		s.notify(ctx, NotifyApproved, request)
	} else {
		s.notify(ctx, NotifyRejected, request)
	}
	return request, nil
}

func (s Service) locate(ctx context.Context, requestID string, key ports.CampaignKey) (ports.CampaignRecord, entities.ChangeRequest, error) {
	var records []ports.CampaignRecord
	if key.CampaignID != "" && key.InfluencerID != "" {
		record, err := s.Repo.GetRecord(ctx, key, true)
		if err != nil {
			return ports.CampaignRecord{}, entities.ChangeRequest{}, err
		}
		records = []ports.CampaignRecord{record}
	} else {
		all, err := s.Repo.ListRecords(ctx, ports.Filter{ForceRefresh: true})
		if err != nil {
			return ports.CampaignRecord{}, entities.ChangeRequest{}, err
		}
		records = all
	}
	for _, record := range records {
		for _, request := range record.Requests() {
			if request.ID == requestID {
				return record, request, nil
			}
		}
	}
	return ports.CampaignRecord{}, entities.ChangeRequest{}, domainerrors.ErrChangeRequestNotFound
}

// approvedDate picks the value written on approval. Legacy requests carry
// free-form field names, so the target column always comes from the type.
func approvedDate(request entities.ChangeRequest) (string, bool) {
	target := request.Type.Field()
	fallback := ""
	for _, change := range request.RequestedChanges {
		value := strings.TrimSpace(change.NewValue)
		if value == "" {
			continue
		}
		if change.Field == target {
			return value, true
		}
		if fallback == "" {
			fallback = value
		}
	}
	return fallback, fallback != ""
}

func (s Service) notify(ctx context.Context, event string, request entities.ChangeRequest) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(context.WithoutCancel(ctx), event, request); err != nil {
		ResolveLogger(s.Logger).Warn("change request notification dropped",
			"event", "change_request_notification_dropped",
			"module", moduleName,
			"layer", "application",
			"request_id", request.ID,
			"notification", event,
			"error", err.Error(),
		)
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().In(s.location())
	}
	return s.Clock.Now().In(s.location())
}

func (s Service) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}
