package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"musubime/contexts/outreach/outreach-service/domain/entities"
	domainerrors "musubime/contexts/outreach/outreach-service/domain/errors"
	"musubime/contexts/outreach/outreach-service/ports"
)

const moduleName = "outreach/outreach-service"

type Service struct {
	Candidates ports.CandidateRepository
	Templates  ports.TemplateRepository
	Mailer     ports.Mailer
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Location   *time.Location
	Logger     *slog.Logger
}

// CandidateView is a candidate with the templates whose conditions it meets.
type CandidateView struct {
	Candidate         entities.Candidate
	MatchingTemplates []string
}

type PreviewCommand struct {
	Actor        ports.Actor
	TemplateID   string
	Template     *entities.Template
	InfluencerID string
	Fields       map[string]string
}

type SendCommand struct {
	Actor         ports.Actor
	TemplateID    string
	InfluencerIDs []string
	// IgnoreConditions sends to listed candidates even when the template does not match them.
	IgnoreConditions bool
}

type SendItem struct {
	InfluencerID string
	Success      bool
	Skipped      bool
	Error        string
}

type SendResult struct {
	Total   int
	Sent    int
	Failed  int
	Skipped int
	Items   []SendItem
}

func (s Service) ListCandidates(ctx context.Context, actor ports.Actor, forceRefresh bool) ([]CandidateView, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	candidates, err := s.Candidates.ListCandidates(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	templates, err := s.Templates.ListTemplates(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	out := make([]CandidateView, 0, len(candidates))
	for _, candidate := range candidates {
		view := CandidateView{Candidate: candidate, MatchingTemplates: []string{}}
		for _, template := range templates {
			if template.Matches(candidate) {
				view.MatchingTemplates = append(view.MatchingTemplates, template.ID)
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (s Service) ListTemplates(ctx context.Context, actor ports.Actor, forceRefresh bool) ([]entities.Template, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	return s.Templates.ListTemplates(ctx, forceRefresh)
}

func (s Service) SaveTemplate(ctx context.Context, actor ports.Actor, template entities.Template) (entities.Template, bool, error) {
	if !actor.IsAdmin() {
		return entities.Template{}, false, domainerrors.ErrForbidden
	}
	template.ID = strings.TrimSpace(template.ID)
	template.Name = strings.TrimSpace(template.Name)
	if template.Name == "" || strings.TrimSpace(template.Subject) == "" || strings.TrimSpace(template.Body) == "" {
		return entities.Template{}, false, domainerrors.ErrInvalidTemplate
	}
	for _, condition := range template.Conditions {
		if strings.TrimSpace(condition.Field) == "" || !condition.Operator.Valid() {
			return entities.Template{}, false, fmt.Errorf("%w: condition %q %q", domainerrors.ErrInvalidTemplate, condition.Field, condition.Operator)
		}
	}
	if template.ID == "" {
		id, err := s.IDs.NewID(ctx)
		if err != nil {
			return entities.Template{}, false, err
		}
		template.ID = id
	}

	created, err := s.Templates.SaveTemplate(ctx, template)
	if err != nil {
		return entities.Template{}, false, err
	}
	ResolveLogger(s.Logger).Info("outreach template saved",
		"event", "outreach_template_saved",
		"module", moduleName,
		"layer", "application",
		"template_id", template.ID,
		"created", created,
	)
	return template, created, nil
}

// Preview renders a stored or inline template against a candidate row or
// explicit fields. Explicit fields override candidate columns.
func (s Service) Preview(ctx context.Context, cmd PreviewCommand) (entities.Rendered, error) {
	if !cmd.Actor.IsAdmin() {
		return entities.Rendered{}, domainerrors.ErrForbidden
	}
	var template entities.Template
	switch {
	case cmd.Template != nil:
		template = *cmd.Template
	case strings.TrimSpace(cmd.TemplateID) != "":
		found, err := s.findTemplate(ctx, cmd.TemplateID)
		if err != nil {
			return entities.Rendered{}, err
		}
		template = found
	default:
		return entities.Rendered{}, domainerrors.ErrInvalidRequest
	}

	fields := make(map[string]string)
	if influencerID := strings.TrimSpace(cmd.InfluencerID); influencerID != "" {
		candidate, err := s.findCandidate(ctx, influencerID)
		if err != nil {
			return entities.Rendered{}, err
		}
		for key, value := range candidate.Fields {
			fields[key] = value
		}
	}
	for key, value := range cmd.Fields {
		fields[key] = value
	}
	return template.Render(fields), nil
}

// Send renders the template per candidate, enqueues the email and marks the
// row contacted. Items are independent; the result carries aggregate counts.
func (s Service) Send(ctx context.Context, cmd SendCommand) (SendResult, error) {
	if !cmd.Actor.IsAdmin() {
		return SendResult{}, domainerrors.ErrForbidden
	}
	ids := dedupe(cmd.InfluencerIDs)
	if strings.TrimSpace(cmd.TemplateID) == "" || len(ids) == 0 {
		return SendResult{}, domainerrors.ErrInvalidRequest
	}
	template, err := s.findTemplate(ctx, cmd.TemplateID)
	if err != nil {
		return SendResult{}, err
	}
	candidates, err := s.Candidates.ListCandidates(ctx, true)
	if err != nil {
		return SendResult{}, err
	}
	byID := make(map[string]entities.Candidate, len(candidates))
	for _, candidate := range candidates {
		byID[candidate.InfluencerID] = candidate
	}

	logger := ResolveLogger(s.Logger)
	today := s.now().Format("2006-01-02")
	result := SendResult{Total: len(ids), Items: make([]SendItem, 0, len(ids))}
	for _, id := range ids {
		item := SendItem{InfluencerID: id}
		candidate, ok := byID[id]
		switch {
		case !ok:
			item.Error = domainerrors.ErrCandidateNotFound.Error()
		case strings.TrimSpace(candidate.Email) == "":
			item.Error = "candidate has no contact email"
		case !cmd.IgnoreConditions && !template.Matches(candidate):
			item.Skipped = true
			item.Error = "template conditions do not match"
		default:
			item.Success, item.Error = s.sendOne(ctx, template, candidate, today)
		}

		switch {
		case item.Success:
			result.Sent++
		case item.Skipped:
			result.Skipped++
		default:
			result.Failed++
		}
		result.Items = append(result.Items, item)
	}

	logger.Info("outreach send completed",
		"event", "outreach_send_completed",
		"module", moduleName,
		"layer", "application",
		"template_id", template.ID,
		"total", result.Total,
		"sent", result.Sent,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s Service) sendOne(ctx context.Context, template entities.Template, candidate entities.Candidate, today string) (bool, string) {
	logger := ResolveLogger(s.Logger)
	rendered := template.Render(candidate.Fields)
	err := s.Mailer.Enqueue(ctx, ports.OutboundEmail{
		InfluencerID: candidate.InfluencerID,
		To:           candidate.Email,
		ToName:       candidate.Field("name_influencer"),
		Subject:      rendered.Subject,
		Body:         rendered.Body,
		TemplateID:   template.ID,
	})
	if err != nil {
		logger.Warn("outreach email enqueue failed",
			"event", "outreach_email_enqueue_failed",
			"module", moduleName,
			"layer", "application",
			"influencer_id", candidate.InfluencerID,
			"error", err.Error(),
		)
		return false, err.Error()
	}
	if err := s.Candidates.MarkContacted(ctx, candidate.InfluencerID, entities.StatusContacted, today); err != nil {
		logger.Warn("outreach mark contacted failed",
			"event", "outreach_mark_contacted_failed",
			"module", moduleName,
			"layer", "application",
			"influencer_id", candidate.InfluencerID,
			"error", err.Error(),
		)
		return false, "email queued but row not updated: " + err.Error()
	}
	return true, ""
}

func (s Service) findTemplate(ctx context.Context, id string) (entities.Template, error) {
	templates, err := s.Templates.ListTemplates(ctx, false)
	if err != nil {
		return entities.Template{}, err
	}
	id = strings.TrimSpace(id)
	for _, template := range templates {
		if template.ID == id {
			return template, nil
		}
	}
	return entities.Template{}, domainerrors.ErrTemplateNotFound
}

func (s Service) findCandidate(ctx context.Context, influencerID string) (entities.Candidate, error) {
	candidates, err := s.Candidates.ListCandidates(ctx, false)
	if err != nil {
		return entities.Candidate{}, err
	}
	for _, candidate := range candidates {
		if candidate.InfluencerID == influencerID {
			return candidate, nil
		}
	}
	return entities.Candidate{}, domainerrors.ErrCandidateNotFound
}

func (s Service) now() time.Time {
	location := s.Location
	if location == nil {
		location = time.Local
	}
	if s.Clock == nil {
		return time.Now().In(location)
	}
	return s.Clock.Now().In(location)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
