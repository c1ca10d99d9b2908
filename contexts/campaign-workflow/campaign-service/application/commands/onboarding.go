package commands

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	application "musubime/contexts/campaign-workflow/campaign-service/application"
	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
	domainerrors "musubime/contexts/campaign-workflow/campaign-service/domain/errors"
	"musubime/contexts/campaign-workflow/campaign-service/ports"
)

const surveyPrefix = "survey_"

var surveyKeyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

type OnboardingCommand struct {
	Actor        ports.Actor
	InfluencerID string
	Answers      map[string]string
}

type OnboardingRowResult struct {
	CampaignID string
	Success    bool
	Error      string
}

type OnboardingResult struct {
	InfluencerID string
	Total        int
	Succeeded    int
	Failed       int
	Rows         []OnboardingRowResult
	Effects      []entities.Effect
}

// OnboardingUseCase writes survey answers to every campaign row the influencer
// owns. Rows succeed or fail independently.
type OnboardingUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc OnboardingUseCase) Execute(ctx context.Context, cmd OnboardingCommand) (OnboardingResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	influencerID := strings.TrimSpace(cmd.InfluencerID)
	if influencerID == "" {
		return OnboardingResult{}, domainerrors.ErrInvalidCampaignInput
	}
	if err := authorize(cmd.Actor, influencerID); err != nil {
		return OnboardingResult{}, err
	}
	answers, err := normalizeAnswers(cmd.Answers)
	if err != nil {
		return OnboardingResult{}, err
	}

	campaigns, err := uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{InfluencerID: influencerID, ForceRefresh: true})
	if err != nil {
		return OnboardingResult{}, err
	}
	if len(campaigns) == 0 {
		return OnboardingResult{}, domainerrors.ErrCampaignNotFound
	}

	result := OnboardingResult{
		InfluencerID: influencerID,
		Total:        len(campaigns),
		Rows:         make([]OnboardingRowResult, 0, len(campaigns)),
	}
	var firstErr error
	for _, campaign := range campaigns {
		row := OnboardingRowResult{CampaignID: campaign.CampaignID}
		err := uc.Campaigns.ApplyChange(ctx, ports.CampaignChange{
			Key:    ports.CampaignKey{CampaignID: campaign.CampaignID, InfluencerID: influencerID},
			Survey: answers,
		})
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			row.Error = err.Error()
			result.Failed++
			logger.Warn("onboarding row write failed",
				"event", "campaign_onboarding_row_failed",
				"module", moduleName,
				"layer", "application",
				"campaign_id", campaign.CampaignID,
				"influencer_id", influencerID,
				"error", err.Error(),
			)
		} else {
			row.Success = true
			result.Succeeded++
		}
		result.Rows = append(result.Rows, row)
	}

	logger.Info("onboarding answers applied",
		"event", "campaign_onboarding_applied",
		"module", moduleName,
		"layer", "application",
		"influencer_id", influencerID,
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)

	if result.Succeeded == 0 && errors.Is(firstErr, domainerrors.ErrWriteNotPermitted) {
		return result, firstErr
	}
	if result.Succeeded > 0 {
		result.Effects = []entities.Effect{
			entities.WebhookEffect("onboarding_completed", campaigns[0], map[string]string{
				"answers_count": strconv.Itoa(len(answers)),
			}),
		}
	}
	return result, nil
}

func normalizeAnswers(raw map[string]string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, domainerrors.ErrInvalidCampaignInput
	}
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(key)), surveyPrefix)
		if !surveyKeyPattern.MatchString(name) {
			return nil, domainerrors.ErrInvalidCampaignInput
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}
