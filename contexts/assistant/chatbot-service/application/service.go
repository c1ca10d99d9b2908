package application

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"musubime/contexts/assistant/chatbot-service/domain/entities"
	domainerrors "musubime/contexts/assistant/chatbot-service/domain/errors"
	"musubime/contexts/assistant/chatbot-service/ports"
)

const (
	moduleName        = "assistant/chatbot-service"
	maxMessageRunes   = 2000
	defaultConfidence = 0.5
	maxHints          = 5
)

const systemPrompt = `あなたはインフルエンサー施策の進行をサポートするアシスタントです。
丁寧な日本語で、簡潔に回答してください。
わからないことは推測せず、担当者に確認するよう案内してください。`

type Service struct {
	FAQ       ports.KnowledgeBase
	Campaigns ports.CampaignContext
	Model     ports.LanguageModel
	// Confidence is the keyword share at which an FAQ entry answers directly.
	Confidence float64
	Logger     *slog.Logger
}

type ChatCommand struct {
	Actor        ports.Actor
	CampaignID   string
	InfluencerID string
	Message      string
}

// Chat answers from the FAQ when an entry is confident, otherwise asks the
// model with campaign context, otherwise falls back to the closest FAQ entry
// or a canned reply.
func (s Service) Chat(ctx context.Context, cmd ChatCommand) (entities.Reply, error) {
	message := strings.TrimSpace(cmd.Message)
	if message == "" || utf8.RuneCountInString(message) > maxMessageRunes {
		return entities.Reply{}, domainerrors.ErrInvalidMessage
	}
	influencerID := strings.TrimSpace(cmd.InfluencerID)
	if influencerID == "" && !cmd.Actor.IsAdmin() {
		influencerID = cmd.Actor.ID
	}
	if !cmd.Actor.MayAccess(influencerID) {
		return entities.Reply{}, domainerrors.ErrForbidden
	}
	logger := ResolveLogger(s.Logger)

	var entries []entities.FAQEntry
	if s.FAQ != nil {
		loaded, err := s.FAQ.Entries(ctx)
		if err != nil {
			logger.Warn("faq load failed",
				"event", "assistant_faq_load_failed",
				"module", moduleName,
				"layer", "application",
				"error", err.Error(),
			)
		}
		entries = loaded
	}
	match, matched := entities.BestMatch(message, entries)
	if matched && match.Confident(s.confidence()) {
		return entities.Reply{Answer: match.Entry.Answer, Source: entities.SourceFAQ, FAQID: match.Entry.ID}, nil
	}

	if s.Model != nil {
		prompt := ports.Prompt{
			System:   s.buildSystemPrompt(ctx, strings.TrimSpace(cmd.CampaignID), influencerID, entries),
			Question: message,
		}
		answer, err := s.Model.Answer(ctx, prompt)
		if err == nil && strings.TrimSpace(answer) != "" {
			return entities.Reply{Answer: strings.TrimSpace(answer), Source: entities.SourceAssistant}, nil
		}
		if err != nil {
			logger.Warn("assistant model failed",
				"event", "assistant_model_failed",
				"module", moduleName,
				"layer", "application",
				"error", err.Error(),
			)
		}
	}

	if matched {
		return entities.Reply{Answer: match.Entry.Answer, Source: entities.SourceFAQ, FAQID: match.Entry.ID}, nil
	}
	return entities.Reply{Answer: entities.FallbackAnswer, Source: entities.SourceFallback}, nil
}

func (s Service) buildSystemPrompt(ctx context.Context, campaignID string, influencerID string, entries []entities.FAQEntry) string {
	var b strings.Builder
	b.WriteString(systemPrompt)

	if campaignID != "" && influencerID != "" && s.Campaigns != nil {
		snapshot, found, err := s.Campaigns.Snapshot(ctx, campaignID, influencerID)
		switch {
		case err != nil:
			ResolveLogger(s.Logger).Warn("assistant campaign context unavailable",
				"event", "assistant_campaign_context_failed",
				"module", moduleName,
				"layer", "application",
				"campaign_id", campaignID,
				"error", err.Error(),
			)
		case found:
			b.WriteString("\n\n# 案件情報\n")
			for _, line := range snapshot.Lines() {
				b.WriteString("- ")
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}

	if len(entries) > 0 {
		b.WriteString("\n\n# よくある質問\n")
		for i, entry := range entries {
			if i == maxHints {
				break
			}
			b.WriteString("Q: ")
			b.WriteString(entry.Question)
			b.WriteString("\nA: ")
			b.WriteString(entry.Answer)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s Service) confidence() float64 {
	if s.Confidence <= 0 {
		return defaultConfidence
	}
	return s.Confidence
}
