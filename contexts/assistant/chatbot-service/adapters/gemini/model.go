package geminiadapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"musubime/contexts/assistant/chatbot-service/ports"

	"google.golang.org/genai"
)

// Model answers assistant prompts with a Gemini text model.
type Model struct {
	client *genai.Client
	model  string
}

func NewModel(ctx context.Context, apiKey string, model string) (*Model, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Model{client: client, model: model}, nil
}

func (m *Model) Answer(ctx context.Context, prompt ports.Prompt) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.3),
		MaxOutputTokens: 800,
	}
	if strings.TrimSpace(prompt.System) != "" {
		config.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}
	result, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt.Question), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("gemini returned no text")
	}
	return text, nil
}
