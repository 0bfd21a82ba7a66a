package ai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/errs"
)

// OpenRouterProvider rides the OpenAI-compatible API OpenRouter exposes, so
// the same client library serves both backends.
type OpenRouterProvider struct {
	cfg    OpenRouterConfig
	client openai.Client
}

func NewOpenRouterProvider(cfg OpenRouterConfig) *OpenRouterProvider {
	return &OpenRouterProvider{
		cfg,
		openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithHeader("HTTP-Referer", "https://www.pocketvibe.app/"),
			option.WithHeader("X-Title", "Pocket Vibe"),
		),
	}
}

func (p *OpenRouterProvider) Name() string {
	return "openrouter"
}

func (p *OpenRouterProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	chatCompletion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.cfg.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", classifyOpenAI(err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", errs.UpstreamError{Message: "empty completion from openrouter"}
	}
	return chatCompletion.Choices[0].Message.Content, nil
}

func (p *OpenRouterProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return "", errs.Unsupported{Provider: "openrouter", Capability: "image generation"}
}
