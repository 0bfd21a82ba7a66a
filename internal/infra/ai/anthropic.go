package ai

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/errs"
)

type AnthropicProvider struct {
	cfg    AnthropicConfig
	client anthropic.Client
}

func NewAnthropicProvider(cfg AnthropicConfig) *AnthropicProvider {
	return &AnthropicProvider{
		cfg,
		anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
	}
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

func (p *AnthropicProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.cfg.Model),
		MaxTokens: p.cfg.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", classifyAnthropic(err)
	}
	if len(message.Content) == 0 {
		return "", errs.UpstreamError{Message: "empty message from anthropic"}
	}
	return message.Content[0].Text, nil
}

func (p *AnthropicProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return "", errs.Unsupported{Provider: "anthropic", Capability: "image generation"}
}

func classifyAnthropic(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.ErrUpstreamTimeout
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return errs.UpstreamError{Status: apiErr.StatusCode, Message: apiErr.Error()}
	}
	return errs.UpstreamError{Message: err.Error()}
}
