package ai

import (
	"context"
	"errors"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/errs"
	"google.golang.org/genai"
)

type GeminiProvider struct {
	cfg    GeminiConfig
	client *genai.Client
}

func NewGeminiProvider(cfg GeminiConfig) (*GeminiProvider, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{cfg: cfg, client: client}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.cfg.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyGemini(err)
	}
	text := resp.Text()
	if text == "" {
		return "", errs.UpstreamError{Message: "empty response from gemini"}
	}
	return text, nil
}

func (p *GeminiProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return "", errs.Unsupported{Provider: "gemini", Capability: "image generation"}
}

func classifyGemini(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.ErrUpstreamTimeout
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return errs.UpstreamError{Status: apiErr.Code, Message: apiErr.Message}
	}
	return errs.UpstreamError{Message: err.Error()}
}
