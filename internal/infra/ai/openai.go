package ai

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/errs"
)

type OpenAIProvider struct {
	cfg    OpenAIConfig
	client openai.Client
}

func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	return &OpenAIProvider{
		cfg,
		openai.NewClient(option.WithAPIKey(cfg.APIKey)),
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	chatCompletion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.cfg.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(p.cfg.MaxTokens),
		N:                   openai.Int(1),
		Temperature:         openai.Float(0.8),
	})
	if err != nil {
		return "", classifyOpenAI(err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", errs.UpstreamError{Message: "empty completion from openai"}
	}
	return chatCompletion.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	result, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  openai.ImageModelDallE2,
		Prompt: prompt,
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize512x512,
	})
	if err != nil {
		return "", classifyOpenAI(err)
	}
	if len(result.Data) == 0 {
		return "", errs.UpstreamError{Message: "no image was generated"}
	}
	return result.Data[0].URL, nil
}

func classifyOpenAI(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.ErrUpstreamTimeout
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return errs.UpstreamError{Status: apiErr.StatusCode, Message: apiErr.Message}
	}
	return errs.UpstreamError{Message: err.Error()}
}
