package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/ai"
)

// GenerateIcon asks the image provider for an app icon and returns its URL.
// Icon generation is synchronous; it is quick enough to answer in-request.
type GenerateIcon struct {
	provider ai.Provider
}

func NewGenerateIcon(provider ai.Provider) *GenerateIcon {
	return &GenerateIcon{provider: provider}
}

func (c *GenerateIcon) Execute(ctx context.Context, req dto.GenerateIconRequest) (*dto.GenerateIconResponse, error) {
	if req.Prompt == "" {
		return nil, ErrEmptyPrompt
	}

	start := time.Now()
	iconURL, err := c.provider.GenerateImage(ctx, req.Prompt)
	if err != nil {
		return nil, err
	}

	slog.Info("icon generated", "provider", c.provider.Name(), "duration", time.Since(start))
	return &dto.GenerateIconResponse{
		Status:  "success",
		IconURL: iconURL,
	}, nil
}
