package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/errs"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/storage"
)

// StabilityProvider generates icons via Stability's text-to-image endpoint.
// The API answers with raw image bytes (base64), so the provider uploads the
// PNG to icon storage and hands back the public URL like every other image
// provider does.
type StabilityProvider struct {
	cfg    StabilityConfig
	icons  *storage.Storage
	client *http.Client
}

func NewStabilityProvider(cfg StabilityConfig, icons *storage.Storage) *StabilityProvider {
	return &StabilityProvider{
		cfg:    cfg,
		icons:  icons,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *StabilityProvider) Name() string {
	return "stability"
}

func (p *StabilityProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", errs.Unsupported{Provider: "stability", Capability: "text generation"}
}

type stabilityRequest struct {
	TextPrompts []stabilityPrompt `json:"text_prompts"`
	Height      int               `json:"height"`
	Width       int               `json:"width"`
}

type stabilityPrompt struct {
	Text string `json:"text"`
}

type stabilityResponse struct {
	Artifacts []struct {
		Base64 string `json:"base64"`
	} `json:"artifacts"`
}

func (p *StabilityProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(stabilityRequest{
		TextPrompts: []stabilityPrompt{{Text: prompt}},
		Height:      512,
		Width:       512,
	})
	if err != nil {
		return "", err
	}

	url := p.cfg.BaseURL + "/v1/generation/stable-diffusion-v1-6/text-to-image"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", classifyStability(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", errs.UpstreamError{Status: resp.StatusCode, Message: string(msg)}
	}

	var parsed stabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errs.UpstreamError{Message: fmt.Sprintf("invalid response from stability: %v", err)}
	}
	if len(parsed.Artifacts) == 0 {
		return "", errs.UpstreamError{Message: "no image was generated"}
	}

	imageData, err := base64.StdEncoding.DecodeString(parsed.Artifacts[0].Base64)
	if err != nil {
		return "", errs.UpstreamError{Message: fmt.Sprintf("invalid image payload from stability: %v", err)}
	}

	key := fmt.Sprintf("icons/icon_%d.png", time.Now().Unix())
	iconURL, err := p.icons.UploadFile(ctx, key, aws.String("image/png"), bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("err uploading generated icon, %v", err)
	}
	return iconURL, nil
}

func classifyStability(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.ErrUpstreamTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.ErrUpstreamTimeout
	}
	return errs.UpstreamError{Message: err.Error()}
}
