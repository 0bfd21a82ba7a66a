package ai

import (
	"strconv"

	"github.com/pocketvibe/pocketvibe-backend/pkg/env"
)

type OpenAIConfig struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

func NewOpenAIConfig() OpenAIConfig {
	maxTokens, err := strconv.Atoi(env.GetEnv("OPENAI_TOKENS", "8192"))
	if err != nil {
		maxTokens = 8192
	}
	return OpenAIConfig{
		APIKey:    env.GetEnv("OPENAI_KEY", ""),
		Model:     env.GetEnv("OPENAI_MODEL", "gpt-4.1"),
		MaxTokens: int64(maxTokens),
	}
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewOpenRouterConfig() OpenRouterConfig {
	return OpenRouterConfig{
		APIKey:  env.GetEnv("OPENROUTER_KEY", ""),
		Model:   env.GetEnv("OPENROUTER_MODEL", "anthropic/claude-sonnet-4"),
		BaseURL: env.GetEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
	}
}

type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

func NewAnthropicConfig() AnthropicConfig {
	maxTokens, err := strconv.Atoi(env.GetEnv("ANTHROPIC_TOKENS", "10240"))
	if err != nil {
		maxTokens = 10240
	}
	return AnthropicConfig{
		APIKey:    env.GetEnv("ANTHROPIC_API_KEY", ""),
		Model:     env.GetEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		MaxTokens: int64(maxTokens),
	}
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

func NewGeminiConfig() GeminiConfig {
	return GeminiConfig{
		APIKey: env.GetEnv("GEMINI_API_KEY", ""),
		Model:  env.GetEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}
}

type StabilityConfig struct {
	APIKey  string
	BaseURL string
}

func NewStabilityConfig() StabilityConfig {
	return StabilityConfig{
		APIKey:  env.GetEnv("STABILITY_API_KEY", ""),
		BaseURL: env.GetEnv("STABILITY_BASE_URL", "https://api.stability.ai"),
	}
}
