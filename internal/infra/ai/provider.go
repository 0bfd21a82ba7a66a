// Package ai abstracts the interchangeable text/image generation backends
// behind a single capability interface. Providers are registered statically
// and resolved by configuration name; credentials are validated at resolution
// time, before any job work begins.
package ai

import (
	"context"
	"sort"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/errs"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/storage"
)

type Provider interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type Factory func() (Provider, error)

type Registry struct {
	factories map[string]Factory
}

// NewRegistry wires every known provider. Stability needs the icon storage
// because its API returns raw image bytes rather than a hosted URL.
func NewRegistry(icons *storage.Storage) *Registry {
	r := &Registry{factories: map[string]Factory{}}

	r.factories["openai"] = func() (Provider, error) {
		cfg := NewOpenAIConfig()
		if cfg.APIKey == "" {
			return nil, errs.MissingCredentials{Provider: "openai", Vars: []string{"OPENAI_KEY"}}
		}
		return NewOpenAIProvider(cfg), nil
	}
	r.factories["openrouter"] = func() (Provider, error) {
		cfg := NewOpenRouterConfig()
		if cfg.APIKey == "" {
			return nil, errs.MissingCredentials{Provider: "openrouter", Vars: []string{"OPENROUTER_KEY"}}
		}
		return NewOpenRouterProvider(cfg), nil
	}
	r.factories["anthropic"] = func() (Provider, error) {
		cfg := NewAnthropicConfig()
		if cfg.APIKey == "" {
			return nil, errs.MissingCredentials{Provider: "anthropic", Vars: []string{"ANTHROPIC_API_KEY"}}
		}
		return NewAnthropicProvider(cfg), nil
	}
	r.factories["gemini"] = func() (Provider, error) {
		cfg := NewGeminiConfig()
		if cfg.APIKey == "" {
			return nil, errs.MissingCredentials{Provider: "gemini", Vars: []string{"GEMINI_API_KEY"}}
		}
		return NewGeminiProvider(cfg)
	}
	r.factories["stability"] = func() (Provider, error) {
		cfg := NewStabilityConfig()
		if cfg.APIKey == "" {
			return nil, errs.MissingCredentials{Provider: "stability", Vars: []string{"STABILITY_API_KEY"}}
		}
		return NewStabilityProvider(cfg, icons), nil
	}

	return r
}

func (r *Registry) Resolve(name string) (Provider, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, errs.UnknownProvider{Name: name}
	}
	return factory()
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
