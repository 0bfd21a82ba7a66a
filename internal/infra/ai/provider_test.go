package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/errs"
	"github.com/stretchr/testify/require"
)

func TestResolveUnknownProvider(t *testing.T) {
	registry := NewRegistry(nil)

	_, err := registry.Resolve("gpt-5000")
	var unknown errs.UnknownProvider
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "gpt-5000", unknown.Name)
}

func TestResolveWithoutCredentials(t *testing.T) {
	for _, name := range []string{"openai", "openrouter", "anthropic", "gemini", "stability"} {
		t.Run(name, func(t *testing.T) {
			t.Setenv("OPENAI_KEY", "")
			t.Setenv("OPENROUTER_KEY", "")
			t.Setenv("ANTHROPIC_API_KEY", "")
			t.Setenv("GEMINI_API_KEY", "")
			t.Setenv("STABILITY_API_KEY", "")

			registry := NewRegistry(nil)
			_, err := registry.Resolve(name)
			var missing errs.MissingCredentials
			require.ErrorAs(t, err, &missing)
			require.Equal(t, name, missing.Provider)
		})
	}
}

func TestResolveConfiguredProvider(t *testing.T) {
	t.Setenv("OPENAI_KEY", "sk-test")

	registry := NewRegistry(nil)
	provider, err := registry.Resolve("openai")
	require.NoError(t, err)
	require.Equal(t, "openai", provider.Name())
}

func TestNamesAreSorted(t *testing.T) {
	registry := NewRegistry(nil)
	require.Equal(t, []string{"anthropic", "gemini", "openai", "openrouter", "stability"}, registry.Names())
}

func TestOpenRouterHasNoImageSupport(t *testing.T) {
	t.Setenv("OPENROUTER_KEY", "sk-test")

	registry := NewRegistry(nil)
	provider, err := registry.Resolve("openrouter")
	require.NoError(t, err)

	_, err = provider.GenerateImage(context.Background(), "an icon")
	var unsupported errs.Unsupported
	require.ErrorAs(t, err, &unsupported)
}

func TestStabilityHasNoTextSupport(t *testing.T) {
	t.Setenv("STABILITY_API_KEY", "sk-test")

	registry := NewRegistry(nil)
	provider, err := registry.Resolve("stability")
	require.NoError(t, err)

	_, err = provider.GenerateText(context.Background(), "a website")
	var unsupported errs.Unsupported
	require.ErrorAs(t, err, &unsupported)
}

func TestIsTimeoutClassification(t *testing.T) {
	require.True(t, errs.IsTimeout(errs.ErrUpstreamTimeout))
	require.True(t, errs.IsTimeout(context.DeadlineExceeded))
	require.False(t, errs.IsTimeout(errors.New("boom")))
}
