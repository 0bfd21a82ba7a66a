package processors

import (
	"context"
	"testing"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/errs"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/events"
	"github.com/stretchr/testify/require"
)

type fakeCSSStore struct {
	completed map[string]string
	failed    map[string]string
}

func newFakeCSSStore() *fakeCSSStore {
	return &fakeCSSStore{completed: map[string]string{}, failed: map[string]string{}}
}

func (f *fakeCSSStore) CompleteCSSGeneration(ctx context.Context, id, cssContent string) error {
	f.completed[id] = cssContent
	return nil
}

func (f *fakeCSSStore) FailCSSGeneration(ctx context.Context, id, message string) error {
	f.failed[id] = message
	return nil
}

func TestCSSHandleStripsFenceAndCompletes(t *testing.T) {
	store := newFakeCSSStore()
	provider := &fakeProvider{text: "```css\nbody { color: red; }\n```"}

	p := NewGenerateCSS(provider, store)
	err := p.Handle(context.Background(), events.GenerateCSS{CSSID: "css-1", Prompt: "make it red", CSSContent: "body {}"})
	require.NoError(t, err)

	require.Equal(t, "body { color: red; }", store.completed["css-1"])
	require.Empty(t, store.failed)
}

func TestCSSHandleRecordsProviderFailure(t *testing.T) {
	store := newFakeCSSStore()
	cause := errs.UpstreamError{Status: 429, Message: "rate limited"}

	p := NewGenerateCSS(&fakeProvider{err: cause}, store)
	err := p.Handle(context.Background(), events.GenerateCSS{CSSID: "css-2", Prompt: "x"})
	require.Error(t, err)

	require.Empty(t, store.completed)
	require.Equal(t, cause.Error(), store.failed["css-2"])
}

func TestBuildPromptsEmbedUserInput(t *testing.T) {
	sitePrompt := BuildSitePrompt("a coffee shop landing page")
	require.Contains(t, sitePrompt, "a coffee shop landing page")
	require.Contains(t, sitePrompt, "complete, valid HTML document")

	cssPrompt := BuildCSSPrompt("dark mode", "body { color: black; }")
	require.Contains(t, cssPrompt, "dark mode")
	require.Contains(t, cssPrompt, "body { color: black; }")
}
