package processors

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/events"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/interfaces"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/pwa"
)

// GenerateCSS elevates a stylesheet: design instruction + base CSS to the
// provider, fence-stripped result persisted as completed. Failures store the
// error text on the record; there is no notification for this job type.
type GenerateCSS struct {
	provider interfaces.TextGenerator
	store    interfaces.CSSStore
}

func NewGenerateCSS(provider interfaces.TextGenerator, store interfaces.CSSStore) *GenerateCSS {
	return &GenerateCSS{
		provider,
		store,
	}
}

func (p *GenerateCSS) Handle(ctx context.Context, event events.GenerateCSS) error {
	start := time.Now()
	slog.Info("starting css generation", "css_id", event.CSSID)

	newCSS, err := p.provider.GenerateText(ctx, BuildCSSPrompt(event.Prompt, event.CSSContent))
	if err != nil {
		slog.Error("css generation failed", "css_id", event.CSSID, "err", err)
		if ferr := p.store.FailCSSGeneration(ctx, event.CSSID, err.Error()); ferr != nil {
			slog.Error("err writing css failure status", "css_id", event.CSSID, "err", ferr)
		}
		return err
	}

	newCSS = pwa.StripCodeBlock(newCSS)
	if err := p.store.CompleteCSSGeneration(ctx, event.CSSID, newCSS); err != nil {
		return fmt.Errorf("err persisting css generation %s, %v", event.CSSID, err)
	}

	slog.Info("css generation completed", "css_id", event.CSSID, "duration", time.Since(start))
	return nil
}
