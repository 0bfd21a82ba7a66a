package processors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/errs"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/events"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/interfaces"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/pwa"
)

// GenerateSite drives a site-generation job from processing to a terminal
// state: provider call, fence stripping, PWA injection, an idempotent
// status-guarded write, and a best-effort push notification.
type GenerateSite struct {
	provider interfaces.TextGenerator
	sites    interfaces.SiteStore
	notifier interfaces.Notifier
}

func NewGenerateSite(provider interfaces.TextGenerator, sites interfaces.SiteStore, notifier interfaces.Notifier) *GenerateSite {
	return &GenerateSite{
		provider,
		sites,
		notifier,
	}
}

func (p *GenerateSite) Handle(ctx context.Context, event events.GenerateSite) error {
	start := time.Now()
	slog.Info("starting site generation", "site_id", event.SiteID)

	html, err := p.provider.GenerateText(ctx, BuildSitePrompt(event.Prompt))
	if err != nil {
		return p.fail(ctx, event.SiteID, err)
	}
	slog.Info("provider call completed", "site_id", event.SiteID, "duration", time.Since(start))

	// PWA injection duplicates its block on repeat calls, so it runs exactly
	// once here, after unwrapping any code fence.
	html = pwa.InjectPWA(pwa.StripCodeBlock(html), event.SiteID)

	site, err := p.sites.GetSite(ctx, event.SiteID)
	switch {
	case err == nil:
		// A redelivered job may find the record already terminal; the
		// processing -> success transition happens at most once.
		if site.Status != consts.SiteStatusSuccess {
			if err := p.sites.UpdateSiteContent(ctx, event.SiteID, html, consts.SiteStatusSuccess); err != nil {
				return fmt.Errorf("err persisting site %s, %v", event.SiteID, err)
			}
			slog.Info("site marked success", "site_id", event.SiteID)
		} else {
			slog.Info("site already success, skipping write", "site_id", event.SiteID)
		}
		// Notify even when another delivery already wrote the result.
		p.notify(ctx, site, "Site Generation Complete! 🎉",
			fmt.Sprintf("%s is ready to view", appName(site)), strPtr("/site/"+event.SiteID))

	case errors.Is(err, pgx.ErrNoRows):
		if err := p.sites.CreateSite(ctx, db.Site{
			ID:        event.SiteID,
			Content:   &html,
			Status:    consts.SiteStatusSuccess,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("err creating site %s, %v", event.SiteID, err)
		}
		slog.Info("created site", "site_id", event.SiteID)

	default:
		return fmt.Errorf("err loading site %s, %v", event.SiteID, err)
	}

	slog.Info("site generation finished", "site_id", event.SiteID, "duration", time.Since(start))
	return nil
}

// fail records the terminal failure status, attempts a failure notification,
// and returns the original error so the scheduler can account for it.
func (p *GenerateSite) fail(ctx context.Context, siteID string, cause error) error {
	status := consts.SiteStatusError
	title := "Site Generation Failed ❌"
	body := "There was an error generating your site. Please try again."
	if errs.IsTimeout(cause) {
		status = consts.SiteStatusTimeout
		title = "Site Generation Timeout ⏰"
		body = "Your site generation took too long. Please try again."
	}
	slog.Error("site generation failed", "site_id", siteID, "status", status, "err", cause)

	site, err := p.sites.GetSite(ctx, siteID)
	if err != nil {
		slog.Error("err loading site for failure write", "site_id", siteID, "err", err)
		return cause
	}
	if err := p.sites.UpdateSiteStatus(ctx, siteID, status); err != nil {
		slog.Error("err writing failure status", "site_id", siteID, "err", err)
		return errors.Join(cause, err)
	}
	p.notify(ctx, site, title, body, nil)
	return cause
}

// notify delivers a push notification when the site carries an active
// subscription. Every failure is swallowed; a Gone endpoint additionally
// deactivates the subscription.
func (p *GenerateSite) notify(ctx context.Context, site *db.Site, title, body string, url *string) {
	if site.SubscriptionID == nil {
		return
	}
	sub, err := p.sites.GetSubscription(ctx, *site.SubscriptionID)
	if err != nil {
		slog.Error("err loading subscription", "site_id", site.ID, "subscription_id", *site.SubscriptionID, "err", err)
		return
	}
	if sub.IsActive != consts.SubscriptionActive {
		slog.Info("subscription inactive, skipping notification", "site_id", site.ID)
		return
	}

	if err := p.notifier.Notify(ctx, sub, title, body, url); err != nil {
		if errors.Is(err, errs.ErrGone) {
			slog.Info("subscription endpoint gone, deactivating", "endpoint", sub.Endpoint)
			if err := p.sites.DeactivateSubscription(ctx, sub.ID); err != nil {
				slog.Error("err deactivating subscription", "subscription_id", sub.ID, "err", err)
			}
			return
		}
		slog.Error("err sending push notification", "endpoint", sub.Endpoint, "err", err)
	}
}

func appName(site *db.Site) string {
	if site.AppName != nil && *site.AppName != "" {
		return *site.AppName
	}
	return consts.DefaultAppName
}

func strPtr(s string) *string {
	return &s
}
