package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/events"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

var (
	ErrInvalidSiteID = errors.New("invalid site_id format")
	ErrSiteExists    = errors.New("site id already exists")
	ErrEmptyPrompt   = errors.New("no prompt provided")
)

var siteIDPattern = regexp.MustCompile(`^pv_[a-f0-9]{8}$`)

// GenerateSite accepts a generation request: it persists the processing
// record and enqueues the job in one transaction, so an enqueued job always
// has a record to report into.
type GenerateSite struct {
	uowFactory *dbs.UOWFactory
}

func NewGenerateSite(uowFactory *dbs.UOWFactory) *GenerateSite {
	return &GenerateSite{uowFactory: uowFactory}
}

func (c *GenerateSite) Execute(ctx context.Context, req dto.GenerateSiteRequest, userAgent string) (*dto.GenerateSiteResponse, error) {
	if req.Prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if !siteIDPattern.MatchString(req.SiteID) {
		return nil, ErrInvalidSiteID
	}

	subscriptionID := c.handleSubscription(ctx, req.Subscription, userAgent)

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}

	site := db.Site{
		ID:             req.SiteID,
		Status:         consts.SiteStatusProcessing,
		SubscriptionID: subscriptionID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := repo.NewSiteRepo(tx).InsertSite(ctx, site); err != nil {
		_ = uow.Rollback()
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, ErrSiteExists
		}
		return nil, fmt.Errorf("err creating site record, %v", err)
	}

	if err := repo.NewEventRepo(tx).InsertEvent(ctx, events.GenerateSite{
		SiteID:    req.SiteID,
		Prompt:    req.Prompt,
		CreatedAt: time.Now(),
	}); err != nil {
		_ = uow.Rollback()
		return nil, fmt.Errorf("err enqueueing generation job, %v", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	slog.Info("site generation enqueued", "site_id", req.SiteID)
	return &dto.GenerateSiteResponse{
		Status:  string(consts.SiteStatusProcessing),
		SiteID:  req.SiteID,
		Message: "Site generation started",
	}, nil
}

// handleSubscription registers the optional push subscription; failures are
// tolerated so a broken subscription never blocks generation.
func (c *GenerateSite) handleSubscription(ctx context.Context, sub *dto.Subscription, userAgent string) *uuid.UUID {
	if sub == nil || sub.Endpoint == "" {
		return nil
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		slog.Error("err handling subscription", "err", err)
		return nil
	}

	var ua *string
	if userAgent != "" {
		ua = &userAgent
	}
	id, err := repo.NewSubscriptionRepo(tx).Upsert(ctx, sub.Endpoint, sub.Keys.Auth, sub.Keys.P256dh, ua)
	if err != nil {
		_ = uow.Rollback()
		slog.Error("err handling subscription", "err", err)
		return nil
	}
	if err := uow.Commit(); err != nil {
		slog.Error("err handling subscription", "err", err)
		return nil
	}

	slog.Info("subscription handled", "subscription_id", id)
	return &id
}
