package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/pwa"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

var ErrInvalidURL = errors.New("a valid http(s) url is required")

// Appify wraps an existing external website in an installable shell: a stored
// document that frames the target URL and carries the usual PWA markup.
type Appify struct {
	uowFactory *dbs.UOWFactory
}

func NewAppify(uowFactory *dbs.UOWFactory) *Appify {
	return &Appify{uowFactory: uowFactory}
}

func (c *Appify) Execute(ctx context.Context, req dto.AppifyRequest) (*dto.AppifyResponse, error) {
	target := strings.TrimSpace(req.URL)
	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, ErrInvalidURL
	}

	siteID := uuid.New().String()[:8]
	html := pwa.WrapURL(siteID, target)

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	if err := repo.NewSiteRepo(tx).InsertSite(ctx, db.Site{
		ID:        siteID,
		Content:   &html,
		Status:    consts.SiteStatusSuccess,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		_ = uow.Rollback()
		return nil, fmt.Errorf("err saving appified site, %v", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	slog.Info("appified site created", "site_id", siteID, "target", target)
	return &dto.AppifyResponse{
		Status: "success",
		SiteID: siteID,
		URL:    "/site/" + siteID,
	}, nil
}
