package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/pwa"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/storage"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

var (
	ErrInvalidAppName = errors.New("app name can only contain letters, numbers, and hyphens")
	ErrMissingParams  = errors.New("missing required parameters: app_name and site_id are required")
)

// UpdateAppIcon rebrands a generated site: it derives a URL-friendly id from
// the app name, re-hosts the chosen icon, rewrites the manifest and icon links
// in the HTML, and saves the result as a new site under the derived id. The
// original record stays untouched.
type UpdateAppIcon struct {
	uowFactory *dbs.UOWFactory
	icons      *storage.Storage
	client     *http.Client
}

func NewUpdateAppIcon(uowFactory *dbs.UOWFactory, icons *storage.Storage) *UpdateAppIcon {
	return &UpdateAppIcon{
		uowFactory: uowFactory,
		icons:      icons,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *UpdateAppIcon) Execute(ctx context.Context, req dto.UpdateAppIconRequest) (*dto.UpdateAppIconResponse, error) {
	appName := strings.TrimSpace(req.AppName)
	if appName == "" || req.SiteID == "" {
		return nil, ErrMissingParams
	}

	baseURL := strings.ReplaceAll(strings.ToLower(appName), " ", "-")
	if !isSlug(baseURL) {
		return nil, ErrInvalidAppName
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sites := repo.NewSiteRepo(tx)

	appURL, err := c.uniqueAppURL(ctx, sites, baseURL)
	if err != nil {
		return nil, err
	}
	slog.Info("derived app url", "app_url", appURL, "base", baseURL)

	iconURL := consts.DefaultIconURL
	if req.ImageURL != "" {
		iconURL, err = c.rehostIcon(ctx, req.ImageURL, appURL)
		if err != nil {
			return nil, fmt.Errorf("err processing image, %v", err)
		}
	}

	site, err := sites.GetSite(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	var html string
	if site.Content != nil {
		html = pwa.RebrandHTML(*site.Content, appURL, iconURL)
	}

	if err := sites.InsertSite(ctx, db.Site{
		ID:        appURL,
		Content:   &html,
		Status:    consts.SiteStatusSuccess,
		AppName:   &appName,
		IconURL:   &iconURL,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("err saving rebranded site, %v", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	slog.Info("app icon update completed", "app_url", appURL)
	return &dto.UpdateAppIconResponse{
		Status:  "success",
		Message: "App icon updated successfully",
		AppURL:  appURL,
		AppName: appName,
		IconURL: iconURL,
	}, nil
}

// uniqueAppURL appends the first free numeric suffix when the base id is
// already taken: base, base1, base2, ...
func (c *UpdateAppIcon) uniqueAppURL(ctx context.Context, sites *repo.SiteRepo, base string) (string, error) {
	existing, err := sites.ListSiteIDsByPrefix(ctx, base)
	if err != nil {
		return "", err
	}
	if len(existing) == 0 {
		return base, nil
	}
	taken := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s%d", base, counter)
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
	}
}

// rehostIcon copies the chosen image into icon storage so the site never
// references a third-party host. Icons already in our storage pass through.
func (c *UpdateAppIcon) rehostIcon(ctx context.Context, imageURL, appURL string) (string, error) {
	if strings.HasPrefix(imageURL, c.icons.BaseURL()) || strings.HasPrefix(imageURL, "/static/") {
		return imageURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("icon fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("icons/%s.png", appURL)
	contentType := "image/png"
	return c.icons.UploadFile(ctx, key, &contentType, bytes.NewReader(data))
}

func isSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return strings.ReplaceAll(s, "-", "") != ""
}
