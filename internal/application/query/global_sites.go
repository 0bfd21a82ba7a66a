package query

import (
	"context"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

// GlobalSites lists every successfully generated site for the public gallery.
type GlobalSites struct {
	uowFactory *dbs.UOWFactory
}

func NewGlobalSites(uowFactory *dbs.UOWFactory) *GlobalSites {
	return &GlobalSites{uowFactory: uowFactory}
}

func (q *GlobalSites) Execute(ctx context.Context) (*dto.GlobalSitesResponse, error) {
	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sites, err := repo.NewSiteRepo(tx).ListSitesByStatus(ctx, consts.SiteStatusSuccess)
	if err != nil {
		return nil, err
	}
	_ = uow.Commit()

	summaries := make([]dto.SiteSummary, 0, len(sites))
	for _, site := range sites {
		summary := dto.SiteSummary{
			ID:      site.ID,
			URL:     "/site/" + site.ID,
			AppName: consts.DefaultAppName,
			IconURL: consts.DefaultIconURL,
		}
		if site.AppName != nil && *site.AppName != "" {
			summary.AppName = *site.AppName
		}
		if site.IconURL != nil && *site.IconURL != "" {
			summary.IconURL = *site.IconURL
		}
		if !site.CreatedAt.IsZero() {
			created := site.CreatedAt.Format("2006-01-02T15:04:05")
			summary.CreatedAt = &created
		}
		summaries = append(summaries, summary)
	}

	return &dto.GlobalSitesResponse{
		Status: "success",
		Sites:  summaries,
		Total:  len(summaries),
	}, nil
}
