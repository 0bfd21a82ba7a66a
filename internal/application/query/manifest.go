package query

import (
	"context"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/pwa"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

// Manifest renders the per-site web app manifest from stored display
// metadata.
type Manifest struct {
	uowFactory *dbs.UOWFactory
}

func NewManifest(uowFactory *dbs.UOWFactory) *Manifest {
	return &Manifest{uowFactory: uowFactory}
}

func (q *Manifest) Execute(ctx context.Context, siteID string) (*dto.Manifest, error) {
	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	site, err := repo.NewSiteRepo(tx).GetSite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	_ = uow.Commit()

	manifest := pwa.BuildManifest(site.ID, site.AppName, site.IconURL)
	return &manifest, nil
}
