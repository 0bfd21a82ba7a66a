package query

import (
	"context"

	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

// GetSite serves the generated document for /site/{id}. Not found surfaces
// as pgx.ErrNoRows for the handler to translate.
type GetSite struct {
	uowFactory *dbs.UOWFactory
}

func NewGetSite(uowFactory *dbs.UOWFactory) *GetSite {
	return &GetSite{uowFactory: uowFactory}
}

func (q *GetSite) Execute(ctx context.Context, siteID string) (*db.Site, error) {
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
	return site, nil
}
