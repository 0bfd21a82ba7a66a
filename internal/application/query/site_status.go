package query

import (
	"context"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

// SiteStatus answers the polling endpoint with the job's current state.
type SiteStatus struct {
	uowFactory *dbs.UOWFactory
}

func NewSiteStatus(uowFactory *dbs.UOWFactory) *SiteStatus {
	return &SiteStatus{uowFactory: uowFactory}
}

func (q *SiteStatus) Execute(ctx context.Context, siteID string) (*dto.SiteStatusResponse, error) {
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
	return &dto.SiteStatusResponse{
		Status: string(site.Status),
		SiteID: site.ID,
	}, nil
}
