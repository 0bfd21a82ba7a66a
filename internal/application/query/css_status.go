package query

import (
	"context"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

// CSSStatus answers CSS polling: content appears only once completed, the
// error text only once failed.
type CSSStatus struct {
	uowFactory *dbs.UOWFactory
}

func NewCSSStatus(uowFactory *dbs.UOWFactory) *CSSStatus {
	return &CSSStatus{uowFactory: uowFactory}
}

func (q *CSSStatus) Execute(ctx context.Context, cssID string) (*dto.CSSStatusResponse, error) {
	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	gen, err := repo.NewCSSRepo(tx).GetCSSGeneration(ctx, cssID)
	if err != nil {
		return nil, err
	}
	_ = uow.Commit()

	resp := &dto.CSSStatusResponse{Status: string(gen.Status)}
	switch gen.Status {
	case consts.CSSStatusCompleted:
		resp.CSSContent = gen.CSSContent
	case consts.CSSStatusError:
		resp.Error = gen.Error
	}
	return resp, nil
}
