package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/interfaces"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

// Store adapts the tx-scoped repos to the pipeline's record-store contract.
// Each call runs in its own transaction: the pipeline's entity updates are
// independently committed, there is no cross-entity transaction.
type Store struct {
	uowFactory *dbs.UOWFactory
}

var _ interfaces.SiteStore = (*Store)(nil)
var _ interfaces.CSSStore = (*Store)(nil)

func NewStore(uowFactory *dbs.UOWFactory) *Store {
	return &Store{uowFactory: uowFactory}
}

func (s *Store) inTx(fn func(tx pgx.Tx) error) error {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}

func (s *Store) GetSite(ctx context.Context, id string) (*db.Site, error) {
	var site *db.Site
	err := s.inTx(func(tx pgx.Tx) error {
		var err error
		site, err = NewSiteRepo(tx).GetSite(ctx, id)
		return err
	})
	return site, err
}

func (s *Store) CreateSite(ctx context.Context, site db.Site) error {
	return s.inTx(func(tx pgx.Tx) error {
		return NewSiteRepo(tx).InsertSite(ctx, site)
	})
}

func (s *Store) UpdateSiteContent(ctx context.Context, id, content string, status consts.SiteStatus) error {
	return s.inTx(func(tx pgx.Tx) error {
		return NewSiteRepo(tx).UpdateSiteContent(ctx, id, content, status)
	})
}

func (s *Store) UpdateSiteStatus(ctx context.Context, id string, status consts.SiteStatus) error {
	return s.inTx(func(tx pgx.Tx) error {
		return NewSiteRepo(tx).UpdateSiteStatus(ctx, id, status)
	})
}

func (s *Store) GetSubscription(ctx context.Context, id uuid.UUID) (*db.PushSubscription, error) {
	var sub *db.PushSubscription
	err := s.inTx(func(tx pgx.Tx) error {
		var err error
		sub, err = NewSubscriptionRepo(tx).GetByID(ctx, id)
		return err
	})
	return sub, err
}

func (s *Store) DeactivateSubscription(ctx context.Context, id uuid.UUID) error {
	return s.inTx(func(tx pgx.Tx) error {
		return NewSubscriptionRepo(tx).DeactivateByID(ctx, id)
	})
}

func (s *Store) CompleteCSSGeneration(ctx context.Context, id, cssContent string) error {
	return s.inTx(func(tx pgx.Tx) error {
		return NewCSSRepo(tx).CompleteCSSGeneration(ctx, id, cssContent)
	})
}

func (s *Store) FailCSSGeneration(ctx context.Context, id, message string) error {
	return s.inTx(func(tx pgx.Tx) error {
		return NewCSSRepo(tx).FailCSSGeneration(ctx, id, message)
	})
}
