package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

var ErrInvalidSubscription = errors.New("subscription with endpoint and keys is required")

// Subscribe manages standalone push subscription registrations, keyed by
// endpoint so a browser re-subscribing refreshes its keys in place.
type Subscribe struct {
	uowFactory *dbs.UOWFactory
}

func NewSubscribe(uowFactory *dbs.UOWFactory) *Subscribe {
	return &Subscribe{uowFactory: uowFactory}
}

func (c *Subscribe) Execute(ctx context.Context, req dto.SubscribeRequest, userAgent string) error {
	sub := req.Subscription
	if sub == nil || sub.Endpoint == "" || sub.Keys.Auth == "" || sub.Keys.P256dh == "" {
		return ErrInvalidSubscription
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}

	var ua *string
	if userAgent != "" {
		ua = &userAgent
	}
	id, err := repo.NewSubscriptionRepo(tx).Upsert(ctx, sub.Endpoint, sub.Keys.Auth, sub.Keys.P256dh, ua)
	if err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	slog.Info("subscription registered", "subscription_id", id)
	return nil
}

// Unsubscribe deactivates by endpoint. An unknown endpoint is not an error;
// the browser's intent is already satisfied.
func (c *Subscribe) Unsubscribe(ctx context.Context, req dto.SubscribeRequest) error {
	sub := req.Subscription
	if sub == nil || sub.Endpoint == "" {
		return ErrInvalidSubscription
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	if err := repo.NewSubscriptionRepo(tx).DeactivateByEndpoint(ctx, sub.Endpoint); err != nil {
		_ = uow.Rollback()
		if errors.Is(err, pgx.ErrNoRows) {
			slog.Warn("unsubscribe for unknown endpoint", "endpoint", sub.Endpoint)
			return nil
		}
		return err
	}
	return uow.Commit()
}
