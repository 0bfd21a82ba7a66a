package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

var (
	ErrMissingContact    = errors.New("contact and type are required")
	ErrInvalidContact    = errors.New("invalid contact for the given type")
	ErrUnknownType       = errors.New("type must be email or npub")
	ErrMissingMessage    = errors.New("message is required")
	ErrContactWithoutTyp = errors.New("type is required when contact is provided")
)

// validateContact enforces the two accepted contact kinds.
func validateContact(contact, typ string) error {
	switch typ {
	case "email":
		if !strings.Contains(contact, "@") {
			return ErrInvalidContact
		}
	case "npub":
		if !strings.HasPrefix(contact, "npub") {
			return ErrInvalidContact
		}
	default:
		return ErrUnknownType
	}
	return nil
}

type Waitlist struct {
	uowFactory *dbs.UOWFactory
}

func NewWaitlist(uowFactory *dbs.UOWFactory) *Waitlist {
	return &Waitlist{uowFactory: uowFactory}
}

func (c *Waitlist) Execute(ctx context.Context, req dto.WaitlistRequest) error {
	contact := strings.TrimSpace(req.Contact)
	if contact == "" || req.Type == "" {
		return ErrMissingContact
	}
	if err := validateContact(contact, req.Type); err != nil {
		return err
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	if err := repo.NewWaitlistRepo(tx).InsertEntry(ctx, db.WaitlistEntry{
		ID:        uuid.New(),
		Contact:   contact,
		Type:      req.Type,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	slog.Info("waitlist entry added", "type", req.Type)
	return nil
}
