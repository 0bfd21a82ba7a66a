package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

// Contact records a feedback message. Leaving a way to reach back is
// optional; when a contact is given it is validated like a waitlist entry.
type Contact struct {
	uowFactory *dbs.UOWFactory
}

func NewContact(uowFactory *dbs.UOWFactory) *Contact {
	return &Contact{uowFactory: uowFactory}
}

func (c *Contact) Execute(ctx context.Context, req dto.ContactRequest) error {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ErrMissingMessage
	}

	contact := strings.TrimSpace(req.Contact)
	var contactPtr, typePtr *string
	if contact != "" {
		if req.Type == "" {
			return ErrContactWithoutTyp
		}
		if err := validateContact(contact, req.Type); err != nil {
			return err
		}
		contactPtr = &contact
		typ := req.Type
		typePtr = &typ
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	if err := repo.NewContactRepo(tx).InsertContact(ctx, db.Contact{
		ID:        uuid.New(),
		Contact:   contactPtr,
		Type:      typePtr,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	slog.Info("contact message recorded")
	return nil
}
