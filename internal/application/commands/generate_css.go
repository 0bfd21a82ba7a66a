package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/events"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
)

// GenerateCSS enqueues a stylesheet elevation job. The base stylesheet is
// read once at startup and snapshotted into each job payload, so a later
// change to the file on disk never affects jobs already queued.
type GenerateCSS struct {
	uowFactory *dbs.UOWFactory
	baseCSS    string
}

func NewGenerateCSS(uowFactory *dbs.UOWFactory, baseCSS string) *GenerateCSS {
	return &GenerateCSS{uowFactory: uowFactory, baseCSS: baseCSS}
}

func (c *GenerateCSS) Execute(ctx context.Context, req dto.GenerateCSSRequest) (*dto.GenerateCSSResponse, error) {
	if req.Prompt == "" {
		return nil, ErrEmptyPrompt
	}

	cssID := uuid.New().String()

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}

	if err := repo.NewCSSRepo(tx).InsertCSSGeneration(ctx, db.CSSGeneration{
		ID:        cssID,
		Prompt:    req.Prompt,
		Status:    consts.CSSStatusProcessing,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		_ = uow.Rollback()
		return nil, fmt.Errorf("err creating css generation record, %v", err)
	}

	if err := repo.NewEventRepo(tx).InsertEvent(ctx, events.GenerateCSS{
		CSSID:      cssID,
		Prompt:     req.Prompt,
		CSSContent: c.baseCSS,
		CreatedAt:  time.Now(),
	}); err != nil {
		_ = uow.Rollback()
		return nil, fmt.Errorf("err enqueueing css job, %v", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	slog.Info("css generation enqueued", "css_id", cssID)
	return &dto.GenerateCSSResponse{
		CSSID:  cssID,
		Status: string(consts.CSSStatusProcessing),
	}, nil
}
