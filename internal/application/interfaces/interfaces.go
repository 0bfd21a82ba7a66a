package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
)

// SiteStore is the record-store surface the site pipeline needs. Absent
// records are reported with pgx.ErrNoRows; every call commits independently.
type SiteStore interface {
	GetSite(ctx context.Context, id string) (*db.Site, error)
	CreateSite(ctx context.Context, site db.Site) error
	UpdateSiteContent(ctx context.Context, id, content string, status consts.SiteStatus) error
	UpdateSiteStatus(ctx context.Context, id string, status consts.SiteStatus) error
	GetSubscription(ctx context.Context, id uuid.UUID) (*db.PushSubscription, error)
	DeactivateSubscription(ctx context.Context, id uuid.UUID) error
}

type CSSStore interface {
	CompleteCSSGeneration(ctx context.Context, id, cssContent string) error
	FailCSSGeneration(ctx context.Context, id, message string) error
}

// TextGenerator is the already-resolved provider capability the pipelines
// consume; which provider backs it is a composition-root concern.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Notifier delivers a completion/failure event to a subscriber. Callers treat
// every failure as best-effort; errs.ErrGone additionally means the endpoint
// is permanently dead.
type Notifier interface {
	Notify(ctx context.Context, sub *db.PushSubscription, title, body string, url *string) error
}
