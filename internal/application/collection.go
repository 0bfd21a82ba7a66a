package application

import (
	"github.com/pocketvibe/pocketvibe-backend/internal/application/commands"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/processors"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/query"
)

// Collection bundles every front-door operation the REST layer exposes.
type Collection struct {
	*commands.GenerateSite
	*commands.GenerateCSS
	*commands.GenerateIcon
	*commands.UpdateAppIcon
	*commands.Appify
	*commands.Subscribe
	*commands.Waitlist
	*commands.Contact
	*commands.Tip
	*query.GetSite
	*query.SiteStatus
	*query.CSSStatus
	*query.Manifest
	*query.GlobalSites
}

// Processors bundles the async job handlers the outbox poller dispatches to.
type Processors struct {
	*processors.GenerateSite
	*processors.GenerateCSS
}
