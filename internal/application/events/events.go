package events

import "time"

// GenerateSite is the site-generation job. SiteID is the client-supplied key
// of a record already persisted in processing state.
type GenerateSite struct {
	SiteID    string
	Prompt    string
	CreatedAt time.Time
}

func (e GenerateSite) GetType() string {
	return "GenerateSite"
}

// GenerateCSS carries the base CSS captured at enqueue time; the worker never
// re-reads it.
type GenerateCSS struct {
	CSSID      string
	Prompt     string
	CSSContent string
	CreatedAt  time.Time
}

func (e GenerateCSS) GetType() string {
	return "GenerateCSS"
}
