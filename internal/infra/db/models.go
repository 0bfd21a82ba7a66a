package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
)

type Site struct {
	ID             string            `db:"id"`
	Content        *string           `db:"content"`
	Status         consts.SiteStatus `db:"status"`
	AppName        *string           `db:"app_name"`
	IconURL        *string           `db:"icon_url"`
	SubscriptionID *uuid.UUID        `db:"subscription_id"`
	CreatedAt      time.Time         `db:"created_at"`
}

type CSSGeneration struct {
	ID         string           `db:"id"`
	Prompt     string           `db:"prompt"`
	Status     consts.CSSStatus `db:"status"`
	CSSContent *string          `db:"css_content"`
	Error      *string          `db:"error"`
	CreatedAt  time.Time        `db:"created_at"`
}

type PushSubscription struct {
	ID        uuid.UUID                `db:"id"`
	Endpoint  string                   `db:"endpoint"`
	Auth      string                   `db:"auth"`
	P256dh    string                   `db:"p256dh"`
	UserAgent *string                  `db:"user_agent"`
	CreatedAt time.Time                `db:"created_at"`
	LastUsed  time.Time                `db:"last_used"`
	IsActive  consts.SubscriptionState `db:"is_active"`
}

type WaitlistEntry struct {
	ID        uuid.UUID `db:"id"`
	Contact   string    `db:"contact"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

type Contact struct {
	ID        uuid.UUID `db:"id"`
	Contact   *string   `db:"contact"`
	Type      *string   `db:"type"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

type Outbox struct {
	ID        uint64          `db:"id"`
	Event     string          `db:"event"`
	Status    int             `db:"status"`
	Payload   json.RawMessage `db:"payload"`
	CreatedAt time.Time       `db:"created_at"`
}
