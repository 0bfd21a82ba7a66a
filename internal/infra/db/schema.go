package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied at startup; every statement is idempotent so restarts are
// safe without a migration tool.
const Schema = `
CREATE SCHEMA IF NOT EXISTS pocketvibe;

CREATE TABLE IF NOT EXISTS pocketvibe.push_subscriptions (
	id UUID PRIMARY KEY,
	endpoint TEXT UNIQUE NOT NULL,
	auth TEXT NOT NULL,
	p256dh TEXT NOT NULL,
	user_agent TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_used TIMESTAMPTZ NOT NULL DEFAULT now(),
	is_active TEXT NOT NULL DEFAULT 'active'
);

CREATE TABLE IF NOT EXISTS pocketvibe.sites (
	id TEXT PRIMARY KEY,
	content TEXT,
	status TEXT NOT NULL DEFAULT 'processing',
	app_name TEXT,
	icon_url TEXT,
	subscription_id UUID REFERENCES pocketvibe.push_subscriptions(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS pocketvibe.css_generations (
	id TEXT PRIMARY KEY,
	prompt TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'processing',
	css_content TEXT,
	error TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS pocketvibe.waitlist (
	id UUID PRIMARY KEY,
	contact TEXT NOT NULL,
	type TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS pocketvibe.contacts (
	id UUID PRIMARY KEY,
	contact TEXT,
	type TEXT,
	message TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS pocketvibe.outbox (
	id BIGSERIAL PRIMARY KEY,
	event TEXT NOT NULL,
	status INT NOT NULL DEFAULT 0,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS outbox_pending_idx ON pocketvibe.outbox (created_at) WHERE status = 0;
`

func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
