package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	shared "github.com/pocketvibe/pocketvibe-backend/pkg/interfaces"
)

// ErrDuplicateKey is returned when an insert hits a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type SiteRepo struct {
	tx pgx.Tx
}

func NewSiteRepo(tx pgx.Tx) *SiteRepo {
	return &SiteRepo{tx: tx}
}

const siteColumns = "id, content, status, app_name, icon_url, subscription_id, created_at"

func scanSite(row pgx.Row) (*db.Site, error) {
	var site db.Site
	err := row.Scan(&site.ID, &site.Content, &site.Status, &site.AppName,
		&site.IconURL, &site.SubscriptionID, &site.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *SiteRepo) GetSite(ctx context.Context, id string) (*db.Site, error) {
	query := "SELECT " + siteColumns + " FROM pocketvibe.sites WHERE id = $1"
	return scanSite(s.tx.QueryRow(ctx, query, id))
}

func (s *SiteRepo) InsertSite(ctx context.Context, site db.Site) error {
	_, err := s.tx.Exec(ctx, `INSERT INTO pocketvibe.sites(id, content, status, app_name, icon_url, subscription_id, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		site.ID, site.Content, site.Status, site.AppName, site.IconURL, site.SubscriptionID, site.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

func (s *SiteRepo) UpdateSiteContent(ctx context.Context, id, content string, status consts.SiteStatus) error {
	ct, err := s.tx.Exec(ctx, "UPDATE pocketvibe.sites SET content = $1, status = $2 WHERE id = $3",
		content, status, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *SiteRepo) UpdateSiteStatus(ctx context.Context, id string, status consts.SiteStatus) error {
	ct, err := s.tx.Exec(ctx, "UPDATE pocketvibe.sites SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *SiteRepo) ListSitesByStatus(ctx context.Context, status consts.SiteStatus) ([]db.Site, error) {
	query := "SELECT " + siteColumns + " FROM pocketvibe.sites WHERE status = $1 ORDER BY created_at DESC"
	rows, err := s.tx.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []db.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, *site)
	}
	return sites, rows.Err()
}

// ListSiteIDsByPrefix backs the rebrand slug-uniqueness check.
func (s *SiteRepo) ListSiteIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.tx.Query(ctx, "SELECT id FROM pocketvibe.sites WHERE id LIKE $1 || '%'", prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type CSSRepo struct {
	tx pgx.Tx
}

func NewCSSRepo(tx pgx.Tx) *CSSRepo {
	return &CSSRepo{tx: tx}
}

func (c *CSSRepo) GetCSSGeneration(ctx context.Context, id string) (*db.CSSGeneration, error) {
	var gen db.CSSGeneration
	query := "SELECT id, prompt, status, css_content, error, created_at FROM pocketvibe.css_generations WHERE id = $1"
	err := c.tx.QueryRow(ctx, query, id).Scan(&gen.ID, &gen.Prompt, &gen.Status,
		&gen.CSSContent, &gen.Error, &gen.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &gen, nil
}

func (c *CSSRepo) InsertCSSGeneration(ctx context.Context, gen db.CSSGeneration) error {
	_, err := c.tx.Exec(ctx, `INSERT INTO pocketvibe.css_generations(id, prompt, status, created_at)
			VALUES ($1,$2,$3,$4)`, gen.ID, gen.Prompt, gen.Status, gen.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

func (c *CSSRepo) CompleteCSSGeneration(ctx context.Context, id, cssContent string) error {
	ct, err := c.tx.Exec(ctx, "UPDATE pocketvibe.css_generations SET status = $1, css_content = $2 WHERE id = $3",
		consts.CSSStatusCompleted, cssContent, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (c *CSSRepo) FailCSSGeneration(ctx context.Context, id, message string) error {
	ct, err := c.tx.Exec(ctx, "UPDATE pocketvibe.css_generations SET status = $1, error = $2 WHERE id = $3",
		consts.CSSStatusError, message, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type SubscriptionRepo struct {
	tx pgx.Tx
}

func NewSubscriptionRepo(tx pgx.Tx) *SubscriptionRepo {
	return &SubscriptionRepo{tx: tx}
}

const subscriptionColumns = "id, endpoint, auth, p256dh, user_agent, created_at, last_used, is_active"

func scanSubscription(row pgx.Row) (*db.PushSubscription, error) {
	var sub db.PushSubscription
	err := row.Scan(&sub.ID, &sub.Endpoint, &sub.Auth, &sub.P256dh, &sub.UserAgent,
		&sub.CreatedAt, &sub.LastUsed, &sub.IsActive)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*db.PushSubscription, error) {
	query := "SELECT " + subscriptionColumns + " FROM pocketvibe.push_subscriptions WHERE id = $1"
	return scanSubscription(s.tx.QueryRow(ctx, query, id))
}

func (s *SubscriptionRepo) GetByEndpoint(ctx context.Context, endpoint string) (*db.PushSubscription, error) {
	query := "SELECT " + subscriptionColumns + " FROM pocketvibe.push_subscriptions WHERE endpoint = $1"
	return scanSubscription(s.tx.QueryRow(ctx, query, endpoint))
}

// Upsert keys a subscription by endpoint: an existing row gets fresh keys and
// is reactivated, otherwise a new row is created. Returns the subscription id.
func (s *SubscriptionRepo) Upsert(ctx context.Context, endpoint, auth, p256dh string, userAgent *string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.tx.QueryRow(ctx, `INSERT INTO pocketvibe.push_subscriptions(id, endpoint, auth, p256dh, user_agent, created_at, last_used, is_active)
			VALUES ($1,$2,$3,$4,$5,$6,$6,$7)
			ON CONFLICT (endpoint) DO UPDATE
			SET auth = EXCLUDED.auth, p256dh = EXCLUDED.p256dh, user_agent = EXCLUDED.user_agent,
				last_used = EXCLUDED.last_used, is_active = EXCLUDED.is_active
			RETURNING id`,
		uuid.New(), endpoint, auth, p256dh, userAgent, time.Now().UTC(), consts.SubscriptionActive).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("err upserting subscription, %v", err)
	}
	return id, nil
}

func (s *SubscriptionRepo) DeactivateByID(ctx context.Context, id uuid.UUID) error {
	_, err := s.tx.Exec(ctx, "UPDATE pocketvibe.push_subscriptions SET is_active = $1, last_used = $2 WHERE id = $3",
		consts.SubscriptionInactive, time.Now().UTC(), id)
	return err
}

func (s *SubscriptionRepo) DeactivateByEndpoint(ctx context.Context, endpoint string) error {
	ct, err := s.tx.Exec(ctx, "UPDATE pocketvibe.push_subscriptions SET is_active = $1, last_used = $2 WHERE endpoint = $3",
		consts.SubscriptionInactive, time.Now().UTC(), endpoint)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type WaitlistRepo struct {
	tx pgx.Tx
}

func NewWaitlistRepo(tx pgx.Tx) *WaitlistRepo {
	return &WaitlistRepo{tx: tx}
}

func (w *WaitlistRepo) InsertEntry(ctx context.Context, entry db.WaitlistEntry) error {
	_, err := w.tx.Exec(ctx, "INSERT INTO pocketvibe.waitlist(id, contact, type, created_at) VALUES ($1,$2,$3,$4)",
		entry.ID, entry.Contact, entry.Type, entry.CreatedAt)
	return err
}

type ContactRepo struct {
	tx pgx.Tx
}

func NewContactRepo(tx pgx.Tx) *ContactRepo {
	return &ContactRepo{tx: tx}
}

func (c *ContactRepo) InsertContact(ctx context.Context, contact db.Contact) error {
	_, err := c.tx.Exec(ctx, "INSERT INTO pocketvibe.contacts(id, contact, type, message, created_at) VALUES ($1,$2,$3,$4,$5)",
		contact.ID, contact.Contact, contact.Type, contact.Message, contact.CreatedAt)
	return err
}

// EventRepo enqueues jobs by appending them to the outbox inside the caller's
// transaction; the poller delivers them to workers.
type EventRepo struct {
	tx pgx.Tx
}

func NewEventRepo(tx pgx.Tx) *EventRepo {
	return &EventRepo{tx: tx}
}

func (e *EventRepo) InsertEvent(ctx context.Context, event shared.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("err marshalling event payload, %v", err)
	}
	_, err = e.tx.Exec(ctx, "INSERT INTO pocketvibe.outbox (event, status, payload, created_at) VALUES ($1,$2,$3,$4)",
		event.GetType(), int(consts.NotProcessed), json.RawMessage(payload), time.Now())
	if err != nil {
		return fmt.Errorf("err inserting a new event, %v", err)
	}
	return nil
}
