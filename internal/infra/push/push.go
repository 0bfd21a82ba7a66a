package push

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/errs"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	"github.com/pocketvibe/pocketvibe-backend/pkg/env"
)

type Config struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string
	TTL             int
}

func NewConfig() Config {
	return Config{
		VAPIDPublicKey:  env.GetEnv("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: env.GetEnv("VAPID_PRIVATE_KEY", ""),
		Subscriber:      env.GetEnv("VAPID_MAILTO", "hello@pocketvibe.app"),
		TTL:             60 * 60 * 24,
	}
}

// Notifier delivers web push notifications with VAPID auth. Delivery is
// best-effort from the caller's point of view; only the sink distinguishes a
// permanently dead endpoint (errs.ErrGone) from a transient failure.
type Notifier struct {
	cfg Config
}

func NewNotifier(cfg Config) *Notifier {
	return &Notifier{cfg: cfg}
}

type payload struct {
	Title string  `json:"title"`
	Body  string  `json:"body"`
	URL   *string `json:"url"`
}

func (n *Notifier) Notify(ctx context.Context, sub *db.PushSubscription, title, body string, url *string) error {
	if n.cfg.VAPIDPublicKey == "" || n.cfg.VAPIDPrivateKey == "" {
		return fmt.Errorf("VAPID keys not configured")
	}

	data, err := json.Marshal(payload{Title: title, Body: body, URL: url})
	if err != nil {
		return fmt.Errorf("err marshalling push payload, %v", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, data, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			Auth:   sub.Auth,
			P256dh: sub.P256dh,
		},
	}, &webpush.Options{
		Subscriber:      n.cfg.Subscriber,
		VAPIDPublicKey:  n.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: n.cfg.VAPIDPrivateKey,
		TTL:             n.cfg.TTL,
	})
	if err != nil {
		return fmt.Errorf("err sending push notification, %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == 404 || resp.StatusCode == 410:
		return errs.ErrGone
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("push service returned %d: %s", resp.StatusCode, msg)
	}

	slog.Debug("push notification sent", "endpoint", sub.Endpoint, "status", resp.StatusCode)
	return nil
}
