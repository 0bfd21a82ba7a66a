package commands_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/commands"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/internal/testinfra"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

var uowFactory *dbs.UOWFactory

func TestMain(m *testing.M) {
	uowFactory = dbs.NewUoWFactory(testinfra.Pool)
	os.Exit(m.Run())
}

func siteStatus(t *testing.T, id string) string {
	t.Helper()
	var status string
	err := testinfra.Pool.QueryRow(context.Background(),
		"SELECT status FROM pocketvibe.sites WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

func outboxCountFor(t *testing.T, key, value string) int {
	t.Helper()
	var count int
	err := testinfra.Pool.QueryRow(context.Background(),
		"SELECT count(*) FROM pocketvibe.outbox WHERE payload->>'"+key+"' = $1", value).Scan(&count)
	require.NoError(t, err)
	return count
}

func TestGenerateSitePersistsRecordAndEnqueues(t *testing.T) {
	cmd := commands.NewGenerateSite(uowFactory)

	resp, err := cmd.Execute(context.Background(), dto.GenerateSiteRequest{
		SiteID: "pv_0badc0de",
		Prompt: "a bakery site",
	}, "test-agent")
	require.NoError(t, err)
	require.Equal(t, "processing", resp.Status)
	require.Equal(t, "pv_0badc0de", resp.SiteID)

	require.Equal(t, string(consts.SiteStatusProcessing), siteStatus(t, "pv_0badc0de"))
	require.Equal(t, 1, outboxCountFor(t, "SiteID", "pv_0badc0de"))
}

func TestGenerateSiteRejectsMalformedID(t *testing.T) {
	cmd := commands.NewGenerateSite(uowFactory)

	for _, id := range []string{"", "pv_123", "pv_ABCDEF12", "notpv_12345678", "pv_1234567890"} {
		_, err := cmd.Execute(context.Background(), dto.GenerateSiteRequest{SiteID: id, Prompt: "x"}, "")
		require.ErrorIs(t, err, commands.ErrInvalidSiteID, "id %q", id)
	}
}

func TestGenerateSiteRejectsEmptyPrompt(t *testing.T) {
	cmd := commands.NewGenerateSite(uowFactory)
	_, err := cmd.Execute(context.Background(), dto.GenerateSiteRequest{SiteID: "pv_12ab34cd"}, "")
	require.ErrorIs(t, err, commands.ErrEmptyPrompt)
}

func TestGenerateSiteRejectsDuplicateID(t *testing.T) {
	cmd := commands.NewGenerateSite(uowFactory)
	req := dto.GenerateSiteRequest{SiteID: "pv_aa00bb11", Prompt: "first"}

	_, err := cmd.Execute(context.Background(), req, "")
	require.NoError(t, err)

	_, err = cmd.Execute(context.Background(), req, "")
	require.ErrorIs(t, err, commands.ErrSiteExists)
	require.Equal(t, 1, outboxCountFor(t, "SiteID", "pv_aa00bb11"))
}

func TestGenerateSiteRegistersSubscription(t *testing.T) {
	cmd := commands.NewGenerateSite(uowFactory)

	_, err := cmd.Execute(context.Background(), dto.GenerateSiteRequest{
		SiteID: "pv_cc00dd11",
		Prompt: "with push",
		Subscription: &dto.Subscription{
			Endpoint: "https://push.example/cmd-test",
			Keys:     dto.SubscriptionKeys{Auth: "a", P256dh: "p"},
		},
	}, "test-agent")
	require.NoError(t, err)

	var subID *string
	err = testinfra.Pool.QueryRow(context.Background(),
		"SELECT subscription_id::text FROM pocketvibe.sites WHERE id = $1", "pv_cc00dd11").Scan(&subID)
	require.NoError(t, err)
	require.NotNil(t, subID)
}

func TestGenerateCSSPersistsAndEnqueues(t *testing.T) {
	cmd := commands.NewGenerateCSS(uowFactory, "body { margin: 0; }")

	resp, err := cmd.Execute(context.Background(), dto.GenerateCSSRequest{Prompt: "make it pop"})
	require.NoError(t, err)
	require.Equal(t, "processing", resp.Status)
	require.NotEmpty(t, resp.CSSID)

	var status string
	err = testinfra.Pool.QueryRow(context.Background(),
		"SELECT status FROM pocketvibe.css_generations WHERE id = $1", resp.CSSID).Scan(&status)
	require.NoError(t, err)
	require.Equal(t, "processing", status)

	var payload string
	err = testinfra.Pool.QueryRow(context.Background(),
		"SELECT payload::text FROM pocketvibe.outbox WHERE payload->>'CSSID' = $1", resp.CSSID).Scan(&payload)
	require.NoError(t, err)
	require.Contains(t, payload, "body { margin: 0; }", "base css snapshotted into the job")
}

func TestAppifyStoresWrapperSite(t *testing.T) {
	cmd := commands.NewAppify(uowFactory)

	resp, err := cmd.Execute(context.Background(), dto.AppifyRequest{URL: "https://example.com"})
	require.NoError(t, err)
	require.Equal(t, "success", resp.Status)
	require.Len(t, resp.SiteID, 8)
	require.Equal(t, "/site/"+resp.SiteID, resp.URL)

	var content string
	err = testinfra.Pool.QueryRow(context.Background(),
		"SELECT content FROM pocketvibe.sites WHERE id = $1", resp.SiteID).Scan(&content)
	require.NoError(t, err)
	require.Contains(t, content, `<iframe src="https://example.com"`)
	require.Equal(t, string(consts.SiteStatusSuccess), siteStatus(t, resp.SiteID))
}

func TestAppifyRejectsBadURL(t *testing.T) {
	cmd := commands.NewAppify(uowFactory)
	for _, u := range []string{"", "notaurl", "ftp://example.com", "javascript:alert(1)"} {
		_, err := cmd.Execute(context.Background(), dto.AppifyRequest{URL: u})
		require.ErrorIs(t, err, commands.ErrInvalidURL, "url %q", u)
	}
}

func TestUpdateAppIconCreatesRebrandedSite(t *testing.T) {
	ctx := context.Background()

	seed := commands.NewAppify(uowFactory)
	seeded, err := seed.Execute(ctx, dto.AppifyRequest{URL: "https://example.org"})
	require.NoError(t, err)

	cmd := commands.NewUpdateAppIcon(uowFactory, nil)
	resp, err := cmd.Execute(ctx, dto.UpdateAppIconRequest{
		AppName: "Tidy Notes",
		SiteID:  seeded.SiteID,
	})
	require.NoError(t, err)
	require.Equal(t, "tidy-notes", resp.AppURL)
	require.Equal(t, "Tidy Notes", resp.AppName)
	require.Equal(t, "/static/icons/pocketvibe.png", resp.IconURL)

	var content, appName string
	err = testinfra.Pool.QueryRow(ctx,
		"SELECT content, app_name FROM pocketvibe.sites WHERE id = $1", "tidy-notes").Scan(&content, &appName)
	require.NoError(t, err)
	require.Equal(t, "Tidy Notes", appName)
	require.Contains(t, content, "/site/tidy-notes/manifest.json")
	require.False(t, strings.Contains(content, "/site/"+seeded.SiteID+"/manifest.json"))

	// original record stays untouched
	require.Equal(t, string(consts.SiteStatusSuccess), siteStatus(t, seeded.SiteID))

	// second rebrand with the same name gets a numeric suffix
	resp, err = cmd.Execute(ctx, dto.UpdateAppIconRequest{AppName: "Tidy Notes", SiteID: seeded.SiteID})
	require.NoError(t, err)
	require.Equal(t, "tidy-notes1", resp.AppURL)
}

func TestUpdateAppIconValidation(t *testing.T) {
	cmd := commands.NewUpdateAppIcon(uowFactory, nil)

	_, err := cmd.Execute(context.Background(), dto.UpdateAppIconRequest{AppName: "", SiteID: "x"})
	require.ErrorIs(t, err, commands.ErrMissingParams)

	_, err = cmd.Execute(context.Background(), dto.UpdateAppIconRequest{AppName: "bad!name", SiteID: "x"})
	require.ErrorIs(t, err, commands.ErrInvalidAppName)

	_, err = cmd.Execute(context.Background(), dto.UpdateAppIconRequest{AppName: "ghost", SiteID: "pv_00000000"})
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	ctx := context.Background()
	cmd := commands.NewSubscribe(uowFactory)

	req := dto.SubscribeRequest{Subscription: &dto.Subscription{
		Endpoint: "https://push.example/standalone",
		Keys:     dto.SubscriptionKeys{Auth: "a", P256dh: "p"},
	}}
	require.NoError(t, cmd.Execute(ctx, req, "agent"))

	var active string
	err := testinfra.Pool.QueryRow(ctx,
		"SELECT is_active FROM pocketvibe.push_subscriptions WHERE endpoint = $1",
		"https://push.example/standalone").Scan(&active)
	require.NoError(t, err)
	require.Equal(t, string(consts.SubscriptionActive), active)

	require.NoError(t, cmd.Unsubscribe(ctx, req))
	err = testinfra.Pool.QueryRow(ctx,
		"SELECT is_active FROM pocketvibe.push_subscriptions WHERE endpoint = $1",
		"https://push.example/standalone").Scan(&active)
	require.NoError(t, err)
	require.Equal(t, string(consts.SubscriptionInactive), active)

	// unknown endpoint is not an error
	require.NoError(t, cmd.Unsubscribe(ctx, dto.SubscribeRequest{Subscription: &dto.Subscription{Endpoint: "https://push.example/ghost"}}))

	require.ErrorIs(t, cmd.Execute(ctx, dto.SubscribeRequest{}, ""), commands.ErrInvalidSubscription)
}

func TestWaitlistValidation(t *testing.T) {
	ctx := context.Background()
	cmd := commands.NewWaitlist(uowFactory)

	require.NoError(t, cmd.Execute(ctx, dto.WaitlistRequest{Contact: "user@example.com", Type: "email"}))
	require.NoError(t, cmd.Execute(ctx, dto.WaitlistRequest{Contact: "npub1xyz", Type: "npub"}))

	require.ErrorIs(t, cmd.Execute(ctx, dto.WaitlistRequest{}), commands.ErrMissingContact)
	require.ErrorIs(t, cmd.Execute(ctx, dto.WaitlistRequest{Contact: "no-at-sign", Type: "email"}), commands.ErrInvalidContact)
	require.ErrorIs(t, cmd.Execute(ctx, dto.WaitlistRequest{Contact: "xpub1xyz", Type: "npub"}), commands.ErrInvalidContact)
	require.ErrorIs(t, cmd.Execute(ctx, dto.WaitlistRequest{Contact: "user@example.com", Type: "phone"}), commands.ErrUnknownType)
}

func TestContactMessageValidation(t *testing.T) {
	ctx := context.Background()
	cmd := commands.NewContact(uowFactory)

	require.NoError(t, cmd.Execute(ctx, dto.ContactRequest{Message: "love the product"}))
	require.NoError(t, cmd.Execute(ctx, dto.ContactRequest{Message: "reach me", Contact: "user@example.com", Type: "email"}))

	require.ErrorIs(t, cmd.Execute(ctx, dto.ContactRequest{}), commands.ErrMissingMessage)
	require.ErrorIs(t, cmd.Execute(ctx, dto.ContactRequest{Message: "hi", Contact: "user@example.com"}), commands.ErrContactWithoutTyp)
	require.ErrorIs(t, cmd.Execute(ctx, dto.ContactRequest{Message: "hi", Contact: "nope", Type: "email"}), commands.ErrInvalidContact)
}

func TestTipRejectsNonPositiveAmount(t *testing.T) {
	cmd := commands.NewTip(commands.NewTipConfig())
	for _, amount := range []float64{0, -100} {
		_, err := cmd.Execute(context.Background(), dto.GenerateTipRequest{Amount: amount})
		require.ErrorIs(t, err, commands.ErrInvalidAmount)
	}
}

func TestTipConfigReadsKeyFromEnv(t *testing.T) {
	t.Setenv("STRIPE_KEY", "sk_test_tipconfig")
	commands.NewTip(commands.NewTipConfig())
	require.Equal(t, "sk_test_tipconfig", stripe.Key)
}
