package pwa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripCodeBlockRemovesFence(t *testing.T) {
	in := "```html\n<html><body>hi</body></html>\n```"
	require.Equal(t, "<html><body>hi</body></html>", StripCodeBlock(in))
}

func TestStripCodeBlockWithoutLanguageTag(t *testing.T) {
	in := "```\nbody { color: red; }\n```\n"
	require.Equal(t, "body { color: red; }", StripCodeBlock(in))
}

func TestStripCodeBlockLeavesUnfencedInput(t *testing.T) {
	in := "<html><body>hi</body></html>"
	require.Equal(t, in, StripCodeBlock(in))
}

func TestStripCodeBlockIgnoresMidStringFence(t *testing.T) {
	in := "here is code:\n```html\n<p>x</p>\n```\nenjoy"
	require.Equal(t, in, StripCodeBlock(in))
}

func TestStripCodeBlockIdempotent(t *testing.T) {
	in := "```html\n<html></html>\n```"
	once := StripCodeBlock(in)
	require.Equal(t, once, StripCodeBlock(once))
}

func TestStripCodeBlockUnwrapsNestedFences(t *testing.T) {
	in := "```\n```html\n<html></html>\n```\n```"
	once := StripCodeBlock(in)
	require.Equal(t, "<html></html>", once)
	require.Equal(t, once, StripCodeBlock(once))
}

func TestInjectPWAInsertsBeforeFirstHeadClose(t *testing.T) {
	html := "<html><head><title>t</title></head><body><p>fake </HEAD> later</p></body></html>"
	out := InjectPWA(html, "pv_12345678")

	require.Equal(t, 1, strings.Count(out, `rel="manifest"`))
	require.Contains(t, out, "/site/pv_12345678/manifest.json")
	require.Contains(t, out, "/site/pv_12345678/sw.js")

	manifestIdx := strings.Index(out, `rel="manifest"`)
	headIdx := strings.Index(strings.ToLower(out), "</head>")
	require.Less(t, manifestIdx, headIdx, "pwa block must land inside the head")
}

func TestInjectPWAKeepsMultibyteMarkupIntact(t *testing.T) {
	html := "<html><head><title>İstanbul Café — ÇİĞDEM</title></head><body></body></html>"
	out := InjectPWA(html, "pv_12345678")

	require.Contains(t, out, "<title>İstanbul Café — ÇİĞDEM</title>")
	require.Contains(t, out, "/site/pv_12345678/manifest.json")
	require.True(t, strings.Index(out, `rel="manifest"`) < strings.Index(out, "</head>"))
}

func TestInjectPWAHandlesUppercaseHead(t *testing.T) {
	html := "<HTML><HEAD></HEAD><BODY></BODY></HTML>"
	out := InjectPWA(html, "abc")
	require.Contains(t, out, "/site/abc/manifest.json")
	require.True(t, strings.Index(out, `rel="manifest"`) < strings.Index(out, "</HEAD>"))
}

func TestInjectPWAWrapsHeadlessDocument(t *testing.T) {
	out := InjectPWA("<p>bare fragment</p>", "xyz")
	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html><html><head>"))
	require.Contains(t, out, "/site/xyz/manifest.json")
	require.Contains(t, out, "<p>bare fragment</p>")
}

func TestBuildManifestDefaults(t *testing.T) {
	m := BuildManifest("pv_12345678", nil, nil)
	require.Equal(t, "Super Cool App", m.Name)
	require.Equal(t, "/site/pv_12345678", m.StartURL)
	require.Equal(t, "standalone", m.Display)
	require.Len(t, m.Icons, 1)
	require.Equal(t, "/static/icons/pocketvibe.png", m.Icons[0].Src)
}

func TestBuildManifestTruncatesShortName(t *testing.T) {
	name := "A Very Long Application Name"
	icon := "https://cdn.example.com/icon.png"
	m := BuildManifest("id", &name, &icon)
	require.Equal(t, name, m.Name)
	require.Equal(t, name[:14], m.ShortName)
	require.Equal(t, icon, m.Icons[0].Src)
}

func TestRebrandHTMLRepointsLinks(t *testing.T) {
	html := `<head>
	<link rel="manifest" href="/site/pv_12345678/manifest.json">
	<link rel="icon" href="/old.png" type="image/png">
	<link rel="apple-touch-icon" href="/static/icons/pocketvibe.png" type="image/png">
	</head>`

	out := RebrandHTML(html, "my-app", "https://cdn.example.com/my-app.png")
	require.Contains(t, out, `<link rel="manifest" href="/site/my-app/manifest.json">`)
	require.Contains(t, out, `<link rel="icon" href="https://cdn.example.com/my-app.png" type="image/png">`)
	require.Contains(t, out, `<link rel="apple-touch-icon" href="https://cdn.example.com/my-app.png" type="image/png">`)
	require.NotContains(t, out, "pv_12345678")
	require.NotContains(t, out, "/old.png")
}

func TestServiceWorkerScriptNamesCachePerSite(t *testing.T) {
	out := ServiceWorkerScript("pv_12345678")
	require.Contains(t, out, "pocketvibe-site-pv_12345678-v1")
	require.Contains(t, out, "/site/pv_12345678")
}

func TestWrapURLFramesTarget(t *testing.T) {
	out := WrapURL("abcd1234", "https://example.com")
	require.Contains(t, out, `<iframe src="https://example.com"`)
	require.Contains(t, out, "/site/abcd1234/manifest.json")
	require.Contains(t, out, "/site/abcd1234/sw.js")
}
