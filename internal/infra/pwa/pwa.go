// Package pwa post-processes generated sites: it unwraps code-fenced provider
// output and injects the markup that makes a site installable.
package pwa

import (
	"fmt"
	"regexp"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
)

// fencedBlock matches only when the fence spans the whole input; a fence that
// appears mid-string must not trigger a partial strip.
var fencedBlock = regexp.MustCompile("(?s)^```(?:\\w+)?\\n(.+?)\\n```\\s*$")

// StripCodeBlock removes full-span markdown code fences (optional language
// tag) around text, returning the input unchanged when there is none.
// Providers occasionally double-wrap their output, so fences are stripped
// until none remain; the result is a fixed point.
func StripCodeBlock(text string) string {
	for {
		m := fencedBlock.FindStringSubmatch(text)
		if m == nil {
			return text
		}
		text = m[1]
	}
}

const pwaElements = `
    <link rel="manifest" href="/site/%s/manifest.json">
    <meta name="theme-color" content="#121212"/>
    <meta name="description" content="Made with PocketVibe"/>
    <meta name="mobile-web-app-capable" content="yes">
    <link rel="apple-touch-icon" href="/static/icons/pocketvibe.png" type="image/png">

    <script>
      if ('serviceWorker' in navigator) {
        window.addEventListener('load', () => {
          navigator.serviceWorker.register('/site/%s/sw.js')
            .then(reg => console.log('Service worker registered'))
            .catch(err => console.log('Service worker registration failed', err));
        });
      }
    </script>
    `

var headClosePattern = regexp.MustCompile(`(?i)</head>`)

// InjectPWA inserts the manifest link, PWA meta tags and the service-worker
// registration script before the first closing head tag (case-insensitive).
// Documents without a head get wrapped in a minimal one. Calling this twice
// duplicates the block, so the pipeline calls it exactly once per job.
func InjectPWA(html, siteID string) string {
	block := fmt.Sprintf(pwaElements, siteID, siteID)
	if loc := headClosePattern.FindStringIndex(html); loc != nil {
		return html[:loc[0]] + block + html[loc[0]:]
	}
	return fmt.Sprintf("<!DOCTYPE html><html><head>%s</head>%s</html>", block, html)
}

// BuildManifest renders the per-site web app manifest. appName and iconURL
// are the stored display metadata; nil falls back to the product defaults.
func BuildManifest(siteID string, appName, iconURL *string) dto.Manifest {
	name := consts.DefaultAppName
	if appName != nil && *appName != "" {
		name = *appName
	}
	shortName := name
	if len(shortName) > 14 {
		shortName = shortName[:14]
	}
	icon := consts.DefaultIconURL
	if iconURL != nil && *iconURL != "" {
		icon = *iconURL
	}
	return dto.Manifest{
		Name:            name,
		ShortName:       shortName,
		Description:     "Created with PocketVibe",
		StartURL:        "/site/" + siteID,
		Display:         "standalone",
		BackgroundColor: "#121212",
		ThemeColor:      "#121212",
		Icons: []dto.ManifestIcon{
			{Src: icon, Sizes: "512x512", Type: "image/png"},
		},
	}
}

var (
	manifestLinkPattern  = regexp.MustCompile(`<link\s+rel="manifest"\s+href="[^"]*">`)
	iconLinkPattern      = regexp.MustCompile(`<link\s+rel="icon"\s+href="[^"]*"[^>]*>`)
	appleIconLinkPattern = regexp.MustCompile(`<link\s+rel="apple-touch-icon"\s+href="[^"]*"[^>]*>`)
)

// RebrandHTML repoints the manifest and icon links of an already generated
// document at the renamed site and its new icon.
func RebrandHTML(html, siteID, iconURL string) string {
	html = manifestLinkPattern.ReplaceAllString(html,
		fmt.Sprintf(`<link rel="manifest" href="/site/%s/manifest.json">`, siteID))
	html = iconLinkPattern.ReplaceAllString(html,
		fmt.Sprintf(`<link rel="icon" href="%s" type="image/png">`, iconURL))
	html = appleIconLinkPattern.ReplaceAllString(html,
		fmt.Sprintf(`<link rel="apple-touch-icon" href="%s" type="image/png">`, iconURL))
	return html
}

const serviceWorkerTemplate = `
const CACHE_NAME = 'pocketvibe-site-%s-v1';
const SITE_URL = '/site/%s';

self.addEventListener('install', event => {
    event.waitUntil(
        caches.open(CACHE_NAME).then(cache => {
            return fetch(SITE_URL)
                .then(response => {
                    if (!response || response.status !== 200) {
                        throw new Error('Failed to cache site content');
                    }
                    return cache.put(SITE_URL, response);
                });
        })
    );
    self.skipWaiting();
});

self.addEventListener('activate', event => {
    event.waitUntil(
        caches.keys().then(keys => Promise.all(
            keys.filter(key => key !== CACHE_NAME).map(key => caches.delete(key))
        ))
    );
    self.clients.claim();
});

self.addEventListener('fetch', event => {
    event.respondWith(
        caches.match(event.request).then(cached => cached || fetch(event.request))
    );
});
`

// ServiceWorkerScript renders the per-site caching service worker.
func ServiceWorkerScript(siteID string) string {
	return fmt.Sprintf(serviceWorkerTemplate, siteID, siteID)
}

const appifyTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Appified Website</title>
    <link rel="manifest" href="/site/%s/manifest.json">
    <meta name="theme-color" content="#121212"/>
    <meta name="description" content="Appified website using PocketVibe"/>
    <meta name="mobile-web-app-capable" content="yes">
    <link rel="apple-touch-icon" href="/static/icons/pocketvibe.png" type="image/png">
    <style>
        body, html {
            margin: 0;
            padding: 0;
            width: 100%%;
            height: 100%%;
            overflow: hidden;
        }
        iframe {
            width: 100%%;
            height: 100%%;
            border: none;
        }
    </style>
    <script>
        if ('serviceWorker' in navigator) {
            window.addEventListener('load', () => {
                navigator.serviceWorker.register('/site/%s/sw.js')
                    .then(reg => console.log('Service worker registered'))
                    .catch(err => console.log('Service worker registration failed', err));
            });
        }
    </script>
</head>
<body>
    <iframe src="%s" allow="fullscreen" allowfullscreen></iframe>
</body>
</html>
`

// WrapURL builds the PWA wrapper document that frames an external site.
func WrapURL(siteID, targetURL string) string {
	return fmt.Sprintf(appifyTemplate, siteID, siteID, targetURL)
}
