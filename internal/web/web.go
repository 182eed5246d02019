// Package web embeds and serves the static new tab page assets.
//
// The page is a plain HTML/JS collaborator of the JSON API: it renders the
// folder envelope from /api/bookmarks, drives the search autocomplete from
// /api/autocomplete, and links to /auth/start whenever a response carries
// needsAuth. A small service worker caches the static shell.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assets embed.FS

// Handler returns an [http.Handler] serving the embedded page at the site
// root.
func Handler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
