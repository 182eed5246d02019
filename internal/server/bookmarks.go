package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/raintab/raintab/internal/raindrop"
	"github.com/raintab/raintab/internal/shared"
)

// cacheControl advises the browser to hold folder payloads briefly; nothing
// is cached server side.
const cacheControl = "private, max-age=300"

// BookmarksHandler serves the aggregated folder endpoints backing the page.
//
// All endpoints require the session cookie and are read-only against the
// upstream API. Folder payloads are assembled fresh on every request.
type BookmarksHandler struct {
	config *shared.Config
	client *raindrop.Client
	logger *log.Logger
}

// NewBookmarksHandler creates the bookmark endpoint handler. A nil client
// selects a default [raindrop.Client] built from the config.
func NewBookmarksHandler(config *shared.Config, client *raindrop.Client, logger *log.Logger) *BookmarksHandler {
	if client == nil {
		client = raindrop.NewClient(config.API.BaseURL, nil, config.API.RateLimit)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &BookmarksHandler{config: config, client: client, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *BookmarksHandler) Routes() []string {
	return []string{"/api/bookmarks", "/api/autocomplete", "/api/newtab"}
}

// ServeHTTP authenticates the request from its session cookie and dispatches
// to the endpoint. Without a cookie the upstream is never contacted.
func (h *BookmarksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed().Write(w)
		return
	}

	token, ok := SessionToken(r)
	if !ok {
		AuthError().Write(w)
		return
	}

	client := h.client.WithToken(token)

	var resp Response
	switch r.URL.Path {
	case "/api/bookmarks":
		resp = h.display(r.Context(), client)
	case "/api/autocomplete":
		resp = h.autocomplete(r.Context(), client)
	case "/api/newtab":
		resp = h.combined(r.Context(), client)
	default:
		http.NotFound(w, r)
		return
	}

	if err := resp.Write(w); err != nil {
		h.logger.Error("failed to write response", "path", r.URL.Path, "err", err)
	}
}

// display serves /api/bookmarks: the folders of the configured display group.
func (h *BookmarksHandler) display(ctx context.Context, client *raindrop.Client) Response {
	name := h.config.Groups.Display
	if name == "" {
		return ServerError("GROUP_NAME not set", shared.ErrMissingConfig)
	}

	user, resp, ok := h.fetchUser(ctx, client)
	if !ok {
		return resp
	}

	folders, err := h.groupFolders(ctx, client, user, name, true)
	if err != nil {
		return ServerError("Failed to fetch bookmarks", err)
	}

	return NewResponse(http.StatusOK, map[string]any{"folders": folders},
		map[string]string{"Cache-Control": cacheControl})
}

// autocomplete serves /api/autocomplete: the folders of the optional
// suggestion group. A missing or empty group yields an empty result rather
// than an error.
func (h *BookmarksHandler) autocomplete(ctx context.Context, client *raindrop.Client) Response {
	name := h.config.Groups.Autocomplete
	if name == "" {
		return ServerError("AUTOCOMPLETE_GROUP_NAME not set", shared.ErrMissingConfig)
	}

	user, resp, ok := h.fetchUser(ctx, client)
	if !ok {
		return resp
	}

	folders, err := h.groupFolders(ctx, client, user, name, false)
	if err != nil {
		return ServerError("Failed to fetch autocomplete data", err)
	}

	return NewResponse(http.StatusOK, map[string]any{"folders": folders},
		map[string]string{"Cache-Control": cacheControl})
}

// combined serves /api/newtab: both groups resolved from a single pair of
// user and collection fetches.
func (h *BookmarksHandler) combined(ctx context.Context, client *raindrop.Client) Response {
	name := h.config.Groups.Display
	if name == "" {
		return ServerError("GROUP_NAME not set", shared.ErrMissingConfig)
	}

	user, resp, ok := h.fetchUser(ctx, client)
	if !ok {
		return resp
	}

	collections, err := client.Collections(ctx)
	if err != nil {
		return ServerError("Failed to fetch bookmarks", err)
	}

	display, err := h.assemble(ctx, client, user, collections, name, true)
	if err != nil {
		return ServerError("Failed to fetch bookmarks", err)
	}

	autocomplete := []raindrop.Folder{}
	if h.config.Groups.Autocomplete != "" {
		autocomplete, err = h.assemble(ctx, client, user, collections, h.config.Groups.Autocomplete, false)
		if err != nil {
			return ServerError("Failed to fetch autocomplete data", err)
		}
	}

	body := map[string]any{"display": display, "autocomplete": autocomplete}
	return NewResponse(http.StatusOK, body, map[string]string{"Cache-Control": cacheControl})
}

// fetchUser retrieves the authenticated user, translating an upstream token
// rejection into the canonical 401 envelope. The not-authenticated and
// token-expired cases are identical on the wire; only the log line differs.
func (h *BookmarksHandler) fetchUser(ctx context.Context, client *raindrop.Client) (*raindrop.User, Response, bool) {
	user, err := client.User(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrTokenExpired) {
			h.logger.Info("upstream rejected bearer token", "id", RequestIDFrom(ctx))
			return nil, TokenExpired(), false
		}
		return nil, ServerError("Failed to fetch user", err), false
	}

	return user, Response{}, true
}

// resolveGroup locates the named group. Optional groups that are missing or
// collection-less resolve to nil without error.
func resolveGroup(user *raindrop.User, name string, required bool) (*raindrop.Group, error) {
	group, ok := raindrop.FindGroup(user, name)
	if ok && len(group.Collections) > 0 {
		return group, nil
	}
	if !required {
		return nil, nil
	}
	if !ok {
		return nil, fmt.Errorf("%w: no group found called %q", shared.ErrGroupNotFound, name)
	}
	return nil, fmt.Errorf("%w: %q group contains no collections", shared.ErrGroupNotFound, name)
}

// groupFolders resolves one named group into its folders, fetching the
// collections map on demand.
func (h *BookmarksHandler) groupFolders(ctx context.Context, client *raindrop.Client, user *raindrop.User, name string, required bool) ([]raindrop.Folder, error) {
	group, err := resolveGroup(user, name, required)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return []raindrop.Folder{}, nil
	}

	collections, err := client.Collections(ctx)
	if err != nil {
		return nil, err
	}

	return raindrop.AssembleFolders(ctx, client, group, collections)
}

// assemble is groupFolders against an already-fetched collections map.
func (h *BookmarksHandler) assemble(ctx context.Context, client *raindrop.Client, user *raindrop.User, collections map[int64]raindrop.Collection, name string, required bool) ([]raindrop.Folder, error) {
	group, err := resolveGroup(user, name, required)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return []raindrop.Folder{}, nil
	}

	return raindrop.AssembleFolders(ctx, client, group, collections)
}
