package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/raintab/raintab/internal/shared"
	"golang.org/x/oauth2"
)

// AuthHandler mediates the Raindrop.io OAuth authorization-code flow.
//
// /auth/start redirects the browser to the upstream authorization URL;
// /auth/callback exchanges the returned code for a bearer token and hands it
// to the browser as the session cookie. Expired tokens are never refreshed
// here; expiry is detected reactively by the next user fetch.
type AuthHandler struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
}

// NewAuthHandler creates an auth handler using the given application config.
// A nil client selects [http.DefaultClient].
func NewAuthHandler(config *shared.Config, client *http.Client, logger *log.Logger) *AuthHandler {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &AuthHandler{config: config, httpClient: client, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{"/auth/start", "/auth/callback"}
}

// AuthorizationURL builds the upstream authorization URL from the configured
// client ID and redirect URI. Fails with [shared.ErrMissingConfig] when
// either is absent.
func AuthorizationURL(config *shared.Config) (string, error) {
	creds := config.Credentials.Raindrop
	if creds.ClientID == "" || creds.RedirectURI == "" {
		return "", fmt.Errorf("%w: CLIENT_ID and REDIRECT_URI are required", shared.ErrMissingConfig)
	}

	return oauthConfig(config).AuthCodeURL(""), nil
}

// oauthConfig maps the application config onto an [oauth2.Config].
func oauthConfig(config *shared.Config) *oauth2.Config {
	creds := config.Credentials.Raindrop
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  config.API.AuthURL,
			TokenURL: config.API.TokenURL,
		},
	}
}

// ServeHTTP dispatches to the start or callback leg of the flow.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed().Write(w)
		return
	}

	switch r.URL.Path {
	case "/auth/start":
		h.start(w, r)
	case "/auth/callback":
		h.callback(w, r)
	default:
		http.NotFound(w, r)
	}
}

// start redirects the browser to the upstream authorization page. No local
// state is created; the provider tracks the pending authorization.
func (h *AuthHandler) start(w http.ResponseWriter, r *http.Request) {
	authURL, err := AuthorizationURL(h.config)
	if err != nil {
		h.logger.Error("auth start misconfigured", "err", err)
		ServerError("OAuth not configured", err).Write(w)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// callback exchanges the authorization code for a token and sets the session
// cookie.
func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	creds := h.config.Credentials.Raindrop

	h.logger.Info("auth callback received",
		"hasCode", code != "",
		"hasClientID", creds.ClientID != "",
		"hasClientSecret", creds.ClientSecret != "",
		"redirectURI", creds.RedirectURI,
	)

	if code == "" {
		NewResponse(http.StatusBadRequest, errorBody{
			Error: shared.ErrMissingCode.Error(),
		}, nil).Write(w)
		return
	}

	if creds.ClientID == "" || creds.ClientSecret == "" || creds.RedirectURI == "" {
		err := fmt.Errorf("%w: CLIENT_ID, CLIENT_SECRET and REDIRECT_URI are required", shared.ErrMissingConfig)
		h.logger.Error("auth callback misconfigured", "err", err)
		ServerError("OAuth not configured", err).Write(w)
		return
	}

	token, err := h.exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("token exchange failed", "err", err)
		ServerError("Authentication failed", err).Write(w)
		return
	}

	http.SetCookie(w, sessionCookie(token))
	http.Redirect(w, r, "/", http.StatusFound)
}

// exchange posts the authorization code to the token endpoint and returns
// the access token. Raindrop expects a JSON request body rather than the
// form encoding [oauth2.Config.Exchange] sends, so the POST is issued
// directly against the configured token URL.
func (h *AuthHandler) exchange(ctx context.Context, code string) (string, error) {
	cfg := oauthConfig(h.config)

	payload, err := json.Marshal(map[string]string{
		"grant_type":    "authorization_code",
		"code":          code,
		"client_id":     cfg.ClientID,
		"client_secret": cfg.ClientSecret,
		"redirect_uri":  cfg.RedirectURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Endpoint.TokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token exchange returned %s", shared.ErrAuthFailed, resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: no access token in response", shared.ErrAuthFailed)
	}

	return body.AccessToken, nil
}
