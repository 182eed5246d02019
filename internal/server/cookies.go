package server

import (
	"net/http"
	"strings"
)

// SessionCookie is the name of the HTTP-only cookie carrying the Raindrop
// bearer token.
const SessionCookie = "raindrop_token"

// sessionMaxAge is the cookie lifetime in seconds (30 days).
const sessionMaxAge = 30 * 24 * 60 * 60

// ParseCookies splits a Cookie header into name/value pairs: entries are
// separated by ';', trimmed, and split on the first '='.
func ParseCookies(header string) map[string]string {
	cookies := map[string]string{}

	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		cookies[name] = value
	}

	return cookies
}

// SessionToken extracts the bearer token from the request's session cookie.
// Any non-empty value passes; validity is only established by the upstream
// user fetch.
func SessionToken(r *http.Request) (string, bool) {
	token := ParseCookies(r.Header.Get("Cookie"))[SessionCookie]
	return token, token != ""
}

// sessionCookie builds the Set-Cookie value handed to the browser after a
// successful token exchange.
func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sessionMaxAge,
	}
}
