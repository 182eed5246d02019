package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseCookies(t *testing.T) {
	t.Run("Multiple Cookies", func(t *testing.T) {
		cookies := ParseCookies("session=xyz; raindrop_token=abc123; theme=dark")

		if len(cookies) != 3 {
			t.Fatalf("expected 3 cookies, got %d", len(cookies))
		}
		if cookies["raindrop_token"] != "abc123" {
			t.Errorf("expected token abc123, got %q", cookies["raindrop_token"])
		}
		if cookies["theme"] != "dark" {
			t.Errorf("expected theme dark, got %q", cookies["theme"])
		}
	})

	t.Run("Empty Header", func(t *testing.T) {
		if cookies := ParseCookies(""); len(cookies) != 0 {
			t.Errorf("expected no cookies, got %v", cookies)
		}
	})

	t.Run("Value Containing Equals", func(t *testing.T) {
		cookies := ParseCookies("raindrop_token=abc=123")

		if cookies["raindrop_token"] != "abc=123" {
			t.Errorf("expected split on first '=', got %q", cookies["raindrop_token"])
		}
	})

	t.Run("Whitespace Trimmed", func(t *testing.T) {
		cookies := ParseCookies("  a=1 ;  b=2  ")

		if cookies["a"] != "1" {
			t.Errorf("unexpected value for a: %q", cookies["a"])
		}
		if _, ok := cookies["b"]; !ok {
			t.Error("expected cookie b to be parsed")
		}
	})
}

func TestSessionToken(t *testing.T) {
	t.Run("Present Among Other Cookies", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
		r.Header.Set("Cookie", "other=1; raindrop_token=abc123; theme=dark")

		token, ok := SessionToken(r)
		if !ok {
			t.Fatal("expected token to be found")
		}
		if token != "abc123" {
			t.Errorf("expected token abc123, got %q", token)
		}
	})

	t.Run("Absent", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
		r.Header.Set("Cookie", "other=1")

		if _, ok := SessionToken(r); ok {
			t.Error("expected no token")
		}
	})

	t.Run("No Cookie Header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)

		if _, ok := SessionToken(r); ok {
			t.Error("expected no token")
		}
	})
}

func TestSessionCookie(t *testing.T) {
	cookie := sessionCookie("abc123")

	if cookie.Name != SessionCookie || cookie.Value != "abc123" {
		t.Errorf("unexpected cookie identity: %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Error("expected SameSite=Lax")
	}
	if cookie.MaxAge != 30*24*60*60 {
		t.Errorf("expected 30 day max age, got %d", cookie.MaxAge)
	}
	if cookie.Path != "/" {
		t.Errorf("expected path /, got %s", cookie.Path)
	}
}
