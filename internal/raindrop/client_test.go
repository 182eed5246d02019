package raindrop

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raintab/raintab/internal/shared"
	tu "github.com/raintab/raintab/internal/testing"
)

func TestClient(t *testing.T) {
	t.Run("NewClient", func(t *testing.T) {
		t.Run("With Defaults", func(t *testing.T) {
			client := NewClient("", nil, 0)

			if client.baseURL != DefaultBaseURL {
				t.Errorf("expected default base URL, got %s", client.baseURL)
			}
			if client.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
			if client.limiter == nil {
				t.Error("expected rate limiter to be set")
			}
		})

		t.Run("With Custom Values", func(t *testing.T) {
			custom := &http.Client{}
			client := NewClient("http://example.com", custom, 2)

			if client.baseURL != "http://example.com" {
				t.Errorf("expected custom base URL, got %s", client.baseURL)
			}
			if client.httpClient != custom {
				t.Error("expected custom client to be used")
			}
		})
	})

	t.Run("WithToken", func(t *testing.T) {
		base := NewClient("http://example.com", nil, 0)
		derived := base.WithToken("abc123")

		if derived.token != "abc123" {
			t.Errorf("expected token abc123, got %s", derived.token)
		}
		if base.token != "" {
			t.Error("expected base client to stay unauthenticated")
		}
		if derived.limiter != base.limiter {
			t.Error("expected derived client to share the rate limiter")
		}
	})

	t.Run("Without Token", func(t *testing.T) {
		client := NewClient("http://example.com", nil, 0)

		_, err := client.User(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("User", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/user" {
					t.Errorf("expected path /user, got %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer test_token" {
					t.Errorf("expected bearer auth header, got %q", got)
				}

				json.NewEncoder(w).Encode(map[string]any{
					"user": map[string]any{
						"_id":      1,
						"fullName": "Test User",
						"groups": []map[string]any{
							{"title": "NewTab", "collections": []int64{10, 20}},
						},
					},
				})
			}))
			defer server.Close()

			client := NewClient(server.URL, nil, 0).WithToken("test_token")
			user, err := client.User(context.Background())

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if user.FullName != "Test User" {
				t.Errorf("expected full name Test User, got %s", user.FullName)
			}
			if len(user.Groups) != 1 || user.Groups[0].Title != "NewTab" {
				t.Fatalf("expected one group NewTab, got %+v", user.Groups)
			}
			if len(user.Groups[0].Collections) != 2 {
				t.Errorf("expected 2 collection IDs, got %d", len(user.Groups[0].Collections))
			}
		})

		t.Run("Unauthorized Maps To ErrTokenExpired", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			client := NewClient(server.URL, nil, 0).WithToken("stale_token")
			_, err := client.User(context.Background())

			if !errors.Is(err, shared.ErrTokenExpired) {
				t.Errorf("expected ErrTokenExpired, got %v", err)
			}
		})

		t.Run("Server Error Maps To ErrAPIRequest", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer server.Close()

			client := NewClient(server.URL, nil, 0).WithToken("test_token")
			_, err := client.User(context.Background())

			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Transport Failure", func(t *testing.T) {
			client := NewClient("http://example.com", &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}, 0).WithToken("test_token")

			_, err := client.User(context.Background())
			if err == nil {
				t.Error("expected error for failed transport")
			}
		})
	})

	t.Run("Collections", func(t *testing.T) {
		t.Run("Indexed By ID", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/collections" {
					t.Errorf("expected path /collections, got %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(map[string]any{
					"items": []map[string]any{
						{"_id": 10, "title": "Work", "count": 3},
						{"_id": 20, "title": "Reading", "count": 1},
					},
				})
			}))
			defer server.Close()

			client := NewClient(server.URL, nil, 0).WithToken("test_token")
			collections, err := client.Collections(context.Background())

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(collections) != 2 {
				t.Fatalf("expected 2 collections, got %d", len(collections))
			}
			if collections[10].Title != "Work" {
				t.Errorf("expected collection 10 titled Work, got %s", collections[10].Title)
			}
		})

		t.Run("Non-Success Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			client := NewClient(server.URL, nil, 0).WithToken("test_token")
			_, err := client.Collections(context.Background())

			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("Bookmarks", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/raindrops/10" {
					t.Errorf("expected path /raindrops/10, got %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(map[string]any{
					"items": []map[string]any{
						{"link": "https://a.com", "title": "A", "excerpt": "first"},
						{"link": "https://b.com", "title": "B"},
					},
				})
			}))
			defer server.Close()

			client := NewClient(server.URL, nil, 0).WithToken("test_token")
			bookmarks, err := client.Bookmarks(context.Background(), 10)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(bookmarks) != 2 {
				t.Fatalf("expected 2 bookmarks, got %d", len(bookmarks))
			}
			if bookmarks[0].Link != "https://a.com" || bookmarks[0].Excerpt != "first" {
				t.Errorf("unexpected first bookmark: %+v", bookmarks[0])
			}
		})

		t.Run("Non-Success Is Silently Empty", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}))
			defer server.Close()

			client := NewClient(server.URL, nil, 0).WithToken("test_token")
			bookmarks, err := client.Bookmarks(context.Background(), 10)

			if err != nil {
				t.Fatalf("expected no error for non-success status, got %v", err)
			}
			if bookmarks != nil {
				t.Errorf("expected nil bookmarks, got %+v", bookmarks)
			}
		})

		t.Run("Transport Failure Propagates", func(t *testing.T) {
			client := NewClient("http://example.com", &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}, 0).WithToken("test_token")

			_, err := client.Bookmarks(context.Background(), 10)
			if err == nil {
				t.Error("expected error for failed transport")
			}
		})
	})
}
