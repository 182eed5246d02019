package raindrop

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/raintab/raintab/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Raindrop.io REST API root.
const DefaultBaseURL = "https://api.raindrop.io/rest/v1"

// defaultRateLimit caps upstream requests per second.
const defaultRateLimit = 10

// Client performs authenticated, read-only requests against the Raindrop.io
// REST API. The zero token value means unauthenticated; per-request clients
// are derived with [Client.WithToken] and share the rate limiter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
}

// NewClient creates a Raindrop API client. An empty baseURL selects
// [DefaultBaseURL], a nil client selects [http.DefaultClient] and a
// non-positive rateLimit selects the default cap.
func NewClient(baseURL string, client *http.Client, rateLimit float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if rateLimit <= 0 {
		rateLimit = defaultRateLimit
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(rateLimit), 1),
	}
}

// WithToken returns a copy of the client authenticated with the given bearer
// token. The HTTP client and rate limiter are shared with the receiver.
func (c *Client) WithToken(token string) *Client {
	derived := *c
	derived.token = token
	return &derived
}

// do performs an authenticated GET against the API.
func (c *Client) do(ctx context.Context, endpoint string) (*http.Response, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: call WithToken first", shared.ErrNotAuthenticated)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// User retrieves the authenticated user profile, including the configured
// collection groups.
//
// An upstream 401 wraps [shared.ErrTokenExpired]; any other non-success
// status wraps [shared.ErrAPIRequest] with the upstream status text.
func (c *Client) User(ctx context.Context) (*User, error) {
	resp, err := c.do(ctx, "/user")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: user fetch returned 401", shared.ErrTokenExpired)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: failed to fetch user: %s", shared.ErrAPIRequest, resp.Status)
	}

	var envelope userEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}

	return &envelope.User, nil
}

// Collections retrieves the user's root collections indexed by ID.
func (c *Client) Collections(ctx context.Context) (map[int64]Collection, error) {
	resp, err := c.do(ctx, "/collections")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: failed to fetch collections: %s", shared.ErrAPIRequest, resp.Status)
	}

	var list collectionList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode collections response: %w", err)
	}

	collections := make(map[int64]Collection, len(list.Items))
	for _, collection := range list.Items {
		collections[collection.ID] = collection
	}

	return collections, nil
}

// Bookmarks retrieves the bookmarks of a single collection in upstream order.
//
// A non-success status returns an empty result rather than an error, so one
// bad collection never fails a whole aggregation. Transport failures still
// propagate.
func (c *Client) Bookmarks(ctx context.Context, collectionID int64) ([]Bookmark, error) {
	resp, err := c.do(ctx, fmt.Sprintf("/raindrops/%d", collectionID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil
	}

	var list bookmarkList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks response: %w", err)
	}

	return list.Items, nil
}
