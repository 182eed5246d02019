// package server contains middleware & handlers for the new tab web service
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/raintab/raintab/internal/raindrop"
	"github.com/raintab/raintab/internal/shared"
	"github.com/raintab/raintab/internal/web"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, request IDs, panic recovery, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the new tab service.
// Implementations handle specific endpoints (auth, bookmark aggregation).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// New assembles the full application router: recovery, request ID and
// logging middleware, the auth and bookmark handlers, and the embedded
// static page at the site root.
func New(config *shared.Config, client *http.Client, logger *log.Logger) *BasicRouter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	router := NewBasicRouter()
	router.Use(Recover(logger), RequestID, Logging(logger))

	api := raindrop.NewClient(config.API.BaseURL, client, config.API.RateLimit)
	router.Handler(NewAuthHandler(config, client, logger))
	router.Handler(NewBookmarksHandler(config, api, logger))
	router.Handle(http.MethodGet, "/", web.Handler())

	return router
}
