// Package server provides HTTP routing, middleware, the OAuth mediation
// handlers and the bookmark aggregation endpoints for the new tab page.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Response Shaping
//
// Every JSON endpoint produces a [Response] descriptor through its builders
// and writes it with [Response.Write], so all endpoints share one wire shape.
// The builders [AuthError] and [TokenExpired] emit the canonical 401
// needsAuth envelope; the browser treats both identically (prompt to sign
// in), so the two causes are only distinguished in the server log.
//
// # Auth Mediation
//
// [AuthHandler] implements the OAuth2 authorization-code flow against
// Raindrop.io: /auth/start redirects to the upstream authorization URL and
// /auth/callback exchanges the code for a bearer token, which is handed to
// the browser as an HTTP-only cookie. No pending-auth state is held server
// side; the upstream provider tracks the outstanding authorization.
//
// # Bookmark Endpoints
//
// [BookmarksHandler] reads the session cookie, fetches the user's groups and
// collections from Raindrop and assembles the folder envelopes consumed by
// the page. Responses carry a short private Cache-Control; nothing is cached
// server side.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
