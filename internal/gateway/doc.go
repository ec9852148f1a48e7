// Package gateway implements the filmi-edge HTTP server.
//
// # Routes
//
//	GET /healthz                  200 "ok"
//	GET /api/mock-login           200 {"token","user"}; 404 {"error":"disabled"} without demo mode
//	GET /api/me                   200 identity; 401 {"error":"unauthorized"}
//	GET /auth/facebook/callback   200 placeholder text
//
// # Middleware
//
// Every request passes, outermost first, through:
//
//  1. panic recovery (500 with a logged stack)
//  2. X-Request-ID propagation (uuid v4 when absent)
//  3. request logging
//  4. security headers
//  5. origin policy (see package origin)
//
// /api/me additionally runs auth.IdentityMiddleware and auth.RequireIdentityHTTP.
//
// # Listeners
//
// The server listens on server.port over TCP, or on the same port inside a
// tailnet when tailscale.enabled is set.
package gateway
