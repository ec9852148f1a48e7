// Package origin enforces the cross-origin allowlist.
//
// The allowlist is read once at startup and never changes. A request with no
// Origin header is same-origin or comes from a non-browser client (curl,
// health checks) and is always let through. Any declared origin must equal an
// allowlist entry byte for byte; no normalization is applied.
//
// Allowed cross-origin responses always permit credentials. There is no
// per-request switch for that.
package origin
