// ABOUTME: Origin allowlist enforcement for cross-origin requests
// ABOUTME: Absent origins pass; declared origins must match an entry exactly

package origin

import (
	"errors"
	"fmt"
	"slices"
)

// ErrOriginNotAllowed is returned by Guard.Check for origins outside the allowlist.
var ErrOriginNotAllowed = errors.New("origin not allowed")

// Guard holds the allowlist fixed at startup. It is safe for concurrent use.
type Guard struct {
	allowed []string
}

// NewGuard creates a Guard over a copy of allowlist.
func NewGuard(allowlist []string) *Guard {
	return &Guard{allowed: slices.Clone(allowlist)}
}

// IsAllowed reports whether declaredOrigin may make a cross-origin request.
// An empty origin (same-origin or non-browser callers) is always allowed;
// otherwise the match is exact and case-sensitive.
func IsAllowed(declaredOrigin string, allowlist []string) bool {
	if declaredOrigin == "" {
		return true
	}
	return slices.Contains(allowlist, declaredOrigin)
}

// IsAllowed reports whether declaredOrigin passes this guard's allowlist.
func (g *Guard) IsAllowed(declaredOrigin string) bool {
	return IsAllowed(declaredOrigin, g.allowed)
}

// Check returns ErrOriginNotAllowed wrapped with the origin when it is denied.
func (g *Guard) Check(declaredOrigin string) error {
	if g.IsAllowed(declaredOrigin) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrOriginNotAllowed, declaredOrigin)
}

// Allowlist returns a copy of the configured origins.
func (g *Guard) Allowlist() []string {
	return slices.Clone(g.allowed)
}
