// ABOUTME: Request context propagation for resolved identities
// ABOUTME: Provides WithResolution/FromContext for handlers behind IdentityMiddleware

package auth

import (
	"context"
)

// resolutionContextKey is the key type for storing a Resolution in context.Context.
type resolutionContextKey struct{}

// WithResolution returns a new context with the Resolution attached.
func WithResolution(ctx context.Context, res Resolution) context.Context {
	return context.WithValue(ctx, resolutionContextKey{}, res)
}

// FromContext retrieves the Resolution from the context.
// The second result is false if no resolution is present.
func FromContext(ctx context.Context) (Resolution, bool) {
	res, ok := ctx.Value(resolutionContextKey{}).(Resolution)
	return res, ok
}

// MustFromContext retrieves the Resolution from the context, panicking if not present.
func MustFromContext(ctx context.Context) Resolution {
	res, ok := FromContext(ctx)
	if !ok {
		panic("auth: Resolution not found in context")
	}
	return res
}
