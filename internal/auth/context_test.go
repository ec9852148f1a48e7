// ABOUTME: Tests for Resolution context propagation
// ABOUTME: Covers WithResolution, FromContext and MustFromContext

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_Empty(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}

func TestWithResolution_RoundTrip(t *testing.T) {
	want := Resolution{Identity: Identity{ID: "u_1"}, Status: StatusVerified, Outcome: OutcomeVerified}
	ctx := WithResolution(context.Background(), want)

	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, want, MustFromContext(ctx))
}

func TestMustFromContext_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustFromContext(context.Background())
	})
}
