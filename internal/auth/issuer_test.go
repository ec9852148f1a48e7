// ABOUTME: Tests for demo credential issuance
// ABOUTME: Covers the demo gate, round-trip verification and expiry

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSigner struct{}

func (failingSigner) Sign(Identity, time.Duration) (string, error) {
	return "", errors.New("boom")
}

func TestIssuer_DemoDisabled(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	issued, err := NewIssuer(verifier, false, 0).IssueDemo()
	assert.ErrorIs(t, err, ErrDemoDisabled)
	assert.Nil(t, issued)
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuedAt := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	signer, err := NewJWTVerifier(testSecret, WithClock(func() time.Time { return issuedAt }))
	require.NoError(t, err)

	issued, err := NewIssuer(signer, true, 0).IssueDemo()
	require.NoError(t, err)
	assert.Equal(t, DemoIdentity(), issued.User)
	assert.NotEmpty(t, issued.Token)

	sixDays, err := NewJWTVerifier(testSecret, WithClock(func() time.Time { return issuedAt.Add(6 * 24 * time.Hour) }))
	require.NoError(t, err)
	res := NewResolver(sixDays, false).Resolve(issued.Token)
	assert.Equal(t, StatusVerified, res.Status)
	assert.Equal(t, issued.User, res.Identity)

	eightDays, err := NewJWTVerifier(testSecret, WithClock(func() time.Time { return issuedAt.Add(8 * 24 * time.Hour) }))
	require.NoError(t, err)
	res = NewResolver(eightDays, false).Resolve(issued.Token)
	assert.Equal(t, StatusUnauthorized, res.Status)
	assert.Equal(t, OutcomeExpired, res.Outcome)
}

func TestIssuer_CustomTTL(t *testing.T) {
	issuedAt := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	signer, err := NewJWTVerifier(testSecret, WithClock(func() time.Time { return issuedAt }))
	require.NoError(t, err)

	issued, err := NewIssuer(signer, true, time.Hour).IssueDemo()
	require.NoError(t, err)

	later, err := NewJWTVerifier(testSecret, WithClock(func() time.Time { return issuedAt.Add(2 * time.Hour) }))
	require.NoError(t, err)
	assert.Equal(t, OutcomeExpired, later.Verify(issued.Token).Outcome)
}

func TestIssuer_SignerError(t *testing.T) {
	_, err := NewIssuer(failingSigner{}, true, time.Hour).IssueDemo()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issuing demo credential")
}
