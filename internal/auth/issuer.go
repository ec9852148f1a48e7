// ABOUTME: Demo credential issuance used by the mock-login endpoint and CLI
// ABOUTME: Refuses to issue anything when demo mode is off

package auth

import (
	"errors"
	"fmt"
	"time"
)

// ErrDemoDisabled is returned when a demo-only operation is attempted with demo mode off.
var ErrDemoDisabled = errors.New("demo mode disabled")

// DefaultTokenTTL is the lifetime of issued demo credentials.
const DefaultTokenTTL = 7 * 24 * time.Hour

// IssuedCredential is a freshly signed credential and the identity it carries.
type IssuedCredential struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// Issuer signs demo credentials.
type Issuer struct {
	signer TokenSigner
	demo   bool
	ttl    time.Duration
}

// NewIssuer creates an issuer. A non-positive ttl uses DefaultTokenTTL.
func NewIssuer(signer TokenSigner, demo bool, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{signer: signer, demo: demo, ttl: ttl}
}

// IssueDemo signs a credential for DemoIdentity.
func (i *Issuer) IssueDemo() (*IssuedCredential, error) {
	if !i.demo {
		return nil, ErrDemoDisabled
	}

	user := DemoIdentity()
	token, err := i.signer.Sign(user, i.ttl)
	if err != nil {
		return nil, fmt.Errorf("issuing demo credential: %w", err)
	}
	return &IssuedCredential{Token: token, User: user}, nil
}
