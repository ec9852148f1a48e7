// ABOUTME: JWT signing and verification for filmi-edge credentials
// ABOUTME: Uses HS256 with the configured secret; embeds the identity as a "user" claim

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrEmptySecret  = errors.New("jwt secret must not be empty")
)

// Outcome classifies the result of verifying a credential.
type Outcome int

const (
	// OutcomeInvalid covers bad signatures, malformed tokens and wrong algorithms.
	OutcomeInvalid Outcome = iota
	OutcomeVerified
	OutcomeExpired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVerified:
		return "verified"
	case OutcomeExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// Verification is the result of checking a credential. Identity is only
// meaningful when Outcome is OutcomeVerified. Err carries the reason for
// logging and is never sent to clients.
type Verification struct {
	Outcome  Outcome
	Identity Identity
	Err      error
}

// Claims is the payload of a filmi-edge credential.
type Claims struct {
	User *Identity `json:"user,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier defines the interface for credential verification
type TokenVerifier interface {
	Verify(tokenString string) Verification
}

// TokenSigner defines the interface for credential issuance
type TokenSigner interface {
	Sign(identity Identity, expiresIn time.Duration) (string, error)
}

// JWTVerifier implements TokenVerifier and TokenSigner using HS256 signed JWTs
type JWTVerifier struct {
	secret []byte
	now    func() time.Time
}

// VerifierOption configures a JWTVerifier.
type VerifierOption func(*JWTVerifier)

// WithClock overrides the time source used for signing and expiry checks.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *JWTVerifier) {
		v.now = now
	}
}

// NewJWTVerifier creates a new JWT verifier with the given secret
func NewJWTVerifier(secret []byte, opts ...VerifierOption) (*JWTVerifier, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	v := &JWTVerifier{secret: secret, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Verify checks the signature and expiry of tokenString and decodes the
// embedded identity. Without a "user" claim the identity carries only the
// subject as its id.
func (v *JWTVerifier) Verify(tokenString string) Verification {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Verification{Outcome: OutcomeExpired, Err: ErrExpiredToken}
		}
		return Verification{Outcome: OutcomeInvalid, Err: fmt.Errorf("%w: %v", ErrInvalidToken, err)}
	}

	if !token.Valid {
		return Verification{Outcome: OutcomeInvalid, Err: ErrInvalidToken}
	}

	identity := Identity{ID: claims.Subject}
	if claims.User != nil {
		identity = *claims.User
	}
	return Verification{Outcome: OutcomeVerified, Identity: identity}
}

// Sign creates a token for identity with its id as subject, expiring after expiresIn.
func (v *JWTVerifier) Sign(identity Identity, expiresIn time.Duration) (string, error) {
	now := v.now()
	user := identity
	claims := Claims{
		User: &user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
