// ABOUTME: Credential extraction from the Authorization header or the token cookie
// ABOUTME: The header wins when both are present; malformed input falls through

package auth

import (
	"net/http"
	"regexp"
)

// TokenCookieName is the cookie that may carry a credential.
const TokenCookieName = "token"

var bearerPattern = regexp.MustCompile(`(?i)^Bearer\s+(.+)$`)

// ExtractCredential returns the credential carried by r and whether one was found.
// It checks "Authorization: Bearer <token>" (scheme is case-insensitive) first,
// then a non-empty "token" cookie.
func ExtractCredential(r *http.Request) (string, bool) {
	if token, ok := extractBearerToken(r.Header.Get("Authorization")); ok {
		return token, true
	}

	cookie, err := r.Cookie(TokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// extractBearerToken extracts a bearer token from an Authorization header value.
func extractBearerToken(authHeader string) (string, bool) {
	m := bearerPattern.FindStringSubmatch(authHeader)
	if m == nil {
		return "", false
	}
	return m[1], true
}
