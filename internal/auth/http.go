// ABOUTME: HTTP middleware that resolves the caller identity on API endpoints
// ABOUTME: Extracts the credential, resolves it and adds the result to the request context

package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// IdentityMiddleware creates an HTTP middleware that resolves the caller's
// identity and attaches it to the request context. It never rejects a request;
// use RequireIdentityHTTP to enforce authentication.
func IdentityMiddleware(resolver *Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, present := ExtractCredential(r)
			res := resolver.Resolve(credential)

			if present && res.Status != StatusVerified {
				logger.Debug("credential rejected",
					"outcome", res.Outcome.String(),
					"fallback", res.Status.String(),
					"path", r.URL.Path,
				)
			}

			next.ServeHTTP(w, r.WithContext(WithResolution(r.Context(), res)))
		})
	}
}

// RequireIdentityHTTP creates an HTTP middleware that rejects requests without
// a resolved identity with a generic 401. Must be used after IdentityMiddleware.
func RequireIdentityHTTP() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, ok := FromContext(r.Context())
			if !ok || !res.Authenticated() {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSONError writes {"error": message} with the given status.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
