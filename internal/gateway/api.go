// ABOUTME: HTTP route handlers for health, demo login and identity lookup
// ABOUTME: Maps auth results onto JSON responses without leaking failure reasons

package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2389/filmi-edge/internal/auth"
)

// facebookCallbackPlaceholder is returned until the OAuth callback is implemented.
const facebookCallbackPlaceholder = "Facebook callback placeholder. Configure and redirect to the frontend."

// registerRoutes attaches every route to mux.
func (g *Gateway) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", g.handleHealth)
	mux.HandleFunc("GET /api/mock-login", g.handleMockLogin)

	identity := auth.IdentityMiddleware(g.resolver, g.baseLogger.With("component", "auth"))
	mux.Handle("GET /api/me", identity(auth.RequireIdentityHTTP()(http.HandlerFunc(g.handleMe))))

	mux.HandleFunc("GET /auth/facebook/callback", g.handleFacebookCallback)
}

// handleHealth returns 200 OK if the server is alive.
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleMockLogin issues a demo credential. With demo mode off it answers 404
// so the endpoint's existence is not revealed.
func (g *Gateway) handleMockLogin(w http.ResponseWriter, r *http.Request) {
	issued, err := g.issuer.IssueDemo()
	if errors.Is(err, auth.ErrDemoDisabled) {
		g.sendJSONError(w, http.StatusNotFound, "disabled")
		return
	}
	if err != nil {
		g.logger.Error("issuing demo credential", "error", err)
		g.sendJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	g.logger.Info("demo credential issued", "user_id", issued.User.ID)
	g.sendJSON(w, http.StatusOK, issued)
}

// handleMe returns the identity attached by auth.IdentityMiddleware.
func (g *Gateway) handleMe(w http.ResponseWriter, r *http.Request) {
	res := auth.MustFromContext(r.Context())
	g.sendJSON(w, http.StatusOK, res.Identity)
}

// handleFacebookCallback is a placeholder for the OAuth redirect target.
func (g *Gateway) handleFacebookCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(facebookCallbackPlaceholder))
}

// sendJSON writes v as a JSON response.
func (g *Gateway) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.logger.Warn("encoding response", "error", err)
	}
}

// sendJSONError writes a JSON error response.
func (g *Gateway) sendJSONError(w http.ResponseWriter, status int, message string) {
	g.sendJSON(w, status, map[string]string{"error": message})
}
