// ABOUTME: Tests for HTTP identity middleware
// ABOUTME: Covers resolution from headers/cookies and the 401 gate

package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serveWithIdentity(t *testing.T, demo bool, req *http.Request) (*httptest.ResponseRecorder, *Resolution) {
	t.Helper()
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	var got *Resolution
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := MustFromContext(r.Context())
		got = &res
		w.WriteHeader(http.StatusOK)
	})

	chain := IdentityMiddleware(NewResolver(verifier, demo), discardLogger())(RequireIdentityHTTP()(handler))
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	return rec, got
}

func TestIdentityMiddleware_BearerToken(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)
	token, err := verifier.Sign(Identity{ID: "u_5"}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec, res := serveWithIdentity(t, false, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, res)
	assert.Equal(t, StatusVerified, res.Status)
	assert.Equal(t, "u_5", res.Identity.ID)
}

func TestIdentityMiddleware_Cookie(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)
	token, err := verifier.Sign(Identity{ID: "u_6"}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})

	rec, res := serveWithIdentity(t, false, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, res)
	assert.Equal(t, "u_6", res.Identity.ID)
}

func TestIdentityMiddleware_DemoFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	rec, res := serveWithIdentity(t, true, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, res)
	assert.Equal(t, StatusDemoFallback, res.Status)
	assert.Equal(t, DemoIdentity(), res.Identity)
}

func TestRequireIdentityHTTP_Unauthorized(t *testing.T) {
	for _, header := range []string{"", "Bearer garbage"} {
		t.Run(header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			rec, res := serveWithIdentity(t, false, req)
			assert.Nil(t, res, "handler should not be called")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, map[string]string{"error": "unauthorized"}, body)
		})
	}
}

func TestRequireIdentityHTTP_WithoutMiddleware(t *testing.T) {
	handler := RequireIdentityHTTP()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
