// ABOUTME: CORS middleware backed by the origin Guard
// ABOUTME: Echoes allowed origins with credentials, answers preflights, rejects the rest

package origin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// Methods advertised on preflight responses.
const allowedMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"

// Middleware creates an HTTP middleware enforcing guard. Requests without an
// Origin header pass untouched. Allowed origins are echoed back with
// Access-Control-Allow-Credentials: true. Denied origins get a 403 with no
// CORS headers and never reach next.
func Middleware(guard *Guard, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			declared := r.Header.Get("Origin")
			if declared == "" {
				next.ServeHTTP(w, r)
				return
			}

			if err := guard.Check(declared); err != nil {
				logger.Warn("cross-origin request rejected",
					"origin", declared,
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeRejection(w)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", declared)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", allowedMethods)
				if requested := strings.TrimSpace(r.Header.Get("Access-Control-Request-Headers")); requested != "" {
					h.Set("Access-Control-Allow-Headers", requested)
					h.Add("Vary", "Access-Control-Request-Headers")
				}
				h.Set("Content-Length", "0")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeRejection(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": ErrOriginNotAllowed.Error()})
}
