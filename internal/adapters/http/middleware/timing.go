package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSlowRequestThreshold is how long a request may run before it is
// logged at WARN instead of DEBUG. Portal screens block on backend round
// trips, so the threshold is generous.
const DefaultSlowRequestThreshold = 500 * time.Millisecond

// SlowRequestThreshold resolves the slow-request threshold from
// PORTAL_SLOW_REQUEST_MS. Unset, unparsable or non-positive values fall
// back to the default.
func SlowRequestThreshold() time.Duration {
	v := os.Getenv("PORTAL_SLOW_REQUEST_MS")
	if v == "" {
		return DefaultSlowRequestThreshold
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return DefaultSlowRequestThreshold
	}
	return time.Duration(ms) * time.Millisecond
}

// responseRecorder captures the status code a handler wrote.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.status = code
	rr.ResponseWriter.WriteHeader(code)
}

// Timing returns middleware that logs method, path, status and duration for
// every request, escalating to WARN once the duration reaches slowAfter.
// Static assets are not logged.
func Timing(slowAfter time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			elapsed := time.Since(start)
			level := slog.LevelDebug
			if elapsed >= slowAfter {
				level = slog.LevelWarn
			}
			slog.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rr.status,
				"duration_ms", float64(elapsed.Microseconds())/1000.0,
			)
		})
	}
}
