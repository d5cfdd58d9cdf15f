package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"vendorportal/internal/domain/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

// SessionSource loads the active session, if any.
type SessionSource interface {
	Get(ctx context.Context) (session.Session, error)
}

// WithSession returns middleware that loads the stored session into the
// request context. The store is the only session authority: every request
// reads it fresh, so a session cleared mid-flight (after a backend 401) is
// gone on the very next request. It does NOT block unauthenticated requests;
// use RequireSession for that.
func WithSession(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Get(r.Context())
			if err == nil {
				ctx := context.WithValue(r.Context(), sessionContextKey, sess)
				r = r.WithContext(ctx)
			} else if !errors.Is(err, sql.ErrNoRows) {
				slog.Warn("auth_event", "event", "session_load_failed", "error", err)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession returns middleware that redirects unauthenticated requests
// to the login screen.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(session.Session)
	return sess, ok
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}
