package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"vendorportal/internal/domain/session"
)

// AuthAPI defines the API surface needed by Login.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// SessionSaver persists the session created on successful login.
type SessionSaver interface {
	Save(ctx context.Context, s session.Session) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	API      AuthAPI
	Sessions SessionSaver
}

var ErrMissingCredentials = errors.New("username and password are required")

// ExecuteLogin exchanges credentials for a token, decodes the vendor
// identity from its payload, and persists the session. A token the client
// cannot decode is never persisted.
// PRE: none
// POST: on success exactly one session is active
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (session.Session, error) {
	if input.Username == "" || input.Password == "" {
		return session.Session{}, ErrMissingCredentials
	}

	token, err := deps.API.Login(ctx, input.Username, input.Password)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username)
		return session.Session{}, err
	}

	sess, err := session.FromToken(token)
	if err != nil {
		slog.Error("auth_event", "event", "token_decode_failed", "error", err.Error())
		return session.Session{}, err
	}

	if err := deps.Sessions.Save(ctx, sess); err != nil {
		return session.Session{}, err
	}

	slog.Info("auth_event", "event", "login_success", "username", sess.Username, "vendor_id", sess.VendorID)
	return sess, nil
}
