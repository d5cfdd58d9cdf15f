package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	domain "vendorportal/internal/domain/session"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
// By the time a caller sees it the local session has already been cleared;
// the only sensible reaction is a redirect to the login screen.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a failure the backend reported with a structured body. The
// message is surfaced to the vendor verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// SessionStore is the slice of the session store the client needs: the
// token for the Authorization header, and Clear for the 401 path.
type SessionStore interface {
	Get(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}

// Client wraps every call to the order-management API. It attaches the
// bearer token, classifies HTTP outcomes, and normalizes errors. One-shot
// requests only: no retries, no caching.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions SessionStore
}

// New creates a Client for the API rooted at baseURL (no trailing slash).
func New(baseURL string, sessions SessionStore) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{},
		sessions: sessions,
	}
}

// errorBody is the backend's structured error shape. Either field may carry
// the human-readable message depending on the endpoint.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do issues one request and classifies the outcome into exactly three
// buckets: unauthorized (the presented session is revoked), failed (message
// surfaced), or success (body decoded into out, nil for 204).
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	authed := false
	if sess, err := c.sessions.Get(ctx); err == nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
		authed = true
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("api_call_failed", "method", method, "path", path, "error", err.Error())
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("api_call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)

	if resp.StatusCode == http.StatusUnauthorized && authed {
		// A 401 revokes the session that was presented, no matter which
		// endpoint answered. Unauthenticated calls (login, register) carry
		// no token, so their 401s fall through to the ordinary error path
		// and the backend's message reaches the vendor.
		if err := c.sessions.Clear(ctx); err != nil {
			slog.Error("session_clear_failed", "error", err.Error())
		}
		slog.Info("auth_event", "event", "session_revoked", "path", path)
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		raw, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("request failed (%d)", resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
