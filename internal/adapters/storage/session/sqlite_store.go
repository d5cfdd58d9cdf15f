package session

import (
	"context"

	"vendorportal/internal/adapters/storage"
	domain "vendorportal/internal/domain/session"
)

// SQLiteStore implements Store using SQLite. The table holds at most one
// row (id = 1); saving replaces any existing session wholesale.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore and ensures the table exists.
// PRE: db is a valid, open database connection
// POST: session table exists; store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	db.ExecContext(context.Background(), `CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		vendor_id INTEGER NOT NULL,
		username TEXT NOT NULL,
		saved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	return &SQLiteStore{db: db}
}

// Get retrieves the active session.
// PRE: none
// POST: returns the session or sql.ErrNoRows when no session is active
func (s *SQLiteStore) Get(ctx context.Context) (domain.Session, error) {
	var sess domain.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT token, vendor_id, username FROM session WHERE id = 1`,
	).Scan(&sess.Token, &sess.VendorID, &sess.Username)
	return sess, err
}

// Save persists the session, replacing any previous one.
// PRE: value has a non-empty token
// POST: the session is the only persisted one
func (s *SQLiteStore) Save(ctx context.Context, value domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (id, token, vendor_id, username, saved_at)
		 VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET token=excluded.token,
		 vendor_id=excluded.vendor_id, username=excluded.username, saved_at=excluded.saved_at`,
		value.Token, value.VendorID, value.Username,
	)
	return err
}

// Clear removes the session. Idempotent.
// PRE: none
// POST: no session is persisted
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`)
	return err
}

// Active reports whether a session is present. This is the sole authority
// the guard consults; no client-side expiry or signature checks.
// PRE: none
// POST: true iff a token is persisted
func (s *SQLiteStore) Active(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM session WHERE id = 1`).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
