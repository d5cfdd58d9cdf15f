package pref

import (
	"context"
	"database/sql"
	"errors"

	"vendorportal/internal/adapters/storage"
)

// SQLiteStore implements Store using SQLite. Single-row table, id = 1.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore and ensures the table exists.
// PRE: db is a valid, open database connection
// POST: pref table exists; store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	db.ExecContext(context.Background(), `CREATE TABLE IF NOT EXISTS pref (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		theme TEXT NOT NULL DEFAULT 'light'
	)`)
	return &SQLiteStore{db: db}
}

// Theme returns the persisted theme, defaulting to light when unset.
// PRE: none
// POST: returns "light" or "dark"
func (s *SQLiteStore) Theme(ctx context.Context) (string, error) {
	var theme string
	err := s.db.QueryRowContext(ctx, `SELECT theme FROM pref WHERE id = 1`).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return ThemeLight, nil
	}
	if err != nil {
		return ThemeLight, err
	}
	return theme, nil
}

// SetTheme persists the theme.
// PRE: theme is "light" or "dark"
// POST: theme is persisted
func (s *SQLiteStore) SetTheme(ctx context.Context, theme string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pref (id, theme) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET theme=excluded.theme`, theme)
	return err
}
