package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the production Store, a single-table key-value store.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the settings database at path.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping settings database: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to initialize settings schema: %w", err)
	}
	return nil
}

// Family returns the stored family context, or "" when none was ever set.
func (s *SQLite) Family(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", familyKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read family context: %w", err)
	}
	return value, nil
}

// SetFamily stores the family context, overwriting any previous value.
// An empty string is a valid value and clears the context.
func (s *SQLite) SetFamily(ctx context.Context, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, familyKey, value)
	if err != nil {
		return fmt.Errorf("failed to store family context: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
