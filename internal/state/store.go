// Package state persists small bits of session state in a SQLite database:
// the last focused edit-form field, submitted command history, and the
// first-run marker.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// Store wraps the SQLite database holding clid's session state.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close() //nolint:errcheck // best-effort cleanup on error path
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close() //nolint:errcheck // best-effort cleanup on error path
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// DefaultPath returns the state database location under the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", "clid", "state.db"), nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS app_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS command_history (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			command      TEXT NOT NULL,
			submitted_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

func (s *Store) getValue(key string) (string, bool, error) {
	row := s.db.QueryRowContext(context.Background(),
		`SELECT value FROM app_state WHERE key = ?`, key)

	var value string
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying %s: %w", key, err)
	}

	return value, true, nil
}

func (s *Store) setValue(key, value string) error {
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}

	return nil
}

// LastField returns the remembered edit-form field index, or 0 if none has
// been stored yet.
func (s *Store) LastField() (int, error) {
	value, ok, err := s.getValue("last_field")
	if err != nil || !ok {
		return 0, err
	}

	idx := 0
	if _, err := fmt.Sscanf(value, "%d", &idx); err != nil {
		return 0, nil
	}
	if idx < 0 {
		idx = 0
	}

	return idx, nil
}

// SetLastField stores the edit-form field index to restore next time a
// form opens.
func (s *Store) SetLastField(idx int) error {
	return s.setValue("last_field", fmt.Sprintf("%d", idx))
}

// IsFirstRun reports whether this is the first time clid has run with this
// state database.
func (s *Store) IsFirstRun() (bool, error) {
	_, ok, err := s.getValue("run_complete")
	if err != nil {
		return false, err
	}

	return !ok, nil
}

// MarkRunComplete records that a run has completed, ending the first-run
// state.
func (s *Store) MarkRunComplete() error {
	return s.setValue("run_complete", "true")
}

// AppendCommand appends a submitted command line to the persistent history.
func (s *Store) AppendCommand(command string) error {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO command_history (command) VALUES (?)`, command)
	if err != nil {
		return fmt.Errorf("appending command history: %w", err)
	}

	return nil
}

// RecentCommands returns up to limit history entries, oldest first.
func (s *Store) RecentCommands(limit int) ([]string, error) {
	rows, err := s.db.QueryContext(context.Background(), `
		SELECT command FROM (
			SELECT id, command FROM command_history ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying command history: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // best-effort

	var commands []string
	for rows.Next() {
		var cmd string
		if err := rows.Scan(&cmd); err != nil {
			return nil, fmt.Errorf("scanning command history: %w", err)
		}
		commands = append(commands, cmd)
	}

	return commands, rows.Err()
}
