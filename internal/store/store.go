package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, rolling back on error.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS stats (
		id              INTEGER PRIMARY KEY CHECK (id = 1),
		today_count     INTEGER NOT NULL DEFAULT 0,
		total_count     INTEGER NOT NULL DEFAULT 0,
		streak          INTEGER NOT NULL DEFAULT 0,
		last_chant_date TEXT NOT NULL,
		achievements    TEXT NOT NULL DEFAULT '[]',
		practice_days   INTEGER
	);

	CREATE TABLE IF NOT EXISTS daily_records (
		date  TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS milestones (
		id              TEXT PRIMARY KEY,
		position        INTEGER NOT NULL,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		required_count  INTEGER NOT NULL DEFAULT 0,
		required_streak INTEGER NOT NULL DEFAULT 0,
		required_days   INTEGER NOT NULL DEFAULT 0,
		is_achieved     INTEGER NOT NULL DEFAULT 0,
		progress        INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS challenge_status (
		id                     INTEGER PRIMARY KEY CHECK (id = 1),
		last_completed_daily   TEXT NOT NULL DEFAULT '',
		last_completed_monthly TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS notification_prefs (
		id   INTEGER PRIMARY KEY CHECK (id = 1),
		data TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS identity (
		id             INTEGER PRIMARY KEY CHECK (id = 1),
		spiritual_name TEXT NOT NULL,
		symbol_id      INTEGER NOT NULL,
		unique_id      TEXT NOT NULL,
		creation_date  INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('theme',              'light'),
		('color_scheme',       'spiritual-gold'),
		('background_sound',   'none'),
		('completion_chime',   'bell'),
		('language',           'english'),
		('font_size',          'medium'),
		('animations_enabled', 'true'),
		('target_count',       '108');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/japa/japa.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "japa", "japa.db"), nil
}
