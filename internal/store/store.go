// Package store owns the activity registry. It is backed by an in-memory
// sqlite database: registry state lives exactly as long as the process, and
// the single-connection pool serializes concurrent handler mutations.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mergington/rollcall/internal/catalog"
)

var (
	// ErrActivityNotFound reports an unknown activity name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp reports a duplicate signup for one activity.
	ErrAlreadySignedUp = errors.New("student already signed up for this activity")
	// ErrNotSignedUp reports an unregister without a prior signup.
	ErrNotSignedUp = errors.New("student is not signed up for this activity")
)

type Store struct {
	db *sql.DB
}

// New opens the registry database and seeds it with the given activities.
// The key set is fixed from here on; only participant rows change.
func New(activities []catalog.Activity) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one concurrent writer, and the :memory: DSN
	// gives every pool connection its own database. A single connection
	// solves both: one shared database, all access serialized.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	statements := []string{
		`CREATE TABLE activities (
			name        TEXT PRIMARY KEY,
			description TEXT NOT NULL DEFAULT '',
			schedule    TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE participants (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			activity TEXT NOT NULL REFERENCES activities(name),
			email    TEXT NOT NULL,
			UNIQUE (activity, email)
		)`,
		`CREATE TABLE roster_snapshots (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at TEXT NOT NULL,
			total    INTEGER NOT NULL,
			detail   TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.seed(activities); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) seed(activities []catalog.Activity) error {
	for _, a := range activities {
		if _, err := s.db.ExecContext(context.Background(),
			"INSERT INTO activities (name, description, schedule) VALUES (?, ?, ?)",
			a.Name, a.Description, a.Schedule,
		); err != nil {
			return fmt.Errorf("seed activity %q: %w", a.Name, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
