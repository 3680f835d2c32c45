// Package sqlite stores user documents in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/harmony/internal/cloud"
	apperrors "github.com/julianstephens/harmony/internal/errors"
	"github.com/julianstephens/harmony/internal/logger"
	"github.com/julianstephens/harmony/internal/migration"
	"github.com/julianstephens/harmony/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

var _ cloud.DocumentStore = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

// Init creates the database file and applies migrations.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := runner.Apply(func(msg string) { logger.Info(msg, "store", s.path) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load opens an existing database and checks its schema version.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return apperrors.ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Validate()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Location() string {
	return s.path
}

// DB returns the underlying connection, nil before Init or Load.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, sub, migration.SQLite), nil
}

func (s *Store) Get(ctx context.Context, userID string) (cloud.Document, error) {
	if s.db == nil {
		return nil, apperrors.ErrNotInitialized
	}

	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM documents WHERE user_id = ?", userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc cloud.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("stored document for %s is corrupt: %w", userID, err)
	}
	return doc, nil
}

// MergeSet relies on json_patch, which replaces each top-level key present in
// the patch. Every persisted field is an array, so no nested merge happens.
func (s *Store) MergeSet(ctx context.Context, userID string, doc cloud.Document) error {
	if s.db == nil {
		return apperrors.ErrNotInitialized
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (user_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			data = json_patch(documents.data, excluded.data),
			updated_at = excluded.updated_at
	`, userID, string(data), time.Now().UTC().Format(time.RFC3339))
	return err
}
