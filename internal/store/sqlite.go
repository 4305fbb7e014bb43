package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/inboxpilot/dashboard-client/internal/common"
	"github.com/inboxpilot/dashboard-client/internal/dbx"
)

// SQLiteStore keeps session entries in a single-table sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the sqlite database at path and
// ensures the session table exists.
func NewSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session (
		  key   TEXT PRIMARY KEY,
		  value TEXT NOT NULL
		);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init session schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// NewSQLiteFromDB wraps an existing handle. The caller keeps ownership of
// the schema.
func NewSQLiteFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	return set(ctx, s.db, key, value)
}

// SetMany writes all entries inside one transaction so a partially written
// record can never be observed.
func (s *SQLiteStore) SetMany(ctx context.Context, values map[string]string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range values {
			if err := set(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Delete(ctx context.Context, keys ...string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key); err != nil {
				return fmt.Errorf("failed to delete session[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func set(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}
