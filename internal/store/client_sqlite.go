// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/passly/internal/logger"
)

const (
	createSessionTable = `CREATE TABLE IF NOT EXISTS session (
    id         INTEGER PRIMARY KEY CHECK (id = 1),
    credential TEXT    NOT NULL,
    saved_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

	loadCredential = `SELECT credential FROM session WHERE id = 1;`
	saveCredential = `INSERT INTO session (id, credential, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
    ON CONFLICT (id) DO UPDATE SET credential = excluded.credential, saved_at = excluded.saved_at;`
	clearCredential = `DELETE FROM session WHERE id = 1;`
)

// sqliteCredentialStore keeps the single session credential of the client
// in a one-row SQLite table.
type sqliteCredentialStore struct {
	db *sql.DB
}

// NewConnectSQLite opens the client database at dsn and makes sure the
// session table exists.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Msg("error opening client database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Msg("error connecting client database (ping)")
		_ = conn.Close()
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, createSessionTable); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("error preparing session table: %w", err)
	}
	log.Debug().Msg("client database ready")

	return conn, nil
}

// NewCredentialStore builds a [CredentialStore] on an opened client DB.
func NewCredentialStore(db *sql.DB) CredentialStore {
	return &sqliteCredentialStore{db: db}
}

func (s *sqliteCredentialStore) LoadCredential(ctx context.Context) (string, error) {
	var credential string
	err := s.db.QueryRowContext(ctx, loadCredential).Scan(&credential)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrCredentialNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if credential == "" {
		return "", ErrCredentialNotFound
	}
	return credential, nil
}

func (s *sqliteCredentialStore) SaveCredential(ctx context.Context, credential string) error {
	if _, err := s.db.ExecContext(ctx, saveCredential, credential); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (s *sqliteCredentialStore) ClearCredential(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, clearCredential); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}
