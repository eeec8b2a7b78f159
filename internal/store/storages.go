// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
)

// Storages groups the server repositories.
type Storages struct {
	UserRepository  UserRepository
	VaultRepository VaultRepository
	TokenRepository TokenRepository
	DB              *DB
}

// NewStorages connects to PostgreSQL, applies migrations and builds every
// repository on the shared pool.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		VaultRepository: NewVaultRepository(db, log),
		TokenRepository: NewTokenRepository(db, log),
		DB:              db,
	}, nil
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	return s.DB.Close()
}
