// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/utils"
	"github.com/MKhiriev/passly/models"
	"github.com/jackc/pgerrcode"
)

// vaultRepository is the PostgreSQL-backed implementation of
// [VaultRepository] over the "vault_items" table.
type vaultRepository struct {
	db  *DB
	ids *utils.UUIDGenerator
	now func() time.Time
}

// NewVaultRepository constructs a [VaultRepository] on db.
func NewVaultRepository(db *DB, log *logger.Logger) VaultRepository {
	log.Debug().Msg("creating vault repository")
	return &vaultRepository{
		db:  db,
		ids: utils.NewUUIDGenerator(),
		now: time.Now,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVaultItem(row rowScanner) (models.VaultItem, error) {
	var (
		item       models.VaultItem
		url, login sql.NullString
	)
	err := row.Scan(
		&item.ID, &item.UserID, &item.AccountName, &url, &login,
		&item.PasswordEncrypted, &item.PasswordNonce, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return models.VaultItem{}, err
	}
	if url.Valid {
		item.URL = &url.String
	}
	if login.Valid {
		item.Login = &login.String
	}
	return item, nil
}

// ListItems returns the owner's items matching query.Text.
func (v *vaultRepository) ListItems(ctx context.Context, query models.VaultQuery) ([]models.VaultItem, error) {
	log := logger.FromContext(ctx)

	q, args, err := buildListItemsQuery(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := v.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Err(err).Str("user_id", query.UserID).Msg("failed to list vault items")
		return nil, v.db.classify(err, ErrExecutingQuery)
	}
	defer rows.Close()

	items := make([]models.VaultItem, 0)
	for rows.Next() {
		item, err := scanVaultItem(rows)
		if err != nil {
			log.Err(err).Msg("failed to scan vault item")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, v.db.classify(err, ErrExecutingQuery)
	}

	return items, nil
}

// GetItem returns one item of userID or [ErrItemNotFound].
func (v *vaultRepository) GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error) {
	if !utils.IsUUID(itemID) {
		return models.VaultItem{}, ErrItemNotFound
	}

	q, args, err := buildGetItemQuery(userID, itemID)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := scanVaultItem(v.db.QueryRowContext(ctx, q, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.VaultItem{}, ErrItemNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("item_id", itemID).Msg("failed to get vault item")
		return models.VaultItem{}, v.db.classify(err, ErrExecutingQuery)
	}

	return item, nil
}

// CreateItem inserts item under a fresh UUIDv7. A duplicate account name
// for the same owner yields [ErrAccountNameAlreadyExists].
func (v *vaultRepository) CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	item.ID = v.ids.Generate()

	err := v.db.QueryRowContext(ctx, createVaultItem,
		item.ID, item.UserID, item.AccountName, nullablePtr(item.URL), nullablePtr(item.Login),
		item.PasswordEncrypted, item.PasswordNonce,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", item.UserID).Msg("failed to create vault item")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.VaultItem{}, ErrAccountNameAlreadyExists
		}
		return models.VaultItem{}, v.db.classify(err, ErrExecutingQuery)
	}

	return item, nil
}

// UpdateItem applies patch and returns the updated row.
func (v *vaultRepository) UpdateItem(ctx context.Context, userID, itemID string, patch ItemPatch) (models.VaultItem, error) {
	if !utils.IsUUID(itemID) {
		return models.VaultItem{}, ErrItemNotFound
	}

	q, args, err := buildUpdateItemQuery(userID, itemID, patch, v.now().UTC())
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := scanVaultItem(v.db.QueryRowContext(ctx, q, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.VaultItem{}, ErrItemNotFound
	case postgresError(err) == pgerrcode.UniqueViolation:
		return models.VaultItem{}, ErrAccountNameAlreadyExists
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("item_id", itemID).Msg("failed to update vault item")
		return models.VaultItem{}, v.db.classify(err, ErrExecutingQuery)
	}

	return item, nil
}

// DeleteItem removes one item of userID or returns [ErrItemNotFound].
func (v *vaultRepository) DeleteItem(ctx context.Context, userID, itemID string) error {
	if !utils.IsUUID(itemID) {
		return ErrItemNotFound
	}

	res, err := v.db.ExecContext(ctx, deleteVaultItem, itemID, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("item_id", itemID).Msg("failed to delete vault item")
		return v.db.classify(err, ErrExecutingQuery)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return v.db.classify(err, ErrExecutingQuery)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func nullablePtr(s *string) any {
	if s == nil {
		return nil
	}
	return nullable(*s)
}
