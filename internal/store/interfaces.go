// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/passly/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// VaultRepository persists vault items. Every method is scoped to the
// owner: an item of another user behaves as if it did not exist.
type VaultRepository interface {
	ListItems(ctx context.Context, query models.VaultQuery) ([]models.VaultItem, error)
	GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error)
	CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error)
	UpdateItem(ctx context.Context, userID, itemID string, patch ItemPatch) (models.VaultItem, error)
	DeleteItem(ctx context.Context, userID, itemID string) error
}

// TokenRepository keeps the revocation list of session tokens.
type TokenRepository interface {
	RevokeToken(ctx context.Context, tokenID, userID string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ItemPatch is a storage-level partial update: nil fields are kept.
// PasswordEncrypted and PasswordNonce are either both set or both nil.
type ItemPatch struct {
	AccountName       *string
	URL               *string
	Login             *string
	PasswordEncrypted *string
	PasswordNonce     *string
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.AccountName == nil && p.URL == nil && p.Login == nil && p.PasswordEncrypted == nil
}
