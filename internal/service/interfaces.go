// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/passly/models"
)

//go:generate mockgen -destination=../mock/service_mock.go -package=mock github.com/MKhiriev/passly/internal/service AuthService,VaultService,AppInfoService

// AuthService authenticates accounts and manages session tokens.
type AuthService interface {
	// Login checks credentials and returns the matching account.
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	// ParseToken validates tokenString and rejects revoked tokens.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	Me(ctx context.Context, userID string) (models.User, error)
	// Logout revokes token until its natural expiry.
	Logout(ctx context.Context, token models.Token) error
	// EnsureInitialUser seeds the configured account when no account exists.
	EnsureInitialUser(ctx context.Context) error
}

// VaultService is the owner-scoped business API over vault items. Only
// RevealItem ever returns a plaintext password.
type VaultService interface {
	ListItems(ctx context.Context, query models.VaultQuery) ([]models.VaultItemSummary, error)
	GetItem(ctx context.Context, userID, itemID string) (models.VaultItemSummary, error)
	RevealItem(ctx context.Context, userID, itemID string) (models.VaultItemSecret, error)
	CreateItem(ctx context.Context, userID string, req models.CreateItemRequest) (models.VaultItemSummary, error)
	UpdateItem(ctx context.Context, userID, itemID string, req models.UpdateItemRequest) (models.VaultItemSummary, error)
	DeleteItem(ctx context.Context, userID, itemID string) error
}

// AppInfoService reports build metadata of the running server.
type AppInfoService interface {
	// GetAppVersion returns the configured application version.
	GetAppVersion(ctx context.Context) string
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// logging or validating.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService // returns a decorated VaultService applying additional behavior
}
