// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the passly server.
//
// The primary abstraction is [ServerAdapter], which decouples the client core
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Non-2xx responses are returned as [*StatusError] values that unwrap to the
// sentinels in errors.go, so callers can use [errors.Is] for status checks
// (e.g. [ErrUnauthorized] for 401) and [errors.As] to read the server detail.
// Failures before a response arrives wrap [ErrTransport].
package adapter

import (
	"context"

	"github.com/MKhiriev/passly/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the passly
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. An empty token detaches the header.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Authenticate exchanges credentials for a session token. The token is
	// returned and NOT stored; the caller decides when to SetToken.
	Authenticate(ctx context.Context, credentials models.Credentials) (string, error)

	// WhoAmI returns the identity behind the current token.
	WhoAmI(ctx context.Context) (models.User, error)

	// InvalidateSession revokes the current token on the server.
	InvalidateSession(ctx context.Context) error

	// ListItems returns redacted items whose account name contains query.
	// An empty query lists everything.
	ListItems(ctx context.Context, query string) ([]models.VaultItemSummary, error)

	// RevealItem returns the single item together with its plaintext
	// password.
	RevealItem(ctx context.Context, itemID string) (models.VaultItemSecret, error)

	// CreateItem stores a new item and returns its redacted view.
	CreateItem(ctx context.Context, req models.CreateItemRequest) (models.VaultItemSummary, error)

	// UpdateItem applies a partial update. A nil password keeps the stored
	// secret.
	UpdateItem(ctx context.Context, itemID string, req models.UpdateItemRequest) (models.VaultItemSummary, error)

	// DeleteItem removes an item. It is never retried automatically.
	DeleteItem(ctx context.Context, itemID string) error

	// ServerVersion returns the version string reported by the server.
	ServerVersion(ctx context.Context) (string, error)
}
