// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "context"

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// CredentialStore persists the client session credential between runs.
type CredentialStore interface {
	// LoadCredential returns the persisted credential or ErrCredentialNotFound.
	LoadCredential(ctx context.Context) (string, error)
	// SaveCredential replaces the persisted credential.
	SaveCredential(ctx context.Context, credential string) error
	// ClearCredential removes the persisted credential. Clearing an empty
	// store is not an error.
	ClearCredential(ctx context.Context) error
}
