// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/passly/models"
)

// SessionManager owns the single process-wide session. Every other client
// component observes it through State, Authorize and Subscribe.
//
// States: Resolving -> Authenticated | Anonymous; Authenticated -> Anonymous
// on Logout or Invalidate; Anonymous -> Resolving on Login.
type SessionManager interface {
	// Resolve checks the persisted credential with the backend. It never
	// fails: any problem yields Anonymous. Concurrent calls share one
	// resolution.
	Resolve(ctx context.Context) models.SessionState

	// Login exchanges credentials for a session credential, persists it and
	// resolves. Rejections are *AuthenticationError, empty fields are
	// *ValidationError.
	Login(ctx context.Context, credentials models.Credentials) error

	// Logout revokes the session on the backend, clears the persisted
	// credential and forces Anonymous even if the backend call fails.
	Logout(ctx context.Context)

	// Invalidate forces Anonymous after an authorized call was rejected.
	Invalidate(ctx context.Context)

	// Authorize blocks while the session resolves, then returns nil when
	// Authenticated or ErrAuthorizationLost otherwise.
	Authorize(ctx context.Context) error

	State() models.SessionState
	Identity() (models.User, bool)

	// Subscribe registers fn to be called after every state transition.
	Subscribe(fn func(models.SessionState))
}

// VaultDirectory owns the redacted item list for the active query.
type VaultDirectory interface {
	// List issues a query. Only the most recently issued query is applied;
	// superseded responses return ErrStaleResponse and change nothing.
	List(ctx context.Context, query string) ([]models.VaultItemSummary, error)

	// Refresh re-issues the active query.
	Refresh(ctx context.Context) ([]models.VaultItemSummary, error)

	Items() []models.VaultItemSummary
	Query() string
	Find(itemID string) (models.VaultItemSummary, bool)

	// Reset drops the list and ignores every in-flight response.
	Reset()
}

// ClipboardWriter is the external sink of a copied secret.
type ClipboardWriter interface {
	WriteAll(text string) error
}

// SecretDisclosure holds at most one revealed secret, scoped to the item
// open in the editor.
type SecretDisclosure interface {
	// Bind makes itemID the current editing context and drops any held
	// secret. An empty itemID means "no context".
	Bind(itemID string)

	// Release drops the held secret and the editing context. In-flight
	// reveals of the old context are discarded.
	Release()

	// Reveal fetches the plaintext of itemID through the dedicated reveal
	// call. itemID must be the bound context.
	Reveal(ctx context.Context, itemID string) (string, error)

	// Secret returns the held plaintext for itemID, if any.
	Secret(itemID string) (string, bool)

	// Hide drops the held secret but keeps the editing context.
	Hide()

	// Copy writes the held secret to sink and starts the exposure window.
	Copy(sink ClipboardWriter) error

	// Exposed reports whether the exposure indicator is still on.
	Exposed() bool
}

// ItemEditor builds create and update requests from form state and issues
// deletes.
type ItemEditor interface {
	OpenForCreate() models.ItemDraft
	OpenForEdit(summary models.VaultItemSummary) models.ItemDraft

	// Submit validates draft locally and creates or updates the open item.
	// On success the editor closes and the directory is refreshed; on
	// failure the editor keeps draft.
	Submit(ctx context.Context, draft models.ItemDraft) (models.VaultItemSummary, error)

	// Remove deletes the open item. Without confirmed it only returns
	// *ConfirmationRequiredError.
	Remove(ctx context.Context, confirmed bool) error

	Cancel()

	IsOpen() bool
	Mode() models.EditorMode
	ItemID() string
	Draft() models.ItemDraft
}
