// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/MKhiriev/passly/internal/adapter"
	"github.com/MKhiriev/passly/internal/validators"
	"github.com/MKhiriev/passly/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_OpenForCreate(t *testing.T) {
	f := loggedIn(t)

	draft := f.services.Editor.OpenForCreate()

	assert.True(t, f.services.Editor.IsOpen())
	assert.Equal(t, models.EditorCreate, f.services.Editor.Mode())
	assert.Empty(t, f.services.Editor.ItemID())
	assert.False(t, draft.Password.IsSet())
}

func TestEditor_OpenForEdit_PrefillsWithoutPassword(t *testing.T) {
	f := loggedIn(t)
	item := f.createItem(t, "GitHub", "gh-secret")

	draft := f.services.Editor.OpenForEdit(item)

	assert.Equal(t, models.EditorEdit, f.services.Editor.Mode())
	assert.Equal(t, item.ID, f.services.Editor.ItemID())
	assert.Equal(t, "GitHub", draft.AccountName)
	assert.False(t, draft.Password.IsSet())
}

func TestEditor_Submit_LocalValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  bool
		draft models.ItemDraft
		field string
	}{
		{
			name:  "create without password",
			draft: models.ItemDraft{AccountName: "GitHub", Password: models.PasswordFromInput("")},
			field: validators.FieldPassword,
		},
		{
			name:  "create without account name",
			draft: models.ItemDraft{AccountName: "  ", Password: models.SetPassword("pw")},
			field: validators.FieldAccountName,
		},
		{
			name:  "edit without account name",
			edit:  true,
			draft: models.ItemDraft{AccountName: ""},
			field: validators.FieldAccountName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := loggedIn(t)
			if tt.edit {
				f.services.Editor.OpenForEdit(f.createItem(t, "Existing", "pw"))
			} else {
				f.services.Editor.OpenForCreate()
			}

			_, err := f.services.Editor.Submit(context.Background(), tt.draft)

			assert.Equal(t, tt.field, asValidation(t, err).Field)
			assert.True(t, f.services.Editor.IsOpen())
			assert.Equal(t, tt.draft, f.services.Editor.Draft())
		})
	}
}

func TestEditor_Submit_Closed(t *testing.T) {
	f := loggedIn(t)

	_, err := f.services.Editor.Submit(context.Background(), models.ItemDraft{AccountName: "x", Password: models.SetPassword("y")})

	assert.ErrorIs(t, err, ErrEditorClosed)
}

func TestEditor_Submit_DuplicateName(t *testing.T) {
	f := loggedIn(t)
	f.createItem(t, "GitHub", "pw")

	f.services.Editor.OpenForCreate()
	_, err := f.services.Editor.Submit(context.Background(), models.ItemDraft{AccountName: "github", Password: models.SetPassword("pw2")})

	assert.Equal(t, validators.FieldAccountName, asValidation(t, err).Field)
	assert.True(t, f.services.Editor.IsOpen())
}

func TestEditor_Submit_TransientKeepsDraft(t *testing.T) {
	f := loggedIn(t)
	f.services.Editor.OpenForCreate()
	f.server.failNext("create", adapter.NewStatusError(http.StatusServiceUnavailable, ""))

	draft := models.ItemDraft{AccountName: "GitHub", Password: models.SetPassword("pw")}
	_, err := f.services.Editor.Submit(context.Background(), draft)

	var te *TransientError
	require.ErrorAs(t, err, &te)
	assert.True(t, f.services.Editor.IsOpen())
	assert.Equal(t, draft, f.services.Editor.Draft())

	// retrying the same draft succeeds
	_, err = f.services.Editor.Submit(context.Background(), draft)
	require.NoError(t, err)
	assert.False(t, f.services.Editor.IsOpen())
}

func TestEditor_Submit_UpdateMissingItem(t *testing.T) {
	f := loggedIn(t)
	item := f.createItem(t, "GitHub", "pw")
	f.services.Editor.OpenForEdit(item)
	f.server.failNext("update", adapter.NewStatusError(http.StatusNotFound, "Item not found"))

	_, err := f.services.Editor.Submit(context.Background(), models.DraftFromSummary(item))

	var te *TransientError
	assert.ErrorAs(t, err, &te)
	assert.True(t, f.services.Editor.IsOpen())
}

func TestEditor_Submit_ClearsOptionalFields(t *testing.T) {
	f := loggedIn(t)
	f.services.Editor.OpenForCreate()
	item, err := f.services.Editor.Submit(context.Background(), models.ItemDraft{
		AccountName: "GitHub",
		URL:         "https://github.com",
		Login:       "alice",
		Password:    models.SetPassword("pw"),
	})
	require.NoError(t, err)

	draft := f.services.Editor.OpenForEdit(item)
	draft.URL = ""
	updated, err := f.services.Editor.Submit(context.Background(), draft)

	require.NoError(t, err)
	assert.Nil(t, updated.URL)
	require.NotNil(t, updated.Login)
	assert.Equal(t, "alice", *updated.Login)
}

func TestEditor_Submit_AuthorizationLostEndsSession(t *testing.T) {
	f := loggedIn(t)
	f.services.Editor.OpenForCreate()
	f.server.dropSessions()

	_, err := f.services.Editor.Submit(context.Background(), models.ItemDraft{AccountName: "GitHub", Password: models.SetPassword("pw")})

	assert.ErrorIs(t, err, ErrAuthorizationLost)
	assert.Equal(t, models.SessionAnonymous, f.services.Session.State())
	assert.False(t, f.services.Editor.IsOpen())
}

// holdWrite blocks the next write of op until the returned release is
// called. entered is closed once the write reached the backend.
func holdWrite(f *clientFixture, op string) (entered <-chan struct{}, release func()) {
	in := make(chan struct{})
	gate := make(chan struct{})
	var once sync.Once
	f.server.writeHook = func(got, _ string) {
		if got != op {
			return
		}
		once.Do(func() {
			close(in)
			<-gate
		})
	}
	return in, func() { close(gate) }
}

func TestEditor_Submit_LateResponseAfterReopenIsDiscarded(t *testing.T) {
	f := loggedIn(t)
	github := f.createItem(t, "GitHub", "gh-secret")
	gitlab := f.createItem(t, "GitLab", "gl-secret")

	draft := f.services.Editor.OpenForEdit(github)
	draft.Login = "octocat"
	entered, release := holdWrite(f, "update")

	done := make(chan error, 1)
	go func() {
		_, err := f.services.Editor.Submit(context.Background(), draft)
		done <- err
	}()
	<-entered

	f.services.Editor.Cancel()
	f.services.Editor.OpenForEdit(gitlab)
	release()

	assert.ErrorIs(t, <-done, ErrStaleResponse)
	assert.True(t, f.services.Editor.IsOpen())
	assert.Equal(t, gitlab.ID, f.services.Editor.ItemID())
	assert.Equal(t, "GitLab", f.services.Editor.Draft().AccountName)

	// the write did land, so the list reflects it
	refreshed, ok := f.services.Directory.Find(github.ID)
	require.True(t, ok)
	require.NotNil(t, refreshed.Login)
	assert.Equal(t, "octocat", *refreshed.Login)
}

// ─────────────────────────────────────────────
// Remove
// ─────────────────────────────────────────────

func TestEditor_Remove_RequiresConfirmation(t *testing.T) {
	f := loggedIn(t)
	item := f.createItem(t, "GitHub", "pw")
	f.services.Editor.OpenForEdit(item)

	err := f.services.Editor.Remove(context.Background(), false)

	var ce *ConfirmationRequiredError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, item.ID, ce.ItemID)
	assert.Equal(t, "GitHub", ce.AccountName)
	assert.True(t, f.services.Editor.IsOpen())
	_, ok := f.services.Directory.Find(item.ID)
	assert.True(t, ok)
}

func TestEditor_Remove_Confirmed(t *testing.T) {
	f := loggedIn(t)
	item := f.createItem(t, "GitHub", "pw")
	f.createItem(t, "GitLab", "pw")
	f.services.Editor.OpenForEdit(item)

	require.NoError(t, f.services.Editor.Remove(context.Background(), true))

	assert.False(t, f.services.Editor.IsOpen())
	assert.Equal(t, []string{"GitLab"}, names(f.services.Directory.Items()))
}

func TestEditor_Remove_FailureKeepsEditorOpen(t *testing.T) {
	f := loggedIn(t)
	item := f.createItem(t, "GitHub", "pw")
	f.services.Editor.OpenForEdit(item)
	f.server.failNext("delete", adapter.NewStatusError(http.StatusInternalServerError, ""))

	err := f.services.Editor.Remove(context.Background(), true)

	var te *TransientError
	require.ErrorAs(t, err, &te)
	assert.True(t, f.services.Editor.IsOpen())
	_, ok := f.services.Directory.Find(item.ID)
	assert.True(t, ok)
}

func TestEditor_Remove_NotAllowed(t *testing.T) {
	f := loggedIn(t)

	assert.ErrorIs(t, f.services.Editor.Remove(context.Background(), true), ErrEditorClosed)

	f.services.Editor.OpenForCreate()
	assert.ErrorIs(t, f.services.Editor.Remove(context.Background(), true), ErrNothingToDelete)
}

func TestEditor_Cancel(t *testing.T) {
	f := loggedIn(t)
	item := f.createItem(t, "GitHub", "pw")
	f.services.Editor.OpenForEdit(item)

	f.services.Editor.Cancel()

	assert.False(t, f.services.Editor.IsOpen())
	assert.Empty(t, f.services.Editor.ItemID())
	assert.Equal(t, models.ItemDraft{}, f.services.Editor.Draft())
}

func TestEditor_Remove_LateResponseAfterCancelIsDiscarded(t *testing.T) {
	f := loggedIn(t)
	item := f.createItem(t, "GitHub", "pw")
	f.createItem(t, "GitLab", "pw")
	f.services.Editor.OpenForEdit(item)
	entered, release := holdWrite(f, "delete")

	done := make(chan error, 1)
	go func() { done <- f.services.Editor.Remove(context.Background(), true) }()
	<-entered

	f.services.Editor.Cancel()
	f.services.Editor.OpenForCreate()
	release()

	assert.ErrorIs(t, <-done, ErrStaleResponse)
	assert.True(t, f.services.Editor.IsOpen())
	assert.Equal(t, models.EditorCreate, f.services.Editor.Mode())
	assert.Equal(t, []string{"GitLab"}, names(f.services.Directory.Items()))
}
