// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/passly/internal/adapter"
	"github.com/MKhiriev/passly/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []models.VaultItemSummary) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.AccountName)
	}
	return out
}

func seedDirectory(t *testing.T) *clientFixture {
	t.Helper()

	f := loggedIn(t)
	f.createItem(t, "GitHub", "gh-secret")
	f.createItem(t, "GitLab", "gl-secret")
	f.createItem(t, "Google", "g-secret")
	return f
}

func TestDirectory_List_FiltersAndRedacts(t *testing.T) {
	f := seedDirectory(t)

	got, err := f.services.Directory.List(context.Background(), "git")

	require.NoError(t, err)
	assert.Equal(t, []string{"GitHub", "GitLab"}, names(got))
	for _, item := range got {
		assert.True(t, item.PasswordMasked)
	}
	assert.Equal(t, "git", f.services.Directory.Query())
	assert.Equal(t, got, f.services.Directory.Items())
}

func TestDirectory_Find(t *testing.T) {
	f := seedDirectory(t)
	items, err := f.services.Directory.List(context.Background(), "")
	require.NoError(t, err)

	found, ok := f.services.Directory.Find(items[0].ID)
	assert.True(t, ok)
	assert.Equal(t, items[0], found)

	_, ok = f.services.Directory.Find("missing")
	assert.False(t, ok)
}

func TestDirectory_Refresh_ReusesActiveQuery(t *testing.T) {
	f := seedDirectory(t)
	_, err := f.services.Directory.List(context.Background(), "goo")
	require.NoError(t, err)

	f.createItem(t, "Goodreads", "gr-secret")

	assert.Equal(t, []string{"Goodreads", "Google"}, names(f.services.Directory.Items()))
}

// The older query is held back until the newer one has been applied; its
// late response must not overwrite the list.
func TestDirectory_SearchRace_LateOlderResponseIsDiscarded(t *testing.T) {
	f := seedDirectory(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.server.listHook = func(query string) {
		if query == "g" {
			close(entered)
			<-release
		}
	}

	type result struct {
		items []models.VaultItemSummary
		err   error
	}
	older := make(chan result, 1)
	go func() {
		items, err := f.services.Directory.List(context.Background(), "g")
		older <- result{items, err}
	}()
	<-entered

	newer, err := f.services.Directory.List(context.Background(), "github")
	require.NoError(t, err)
	assert.Equal(t, []string{"GitHub"}, names(newer))

	close(release)
	late := <-older

	assert.ErrorIs(t, late.err, ErrStaleResponse)
	assert.Nil(t, late.items)
	assert.Equal(t, []string{"GitHub"}, names(f.services.Directory.Items()))
	assert.Equal(t, "github", f.services.Directory.Query())
}

func TestDirectory_SearchRace_InOrderResponsesBothApply(t *testing.T) {
	f := seedDirectory(t)

	first, err := f.services.Directory.List(context.Background(), "g")
	require.NoError(t, err)
	assert.Len(t, first, 3)

	second, err := f.services.Directory.List(context.Background(), "github")
	require.NoError(t, err)

	assert.Equal(t, []string{"GitHub"}, names(second))
	assert.Equal(t, []string{"GitHub"}, names(f.services.Directory.Items()))
}

func TestDirectory_TransientErrorKeepsPreviousList(t *testing.T) {
	f := seedDirectory(t)
	_, err := f.services.Directory.List(context.Background(), "git")
	require.NoError(t, err)

	f.server.failNext("list", adapter.NewStatusError(http.StatusServiceUnavailable, "database unavailable"))
	_, err = f.services.Directory.List(context.Background(), "goo")

	var te *TransientError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, []string{"GitHub", "GitLab"}, names(f.services.Directory.Items()))
	assert.Equal(t, models.SessionAuthenticated, f.services.Session.State())
}

func TestDirectory_AuthorizationLost(t *testing.T) {
	f := seedDirectory(t)
	_, err := f.services.Directory.List(context.Background(), "")
	require.NoError(t, err)

	f.server.dropSessions()
	_, err = f.services.Directory.List(context.Background(), "")

	assert.ErrorIs(t, err, ErrAuthorizationLost)
	assert.Equal(t, models.SessionAnonymous, f.services.Session.State())
	assert.Empty(t, f.services.Directory.Items())
	assert.Empty(t, f.credentials.stored())
}

func TestDirectory_AnonymousNeverReachesServer(t *testing.T) {
	f := newClientFixture(t)
	f.server.listHook = func(string) { t.Error("list must not be issued without a session") }

	_, err := f.services.Directory.List(context.Background(), "")

	assert.ErrorIs(t, err, ErrAuthorizationLost)
}

func TestDirectory_ResetDiscardsInFlight(t *testing.T) {
	f := seedDirectory(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.server.listHook = func(string) {
		close(entered)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.services.Directory.List(context.Background(), "git")
		done <- err
	}()
	<-entered

	f.services.Directory.Reset()
	close(release)

	assert.ErrorIs(t, <-done, ErrStaleResponse)
	assert.Empty(t, f.services.Directory.Items())
}
