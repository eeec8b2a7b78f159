// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/passly/internal/adapter"
	"github.com/MKhiriev/passly/internal/app"
	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/store"
	"github.com/MKhiriev/passly/models"
	"github.com/stretchr/testify/require"
)

// fakeServer is an in-memory backend behind the ServerAdapter interface.
// Hooks run outside the lock so tests can hold a response back.
type fakeServer struct {
	mu       sync.Mutex
	token    string
	users    map[string]string
	sessions map[string]models.User
	items    map[string]models.VaultItemSecret
	seq      int
	failures map[string]error

	listHook   func(query string)
	revealHook func(itemID string)
	writeHook  func(op, itemID string)
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		users:    map[string]string{"alice": "correct horse"},
		sessions: map[string]models.User{},
		items:    map[string]models.VaultItemSecret{},
		failures: map[string]error{},
	}
}

// failNext makes the next call of op return err.
func (f *fakeServer) failNext(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = err
}

// dropSessions revokes every issued credential on the backend side.
func (f *fakeServer) dropSessions() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = map[string]models.User{}
}

func (f *fakeServer) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeServer) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// checkLocked runs the common prologue: injected failure, then session.
func (f *fakeServer) checkLocked(op string) error {
	if err, ok := f.failures[op]; ok {
		delete(f.failures, op)
		return err
	}
	if _, ok := f.sessions[f.token]; !ok {
		return adapter.NewStatusError(http.StatusUnauthorized, app.MsgCouldNotValidateCredentials)
	}
	return nil
}

func (f *fakeServer) Authenticate(_ context.Context, c models.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failures["login"]; ok {
		delete(f.failures, "login")
		return "", err
	}
	if pw, ok := f.users[c.Username]; !ok || pw != c.Password {
		return "", adapter.NewStatusError(http.StatusUnauthorized, app.MsgIncorrectUsernameOrPassword)
	}

	f.seq++
	token := fmt.Sprintf("token-%d", f.seq)
	f.sessions[token] = models.User{UserID: testUserID, Username: c.Username}
	return token, nil
}

func (f *fakeServer) WhoAmI(context.Context) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkLocked("me"); err != nil {
		return models.User{}, err
	}
	return f.sessions[f.token], nil
}

func (f *fakeServer) InvalidateSession(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkLocked("logout"); err != nil {
		return err
	}
	delete(f.sessions, f.token)
	return nil
}

func (f *fakeServer) ListItems(_ context.Context, query string) ([]models.VaultItemSummary, error) {
	if f.listHook != nil {
		f.listHook(query)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkLocked("list"); err != nil {
		return nil, err
	}

	out := make([]models.VaultItemSummary, 0, len(f.items))
	for _, item := range f.items {
		if strings.Contains(strings.ToLower(item.AccountName), strings.ToLower(query)) {
			out = append(out, item.VaultItemSummary)
		}
	}
	slices.SortFunc(out, func(a, b models.VaultItemSummary) int {
		return strings.Compare(a.AccountName, b.AccountName)
	})
	return out, nil
}

func (f *fakeServer) RevealItem(_ context.Context, itemID string) (models.VaultItemSecret, error) {
	if f.revealHook != nil {
		f.revealHook(itemID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkLocked("reveal"); err != nil {
		return models.VaultItemSecret{}, err
	}
	item, ok := f.items[itemID]
	if !ok {
		return models.VaultItemSecret{}, adapter.NewStatusError(http.StatusNotFound, app.MsgItemNotFound)
	}
	item.PasswordMasked = false
	return item, nil
}

func (f *fakeServer) CreateItem(_ context.Context, req models.CreateItemRequest) (models.VaultItemSummary, error) {
	if f.writeHook != nil {
		f.writeHook("create", "")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkLocked("create"); err != nil {
		return models.VaultItemSummary{}, err
	}
	if req.AccountName == "" || req.Password == "" {
		return models.VaultItemSummary{}, adapter.NewStatusError(http.StatusBadRequest, app.MsgInvalidDataProvided)
	}
	if f.nameTakenLocked(req.AccountName, "") {
		return models.VaultItemSummary{}, adapter.NewStatusError(http.StatusConflict, app.MsgAccountNameAlreadyExists)
	}

	f.seq++
	now := time.Now()
	item := models.VaultItemSecret{
		VaultItemSummary: models.VaultItemSummary{
			ID:             fmt.Sprintf("item-%d", f.seq),
			AccountName:    req.AccountName,
			URL:            req.URL,
			Login:          req.Login,
			CreatedAt:      now,
			UpdatedAt:      now,
			PasswordMasked: true,
		},
		Password: req.Password,
	}
	f.items[item.ID] = item
	return item.VaultItemSummary, nil
}

func (f *fakeServer) UpdateItem(_ context.Context, itemID string, req models.UpdateItemRequest) (models.VaultItemSummary, error) {
	if f.writeHook != nil {
		f.writeHook("update", itemID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkLocked("update"); err != nil {
		return models.VaultItemSummary{}, err
	}
	item, ok := f.items[itemID]
	if !ok {
		return models.VaultItemSummary{}, adapter.NewStatusError(http.StatusNotFound, app.MsgItemNotFound)
	}
	if req.AccountName != nil {
		if f.nameTakenLocked(*req.AccountName, itemID) {
			return models.VaultItemSummary{}, adapter.NewStatusError(http.StatusConflict, app.MsgAccountNameAlreadyExists)
		}
		item.AccountName = *req.AccountName
	}
	if req.URL != nil {
		item.URL = blankToNil(*req.URL)
	}
	if req.Login != nil {
		item.Login = blankToNil(*req.Login)
	}
	if req.Password != nil {
		item.Password = *req.Password
	}
	item.UpdatedAt = time.Now()
	f.items[itemID] = item
	return item.VaultItemSummary, nil
}

func (f *fakeServer) DeleteItem(_ context.Context, itemID string) error {
	if f.writeHook != nil {
		f.writeHook("delete", itemID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkLocked("delete"); err != nil {
		return err
	}
	if _, ok := f.items[itemID]; !ok {
		return adapter.NewStatusError(http.StatusNotFound, app.MsgItemNotFound)
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeServer) ServerVersion(context.Context) (string, error) {
	return "test", nil
}

// storedPassword reads the backend's copy of an item's password.
func (f *fakeServer) storedPassword(itemID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[itemID].Password
}

func (f *fakeServer) nameTakenLocked(name, exceptID string) bool {
	for id, item := range f.items {
		if id != exceptID && strings.EqualFold(item.AccountName, name) {
			return true
		}
	}
	return false
}

func blankToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// memoryCredentials is a CredentialStore kept in memory.
type memoryCredentials struct {
	mu    sync.Mutex
	value string
}

func (m *memoryCredentials) LoadCredential(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.value == "" {
		return "", store.ErrCredentialNotFound
	}
	return m.value, nil
}

func (m *memoryCredentials) SaveCredential(_ context.Context, credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = credential
	return nil
}

func (m *memoryCredentials) ClearCredential(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = ""
	return nil
}

func (m *memoryCredentials) stored() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// fakeClipboard records what was copied.
type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func testClientConfig() config.Client {
	return config.Client{CopyWindow: 2 * time.Second}
}

func nopLogger() *logger.Logger {
	return logger.Nop()
}

type clientFixture struct {
	server      *fakeServer
	credentials *memoryCredentials
	services    *ClientServices
}

func newClientFixture(t *testing.T) *clientFixture {
	t.Helper()

	server := newFakeServer()
	credentials := &memoryCredentials{}
	services := NewClientServices(server, credentials, testClientConfig(), nopLogger())

	require.Equal(t, models.SessionAnonymous, services.Session.Resolve(context.Background()))
	return &clientFixture{server: server, credentials: credentials, services: services}
}

// loggedIn returns a fixture with alice logged in.
func loggedIn(t *testing.T) *clientFixture {
	t.Helper()

	f := newClientFixture(t)
	require.NoError(t, f.services.Session.Login(context.Background(), models.Credentials{Username: "alice", Password: "correct horse"}))
	return f
}

// createItem stores an item through the editor and returns its summary.
func (f *clientFixture) createItem(t *testing.T, name, password string) models.VaultItemSummary {
	t.Helper()

	f.services.Editor.OpenForCreate()
	saved, err := f.services.Editor.Submit(context.Background(), models.ItemDraft{
		AccountName: name,
		Password:    models.SetPassword(password),
	})
	require.NoError(t, err)
	return saved
}

func asValidation(t *testing.T, err error) *ValidationError {
	t.Helper()

	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %v", err)
	return ve
}
