// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/passly/internal/service"
	"github.com/MKhiriev/passly/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenLoading screen = iota
	screenLogin
	screenVault
	screenEditor
)

// model is the root of the program. It routes messages to the active
// screen; every change of session or vault state comes from the services.
type model struct {
	ctx       context.Context
	services  *service.ClientServices
	clipboard service.ClipboardWriter
	window    time.Duration
	build     models.BuildInfo

	screen screen
	login  loginForm
	vault  vaultView
	editor editorForm

	status string
	errMsg string
}

func newModel(ctx context.Context, services *service.ClientServices, clipboard service.ClipboardWriter, window time.Duration, build models.BuildInfo) model {
	return model{
		ctx:       ctx,
		services:  services,
		clipboard: clipboard,
		window:    window,
		build:     build,
		screen:    screenLoading,
		login:     newLoginForm(),
		vault:     newVaultView(),
		editor:    newEditorForm(),
	}
}

func (m model) Init() tea.Cmd {
	return m.cmdResolve()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resolvedMsg:
		return m.enterSession(msg.state)

	case sessionChangedMsg:
		if msg.state == models.SessionAnonymous && (m.screen == screenVault || m.screen == screenEditor) {
			return m.toLogin(msgSessionEnded)
		}
		return m, nil

	case loginDoneMsg:
		m.login.submitting = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.login.reset()
		m.errMsg = ""
		return m.enterSession(m.services.Session.State())

	case listDoneMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.vault.loading = false
		m.vault.setItems(m.services.Directory.Items())
		m.errMsg = ""
		return m, nil

	case revealDoneMsg:
		m.editor.revealing = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.errMsg = ""
		return m, nil

	case savedMsg:
		m.editor.submitting = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.status = "Saved \"" + msg.item.AccountName + "\""
		return m.backToVault()

	case removedMsg:
		m.editor.submitting = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.status = "Deleted \"" + msg.accountName + "\""
		return m.backToVault()

	case loggedOutMsg:
		return m.toLogin(msgLoggedOut)

	case exposureEndedMsg:
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenVault:
		return m.updateVault(msg)
	case screenEditor:
		return m.updateEditor(msg)
	}
	return m, nil
}

func (m model) View() string {
	switch m.screen {
	case screenLogin:
		return m.viewLogin()
	case screenVault:
		return m.viewVault()
	case screenEditor:
		return m.viewEditor()
	}
	return renderPage("PASSLY", "Checking session...", "")
}

// enterSession shows the screen matching a settled session state.
func (m model) enterSession(state models.SessionState) (model, tea.Cmd) {
	if state != models.SessionAuthenticated {
		m.screen = screenLogin
		cmd := m.login.focus()
		return m, cmd
	}

	m.screen = screenVault
	m.vault.loading = true
	focus := m.vault.search.Focus()
	return m, tea.Batch(focus, m.cmdList(m.vault.search.Value()))
}

// toLogin drops every view state tied to the old session.
func (m model) toLogin(reason string) (model, tea.Cmd) {
	m.screen = screenLogin
	m.vault = newVaultView()
	m.editor = newEditorForm()
	m.login.reset()
	m.status = reason
	m.errMsg = ""
	cmd := m.login.focus()
	return m, cmd
}

func (m model) backToVault() (model, tea.Cmd) {
	m.screen = screenVault
	m.editor = newEditorForm()
	m.errMsg = ""
	m.vault.setItems(m.services.Directory.Items())
	cmd := m.vault.search.Focus()
	return m, cmd
}

// fail routes err to where the user can act on it.
func (m model) fail(err error) (model, tea.Cmd) {
	var (
		validErr   *service.ValidationError
		confirmErr *service.ConfirmationRequiredError
	)

	switch {
	case errors.Is(err, service.ErrStaleResponse):
		return m, nil
	case errors.Is(err, service.ErrAuthorizationLost):
		return m.toLogin(msgSessionEnded)
	case errors.As(err, &confirmErr):
		m.editor.confirm = confirmErr.AccountName
		return m, nil
	case errors.As(err, &validErr) && m.screen == screenEditor && validErr.Field != "":
		m.editor.fieldErrs[validErr.Field] = validErr.Reason
		m.errMsg = ""
		return m, nil
	}

	m.vault.loading = false
	m.errMsg = humanizeError(err)
	return m, nil
}

// ─────────────────────────────────────────────
// commands
// ─────────────────────────────────────────────

func (m model) cmdResolve() tea.Cmd {
	ctx, session := m.ctx, m.services.Session
	return func() tea.Msg {
		return resolvedMsg{state: session.Resolve(ctx)}
	}
}

func (m model) cmdLogin(credentials models.Credentials) tea.Cmd {
	ctx, session := m.ctx, m.services.Session
	return func() tea.Msg {
		return loginDoneMsg{err: session.Login(ctx, credentials)}
	}
}

func (m model) cmdLogout() tea.Cmd {
	ctx, session := m.ctx, m.services.Session
	return func() tea.Msg {
		session.Logout(ctx)
		return loggedOutMsg{}
	}
}

func (m model) cmdList(query string) tea.Cmd {
	ctx, directory := m.ctx, m.services.Directory
	return func() tea.Msg {
		_, err := directory.List(ctx, query)
		return listDoneMsg{query: query, err: err}
	}
}

func (m model) cmdReveal(itemID string) tea.Cmd {
	ctx, disclosure := m.ctx, m.services.Disclosure
	return func() tea.Msg {
		_, err := disclosure.Reveal(ctx, itemID)
		return revealDoneMsg{itemID: itemID, err: err}
	}
}

func (m model) cmdSubmit(draft models.ItemDraft) tea.Cmd {
	ctx, editor := m.ctx, m.services.Editor
	return func() tea.Msg {
		item, err := editor.Submit(ctx, draft)
		return savedMsg{item: item, err: err}
	}
}

func (m model) cmdRemove(accountName string) tea.Cmd {
	ctx, editor := m.ctx, m.services.Editor
	return func() tea.Msg {
		return removedMsg{accountName: accountName, err: editor.Remove(ctx, true)}
	}
}

func (m model) cmdExposureEnded() tea.Cmd {
	return tea.Tick(m.window, func(time.Time) tea.Msg {
		return exposureEndedMsg{}
	})
}
