// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/passly/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type vaultView struct {
	search  textinput.Model
	items   []models.VaultItemSummary
	idx     int
	loading bool
}

func newVaultView() vaultView {
	search := textinput.New()
	search.Placeholder = "search by account name"
	search.CharLimit = 255
	search.Width = 40
	search.Prompt = "/ "

	return vaultView{search: search}
}

func (v *vaultView) setItems(items []models.VaultItemSummary) {
	v.items = items
	if v.idx >= len(v.items) {
		v.idx = len(v.items) - 1
	}
	if v.idx < 0 {
		v.idx = 0
	}
}

func (v vaultView) current() (models.VaultItemSummary, bool) {
	if len(v.items) == 0 || v.idx < 0 || v.idx >= len(v.items) {
		return models.VaultItemSummary{}, false
	}
	return v.items[v.idx], true
}

func (m model) updateVault(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.up):
			if m.vault.idx > 0 {
				m.vault.idx--
			}
			return m, nil
		case key.Matches(keyMsg, keys.down):
			if m.vault.idx < len(m.vault.items)-1 {
				m.vault.idx++
			}
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			item, ok := m.vault.current()
			if !ok {
				return m, nil
			}
			return m.openEditor(m.services.Editor.OpenForEdit(item), models.EditorEdit, item.ID)
		case key.Matches(keyMsg, keys.newItem):
			return m.openEditor(m.services.Editor.OpenForCreate(), models.EditorCreate, "")
		case key.Matches(keyMsg, keys.logout):
			return m, m.cmdLogout()
		case key.Matches(keyMsg, keys.esc):
			if m.vault.search.Value() == "" {
				return m, nil
			}
			m.vault.search.SetValue("")
			m.vault.loading = true
			return m, m.cmdList("")
		}
	}

	before := m.vault.search.Value()
	var cmd tea.Cmd
	m.vault.search, cmd = m.vault.search.Update(msg)
	if query := m.vault.search.Value(); query != before {
		m.vault.loading = true
		m.status = ""
		return m, tea.Batch(cmd, m.cmdList(query))
	}
	return m, cmd
}

func (m model) viewVault() string {
	var b strings.Builder
	b.WriteString(m.vault.search.View())
	b.WriteString("\n\n")

	switch {
	case m.vault.loading && len(m.vault.items) == 0:
		b.WriteString("Loading...\n")
	case len(m.vault.items) == 0:
		b.WriteString("No items\n")
	default:
		b.WriteString(fmt.Sprintf("  %-28s %-28s %s\n", "ACCOUNT", "LOGIN", "URL"))
		for i, item := range m.vault.items {
			line := fmt.Sprintf("%-28s %-28s %s",
				fitText(item.AccountName, 28),
				fitText(valueOrDash(item.Login), 28),
				fitText(valueOrDash(item.URL), 40))
			if i == m.vault.idx {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	title := "VAULT"
	if user, ok := m.services.Session.Identity(); ok {
		title += " · " + user.Username
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"type: search │ ↑/↓: select │ enter: open │ ctrl+n: new │ ctrl+l: log out")
}
