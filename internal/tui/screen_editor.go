// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/passly/internal/validators"
	"github.com/MKhiriev/passly/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// editorFields lists the form fields in focus order.
var editorFields = []struct {
	field string
	label string
}{
	{validators.FieldAccountName, "Account "},
	{validators.FieldURL, "URL     "},
	{validators.FieldLogin, "Login   "},
	{validators.FieldPassword, "Password"},
}

const passwordInput = 3

type editorForm struct {
	inputs []textinput.Model
	active int

	mode   models.EditorMode
	itemID string

	fieldErrs  map[string]string
	submitting bool
	revealing  bool

	// confirm holds the account name while a delete waits for y/n.
	confirm string
}

func newEditorForm() editorForm {
	inputs := make([]textinput.Model, len(editorFields))
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 255
		in.Width = 40
		inputs[i] = in
	}
	inputs[passwordInput].EchoMode = textinput.EchoPassword
	inputs[passwordInput].EchoCharacter = '*'

	return editorForm{inputs: inputs, fieldErrs: map[string]string{}}
}

func (f *editorForm) fill(draft models.ItemDraft) {
	f.inputs[0].SetValue(draft.AccountName)
	f.inputs[1].SetValue(draft.URL)
	f.inputs[2].SetValue(draft.Login)
	f.inputs[passwordInput].SetValue("")
}

// draft reads the form. A blank password input means "keep the stored one".
func (f editorForm) draft() models.ItemDraft {
	return models.ItemDraft{
		AccountName: f.inputs[0].Value(),
		URL:         f.inputs[1].Value(),
		Login:       f.inputs[2].Value(),
		Password:    models.PasswordFromInput(f.inputs[passwordInput].Value()),
	}
}

func (f *editorForm) move(delta int) tea.Cmd {
	f.inputs[f.active].Blur()
	f.active = (f.active + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.active].Focus()
}

func (m model) openEditor(draft models.ItemDraft, mode models.EditorMode, itemID string) (model, tea.Cmd) {
	m.editor = newEditorForm()
	m.editor.mode = mode
	m.editor.itemID = itemID
	m.editor.fill(draft)
	m.vault.search.Blur()
	m.screen = screenEditor
	m.status = ""
	m.errMsg = ""
	cmd := m.editor.inputs[0].Focus()
	return m, cmd
}

func (m model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.editor.inputs[m.editor.active], cmd = m.editor.inputs[m.editor.active].Update(msg)
		return m, cmd
	}

	if m.editor.confirm != "" {
		switch {
		case key.Matches(keyMsg, keys.yes):
			name := m.editor.confirm
			m.editor.confirm = ""
			m.editor.submitting = true
			return m, m.cmdRemove(name)
		case key.Matches(keyMsg, keys.no):
			m.editor.confirm = ""
		}
		return m, nil
	}

	if m.editor.submitting {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.services.Editor.Cancel()
		return m.backToVault()

	case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.down):
		cmd := m.editor.move(1)
		return m, cmd

	case key.Matches(keyMsg, keys.backtab), key.Matches(keyMsg, keys.up):
		cmd := m.editor.move(-1)
		return m, cmd

	case key.Matches(keyMsg, keys.enter):
		m.editor.fieldErrs = map[string]string{}
		m.editor.submitting = true
		m.errMsg = ""
		return m, m.cmdSubmit(m.editor.draft())

	case key.Matches(keyMsg, keys.reveal):
		if m.editor.mode != models.EditorEdit || m.editor.revealing {
			return m, nil
		}
		if _, held := m.services.Disclosure.Secret(m.editor.itemID); held {
			m.services.Disclosure.Hide()
			return m, nil
		}
		m.editor.revealing = true
		return m, m.cmdReveal(m.editor.itemID)

	case key.Matches(keyMsg, keys.copy):
		if err := m.services.Disclosure.Copy(m.clipboard); err != nil {
			m.errMsg = humanizeError(err)
			return m, nil
		}
		m.errMsg = ""
		return m, m.cmdExposureEnded()

	case key.Matches(keyMsg, keys.delete):
		if err := m.services.Editor.Remove(m.ctx, false); err != nil {
			return m.fail(err)
		}
		return m, nil

	case key.Matches(keyMsg, keys.logout):
		return m, m.cmdLogout()
	}

	var cmd tea.Cmd
	m.editor.inputs[m.editor.active], cmd = m.editor.inputs[m.editor.active].Update(msg)
	return m, cmd
}

func (m model) viewEditor() string {
	var b strings.Builder

	for i, f := range editorFields {
		b.WriteString(f.label)
		b.WriteString(" │ ")
		b.WriteString(m.editor.inputs[i].View())
		if reason, ok := m.editor.fieldErrs[f.field]; ok {
			b.WriteString("  ")
			b.WriteString(errorStyle.Render(reason))
		}
		b.WriteString("\n")
	}

	if m.editor.mode == models.EditorEdit {
		b.WriteString("\nStored   │ ")
		switch secret, held := m.services.Disclosure.Secret(m.editor.itemID); {
		case held:
			b.WriteString(secret)
		case m.editor.revealing:
			b.WriteString("revealing...")
		default:
			b.WriteString("••••••••")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("leave Password empty to keep the stored one"))
		b.WriteString("\n")
	}

	if m.services.Disclosure.Exposed() {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("✓ copied to clipboard"))
		b.WriteString("\n")
	}
	if m.editor.submitting {
		b.WriteString("\n[Saving...]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	title := "NEW ITEM"
	hotKeys := "tab: next field │ enter: save │ esc: cancel"
	if m.editor.mode == models.EditorEdit {
		title = "EDIT ITEM"
		hotKeys += " │ ctrl+r: reveal/hide │ ctrl+y: copy │ ctrl+d: delete"
	}

	page := renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
	if m.editor.confirm != "" {
		page += "\n\n" + overlayBoxStyle.Render(fmt.Sprintf("Delete %q?\n\ny: yes    n: no", m.editor.confirm))
	}
	return page
}
