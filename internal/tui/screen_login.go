// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/passly/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginForm struct {
	inputs     []textinput.Model
	active     int
	submitting bool
}

func newLoginForm() loginForm {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "username"
	usernameInput.CharLimit = 64
	usernameInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return loginForm{inputs: []textinput.Model{usernameInput, passwordInput}}
}

// reset clears the password and puts focus back on the username.
func (f *loginForm) reset() {
	f.inputs[1].SetValue("")
	f.submitting = false
	f.inputs[f.active].Blur()
	f.active = 0
}

func (f *loginForm) focus() tea.Cmd {
	return f.inputs[f.active].Focus()
}

func (f *loginForm) move(delta int) tea.Cmd {
	f.inputs[f.active].Blur()
	f.active = (f.active + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.active].Focus()
}

func (m model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.down):
			cmd := m.login.move(1)
			return m, cmd
		case key.Matches(keyMsg, keys.backtab), key.Matches(keyMsg, keys.up):
			cmd := m.login.move(-1)
			return m, cmd
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			m.login.submitting = true
			m.status = ""
			m.errMsg = ""
			return m, m.cmdLogin(models.Credentials{
				Username: strings.TrimSpace(m.login.inputs[0].Value()),
				Password: m.login.inputs[1].Value(),
			})
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.active], cmd = m.login.inputs[m.login.active].Update(msg)
	return m, cmd
}

func (m model) viewLogin() string {
	var b strings.Builder
	b.WriteString("Username │ ")
	b.WriteString(m.login.inputs[0].View())
	b.WriteString("\n")
	b.WriteString("Password │ ")
	b.WriteString(m.login.inputs[1].View())
	b.WriteString("\n")

	if m.login.submitting {
		b.WriteString("\n[Logging in...]\n")
	} else {
		b.WriteString("\n[Log in]\n")
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

	b.WriteString("\n")
	b.WriteString(renderBuildInfo(m.build))

	return renderPage("LOG IN", b.String(), "tab: next field │ enter: log in")
}
