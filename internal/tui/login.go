// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	loginUsername = iota
	loginPassword
)

// LoginModel runs the password step. The content key and the login ticket
// stay inside the vault until the code page completes the login.
type LoginModel struct {
	deps *deps
	form form
}

func NewLoginModel(d *deps) *LoginModel {
	return &LoginModel{
		deps: d,
		form: newForm(
			formField{label: "Username", placeholder: "alice", charLimit: 64},
			formField{label: "Password", placeholder: "password", charLimit: 128, secret: true},
		),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	m.form.reset()
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoginResult:
		m.form.pending = false
		if msg.Err != nil {
			m.form.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		return m, navigate(pageTOTP, TOTPPrompt{
			Username: msg.Username,
			Digits:   msg.Response.TOTPDigits,
			Period:   msg.Response.TOTPPeriod,
		})

	case tea.KeyMsg:
		if m.form.pending {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.esc):
			return m, backToMenu("")
		case key.Matches(msg, keys.enter):
			return m.submit()
		case key.Matches(msg, keys.backtab):
			m.form.prev()
			return m, nil
		case key.Matches(msg, keys.tab):
			m.form.next()
			return m, nil
		}
	}

	return m, m.form.update(msg)
}

func (m *LoginModel) submit() (tea.Model, tea.Cmd) {
	username := m.form.value(loginUsername)
	password := m.form.raw(loginPassword)
	if username == "" || password == "" {
		m.form.errMsg = "username and password are required"
		return m, nil
	}

	m.form.errMsg = ""
	m.form.pending = true
	return m, m.cmdLogin(username, password)
}

func (m *LoginModel) cmdLogin(username, password string) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		resp, err := d.vault.Login(d.ctx, username, password)
		return LoginResult{Username: username, Response: resp, Err: err}
	}
}

func (m *LoginModel) View() string {
	return renderPage("LOG IN", m.form.view(), "tab/shift+tab: field • enter: continue • esc: back")
}
