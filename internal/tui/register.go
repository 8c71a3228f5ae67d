// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	regUsername = iota
	regPassword
	regRepeat
)

// RegisterModel creates an account and hands the provisioning data to the
// secret page.
type RegisterModel struct {
	deps *deps
	form form
}

func NewRegisterModel(d *deps) *RegisterModel {
	return &RegisterModel{
		deps: d,
		form: newForm(
			formField{label: "Username", placeholder: "alice", charLimit: 64},
			formField{label: "Password", placeholder: "password", charLimit: 128, secret: true},
			formField{label: "Repeat password", placeholder: "password", charLimit: 128, secret: true},
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	m.form.reset()
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterResult:
		m.form.pending = false
		if msg.Err != nil {
			m.form.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		return m, navigate(pageSecret, msg)

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

func (m *RegisterModel) submit() (tea.Model, tea.Cmd) {
	username := m.form.value(regUsername)
	password := m.form.raw(regPassword)

	switch {
	case username == "":
		m.form.errMsg = "username is required"
		return m, nil
	case password == "":
		m.form.errMsg = "password is required"
		return m, nil
	case password != m.form.raw(regRepeat):
		m.form.errMsg = "passwords do not match"
		return m, nil
	}

	m.form.errMsg = ""
	m.form.pending = true
	return m, m.cmdRegister(username, password)
}

func (m *RegisterModel) cmdRegister(username, password string) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		reg, err := d.vault.Register(d.ctx, username, password)
		if err != nil {
			return RegisterResult{Username: username, Err: err}
		}

		result := RegisterResult{Username: username, Registration: reg}

		qrPath := qrCodePath(reg.Account)
		if err := d.writeFile(qrPath, reg.QRCodePNG); err != nil {
			result.QRErr = err
		} else {
			result.QRPath = qrPath
		}

		if err := d.copy(reg.SecretBase32); err != nil {
			d.logger.Debug().Err(err).Msg("clipboard unavailable")
		} else {
			result.Copied = true
		}

		return result
	}
}

func (m *RegisterModel) View() string {
	return renderPage("REGISTER", m.form.view(), "tab/shift+tab: field • enter: register • esc: back")
}

func qrCodePath(account string) string {
	return fmt.Sprintf("qrcode-%s.png", filepath.Base(account))
}
