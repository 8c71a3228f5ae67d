package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-totp-vault/internal/adapter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TOTPModel completes a pending login with a one-time code. A rejected code
// leaves the pending login in place for another attempt.
type TOTPModel struct {
	deps     *deps
	form     form
	username string
	digits   int
	period   int
}

func NewTOTPModel(d *deps) *TOTPModel {
	return &TOTPModel{
		deps: d,
		form: newForm(formField{label: "Code", placeholder: "123456", charLimit: 10}),
	}
}

func (m *TOTPModel) Init() tea.Cmd {
	m.form.reset()
	return textinput.Blink
}

func (m *TOTPModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TOTPPrompt:
		m.username = msg.Username
		m.digits = msg.Digits
		m.period = msg.Period
		m.form.reset()
		return m, nil

	case VerifyResult:
		m.form.pending = false
		if msg.Err != nil {
			m.form.inputs[0].SetValue("")
			if errors.Is(msg.Err, adapter.ErrUnauthorized) {
				m.form.errMsg = "code rejected or login expired, try again or press esc"
				return m, nil
			}
			m.form.errMsg = humanizeError(msg.Err)
			return m, nil
		}

		notice := "logged in as " + msg.Username
		if msg.Response.ExpiresAt != nil {
			notice += ", session expires " + msg.Response.ExpiresAt.Local().Format("2006-01-02 15:04")
		}
		return m, backToMenu(notice)

	case tea.KeyMsg:
		if m.form.pending {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.esc):
			return m, backToMenu("")
		case key.Matches(msg, keys.enter):
			return m.submit()
		}
	}

	return m, m.form.update(msg)
}

func (m *TOTPModel) submit() (tea.Model, tea.Cmd) {
	code := m.form.value(0)
	if code == "" {
		m.form.errMsg = "code is required"
		return m, nil
	}

	m.form.errMsg = ""
	m.form.pending = true

	d := m.deps
	username := m.username
	return m, func() tea.Msg {
		resp, err := d.vault.VerifyTOTP(d.ctx, code)
		return VerifyResult{Username: username, Response: resp, Err: err}
	}
}

func (m *TOTPModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Password accepted for %s.\n", titleStyle.Render(m.username))
	if m.digits > 0 && m.period > 0 {
		fmt.Fprintf(&b, "Enter the %d-digit code from your authenticator (changes every %ds).\n\n", m.digits, m.period)
	} else {
		b.WriteString("Enter the code from your authenticator.\n\n")
	}
	b.WriteString(m.form.view())

	return renderPage("ONE-TIME CODE", b.String(), "enter: verify • esc: cancel")
}
