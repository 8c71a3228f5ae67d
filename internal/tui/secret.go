package tui

import (
	"encoding/base32"
	"encoding/hex"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// SecretModel shows the TOTP provisioning data of a new account.
type SecretModel struct {
	deps   *deps
	result RegisterResult
	status string
	errMsg string
}

func NewSecretModel(d *deps) *SecretModel {
	return &SecretModel{deps: d}
}

func (m *SecretModel) Init() tea.Cmd {
	return nil
}

func (m *SecretModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterResult:
		m.result = msg
		m.errMsg = ""
		m.status = ""
		if msg.Copied {
			m.status = "secret copied to clipboard"
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "clipboard unavailable: " + msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.status = "secret copied to clipboard"
		return m, cmdClearStatus(statusTTL)

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.copy):
			return m, cmdCopyToClipboard(m.deps.copy, m.result.Registration.SecretBase32)
		case key.Matches(msg, keys.enter), key.Matches(msg, keys.esc):
			return m, backToMenu("registered " + m.result.Username + ", log in with your authenticator code")
		}
	}

	return m, nil
}

func (m *SecretModel) View() string {
	reg := m.result.Registration

	qr := m.result.QRPath
	if m.result.QRErr != nil {
		qr = "not saved: " + m.result.QRErr.Error()
	}

	var b strings.Builder
	b.WriteString(renderStatus(m.status))
	b.WriteString("Add this account to your authenticator app.\n\n")
	b.WriteString(secretStyle.Render(strings.Join([]string{
		"issuer:          " + reg.Issuer,
		"account:         " + reg.Account,
		"secret (base32): " + reg.SecretBase32,
		"secret (hex):    " + secretHex(reg.SecretBase32),
		"uri:             " + reg.OTPAuthURI,
		"qr code:         " + qr,
	}, "\n")))
	b.WriteString("\n")
	b.WriteString(renderError(m.errMsg))

	return renderPage("TOTP SECRET", b.String(), "c: copy secret • enter/esc: done")
}

// secretHex renders an unpadded Base32 secret as hex, or "" if it does not
// decode.
func secretHex(secret string) string {
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return ""
	}
	return hex.EncodeToString(raw)
}

func cmdCopyToClipboard(copyFn func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}
