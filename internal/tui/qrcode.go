package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// QRCodeModel fetches the provisioning QR code of an account again and saves
// it as a PNG.
type QRCodeModel struct {
	deps *deps
	form form
}

func NewQRCodeModel(d *deps) *QRCodeModel {
	return &QRCodeModel{
		deps: d,
		form: newForm(formField{label: "Username", placeholder: "alice", charLimit: 64}),
	}
}

func (m *QRCodeModel) Init() tea.Cmd {
	m.form.reset()
	m.form.inputs[0].SetValue(m.deps.vault.Username())
	m.form.inputs[0].CursorEnd()
	return textinput.Blink
}

func (m *QRCodeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case QRCodeResult:
		m.form.pending = false
		if msg.Err != nil {
			m.form.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		return m, backToMenu(fmt.Sprintf("qr code of %s saved to %s", msg.Username, msg.Path))

	case tea.KeyMsg:
		if m.form.pending {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.esc):
			return m, backToMenu("")
		case key.Matches(msg, keys.enter):
			username := m.form.value(0)
			if username == "" {
				m.form.errMsg = "username is required"
				return m, nil
			}
			m.form.errMsg = ""
			m.form.pending = true
			return m, m.cmdQRCode(username)
		}
	}

	return m, m.form.update(msg)
}

func (m *QRCodeModel) cmdQRCode(username string) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		png, err := d.vault.QRCode(d.ctx, username)
		if err != nil {
			return QRCodeResult{Username: username, Err: err}
		}

		path := qrCodePath(username)
		if err := d.writeFile(path, png); err != nil {
			return QRCodeResult{Username: username, Err: fmt.Errorf("save qr code: %w", err)}
		}
		return QRCodeResult{Username: username, Path: path}
	}
}

func (m *QRCodeModel) View() string {
	return renderPage("QR CODE", m.form.view(), "enter: fetch and save • esc: back")
}
