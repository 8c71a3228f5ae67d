package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	actionLogout = "logout"
	actionQuit   = "quit"
)

const statusTTL = 4 * time.Second

type menuItem struct {
	title  string
	target string
}

// MenuModel lists the actions available in the current login state.
type MenuModel struct {
	deps   *deps
	idx    int
	status string
	errMsg string
	busy   bool
}

func NewMenuModel(d *deps) *MenuModel {
	return &MenuModel{deps: d}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) items() []menuItem {
	if m.deps.vault.Username() == "" {
		return []menuItem{
			{title: "Register", target: pageRegister},
			{title: "Log in", target: pageLogin},
			{title: "Fetch QR code", target: pageQRCode},
			{title: "Quit", target: actionQuit},
		}
	}
	return []menuItem{
		{title: "Upload file", target: pageUpload},
		{title: "Download file", target: pageDownload},
		{title: "Fetch QR code", target: pageQRCode},
		{title: "Log out", target: actionLogout},
		{title: "Quit", target: actionQuit},
	}
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	items := m.items()
	if m.idx >= len(items) {
		m.idx = len(items) - 1
	}

	switch msg := msg.(type) {
	case StatusNotice:
		m.status = msg.Text
		m.errMsg = ""
		return m, cmdClearStatus(statusTTL)

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case LogoutResult:
		m.busy = false
		m.idx = 0
		if msg.Err != nil {
			// the local session is gone either way
			m.errMsg = "logged out locally, server said: " + humanizeError(msg.Err)
			return m, nil
		}
		m.status = "logged out"
		return m, cmdClearStatus(statusTTL)

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.up):
			if m.idx > 0 {
				m.idx--
			}
		case key.Matches(msg, keys.down):
			if m.idx < len(items)-1 {
				m.idx++
			}
		case key.Matches(msg, keys.quit):
			return m, requestQuit
		case key.Matches(msg, keys.enter):
			return m.activate(items[m.idx])
		}
	}

	return m, nil
}

func (m *MenuModel) activate(item menuItem) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	m.status = ""

	switch item.target {
	case actionQuit:
		return m, requestQuit
	case actionLogout:
		m.busy = true
		return m, m.cmdLogout()
	default:
		return m, navigate(item.target, nil)
	}
}

func (m *MenuModel) cmdLogout() tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		return LogoutResult{Err: d.vault.Logout(d.ctx)}
	}
}

func (m *MenuModel) View() string {
	var b strings.Builder

	if user := m.deps.vault.Username(); user != "" {
		b.WriteString("Logged in as " + titleStyle.Render(user) + "\n\n")
	} else {
		b.WriteString(helpStyle.Render("Not logged in") + "\n\n")
	}

	b.WriteString(renderStatus(m.status))

	for i, item := range m.items() {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%d. %s\n", cursor, i+1, item.title)
	}

	if m.busy {
		b.WriteString("\n" + helpStyle.Render("working...") + "\n")
	}
	b.WriteString(renderError(m.errMsg))

	return renderPage("TOTP VAULT", b.String(), "↑/↓: select • enter: open • v: about • q: quit")
}

func requestQuit() tea.Msg {
	return quitRequested{}
}

func cmdClearStatus(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
