package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	label       string
	placeholder string
	charLimit   int
	secret      bool
}

// form is a column of text inputs with one focused field.
type form struct {
	labels  []string
	inputs  []textinput.Model
	focus   int
	errMsg  string
	pending bool
}

func newForm(fields ...formField) form {
	f := form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.CharLimit = field.charLimit
		in.Width = 40
		if field.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		f.labels[i] = field.label
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// raw returns the field as typed. Passwords are not trimmed.
func (f *form) raw(i int) string {
	return f.inputs[i].Value()
}

func (f *form) setFocus(i int) {
	n := len(f.inputs)
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) next() { f.setFocus(f.focus + 1) }

func (f *form) prev() { f.setFocus(f.focus - 1) }

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.errMsg = ""
	f.pending = false
	f.setFocus(0)
}

// update forwards msg to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	for i := range f.inputs {
		cursor := "  "
		if i == f.focus {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%-18s %s\n", cursor, f.labels[i]+":", f.inputs[i].View())
	}
	if f.pending {
		b.WriteString("\n" + helpStyle.Render("working...") + "\n")
	}
	b.WriteString(renderError(f.errMsg))
	return b.String()
}

func navigate(page string, payload any) tea.Cmd {
	return func() tea.Msg {
		return NavigateTo{Page: page, Payload: payload}
	}
}

func backToMenu(notice string) tea.Cmd {
	if notice == "" {
		return navigate(pageMenu, nil)
	}
	return navigate(pageMenu, StatusNotice{Text: notice})
}
