package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// UploadModel reads a local file, encrypts it and stores it under its base
// name.
type UploadModel struct {
	deps *deps
	form form
}

func NewUploadModel(d *deps) *UploadModel {
	return &UploadModel{
		deps: d,
		form: newForm(formField{label: "File path", placeholder: "./notes.txt", charLimit: 4096}),
	}
}

func (m *UploadModel) Init() tea.Cmd {
	m.form.reset()
	return textinput.Blink
}

func (m *UploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FileResult:
		m.form.pending = false
		if msg.Err != nil {
			m.form.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		return m, backToMenu(fmt.Sprintf("uploaded %s (%d bytes, encrypted)", msg.Name, msg.Size))

	case tea.KeyMsg:
		if m.form.pending {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.esc):
			return m, backToMenu("")
		case key.Matches(msg, keys.enter):
			path := m.form.value(0)
			if path == "" {
				m.form.errMsg = "file path is required"
				return m, nil
			}
			m.form.errMsg = ""
			m.form.pending = true
			return m, m.cmdUpload(path)
		}
	}

	return m, m.form.update(msg)
}

func (m *UploadModel) cmdUpload(path string) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		name := filepath.Base(path)

		data, err := d.readFile(path)
		if err != nil {
			return FileResult{Name: name, Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
		}
		if err := d.vault.Upload(d.ctx, name, data); err != nil {
			return FileResult{Name: name, Path: path, Err: err}
		}
		return FileResult{Name: name, Path: path, Size: len(data)}
	}
}

func (m *UploadModel) View() string {
	return renderPage("UPLOAD FILE", m.form.view(), "enter: encrypt and upload • esc: back")
}

// DownloadModel fetches a stored file, decrypts it and writes the plaintext
// next to the client as decrypted-<name>.
type DownloadModel struct {
	deps *deps
	form form
}

func NewDownloadModel(d *deps) *DownloadModel {
	return &DownloadModel{
		deps: d,
		form: newForm(formField{label: "File name", placeholder: "notes.txt", charLimit: 255}),
	}
}

func (m *DownloadModel) Init() tea.Cmd {
	m.form.reset()
	return textinput.Blink
}

func (m *DownloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FileResult:
		m.form.pending = false
		if msg.Err != nil {
			m.form.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		return m, backToMenu(fmt.Sprintf("decrypted %s into %s", msg.Name, msg.Path))

	case tea.KeyMsg:
		if m.form.pending {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.esc):
			return m, backToMenu("")
		case key.Matches(msg, keys.enter):
			name := m.form.value(0)
			if name == "" {
				m.form.errMsg = "file name is required"
				return m, nil
			}
			m.form.errMsg = ""
			m.form.pending = true
			return m, m.cmdDownload(name)
		}
	}

	return m, m.form.update(msg)
}

func (m *DownloadModel) cmdDownload(name string) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		plaintext, err := d.vault.Download(d.ctx, name)
		if err != nil {
			return FileResult{Name: name, Err: err}
		}

		target := "decrypted-" + filepath.Base(name)
		if err := d.writeFile(target, plaintext); err != nil {
			return FileResult{Name: name, Path: target, Err: fmt.Errorf("write %s: %w", target, err)}
		}
		return FileResult{Name: name, Path: target, Size: len(plaintext)}
	}
}

func (m *DownloadModel) View() string {
	return renderPage("DOWNLOAD FILE", m.form.view(), "enter: download and decrypt • esc: back")
}
