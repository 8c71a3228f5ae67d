// Package tui is the terminal user interface of the vault client, built on
// Bubble Tea.
//
// [RootModel] routes between pages: the menu, registration with the secret
// screen, the two login steps, upload, download and QR code retrieval. Every
// page talks to the server and the local crypto through a shared
// [client.Vault]; file writes and clipboard access go through deps so they can
// be replaced in tests.
package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-totp-vault/internal/client"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/models"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// deps are the collaborators shared by all pages.
type deps struct {
	ctx   context.Context
	vault *client.Vault

	readFile  func(name string) ([]byte, error)
	writeFile func(name string, data []byte) error
	copy      func(text string) error

	logger *logger.Logger
}

// TUI runs the full-screen client program.
type TUI struct {
	vault     *client.Vault
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

var _ client.UI = (*TUI)(nil)

func New(vault *client.Vault, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{vault: vault, buildInfo: buildInfo, logger: logger}
}

// Run shows the menu and blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	root := NewRootModel(newPages(t.newDeps(ctx)), pageMenu, t.buildInfo)

	if _, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (t *TUI) newDeps(ctx context.Context) *deps {
	return &deps{
		ctx:      ctx,
		vault:    t.vault,
		readFile: os.ReadFile,
		writeFile: func(name string, data []byte) error {
			return os.WriteFile(name, data, 0o600)
		},
		copy:   clipboard.WriteAll,
		logger: t.logger,
	}
}

// newPages builds one model per page name.
func newPages(d *deps) map[string]tea.Model {
	return map[string]tea.Model{
		pageMenu:     NewMenuModel(d),
		pageRegister: NewRegisterModel(d),
		pageSecret:   NewSecretModel(d),
		pageLogin:    NewLoginModel(d),
		pageTOTP:     NewTOTPModel(d),
		pageUpload:   NewUploadModel(d),
		pageDownload: NewDownloadModel(d),
		pageQRCode:   NewQRCodeModel(d),
	}
}
