package client

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-totp-vault/internal/logger"
)

const logoutTimeout = 5 * time.Second

// UI is the interactive front end driven by [App].
type UI interface {
	Run(ctx context.Context) error
}

// App runs a UI over a Vault and revokes the session left open when the UI
// exits.
type App struct {
	vault  *Vault
	ui     UI
	logger *logger.Logger
}

func NewApp(vault *Vault, ui UI, logger *logger.Logger) *App {
	return &App{vault: vault, ui: ui, logger: logger}
}

func (a *App) Run(ctx context.Context) error {
	runErr := a.ui.Run(ctx)

	if user := a.vault.Username(); user != "" {
		logoutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutTimeout)
		defer cancel()

		if err := a.vault.Logout(logoutCtx); err != nil {
			a.logger.Warn().Err(err).Str("user", user).Msg("logout on exit failed")
		} else {
			a.logger.Info().Str("user", user).Msg("logged out on exit")
		}
	}

	if runErr != nil {
		return fmt.Errorf("ui: %w", runErr)
	}
	return nil
}
