package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-totp-vault/internal/adapter"
	"github.com/MKhiriev/go-totp-vault/internal/client"
	"github.com/MKhiriev/go-totp-vault/internal/config"
	"github.com/MKhiriev/go-totp-vault/internal/crypto"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/internal/tui"
	"github.com/MKhiriev/go-totp-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("totp-vault-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	vault := client.NewVault(serverAdapter, crypto.NewKeyDerivationService(), crypto.NewEnvelopeCipher(), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ui := tui.New(vault, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)

	if err = client.NewApp(vault, ui, log).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
