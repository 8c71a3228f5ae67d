package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-totp-vault/internal/config"
	"github.com/MKhiriev/go-totp-vault/internal/handler"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/internal/server"
	"github.com/MKhiriev/go-totp-vault/internal/service"
	"github.com/MKhiriev/go-totp-vault/internal/session"
	"github.com/MKhiriev/go-totp-vault/internal/store"
	"github.com/MKhiriev/go-totp-vault/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("totp-vault-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("kdf", cfg.App.KDFAlgorithm).
		Dur("session_ttl", cfg.App.SessionTTL).
		Bool("sql_store", cfg.Storage.DB.DSN != "").
		Msg("received configs")

	credentialStore, err := store.NewCredentialStore(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating credential store")
	}
	defer func() {
		if err := credentialStore.Close(); err != nil {
			log.Err(err).Msg("error closing credential store")
		}
	}()

	sessions := session.NewRegistry(cfg.App.SessionTTL)

	services, err := service.NewServices(credentialStore, sessions, cfg.App, buildVersion, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bgWorkers := workers.NewWorkers(
		workers.NewSessionSweeper(sessions, cfg.Workers.SessionSweepInterval, log),
	)

	srv, err := server.NewServer(handlers, bgWorkers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
