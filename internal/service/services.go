package service

import (
	"github.com/MKhiriev/go-totp-vault/internal/config"
	"github.com/MKhiriev/go-totp-vault/internal/crypto"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/internal/store"
	"github.com/MKhiriev/go-totp-vault/internal/totp"
)

type Services struct {
	AuthService    AuthService
	FileService    FileService
	AppInfoService AppInfoService
}

func NewServices(credentialStore store.CredentialStore, sessions SessionRegistry, cfg config.App, version string, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(
		credentialStore,
		crypto.NewPasswordVerifier(cfg.PasswordIterations),
		totp.NewAuthenticator(cfg.Issuer),
		sessions,
		cfg,
		logger,
	)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(version, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    authService,
		FileService:    NewFileValidationService().Wrap(NewFileService(credentialStore, logger)),
		AppInfoService: appInfoService,
	}, nil
}
