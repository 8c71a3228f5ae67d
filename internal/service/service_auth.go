package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-totp-vault/internal/config"
	"github.com/MKhiriev/go-totp-vault/internal/crypto"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/internal/store"
	"github.com/MKhiriev/go-totp-vault/internal/totp"
	"github.com/MKhiriev/go-totp-vault/internal/validators"
	"github.com/MKhiriev/go-totp-vault/models"
)

// decoyPassword is hashed once at construction; logins for unknown users are
// checked against its verifier.
const decoyPassword = "decoy-password"

// authService is the concrete implementation of AuthService.
// It keeps no per-login state: step one hands out a signed ticket, step two
// checks it together with the one-time code and mints a session.
type authService struct {
	// credentialStore holds user records.
	credentialStore store.CredentialStore

	// verifier hashes and checks passwords.
	verifier crypto.PasswordVerifier

	// authenticator issues TOTP secrets and verifies codes.
	authenticator totp.Authenticator

	// sessions maps session tokens to usernames.
	sessions SessionRegistry

	// tickets signs the PasswordVerified state handed to the client.
	tickets *loginTicketIssuer

	// validator checks request shapes before any work is done.
	validator validators.Validator

	// kdfParams is stored with every new user and echoed at login.
	kdfParams models.KDFParams

	// newSalt draws the per-user content-KDF salt.
	newSalt func() ([]byte, error)

	// now is the clock used for tickets, codes and timestamps.
	now func() time.Time

	// decoyVerifier backs the password check for unknown users.
	decoyVerifier string

	logger *logger.Logger
}

// NewAuthService constructs an AuthService from its collaborators and the
// protocol settings in cfg.
//
// Returns an error if cfg names an unknown KDF algorithm, no login ticket
// key could be generated or the decoy verifier could not be hashed.
func NewAuthService(
	credentialStore store.CredentialStore,
	verifier crypto.PasswordVerifier,
	authenticator totp.Authenticator,
	sessions SessionRegistry,
	cfg config.App,
	logger *logger.Logger,
) (AuthService, error) {
	algorithm, ok := models.ParseKDFAlgorithm(cfg.KDFAlgorithm)
	if !ok {
		return nil, fmt.Errorf("%w: unknown algorithm %q", crypto.ErrInvalidKDFParams, cfg.KDFAlgorithm)
	}
	params, err := crypto.DefaultParams(algorithm)
	if err != nil {
		return nil, err
	}

	tickets, err := newLoginTicketIssuer(cfg.TokenSignKey, cfg.LoginTicketTTL)
	if err != nil {
		return nil, err
	}

	decoy, err := verifier.Hash(decoyPassword)
	if err != nil {
		return nil, fmt.Errorf("error creating decoy verifier: %w", err)
	}

	return &authService{
		credentialStore: credentialStore,
		verifier:        verifier,
		authenticator:   authenticator,
		sessions:        sessions,
		tickets:         tickets,
		validator:       validators.NewRequestValidator(),
		kdfParams:       params,
		newSalt:         crypto.NewSalt,
		now:             time.Now,
		decoyVerifier:   decoy,
		logger:          logger,
	}, nil
}

// Register creates a new account.
//
// It validates the credentials, draws the content-KDF salt, hashes the
// password into a verifier, generates the TOTP secret and renders its QR
// code, and then inserts the record atomically.
//
// Returns:
//   - ErrValidation if the username or password is malformed.
//   - ErrConflict if the username is taken, including when a concurrent
//     registration wins the race.
//   - ErrStorage if the store fails.
func (a *authService) Register(ctx context.Context, username, password string) (Registration, error) {
	log := logger.FromContext(ctx).With().Str("user", username).Logger()

	if err := a.validator.Validate(ctx, models.Credentials{Username: username, Password: password}); err != nil {
		log.Debug().Err(err).Msg("invalid registration data provided")
		return Registration{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	exists, err := a.credentialStore.Exists(ctx, username)
	if err != nil {
		log.Err(err).Msg("error checking username")
		return Registration{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if exists {
		return Registration{}, ErrConflict
	}

	salt, err := a.newSalt()
	if err != nil {
		return Registration{}, fmt.Errorf("error generating salt: %w", err)
	}

	passwordVerifier, err := a.verifier.Hash(password)
	if err != nil {
		return Registration{}, fmt.Errorf("error hashing password: %w", err)
	}

	secret, err := a.authenticator.NewSecret(username)
	if err != nil {
		return Registration{}, fmt.Errorf("error generating totp secret: %w", err)
	}

	qrCode, err := a.authenticator.QRCode(username, secret.Base32)
	if err != nil {
		return Registration{}, fmt.Errorf("error rendering qr code: %w", err)
	}

	record := models.UserRecord{
		Username:         username,
		PasswordVerifier: passwordVerifier,
		Salt:             salt,
		TOTPSecret:       secret.Base32,
		KDF:              a.kdfParams,
		CreatedAt:        a.now().UTC(),
	}

	if err := a.credentialStore.Create(ctx, record); err != nil {
		if errors.Is(err, store.ErrUserAlreadyExists) {
			return Registration{}, ErrConflict
		}
		log.Err(err).Msg("user creation ended with error")
		return Registration{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	log.Info().Str("kdf", string(a.kdfParams.Algorithm)).Msg("user registered")

	return Registration{
		Issuer:       a.authenticator.Issuer(),
		Account:      username,
		SecretBase32: secret.Base32,
		OTPAuthURI:   a.authenticator.URI(username, secret.Base32),
		QRCodePNG:    qrCode,
	}, nil
}

// Login checks the password and returns the KDF parameters, the salt and a
// login ticket. Unknown users and wrong passwords both yield ErrAuth, and
// both run one verifier computation.
func (a *authService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	log := logger.FromContext(ctx).With().Str("user", username).Logger()

	if err := a.validator.Validate(ctx, models.Credentials{Username: username, Password: password}); err != nil {
		log.Debug().Err(err).Msg("invalid login data provided")
		return LoginResult{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	record, err := a.credentialStore.Get(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			a.verifier.Verify(a.decoyVerifier, password)
			log.Info().Msg("login failed")
			return LoginResult{}, ErrAuth
		}
		log.Err(err).Msg("user search by username failed")
		return LoginResult{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if !a.verifier.Verify(record.PasswordVerifier, password) {
		log.Info().Msg("login failed")
		return LoginResult{}, ErrAuth
	}

	ticket, err := a.tickets.Issue(username, a.now())
	if err != nil {
		return LoginResult{}, fmt.Errorf("error issuing login ticket: %w", err)
	}

	return LoginResult{
		KDF:         record.KDF,
		Salt:        append([]byte(nil), record.Salt...),
		TOTPPeriod:  a.authenticator.Period(),
		TOTPDigits:  a.authenticator.Digits(),
		LoginTicket: ticket,
	}, nil
}

// VerifyTOTP completes the login. The ticket must be valid, unexpired and
// issued for username, and code must verify against the user's secret.
// Every failure yields ErrAuth.
func (a *authService) VerifyTOTP(ctx context.Context, username, code, loginTicket string) (models.Session, error) {
	log := logger.FromContext(ctx).With().Str("user", username).Logger()

	req := models.VerifyTOTPRequest{Username: username, Code: code, LoginTicket: loginTicket}
	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("invalid totp request")
		return models.Session{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	now := a.now()

	if err := a.tickets.Redeem(loginTicket, username, now); err != nil {
		log.Info().Err(err).Msg("login ticket rejected")
		return models.Session{}, ErrAuth
	}

	record, err := a.credentialStore.Get(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Session{}, ErrAuth
		}
		log.Err(err).Msg("user search by username failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if !a.authenticator.Verify(record.TOTPSecret, code, now) {
		log.Info().Msg("totp code rejected")
		return models.Session{}, ErrAuth
	}

	session, err := a.sessions.Issue(username)
	if err != nil {
		return models.Session{}, fmt.Errorf("error issuing session: %w", err)
	}

	log.Info().Msg("session issued")
	return session, nil
}

// Authenticate returns the username bound to token, or ErrAuth when the
// token is missing, unknown or expired.
func (a *authService) Authenticate(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrAuth
	}

	username, ok := a.sessions.Resolve(token)
	if !ok {
		return "", ErrAuth
	}
	return username, nil
}

// Logout revokes token. Revoking a token that is not live yields ErrAuth.
func (a *authService) Logout(_ context.Context, token string) error {
	if token == "" || !a.sessions.Revoke(token) {
		return ErrAuth
	}
	return nil
}

// QRCode renders the provisioning QR code of an existing user.
func (a *authService) QRCode(ctx context.Context, username string) ([]byte, error) {
	if err := validators.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	record, err := a.credentialStore.Get(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		logger.FromContext(ctx).Err(err).Str("user", username).Msg("user search by username failed")
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	png, err := a.authenticator.QRCode(username, record.TOTPSecret)
	if err != nil {
		return nil, fmt.Errorf("error rendering qr code: %w", err)
	}
	return png, nil
}
