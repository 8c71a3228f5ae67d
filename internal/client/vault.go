package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-totp-vault/internal/adapter"
	"github.com/MKhiriev/go-totp-vault/internal/crypto"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/models"
)

const pngDataURIPrefix = "data:image/png;base64,"

// pendingLogin is the state between a successful password step and the
// one-time code step.
type pendingLogin struct {
	username string
	ticket   string
	key      []byte
}

// Vault holds the client side of a session: the username and the derived
// content key. It is safe for concurrent use.
type Vault struct {
	server adapter.ServerAdapter
	kdf    crypto.KeyDerivationService
	cipher crypto.EnvelopeCipher

	mu       sync.Mutex
	pending  *pendingLogin
	username string
	key      []byte

	logger *logger.Logger
}

func NewVault(server adapter.ServerAdapter, kdf crypto.KeyDerivationService, cipher crypto.EnvelopeCipher, logger *logger.Logger) *Vault {
	return &Vault{
		server: server,
		kdf:    kdf,
		cipher: cipher,
		logger: logger,
	}
}

// Registration is the provisioning data shown to the user after register.
type Registration struct {
	Issuer       string
	Account      string
	SecretBase32 string
	OTPAuthURI   string
	QRCodePNG    []byte
}

// Register creates the account on the server and decodes its QR code.
func (v *Vault) Register(ctx context.Context, username, password string) (Registration, error) {
	resp, err := v.server.Register(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return Registration{}, err
	}

	png, err := decodePNGDataURI(resp.QRCodeDataURI)
	if err != nil {
		return Registration{}, err
	}

	v.logger.Info().Str("user", username).Msg("registered")

	return Registration{
		Issuer:       resp.Issuer,
		Account:      resp.Account,
		SecretBase32: resp.SecretBase32,
		OTPAuthURI:   resp.OTPAuthURI,
		QRCodePNG:    png,
	}, nil
}

// QRCode fetches the provisioning QR code of username again, e.g. to set up
// another authenticator device.
func (v *Vault) QRCode(ctx context.Context, username string) ([]byte, error) {
	return v.server.QRCode(ctx, username)
}

// Login performs the password step and derives the content key from the
// returned KDF parameters and salt. The key only becomes usable after
// VerifyTOTP succeeds.
func (v *Vault) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	resp, err := v.server.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return models.LoginResponse{}, err
	}

	key, err := v.kdf.Derive(password, resp.Salt, resp.Params())
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("derive content key: %w", err)
	}

	v.mu.Lock()
	v.clearPendingLocked()
	v.pending = &pendingLogin{username: username, ticket: resp.LoginTicket, key: key}
	v.mu.Unlock()

	v.logger.Debug().Str("user", username).Str("kdf", resp.KDF).Msg("content key derived")

	return resp, nil
}

// VerifyTOTP completes a pending login with code. A rejected code keeps the
// pending login so the user can retry until the ticket expires.
func (v *Vault) VerifyTOTP(ctx context.Context, code string) (models.VerifyTOTPResponse, error) {
	v.mu.Lock()
	pending := v.pending
	v.mu.Unlock()

	if pending == nil {
		return models.VerifyTOTPResponse{}, ErrNoPendingLogin
	}

	resp, err := v.server.VerifyTOTP(ctx, models.VerifyTOTPRequest{
		Username:    pending.username,
		Code:        strings.TrimSpace(code),
		LoginTicket: pending.ticket,
	})
	if err != nil {
		return models.VerifyTOTPResponse{}, err
	}

	v.mu.Lock()
	if v.pending != pending {
		v.mu.Unlock()
		return models.VerifyTOTPResponse{}, ErrNoPendingLogin
	}
	v.clearSessionLocked()
	v.username = pending.username
	v.key = pending.key
	v.pending = nil
	v.mu.Unlock()

	v.logger.Info().Str("user", pending.username).Msg("logged in")

	return resp, nil
}

// Upload encrypts plaintext under the content key, bound to the username,
// and stores the blob as filename.
func (v *Vault) Upload(ctx context.Context, filename string, plaintext []byte) error {
	username, key, err := v.session()
	if err != nil {
		return err
	}
	defer clear(key)

	blob, err := crypto.Seal(v.cipher, key, plaintext, []byte(username))
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", filename, err)
	}

	return v.server.Upload(ctx, models.UploadRequest{Filename: filename, Data: blob})
}

// Download fetches filename and decrypts it. A blob that was altered,
// encrypted under another key or stored for another user fails with
// [crypto.ErrIntegrity] and yields no plaintext.
func (v *Vault) Download(ctx context.Context, filename string) ([]byte, error) {
	username, key, err := v.session()
	if err != nil {
		return nil, err
	}
	defer clear(key)

	resp, err := v.server.Download(ctx, filename)
	if err != nil {
		return nil, err
	}

	plaintext, err := crypto.Open(v.cipher, key, resp.Data, []byte(username))
	if err != nil {
		v.logger.Warn().Err(err).Str("filename", filename).Msg("downloaded blob rejected")
		return nil, err
	}

	return plaintext, nil
}

// Logout revokes the session on the server and forgets the content key.
func (v *Vault) Logout(ctx context.Context) error {
	err := v.server.Logout(ctx)

	v.mu.Lock()
	v.clearSessionLocked()
	v.clearPendingLocked()
	v.mu.Unlock()

	return err
}

// Username returns the logged-in user or "".
func (v *Vault) Username() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.username
}

// session returns the logged-in user and a copy of the content key, so a
// concurrent Logout wiping v.key cannot touch a key in use. Callers clear the
// copy when done.
func (v *Vault) session() (string, []byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.username == "" || v.key == nil || v.server.Token() == "" {
		return "", nil, ErrNotLoggedIn
	}
	return v.username, bytes.Clone(v.key), nil
}

func (v *Vault) clearSessionLocked() {
	clear(v.key)
	v.key = nil
	v.username = ""
}

func (v *Vault) clearPendingLocked() {
	if v.pending != nil {
		clear(v.pending.key)
		v.pending = nil
	}
}

func decodePNGDataURI(uri string) ([]byte, error) {
	encoded, ok := strings.CutPrefix(uri, pngDataURIPrefix)
	if !ok {
		return nil, ErrInvalidQRCode
	}

	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQRCode, err)
	}
	return png, nil
}
