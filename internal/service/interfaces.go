package service

import (
	"context"

	"github.com/MKhiriev/go-totp-vault/models"
)

// AuthService runs the two-step login protocol:
//
//	Unauthenticated --Login--> PasswordVerified --VerifyTOTP--> Authenticated
//
// The PasswordVerified state is carried by the login ticket returned from
// Login; the server keeps no state between the two steps.
type AuthService interface {
	Register(ctx context.Context, username, password string) (Registration, error)
	Login(ctx context.Context, username, password string) (LoginResult, error)
	VerifyTOTP(ctx context.Context, username, code, loginTicket string) (models.Session, error)

	// Authenticate resolves a session token to its username.
	Authenticate(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error

	QRCode(ctx context.Context, username string) ([]byte, error)
}

// FileService stores and returns encrypted blobs on behalf of an
// authenticated user. username always comes from the session, never from the
// request body.
type FileService interface {
	Upload(ctx context.Context, username, filename string, blob []byte) error
	Download(ctx context.Context, username, filename string) (models.StoredFile, error)
}

// FileServiceWrapper defines middleware composition for FileService.
// Implementations wrap an existing FileService to add behavior such as
// validation.
type FileServiceWrapper interface {
	Wrap(FileService) FileService // returns a decorated FileService applying additional behavior
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// SessionRegistry is the subset of the session registry the services use.
type SessionRegistry interface {
	Issue(username string) (models.Session, error)
	Resolve(token string) (string, bool)
	Revoke(token string) bool
}

// Registration is the outcome of a successful Register.
type Registration struct {
	Issuer       string
	Account      string
	SecretBase32 string
	OTPAuthURI   string
	QRCodePNG    []byte
}

// LoginResult is the outcome of a successful password check: everything the
// client needs to re-derive its content key and to complete the TOTP step.
type LoginResult struct {
	KDF         models.KDFParams
	Salt        []byte
	TOTPPeriod  int
	TOTPDigits  int
	LoginTicket string
}
