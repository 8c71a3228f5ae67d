// Package totp issues shared secrets and verifies RFC 6238 time-based
// one-time codes (HMAC-SHA-1, 6 digits, 30-second steps). It also renders the
// otpauth URI of a secret as a PNG QR code for authenticator apps.
package totp

import "time"

//go:generate mockgen -source=interfaces.go -destination=../mock/totp_mock.go -package=mock

// Authenticator generates TOTP secrets and checks codes against them.
// Implementations are read-only after construction and safe for concurrent
// use; verifying a code has no side effects.
type Authenticator interface {
	// NewSecret generates a fresh 160-bit secret for account.
	NewSecret(account string) (Secret, error)

	// URI returns the otpauth:// provisioning URI for an existing secret.
	URI(account, secret string) string

	// CurrentCode returns the code valid for the time step containing t.
	CurrentCode(secret string, t time.Time) (string, error)

	// Verify reports whether code is valid at t within the skew window.
	Verify(secret, code string, t time.Time) bool

	// QRCode renders the provisioning URI of secret as a PNG image.
	QRCode(account, secret string) ([]byte, error)

	// Issuer, Period and Digits describe the provisioning parameters.
	Issuer() string
	Period() int
	Digits() int
}

// Secret is a newly issued shared secret together with its provisioning URI.
type Secret struct {
	// Base32 is the unpadded Base32 encoding of the raw secret.
	Base32 string

	// URI is the otpauth:// URI encoding issuer, account, secret, algorithm,
	// digits and period.
	URI string
}
