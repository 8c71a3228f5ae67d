package client

import "errors"

var (
	// ErrNotLoggedIn is returned by file operations before a completed login.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNoPendingLogin is returned by VerifyTOTP when no password step
	// preceded it.
	ErrNoPendingLogin = errors.New("log in with username and password first")

	// ErrInvalidQRCode is returned when the registration response carries a
	// QR code that is not a PNG data URI.
	ErrInvalidQRCode = errors.New("invalid qr code in registration response")
)
