package tui

import (
	"github.com/MKhiriev/go-totp-vault/internal/client"
	"github.com/MKhiriev/go-totp-vault/models"
)

// Page names understood by [RootModel].
const (
	pageMenu     = "menu"
	pageRegister = "register"
	pageSecret   = "secret"
	pageLogin    = "login"
	pageTOTP     = "totp"
	pageUpload   = "upload"
	pageDownload = "download"
	pageQRCode   = "qrcode"
)

// NavigateTo switches the active page. A non-nil Payload is delivered to the
// new page as its next message.
type NavigateTo struct {
	Page    string
	Payload any
}

// StatusNotice is shown on the menu after an action completed.
type StatusNotice struct {
	Text string
}

// RegisterResult is produced by the registration command. QRErr is set when
// the account was created but its QR code could not be saved.
type RegisterResult struct {
	Username     string
	Registration client.Registration
	QRPath       string
	QRErr        error
	Copied       bool
	Err          error
}

// LoginResult is produced by the password step.
type LoginResult struct {
	Username string
	Response models.LoginResponse
	Err      error
}

// TOTPPrompt opens the code page for a pending login.
type TOTPPrompt struct {
	Username string
	Digits   int
	Period   int
}

// VerifyResult is produced by the code step.
type VerifyResult struct {
	Username string
	Response models.VerifyTOTPResponse
	Err      error
}

// FileResult is produced by upload and download. Path is the local file read
// or written.
type FileResult struct {
	Name string
	Path string
	Size int
	Err  error
}

// QRCodeResult is produced by the QR code page.
type QRCodeResult struct {
	Username string
	Path     string
	Err      error
}

// LogoutResult is produced by the menu's logout action.
type LogoutResult struct {
	Err error
}

type quitRequested struct{}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
