// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport to the vault server.
//
// [ServerAdapter] decouples the client workflow from the protocol. The
// package ships an HTTP/JSON implementation ([NewHTTPServerAdapter]) built on
// resty. Error responses are decoded into sentinel values (errors.go) so that
// callers can use [errors.Is], e.g. [ErrConflict] for an existing username or
// [ErrUnauthorized] for a rejected password, code or session.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-totp-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the vault
// server. Implementations handle serialisation, the session header and the
// mapping of error responses to the sentinels of this package.
type ServerAdapter interface {
	// SetToken stores the session token attached to authenticated requests.
	// VerifyTOTP calls it on success; Logout clears it.
	SetToken(token string)

	// Token returns the current session token or "".
	Token() string

	// Register creates the account and returns the TOTP provisioning data.
	Register(ctx context.Context, creds models.Credentials) (models.RegisterResponse, error)

	// Login performs the password step. The response carries the KDF
	// parameters, the salt and the login ticket for VerifyTOTP.
	Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error)

	// VerifyTOTP performs the one-time code step and stores the returned
	// session token.
	VerifyTOTP(ctx context.Context, req models.VerifyTOTPRequest) (models.VerifyTOTPResponse, error)

	// Upload stores an already-encrypted blob. Requires a session.
	Upload(ctx context.Context, req models.UploadRequest) error

	// Download fetches a stored blob. Requires a session.
	Download(ctx context.Context, filename string) (models.DownloadResponse, error)

	// QRCode fetches the provisioning QR code of username as PNG.
	QRCode(ctx context.Context, username string) ([]byte, error)

	// Logout revokes the current session and clears the stored token.
	Logout(ctx context.Context) error
}
