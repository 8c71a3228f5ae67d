// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the response messages shared by the vault server
// handlers.
//
// Error messages are fixed per error kind and never carry details of the
// underlying failure, so the same message is sent for an unknown username and
// for a wrong password.
package app

const (
	// MsgInvalidRequest is sent when the body, a query parameter or a field
	// fails validation, or an uploaded blob is malformed.
	MsgInvalidRequest = "invalid request"

	// MsgAuthFailed is sent for any rejected password, ticket, code or
	// session token.
	MsgAuthFailed = "authentication failed"

	// MsgUsernameTaken is sent when registering an existing username.
	MsgUsernameTaken = "username already exists"

	// MsgNotFound is sent for unknown users, files and routes.
	MsgNotFound = "not found"

	// MsgStorageUnavailable is sent when the credential store fails.
	MsgStorageUnavailable = "storage unavailable"

	// MsgIntegrityFailed is sent when a blob fails authentication.
	MsgIntegrityFailed = "integrity check failed"

	// MsgInternalServerError is the only message ever sent for unexpected
	// errors.
	MsgInternalServerError = "internal server error"
)

const (
	MsgRegistered       = "user registered, scan the QR code with your authenticator app"
	MsgPasswordVerified = "password verified, submit the one-time code"
	MsgAuthenticated    = "authenticated"
)
