// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-totp-vault/internal/adapter"
	"github.com/MKhiriev/go-totp-vault/internal/client"
	"github.com/MKhiriev/go-totp-vault/internal/crypto"
)

// humanizeError turns client and transport errors into a line for the user.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, adapter.ErrUnauthorized):
		return "authentication failed"
	case errors.Is(err, adapter.ErrConflict):
		return "username already exists"
	case errors.Is(err, adapter.ErrNotFound):
		return "not found"
	case errors.Is(err, adapter.ErrBadRequest):
		return "the server rejected the request as invalid"
	case errors.Is(err, crypto.ErrIntegrity), errors.Is(err, adapter.ErrIntegrity):
		return "integrity check failed: the file was altered or is not yours"
	case errors.Is(err, client.ErrNotLoggedIn), errors.Is(err, adapter.ErrNoSession):
		return "log in first"
	case errors.Is(err, client.ErrNoPendingLogin):
		return "log in with username and password first"
	}

	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "network is down or the server is unavailable"
	}

	return err.Error()
}
