// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrInvalidKDFParams is returned by Derive when the salt is empty, a cost
	// value is non-positive, the scrypt cost factor is not a power of two or
	// the algorithm is unknown.
	ErrInvalidKDFParams = errors.New("invalid kdf parameters")

	// ErrInvalidKey is returned by Encrypt when the key has a length AES does
	// not accept. Decrypt reports such keys as ErrIntegrity.
	ErrInvalidKey = errors.New("invalid encryption key")

	// ErrFormat is returned when a blob is empty or carries an unsupported
	// version byte.
	ErrFormat = errors.New("unsupported encrypted blob format")

	// ErrIntegrity is the single signal for every authentication failure on
	// decrypt: wrong key, tampered bytes, wrong associated data or truncation.
	ErrIntegrity = errors.New("encrypted blob failed integrity check")
)
