// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	verifierScheme = "pbkdf2"
	verifierHash   = "sha256"
	verifierParts  = 5
)

// passwordVerifier implements [PasswordVerifier] with PBKDF2-HMAC-SHA-256.
// The encoded form is
//
//	pbkdf2$sha256$<iterations>$<saltB64>$<dkB64>
//
// so verification always uses the iteration count the verifier was created
// with, even after the default changes.
type passwordVerifier struct {
	iterations int
	rand       io.Reader
}

// NewPasswordVerifier constructs a [PasswordVerifier]. A non-positive
// iterations value selects [DefaultPBKDF2Iterations].
func NewPasswordVerifier(iterations int) PasswordVerifier {
	if iterations <= 0 {
		iterations = DefaultPBKDF2Iterations
	}
	return &passwordVerifier{
		iterations: iterations,
		rand:       rand.Reader,
	}
}

// Hash implements [PasswordVerifier].
func (v *passwordVerifier) Hash(password string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(v.rand, salt); err != nil {
		return "", fmt.Errorf("generate verifier salt: %w", err)
	}

	dk := pbkdf2.Key([]byte(password), salt, v.iterations, KeySize, sha256.New)

	return strings.Join([]string{
		verifierScheme,
		verifierHash,
		strconv.Itoa(v.iterations),
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(dk),
	}, "$"), nil
}

// Verify implements [PasswordVerifier].
func (v *passwordVerifier) Verify(encoded, password string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != verifierParts || parts[0] != verifierScheme || parts[1] != verifierHash {
		return false
	}

	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(salt) == 0 {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil || len(expected) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

// NewSalt returns SaltSize bytes from the OS CSPRNG.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}
