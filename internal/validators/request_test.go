// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-totp-vault/internal/crypto"
	"github.com/MKhiriev/go-totp-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validBlob(t *testing.T) []byte {
	t.Helper()
	key := bytes.Repeat([]byte{0x01}, crypto.KeySize)
	framed, err := crypto.Seal(crypto.NewEnvelopeCipher(), key, []byte("hello world"), []byte("alice"))
	require.NoError(t, err)
	return framed
}

// ---------------------------------------------------------------------------
// Validate dispatch
// ---------------------------------------------------------------------------

func TestNewRequestValidator(t *testing.T) {
	v := NewRequestValidator()
	require.NotNil(t, v)
	_, ok := v.(*RequestValidator)
	assert.True(t, ok)
}

func TestRequestValidator_UnsupportedType(t *testing.T) {
	v := NewRequestValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), models.OKResponse{}), ErrUnsupportedType)
}

func TestRequestValidator_UnknownField(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	creds := models.Credentials{Username: "alice", Password: "Secret123"}
	assert.ErrorIs(t, v.Validate(ctx, creds, "nope"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, models.VerifyTOTPRequest{}, "nope"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, models.UploadRequest{}, "nope"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

func TestRequestValidator_Credentials(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		creds   models.Credentials
		wantErr error
	}{
		{"valid", models.Credentials{Username: "alice", Password: "Secret123"}, nil},
		{"empty username", models.Credentials{Username: "", Password: "x"}, ErrInvalidUsername},
		{"username with space", models.Credentials{Username: "al ice", Password: "x"}, ErrInvalidUsername},
		{"username with colon", models.Credentials{Username: "al:ice", Password: "x"}, ErrInvalidUsername},
		{"username too long", models.Credentials{Username: strings.Repeat("a", MaxUsernameLength+1), Password: "x"}, ErrInvalidUsername},
		{"username invalid utf8", models.Credentials{Username: "\xff", Password: "x"}, ErrInvalidUsername},
		{"unicode username", models.Credentials{Username: "joão", Password: "x"}, nil},
		{"empty password", models.Credentials{Username: "alice"}, ErrEmptyPassword},
		{"password too long", models.Credentials{Username: "alice", Password: strings.Repeat("p", MaxPasswordLength+1)}, ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.creds)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRequestValidator_CredentialsPointerAndScope(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	creds := &models.Credentials{Username: "alice"}
	assert.ErrorIs(t, v.Validate(ctx, creds), ErrEmptyPassword)
	assert.NoError(t, v.Validate(ctx, creds, FieldUsername))
}

// ---------------------------------------------------------------------------
// VerifyTOTPRequest
// ---------------------------------------------------------------------------

func TestRequestValidator_VerifyTOTPRequest(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	valid := models.VerifyTOTPRequest{Username: "alice", Code: "123456", LoginTicket: "ticket"}
	assert.NoError(t, v.Validate(ctx, valid))
	assert.NoError(t, v.Validate(ctx, &valid))

	noCode := valid
	noCode.Code = "  "
	assert.ErrorIs(t, v.Validate(ctx, noCode), ErrEmptyCode)

	noTicket := valid
	noTicket.LoginTicket = ""
	assert.ErrorIs(t, v.Validate(ctx, noTicket), ErrEmptyLoginTicket)
	assert.NoError(t, v.Validate(ctx, noTicket, FieldUsername, FieldCode))

	badUser := valid
	badUser.Username = ""
	assert.ErrorIs(t, v.Validate(ctx, badUser), ErrInvalidUsername)
}

// ---------------------------------------------------------------------------
// UploadRequest
// ---------------------------------------------------------------------------

func TestRequestValidator_UploadRequest(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()
	blob := validBlob(t)

	assert.NoError(t, v.Validate(ctx, models.UploadRequest{Filename: "notes.txt", Data: blob}))

	tests := []struct {
		name    string
		req     models.UploadRequest
		wantErr error
	}{
		{"empty filename", models.UploadRequest{Filename: "", Data: blob}, ErrInvalidFilename},
		{"dot", models.UploadRequest{Filename: ".", Data: blob}, ErrInvalidFilename},
		{"dot dot", models.UploadRequest{Filename: "..", Data: blob}, ErrInvalidFilename},
		{"slash", models.UploadRequest{Filename: "a/b", Data: blob}, ErrInvalidFilename},
		{"backslash", models.UploadRequest{Filename: `a\b`, Data: blob}, ErrInvalidFilename},
		{"nul", models.UploadRequest{Filename: "a\x00b", Data: blob}, ErrInvalidFilename},
		{"too long", models.UploadRequest{Filename: strings.Repeat("f", MaxFilenameLength+1), Data: blob}, ErrInvalidFilename},
		{"empty data", models.UploadRequest{Filename: "f"}, ErrInvalidBlob},
		{"wrong version", models.UploadRequest{Filename: "f", Data: append([]byte{2}, blob[1:]...)}, ErrInvalidBlob},
		{"truncated", models.UploadRequest{Filename: "f", Data: blob[:crypto.Overhead-1]}, ErrInvalidBlob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, v.Validate(ctx, tt.req), tt.wantErr)
		})
	}
}

func TestRequestValidator_UploadWrongVersionKeepsCause(t *testing.T) {
	v := NewRequestValidator()
	err := v.Validate(context.Background(), &models.UploadRequest{Filename: "f", Data: []byte{9, 9, 9}})
	assert.ErrorIs(t, err, ErrInvalidBlob)
	assert.ErrorIs(t, err, crypto.ErrFormat)
}
