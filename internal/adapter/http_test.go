// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-totp-vault/internal/config"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"localhost:8080", "http://localhost:8080", false},
		{"https://vault.example.com/", "https://vault.example.com", false},
		{"  http://127.0.0.1:9000  ", "http://127.0.0.1:9000", false},
		{"", "", true},
		{"http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/register", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, models.Credentials{Username: "alice", Password: "Secret123"}, creds)

		writeJSON(t, w, http.StatusOK, models.RegisterResponse{Account: "alice", SecretBase32: "SECRET"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), models.Credentials{Username: "alice", Password: "Secret123"})

	require.NoError(t, err)
	assert.Equal(t, "SECRET", got.SecretBase32)
	assert.Empty(t, a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Kind: models.ErrorKindConflict, Message: "username already exists"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Register(context.Background(), models.Credentials{Username: "alice", Password: "x"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "username already exists")
}

func TestLoginAndVerifyTOTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			writeJSON(t, w, http.StatusOK, models.LoginResponse{
				OK: true, KDF: "scrypt", N: 16384, R: 8, P: 1, DKLen: 32,
				Salt: []byte("salt"), LoginTicket: "ticket",
			})
		case "/verify-totp":
			var req models.VerifyTOTPRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ticket", req.LoginTicket)
			writeJSON(t, w, http.StatusOK, models.VerifyTOTPResponse{OK: true, SessionToken: "tok"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	login, err := a.Login(ctx, models.Credentials{Username: "alice", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.KDFParams{Algorithm: models.KDFScrypt, CostFactor: 16384, BlockSize: 8, Parallelism: 1, KeyLength: 32}, login.Params())
	assert.Equal(t, []byte("salt"), login.Salt)

	verified, err := a.VerifyTOTP(ctx, models.VerifyTOTPRequest{Username: "alice", Code: "123456", LoginTicket: login.LoginTicket})
	require.NoError(t, err)
	assert.True(t, verified.OK)
	assert.Equal(t, "tok", a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Kind: models.ErrorKindAuth, Message: "authentication failed"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Login(context.Background(), models.Credentials{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticatedCalls_RequireSession(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1")
	ctx := context.Background()

	assert.ErrorIs(t, a.Upload(ctx, models.UploadRequest{Filename: "x"}), ErrNoSession)
	_, err := a.Download(ctx, "x")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, a.Logout(ctx), ErrNoSession)
}

func TestUploadDownloadLogout(t *testing.T) {
	stored := map[string][]byte{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(models.SessionTokenHeader) != "tok" {
			writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Kind: models.ErrorKindAuth})
			return
		}

		switch r.URL.Path {
		case "/upload":
			var req models.UploadRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			stored[req.Filename] = req.Data
			writeJSON(t, w, http.StatusOK, models.OKResponse{OK: true})
		case "/download":
			name := r.URL.Query().Get("filename")
			data, ok := stored[name]
			if !ok {
				writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Kind: models.ErrorKindNotFound, Message: "not found"})
				return
			}
			writeJSON(t, w, http.StatusOK, models.DownloadResponse{Filename: name, Data: data})
		case "/logout":
			writeJSON(t, w, http.StatusOK, models.OKResponse{OK: true})
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(" tok ")
	ctx := context.Background()

	require.NoError(t, a.Upload(ctx, models.UploadRequest{Filename: "notes.txt", Data: []byte{1, 2, 3}}))

	got, err := a.Download(ctx, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got.Data)

	_, err = a.Download(ctx, "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, a.Logout(ctx))
	assert.Empty(t, a.Token())
}

func TestQRCode(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("user") != "alice" {
			writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Kind: models.ErrorKindNotFound})
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	got, err := a.QRCode(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, png, got)

	_, err = a.QRCode(context.Background(), "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMapHTTPError_FallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.Error(w, "plain text", http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	_, err := a.Login(context.Background(), models.Credentials{})
	assert.ErrorIs(t, err, ErrInternalServerError)

	_, err = a.Register(context.Background(), models.Credentials{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}
