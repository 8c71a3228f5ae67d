package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-totp-vault/internal/service"
	"github.com/MKhiriev/go-totp-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	var stored models.StoredFile
	files := &mockFileService{
		uploadFn: func(_ context.Context, username, filename string, blob []byte) error {
			assert.Equal(t, "alice", username)
			stored = models.StoredFile{Name: filename, Data: blob}
			return nil
		},
	}
	auth := &mockAuthService{authenticateFn: sessionFor("tok", "alice")}

	rr := serve(newTestRouter(auth, files), http.MethodPost, "/upload",
		jsonBody(t, models.UploadRequest{Filename: "notes.txt", Data: []byte{1, 2, 3}}),
		map[string]string{models.SessionTokenHeader: "tok"})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
	assert.Equal(t, "notes.txt", stored.Name)
	assert.Equal(t, []byte{1, 2, 3}, stored.Data)
}

func TestUpload_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		uploadErr  error
		wantStatus int
		wantKind   models.ErrorKind
	}{
		{"no token", "", nil, http.StatusUnauthorized, models.ErrorKindAuth},
		{"unknown token", "other", nil, http.StatusUnauthorized, models.ErrorKindAuth},
		{"bad blob", "tok", service.ErrValidation, http.StatusBadRequest, models.ErrorKindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := &mockFileService{
				uploadFn: func(context.Context, string, string, []byte) error { return tt.uploadErr },
			}
			auth := &mockAuthService{authenticateFn: sessionFor("tok", "alice")}

			headers := map[string]string{}
			if tt.token != "" {
				headers[models.SessionTokenHeader] = tt.token
			}

			rr := serve(newTestRouter(auth, files), http.MethodPost, "/upload",
				jsonBody(t, models.UploadRequest{Filename: "x", Data: []byte{1}}), headers)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantKind, decodeError(t, rr).Kind)
		})
	}
}

func TestDownload(t *testing.T) {
	files := &mockFileService{
		downloadFn: func(_ context.Context, username, filename string) (models.StoredFile, error) {
			if username != "alice" || filename != "notes.txt" {
				return models.StoredFile{}, service.ErrNotFound
			}
			return models.StoredFile{Name: "notes.txt", Data: []byte("blob")}, nil
		},
	}
	auth := &mockAuthService{authenticateFn: sessionFor("tok", "alice")}
	router := newTestRouter(auth, files)
	headers := map[string]string{models.SessionTokenHeader: "tok"}

	rr := serve(router, http.MethodGet, "/download?filename=notes.txt", nil, headers)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.DownloadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "notes.txt", resp.Filename)
	assert.Equal(t, []byte("blob"), resp.Data)

	rr = serve(router, http.MethodGet, "/download?filename=missing.txt", nil, headers)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(router, http.MethodGet, "/download", nil, headers)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(router, http.MethodGet, "/download?filename=notes.txt", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDownload_OtherUsersFile(t *testing.T) {
	files := &mockFileService{
		downloadFn: func(_ context.Context, username, filename string) (models.StoredFile, error) {
			if username == "bob" {
				return models.StoredFile{Name: filename, Data: []byte("bob's")}, nil
			}
			return models.StoredFile{}, service.ErrNotFound
		},
	}
	auth := &mockAuthService{authenticateFn: sessionFor("alice-token", "alice")}

	rr := serve(newTestRouter(auth, files), http.MethodGet, "/download?filename=secret.txt", nil,
		map[string]string{models.SessionTokenHeader: "alice-token"})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotContains(t, rr.Body.String(), "bob")
}
