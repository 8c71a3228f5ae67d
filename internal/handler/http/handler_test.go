package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/internal/service"
	"github.com/MKhiriev/go-totp-vault/models"
	"github.com/stretchr/testify/require"
)

// mockAuthService implements service.AuthService. Unset fields panic when
// called, so a test only sets what the route under test should reach.
type mockAuthService struct {
	registerFn     func(ctx context.Context, username, password string) (service.Registration, error)
	loginFn        func(ctx context.Context, username, password string) (service.LoginResult, error)
	verifyTOTPFn   func(ctx context.Context, username, code, loginTicket string) (models.Session, error)
	authenticateFn func(ctx context.Context, token string) (string, error)
	logoutFn       func(ctx context.Context, token string) error
	qrCodeFn       func(ctx context.Context, username string) ([]byte, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, password string) (service.Registration, error) {
	return m.registerFn(ctx, username, password)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (service.LoginResult, error) {
	return m.loginFn(ctx, username, password)
}

func (m *mockAuthService) VerifyTOTP(ctx context.Context, username, code, loginTicket string) (models.Session, error) {
	return m.verifyTOTPFn(ctx, username, code, loginTicket)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (string, error) {
	return m.authenticateFn(ctx, token)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	return m.logoutFn(ctx, token)
}

func (m *mockAuthService) QRCode(ctx context.Context, username string) ([]byte, error) {
	return m.qrCodeFn(ctx, username)
}

type mockFileService struct {
	uploadFn   func(ctx context.Context, username, filename string, blob []byte) error
	downloadFn func(ctx context.Context, username, filename string) (models.StoredFile, error)
}

func (m *mockFileService) Upload(ctx context.Context, username, filename string, blob []byte) error {
	return m.uploadFn(ctx, username, filename, blob)
}

func (m *mockFileService) Download(ctx context.Context, username, filename string) (models.StoredFile, error) {
	return m.downloadFn(ctx, username, filename)
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

// sessionFor returns an Authenticate func accepting exactly token.
func sessionFor(token, username string) func(context.Context, string) (string, error) {
	return func(_ context.Context, got string) (string, error) {
		if got != token {
			return "", service.ErrAuth
		}
		return username, nil
	}
}

func newTestRouter(auth *mockAuthService, files *mockFileService) http.Handler {
	if auth == nil {
		auth = &mockAuthService{}
	}
	if files == nil {
		files = &mockFileService{}
	}

	h := NewHandler(&service.Services{
		AuthService:    auth,
		FileService:    files,
		AppInfoService: &mockAppInfoService{version: "test"},
	}, logger.Nop())

	return h.Init()
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func serve(router http.Handler, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
