package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-totp-vault/internal/config"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/internal/utils"
	"github.com/MKhiriev/go-totp-vault/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// The base URL comes from adapterCfg.HTTPAddress; a missing scheme defaults
// to http.
//
// Returns an error if the address is empty or cannot be parsed.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter] via POST /register.
func (h *httpServerAdapter) Register(ctx context.Context, creds models.Credentials) (models.RegisterResponse, error) {
	var result models.RegisterResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(creds).
		SetResult(&result).
		Post("/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	return result, nil
}

// Login implements [ServerAdapter] via POST /login.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	var result models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(creds).
		SetResult(&result).
		Post("/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	return result, nil
}

// VerifyTOTP implements [ServerAdapter] via POST /verify-totp. On success the
// session token is stored with SetToken.
func (h *httpServerAdapter) VerifyTOTP(ctx context.Context, req models.VerifyTOTPRequest) (models.VerifyTOTPResponse, error) {
	var result models.VerifyTOTPResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/verify-totp")
	if err != nil {
		return models.VerifyTOTPResponse{}, fmt.Errorf("verify totp request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VerifyTOTPResponse{}, err
	}
	if result.SessionToken == "" {
		return models.VerifyTOTPResponse{}, fmt.Errorf("%w: no session token in response", ErrUnauthorized)
	}

	h.SetToken(result.SessionToken)
	return result, nil
}

// Upload implements [ServerAdapter] via POST /upload.
func (h *httpServerAdapter) Upload(ctx context.Context, req models.UploadRequest) error {
	r, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := r.SetBody(req).Post("/upload")
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}

	return mapHTTPError(resp)
}

// Download implements [ServerAdapter] via GET /download?filename=.
func (h *httpServerAdapter) Download(ctx context.Context, filename string) (models.DownloadResponse, error) {
	r, err := h.authedRequest(ctx)
	if err != nil {
		return models.DownloadResponse{}, err
	}

	var result models.DownloadResponse
	resp, err := r.
		SetQueryParam("filename", filename).
		SetResult(&result).
		Get("/download")
	if err != nil {
		return models.DownloadResponse{}, fmt.Errorf("download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DownloadResponse{}, err
	}

	return result, nil
}

// QRCode implements [ServerAdapter] via GET /qrcode?user=.
func (h *httpServerAdapter) QRCode(ctx context.Context, username string) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "image/png").
		SetQueryParam("user", username).
		Get("/qrcode")
	if err != nil {
		return nil, fmt.Errorf("qrcode request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// Logout implements [ServerAdapter] via POST /logout. The local token is
// cleared even when the server rejects it.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	r, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	defer h.SetToken("")

	resp, err := r.Post("/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoSession
	}

	return h.client.R().
		SetContext(ctx).
		SetHeader(models.SessionTokenHeader, token), nil
}
