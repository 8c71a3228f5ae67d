package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-totp-vault/internal/app"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/internal/service"
	"github.com/MKhiriev/go-totp-vault/internal/utils"
	"github.com/MKhiriev/go-totp-vault/models"
)

const pngDataURIPrefix = "data:image/png;base64,"

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	reg, err := h.services.AuthService.Register(ctx, creds.Username, creds.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.RegisterResponse{
		Message:       app.MsgRegistered,
		Issuer:        reg.Issuer,
		Account:       reg.Account,
		SecretBase32:  reg.SecretBase32,
		OTPAuthURI:    reg.OTPAuthURI,
		QRCodeDataURI: pngDataURIPrefix + base64.StdEncoding.EncodeToString(reg.QRCodePNG),
	}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.services.AuthService.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("user", creds.Username).Msg("password verified, waiting for totp")

	utils.WriteJSON(w, loginResponse(res), http.StatusOK)
}

// loginResponse flattens the KDF parameters into the wire shape. Only the
// cost fields of the negotiated algorithm are set.
func loginResponse(res service.LoginResult) models.LoginResponse {
	resp := models.LoginResponse{
		OK:          true,
		Message:     app.MsgPasswordVerified,
		KDF:         string(res.KDF.Algorithm),
		DKLen:       res.KDF.KeyLength,
		Salt:        res.Salt,
		TOTPPeriod:  res.TOTPPeriod,
		TOTPDigits:  res.TOTPDigits,
		LoginTicket: res.LoginTicket,
	}

	switch res.KDF.Algorithm {
	case models.KDFScrypt:
		resp.N = res.KDF.CostFactor
		resp.R = res.KDF.BlockSize
		resp.P = res.KDF.Parallelism
	default:
		resp.Iterations = res.KDF.Iterations
	}

	return resp
}

func (h *Handler) verifyTOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.VerifyTOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.services.AuthService.VerifyTOTP(ctx, req.Username, req.Code, req.LoginTicket)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := models.VerifyTOTPResponse{
		OK:           true,
		SessionToken: session.Token,
		Message:      app.MsgAuthenticated,
	}
	if !session.ExpiresAt.IsZero() {
		expiresAt := session.ExpiresAt
		resp.ExpiresAt = &expiresAt
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, _ := utils.GetSessionTokenFromContext(ctx)
	if err := h.services.AuthService.Logout(ctx, token); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
}

func (h *Handler) qrCode(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("user")
	if username == "" {
		writeError(w, r, fmt.Errorf("%w: user", ErrMissingQueryParam))
		return
	}

	png, err := h.services.AuthService.QRCode(r.Context(), username)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteBytes(w, "image/png", png, http.StatusOK)
}
