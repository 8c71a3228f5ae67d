package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/internal/utils"
	"github.com/MKhiriev/go-totp-vault/models"
)

// session is an HTTP middleware that requires a live session token.
//
// It reads the [models.SessionTokenHeader] header, resolves it through
// [service.AuthService.Authenticate] and, on success, stores the username
// and the token in the request context under [utils.UsernameCtxKey] and
// [utils.SessionTokenCtxKey]. The request logger is tagged with the user.
//
// Missing, unknown, expired and revoked tokens are all answered with 401 and
// kind "auth".
func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(models.SessionTokenHeader)
		if token == "" {
			writeError(w, r, ErrEmptySessionToken)
			return
		}

		ctx := r.Context()
		username, err := h.services.AuthService.Authenticate(ctx, token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx = context.WithValue(ctx, utils.UsernameCtxKey, username)
		ctx = context.WithValue(ctx, utils.SessionTokenCtxKey, token)
		ctx = logger.FromContext(ctx).ForUser(username).WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
