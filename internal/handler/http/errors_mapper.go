// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-totp-vault/internal/app"
	"github.com/MKhiriev/go-totp-vault/internal/crypto"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/internal/service"
	"github.com/MKhiriev/go-totp-vault/internal/store"
	"github.com/MKhiriev/go-totp-vault/internal/utils"
	"github.com/MKhiriev/go-totp-vault/models"
)

type errorClass struct {
	status  int
	kind    models.ErrorKind
	message string
}

// errorClasses is checked in order, so the service sentinels win over the
// lower-level errors they may wrap.
var errorClasses = []struct {
	target error
	class  errorClass
}{
	{service.ErrValidation, errorClass{http.StatusBadRequest, models.ErrorKindValidation, app.MsgInvalidRequest}},
	{ErrInvalidJSON, errorClass{http.StatusBadRequest, models.ErrorKindValidation, app.MsgInvalidRequest}},
	{ErrMissingQueryParam, errorClass{http.StatusBadRequest, models.ErrorKindValidation, app.MsgInvalidRequest}},
	{service.ErrAuth, errorClass{http.StatusUnauthorized, models.ErrorKindAuth, app.MsgAuthFailed}},
	{ErrEmptySessionToken, errorClass{http.StatusUnauthorized, models.ErrorKindAuth, app.MsgAuthFailed}},
	{service.ErrConflict, errorClass{http.StatusConflict, models.ErrorKindConflict, app.MsgUsernameTaken}},
	{service.ErrNotFound, errorClass{http.StatusNotFound, models.ErrorKindNotFound, app.MsgNotFound}},
	{service.ErrStorage, errorClass{http.StatusInternalServerError, models.ErrorKindStorage, app.MsgStorageUnavailable}},

	{store.ErrUserAlreadyExists, errorClass{http.StatusConflict, models.ErrorKindConflict, app.MsgUsernameTaken}},
	{store.ErrUserNotFound, errorClass{http.StatusNotFound, models.ErrorKindNotFound, app.MsgNotFound}},
	{store.ErrFileNotFound, errorClass{http.StatusNotFound, models.ErrorKindNotFound, app.MsgNotFound}},
	{crypto.ErrFormat, errorClass{http.StatusBadRequest, models.ErrorKindValidation, app.MsgInvalidRequest}},
	{crypto.ErrIntegrity, errorClass{http.StatusBadRequest, models.ErrorKindIntegrity, app.MsgIntegrityFailed}},
}

var internalError = errorClass{http.StatusInternalServerError, models.ErrorKindInternal, app.MsgInternalServerError}

func classifyError(err error) errorClass {
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c.class
		}
	}
	return internalError
}

func statusFromError(err error) int {
	return classifyError(err).status
}

// writeError answers with the status and kind err maps to. The error text
// itself is only logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	class := classifyError(err)

	log := logger.FromRequest(r)
	if class.status >= http.StatusInternalServerError {
		log.Err(err).Int("status", class.status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", class.status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Kind: class.kind, Message: class.message}, class.status)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Kind: models.ErrorKindNotFound, Message: app.MsgNotFound}, http.StatusNotFound)
}
