package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-totp-vault/models"
	"github.com/go-resty/resty/v2"
)

var kindErrors = map[models.ErrorKind]error{
	models.ErrorKindValidation: ErrBadRequest,
	models.ErrorKindAuth:       ErrUnauthorized,
	models.ErrorKindConflict:   ErrConflict,
	models.ErrorKindNotFound:   ErrNotFound,
	models.ErrorKindIntegrity:  ErrIntegrity,
	models.ErrorKindStorage:    ErrInternalServerError,
	models.ErrorKindInternal:   ErrInternalServerError,
}

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
}

// mapHTTPError returns nil for 2xx responses. Otherwise it prefers the kind
// of a decoded [models.ErrorResponse] and falls back to the status code.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errResp); err == nil {
		if target, ok := kindErrors[errResp.Kind]; ok {
			return fmt.Errorf("%w: %s", target, errResp.Message)
		}
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	if target, ok := statusErrors[resp.StatusCode()]; ok {
		return fmt.Errorf("%w: %s", target, body)
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
