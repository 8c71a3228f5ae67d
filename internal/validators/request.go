package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-totp-vault/internal/crypto"
	"github.com/MKhiriev/go-totp-vault/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldUsername targets the account name of credentials and TOTP requests.
	FieldUsername = "username"

	// FieldPassword targets the raw password of credentials.
	FieldPassword = "password"

	// FieldCode targets the one-time code of a TOTP request.
	FieldCode = "code"

	// FieldLoginTicket targets the login ticket of a TOTP request.
	FieldLoginTicket = "login_ticket"

	// FieldFilename targets the name a blob is stored under.
	FieldFilename = "filename"

	// FieldData targets the framed envelope bytes of an upload.
	FieldData = "data"
)

const (
	// MaxUsernameLength is the longest accepted username in bytes.
	MaxUsernameLength = 64

	// MaxPasswordLength is the longest accepted password in bytes.
	MaxPasswordLength = 1024

	// MaxFilenameLength is the longest accepted filename in bytes.
	MaxFilenameLength = 255
)

// RequestValidator implements [Validator] for the request models of the
// authentication and file operations: [models.Credentials],
// [models.VerifyTOTPRequest] and [models.UploadRequest], passed by value or
// by pointer.
type RequestValidator struct {
}

// NewRequestValidator constructs a new RequestValidator and returns it as the
// Validator interface.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches validation to the type-specific method. With no fields
// given every field of the model is checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	case models.VerifyTOTPRequest:
		return v.validateVerifyTOTPRequest(ctx, value, fields...)
	case *models.VerifyTOTPRequest:
		return v.validateVerifyTOTPRequest(ctx, *value, fields...)

	case models.UploadRequest:
		return v.validateUploadRequest(ctx, value, fields...)
	case *models.UploadRequest:
		return v.validateUploadRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateCredentials(_ context.Context, creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := ValidateUsername(creds.Username); err != nil {
				return err
			}
		case FieldPassword:
			if creds.Password == "" {
				return ErrEmptyPassword
			}
			if len(creds.Password) > MaxPasswordLength {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateVerifyTOTPRequest(_ context.Context, req models.VerifyTOTPRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldCode, FieldLoginTicket}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := ValidateUsername(req.Username); err != nil {
				return err
			}
		case FieldCode:
			if strings.TrimSpace(req.Code) == "" {
				return ErrEmptyCode
			}
		case FieldLoginTicket:
			if req.LoginTicket == "" {
				return ErrEmptyLoginTicket
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateUploadRequest(_ context.Context, req models.UploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFilename, FieldData}
	}

	for _, f := range fields {
		switch f {
		case FieldFilename:
			if err := ValidateFilename(req.Filename); err != nil {
				return err
			}
		case FieldData:
			if _, err := crypto.ParseBlob(req.Data); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidBlob, err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidateUsername accepts 1 to [MaxUsernameLength] bytes of valid UTF-8
// without whitespace, control characters or ':' (the otpauth label
// separator).
func ValidateUsername(username string) error {
	if username == "" || len(username) > MaxUsernameLength || !utf8.ValidString(username) {
		return ErrInvalidUsername
	}
	for _, r := range username {
		if r == ':' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrInvalidUsername
		}
	}
	return nil
}

// ValidateFilename accepts 1 to [MaxFilenameLength] bytes of valid UTF-8 that
// name a single path element: no separators, no control characters and
// neither "." nor "..".
func ValidateFilename(name string) error {
	if name == "" || len(name) > MaxFilenameLength || !utf8.ValidString(name) {
		return ErrInvalidFilename
	}
	if name == "." || name == ".." {
		return ErrInvalidFilename
	}
	for _, r := range name {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return ErrInvalidFilename
		}
	}
	return nil
}
