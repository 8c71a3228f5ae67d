package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername  = errors.New("invalid username")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrEmptyCode        = errors.New("one-time code is required")
	ErrEmptyLoginTicket = errors.New("login ticket is required")
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrInvalidBlob      = errors.New("data is not a valid encrypted blob")
)
