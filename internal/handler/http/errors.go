package http

import "errors"

var (
	// ErrEmptySessionToken is returned by the session middleware when the
	// request carries no X-Session-Token header.
	ErrEmptySessionToken = errors.New("empty `X-Session-Token` header")

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrMissingQueryParam is returned when a required query parameter is
	// absent.
	ErrMissingQueryParam = errors.New("missing query parameter")
)
