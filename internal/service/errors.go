package service

import "errors"

// Service-level sentinels. Each one maps onto exactly one [models.ErrorKind]
// at the transport boundary; the wrapped cause stays in server logs.
var (
	ErrValidation = errors.New("invalid request")
	ErrAuth       = errors.New("authentication failed")
	ErrConflict   = errors.New("username already registered")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
