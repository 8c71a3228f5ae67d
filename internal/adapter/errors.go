package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrIntegrity           = errors.New("integrity check failed")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNoSession is returned before any request is sent when an
	// authenticated call is made without a session token.
	ErrNoSession = errors.New("not logged in")
)
