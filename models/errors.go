package models

// ErrorKind is the closed set of failure classes surfaced to callers.
// Diagnostic detail stays in server logs.
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindAuth       ErrorKind = "auth"
	ErrorKindConflict   ErrorKind = "conflict"
	ErrorKindNotFound   ErrorKind = "not_found"
	ErrorKindIntegrity  ErrorKind = "integrity"
	ErrorKindStorage    ErrorKind = "storage"
	ErrorKindInternal   ErrorKind = "internal"
)
