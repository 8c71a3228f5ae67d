package store

import "errors"

// Sentinel errors returned by [CredentialStore] implementations to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrUserAlreadyExists is returned by Create when the username is taken.
	// Under concurrent registration of one name exactly one Create succeeds.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when no record exists for the username.
	ErrUserNotFound = errors.New("user not found")

	// ErrFileNotFound is returned by GetFile when the user has no file
	// stored under the requested name.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnsupportedDSN is returned when the database URI matches neither
	// PostgreSQL nor SQLite.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)

// Low-level storage errors. These are wrapped around the driver or
// filesystem error when an operation fails before any domain logic applies.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrSnapshot is returned when the JSON snapshot of the in-memory store
	// cannot be read or written.
	ErrSnapshot = errors.New("snapshot file error")
)
