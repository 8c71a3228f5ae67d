// Package store persists user records and their encrypted files.
//
// [CredentialStore] is the single storage contract used by the services. It
// has two implementations: an in-memory map that can snapshot itself to a
// JSON file, and a database/sql store for PostgreSQL or SQLite. Both
// guarantee that Create is atomic per username and that returned records
// never alias internal state.
package store

import (
	"context"

	"github.com/MKhiriev/go-totp-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CredentialStore keeps user records keyed by username.
type CredentialStore interface {
	// Exists reports whether a record for username is stored.
	Exists(ctx context.Context, username string) (bool, error)

	// Get returns a copy of the record or [ErrUserNotFound].
	Get(ctx context.Context, username string) (models.UserRecord, error)

	// Put inserts or overwrites the record, files included.
	Put(ctx context.Context, record models.UserRecord) error

	// Create inserts the record only if the username is free, otherwise it
	// returns [ErrUserAlreadyExists].
	Create(ctx context.Context, record models.UserRecord) error

	// PutFile stores or replaces one file of an existing user. Unknown users
	// yield [ErrUserNotFound].
	PutFile(ctx context.Context, username string, file models.StoredFile) error

	// GetFile returns a copy of the named file or [ErrFileNotFound]
	// ([ErrUserNotFound] if the user does not exist).
	GetFile(ctx context.Context, username, name string) (models.StoredFile, error)

	// Close releases the underlying resources.
	Close() error
}
