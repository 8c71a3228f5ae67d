package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-totp-vault/internal/config"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
)

// NewCredentialStore builds the store selected by cfg. A non-empty
// DB.DSN opens the SQL store and applies migrations; otherwise the in-memory
// store is used, snapshotted to Files.Path when that is set.
func NewCredentialStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (CredentialStore, error) {
	if cfg.DB.DSN == "" {
		return NewMemoryStore(cfg.Files.Path, log)
	}

	dialect, target, err := parseDSN(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	var db *DB
	switch dialect {
	case DialectPostgres:
		db, err = NewConnectPostgres(ctx, target, log)
	case DialectSQLite:
		db, err = NewConnectSQLite(ctx, target, log)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewCredentialStore").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	return NewSQLStore(db, log), nil
}

// parseDSN picks the driver from the DSN scheme. PostgreSQL URLs are passed
// through unchanged; for SQLite the scheme is stripped and the rest is used
// as the database file path.
func parseDSN(dsn string) (dialect, target string, err error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DialectPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		target = strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "file:"):
		target = strings.TrimPrefix(dsn, "file:")
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
	}

	if target == "" {
		return "", "", fmt.Errorf("%w: empty sqlite path", ErrUnsupportedDSN)
	}
	return DialectSQLite, target, nil
}

// redactDSN keeps only the scheme so credentials never reach error messages.
func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i] + "://..."
	}
	return "..."
}
