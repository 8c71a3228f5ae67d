package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/models"
)

// sqlStore is the database/sql implementation of [CredentialStore]. Users
// live in the "users" table and their files in "files", keyed by
// (username, name). The primary key on users.username makes Create atomic.
type sqlStore struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLStore constructs a [CredentialStore] over an open, migrated DB.
func NewSQLStore(db *DB, log *logger.Logger) CredentialStore {
	log.Debug().Str("dialect", db.dialect).Msg("creating sql credential store")
	return &sqlStore{
		db:     db,
		logger: log,
	}
}

func (s *sqlStore) Exists(ctx context.Context, username string) (bool, error) {
	query, args, err := buildExistsUserQuery(s.db.builder(), username)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found bool
	err = s.db.withRetry(ctx, func() error {
		var one int
		err := s.db.QueryRowContext(ctx, query, args...).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			found = false
			return nil
		}
		found = err == nil
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlStore.Exists").Msg("error checking user")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

func (s *sqlStore) Get(ctx context.Context, username string) (models.UserRecord, error) {
	log := logger.FromContext(ctx)

	var rec models.UserRecord
	err := s.db.withRetry(ctx, func() error {
		var err error
		rec, err = s.selectUser(ctx, username)
		if err != nil {
			return err
		}
		rec.Files, err = s.selectFiles(ctx, username)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*sqlStore.Get").Msg("error reading user")
		}
		return models.UserRecord{}, err
	}

	return rec, nil
}

func (s *sqlStore) Create(ctx context.Context, record models.UserRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(s.db.builder(), record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if s.db.isUniqueViolation(err) {
				return ErrUserAlreadyExists
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return s.upsertFiles(ctx, tx, record.Username, record.Files)
	})
	if err != nil && !errors.Is(err, ErrUserAlreadyExists) {
		log.Err(err).Str("func", "*sqlStore.Create").Msg("error creating user")
	}

	return err
}

func (s *sqlStore) Put(ctx context.Context, record models.UserRecord) error {
	b := s.db.builder()

	upsertQuery, upsertArgs, err := buildUpsertUserQuery(b, record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteQuery, deleteArgs, err := buildDeleteFilesQuery(b, record.Username)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return s.upsertFiles(ctx, tx, record.Username, record.Files)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlStore.Put").Msg("error saving user")
	}

	return err
}

func (s *sqlStore) PutFile(ctx context.Context, username string, file models.StoredFile) error {
	existsQuery, existsArgs, err := buildExistsUserQuery(s.db.builder(), username)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		return s.upsertFiles(ctx, tx, username, map[string]models.StoredFile{file.Name: file})
	})
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlStore.PutFile").Msg("error saving file")
	}

	return err
}

func (s *sqlStore) GetFile(ctx context.Context, username, name string) (models.StoredFile, error) {
	query, args, err := buildSelectFileQuery(s.db.builder(), username, name)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var file models.StoredFile
	err = s.db.withRetry(ctx, func() error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&file.Name, &file.Data, &file.UploadedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		exists, existsErr := s.Exists(ctx, username)
		switch {
		case existsErr != nil:
			return models.StoredFile{}, existsErr
		case !exists:
			return models.StoredFile{}, ErrUserNotFound
		default:
			return models.StoredFile{}, ErrFileNotFound
		}
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlStore.GetFile").Msg("error reading file")
		return models.StoredFile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return file, nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) selectUser(ctx context.Context, username string) (models.UserRecord, error) {
	query, args, err := buildSelectUserQuery(s.db.builder(), username)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rec models.UserRecord
	var algorithm string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.Username,
		&rec.PasswordVerifier,
		&rec.Salt,
		&rec.TOTPSecret,
		&algorithm,
		&rec.KDF.Iterations,
		&rec.KDF.CostFactor,
		&rec.KDF.BlockSize,
		&rec.KDF.Parallelism,
		&rec.KDF.KeyLength,
		&rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserRecord{}, ErrUserNotFound
	}
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	rec.KDF.Algorithm = models.KDFAlgorithm(algorithm)

	return rec, nil
}

func (s *sqlStore) selectFiles(ctx context.Context, username string) (map[string]models.StoredFile, error) {
	query, args, err := buildSelectFilesQuery(s.db.builder(), username)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	files := make(map[string]models.StoredFile)
	for rows.Next() {
		var f models.StoredFile
		if err := rows.Scan(&f.Name, &f.Data, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		files[f.Name] = f
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return files, nil
}

func (s *sqlStore) upsertFiles(ctx context.Context, tx *sql.Tx, username string, files map[string]models.StoredFile) error {
	b := s.db.builder()
	for _, f := range files {
		query, args, err := buildUpsertFileQuery(b, username, f)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}
	return nil
}

// inTx runs fn inside a transaction, retrying the whole transaction on
// retryable driver errors.
func (s *sqlStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return s.db.withRetry(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
		}

		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
		}
		return nil
	})
}
