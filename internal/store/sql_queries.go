// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/go-totp-vault/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable = "users"
	filesTable = "files"
)

var userColumns = []string{
	"username",
	"password_verifier",
	"salt",
	"totp_secret",
	"kdf_algorithm",
	"kdf_iterations",
	"kdf_cost_factor",
	"kdf_block_size",
	"kdf_parallelism",
	"kdf_key_length",
	"created_at",
}

var fileColumns = []string{"name", "data", "uploaded_at"}

const upsertUserSuffix = `ON CONFLICT (username) DO UPDATE SET
	password_verifier = EXCLUDED.password_verifier,
	salt = EXCLUDED.salt,
	totp_secret = EXCLUDED.totp_secret,
	kdf_algorithm = EXCLUDED.kdf_algorithm,
	kdf_iterations = EXCLUDED.kdf_iterations,
	kdf_cost_factor = EXCLUDED.kdf_cost_factor,
	kdf_block_size = EXCLUDED.kdf_block_size,
	kdf_parallelism = EXCLUDED.kdf_parallelism,
	kdf_key_length = EXCLUDED.kdf_key_length,
	created_at = EXCLUDED.created_at`

const upsertFileSuffix = `ON CONFLICT (username, name) DO UPDATE SET
	data = EXCLUDED.data,
	uploaded_at = EXCLUDED.uploaded_at`

func buildExistsUserQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select("1").
		From(usersTable).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
}

func buildSelectUserQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildSelectFilesQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(fileColumns...).
		From(filesTable).
		Where(sq.Eq{"username": username}).
		OrderBy("name").
		ToSql()
}

func buildSelectFileQuery(b sq.StatementBuilderType, username, name string) (string, []any, error) {
	return b.Select(fileColumns...).
		From(filesTable).
		Where(sq.Eq{"username": username, "name": name}).
		ToSql()
}

func userValues(rec models.UserRecord) []any {
	return []any{
		rec.Username,
		rec.PasswordVerifier,
		rec.Salt,
		rec.TOTPSecret,
		string(rec.KDF.Algorithm),
		rec.KDF.Iterations,
		rec.KDF.CostFactor,
		rec.KDF.BlockSize,
		rec.KDF.Parallelism,
		rec.KDF.KeyLength,
		rec.CreatedAt.UTC(),
	}
}

func buildInsertUserQuery(b sq.StatementBuilderType, rec models.UserRecord) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(userColumns...).
		Values(userValues(rec)...).
		ToSql()
}

func buildUpsertUserQuery(b sq.StatementBuilderType, rec models.UserRecord) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(userColumns...).
		Values(userValues(rec)...).
		Suffix(upsertUserSuffix).
		ToSql()
}

func buildDeleteFilesQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Delete(filesTable).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildUpsertFileQuery(b sq.StatementBuilderType, username string, file models.StoredFile) (string, []any, error) {
	return b.Insert(filesTable).
		Columns("username", "name", "data", "uploaded_at").
		Values(username, file.Name, file.Data, file.UploadedAt.UTC()).
		Suffix(upsertFileSuffix).
		ToSql()
}
