// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/internal/store"
	"github.com/MKhiriev/go-totp-vault/models"
)

type fileService struct {
	credentialStore store.CredentialStore

	now func() time.Time

	logger *logger.Logger
}

// NewFileService constructs the storage-backed FileService. Input checks
// live in the wrapper returned by [NewFileValidationService].
func NewFileService(credentialStore store.CredentialStore, logger *logger.Logger) FileService {
	return &fileService{
		credentialStore: credentialStore,
		now:             time.Now,
		logger:          logger,
	}
}

func (f *fileService) Upload(ctx context.Context, username, filename string, blob []byte) error {
	file := models.StoredFile{
		Name:       filename,
		Data:       append([]byte(nil), blob...),
		UploadedAt: f.now().UTC(),
	}

	if err := f.credentialStore.PutFile(ctx, username, file); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrNotFound
		}
		logger.FromContext(ctx).Err(err).Str("user", username).Msg("error saving file")
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	logger.FromContext(ctx).Info().
		Str("user", username).
		Str("filename", filename).
		Int("size", len(blob)).
		Msg("file stored")
	return nil
}

func (f *fileService) Download(ctx context.Context, username, filename string) (models.StoredFile, error) {
	file, err := f.credentialStore.GetFile(ctx, username, filename)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) || errors.Is(err, store.ErrUserNotFound) {
			return models.StoredFile{}, ErrNotFound
		}
		logger.FromContext(ctx).Err(err).Str("user", username).Msg("error reading file")
		return models.StoredFile{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return file, nil
}
