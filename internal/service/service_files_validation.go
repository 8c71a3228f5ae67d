package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-totp-vault/internal/validators"
	"github.com/MKhiriev/go-totp-vault/models"
)

type FileValidationService struct {
	inner     FileService
	validator validators.Validator
}

func NewFileValidationService() FileServiceWrapper {
	return &FileValidationService{
		validator: validators.NewRequestValidator(),
	}
}

// Upload rejects uploads without an owner, with a name that is not a single
// path element, or whose data is not a framed envelope.
func (v *FileValidationService) Upload(ctx context.Context, username, filename string, blob []byte) error {
	if username == "" {
		return ErrAuth
	}

	if err := v.validator.Validate(ctx, models.UploadRequest{Filename: filename, Data: blob}); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.Upload(ctx, username, filename, blob)
}

func (v *FileValidationService) Download(ctx context.Context, username, filename string) (models.StoredFile, error) {
	if username == "" {
		return models.StoredFile{}, ErrAuth
	}

	if err := validators.ValidateFilename(filename); err != nil {
		return models.StoredFile{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.Download(ctx, username, filename)
}

func (v *FileValidationService) Wrap(wrapped FileService) FileService {
	v.inner = wrapped
	return v
}
