// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/MKhiriev/go-totp-vault/models"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

const (
	// KeySize is the content-key length used throughout the system (AES-256).
	KeySize = 32

	// SaltSize is the length of every random salt generated by this package.
	SaltSize = 16

	// DefaultPBKDF2Iterations is the PBKDF2-HMAC-SHA-256 iteration count.
	DefaultPBKDF2Iterations = 200_000

	// Default scrypt costs: N = 2^14, r = 8, p = 1.
	DefaultScryptN = 1 << 14
	DefaultScryptR = 8
	DefaultScryptP = 1
)

// DefaultScryptParams returns the scrypt configuration handed to clients.
func DefaultScryptParams() models.KDFParams {
	return models.KDFParams{
		Algorithm:   models.KDFScrypt,
		CostFactor:  DefaultScryptN,
		BlockSize:   DefaultScryptR,
		Parallelism: DefaultScryptP,
		KeyLength:   KeySize,
	}
}

// DefaultPBKDF2Params returns the PBKDF2 configuration handed to clients.
func DefaultPBKDF2Params() models.KDFParams {
	return models.KDFParams{
		Algorithm:  models.KDFPBKDF2,
		Iterations: DefaultPBKDF2Iterations,
		KeyLength:  KeySize,
	}
}

// DefaultParams returns the default configuration for algorithm.
func DefaultParams(algorithm models.KDFAlgorithm) (models.KDFParams, error) {
	switch algorithm {
	case models.KDFScrypt:
		return DefaultScryptParams(), nil
	case models.KDFPBKDF2:
		return DefaultPBKDF2Params(), nil
	default:
		return models.KDFParams{}, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidKDFParams, algorithm)
	}
}

// keyDerivationService is the stateless implementation of
// [KeyDerivationService].
type keyDerivationService struct{}

// NewKeyDerivationService constructs a [KeyDerivationService].
func NewKeyDerivationService() KeyDerivationService {
	return keyDerivationService{}
}

// Derive implements [KeyDerivationService].
func (keyDerivationService) Derive(password string, salt []byte, params models.KDFParams) ([]byte, error) {
	return Derive(password, salt, params)
}

// Derive stretches password with salt according to params. It validates
// params before doing any work so that a malformed request can never fall
// back to weaker settings.
func Derive(password string, salt []byte, params models.KDFParams) ([]byte, error) {
	if err := ValidateParams(salt, params); err != nil {
		return nil, err
	}

	switch params.Algorithm {
	case models.KDFPBKDF2:
		return pbkdf2.Key([]byte(password), salt, params.Iterations, params.KeyLength, sha256.New), nil
	case models.KDFScrypt:
		key, err := scrypt.Key([]byte(password), salt, params.CostFactor, params.BlockSize, params.Parallelism, params.KeyLength)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKDFParams, err)
		}
		return key, nil
	}

	// unreachable: ValidateParams rejects unknown algorithms
	return nil, ErrInvalidKDFParams
}

// ValidateParams checks salt and params without deriving anything.
func ValidateParams(salt []byte, params models.KDFParams) error {
	if len(salt) == 0 {
		return fmt.Errorf("%w: empty salt", ErrInvalidKDFParams)
	}
	if params.KeyLength <= 0 {
		return fmt.Errorf("%w: key length must be positive", ErrInvalidKDFParams)
	}

	switch params.Algorithm {
	case models.KDFPBKDF2:
		if params.Iterations <= 0 {
			return fmt.Errorf("%w: iterations must be positive", ErrInvalidKDFParams)
		}
	case models.KDFScrypt:
		n := params.CostFactor
		if n <= 1 || n&(n-1) != 0 {
			return fmt.Errorf("%w: cost factor must be a power of two greater than 1", ErrInvalidKDFParams)
		}
		if params.BlockSize <= 0 || params.Parallelism <= 0 {
			return fmt.Errorf("%w: block size and parallelism must be positive", ErrInvalidKDFParams)
		}
	default:
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidKDFParams, params.Algorithm)
	}

	return nil
}
