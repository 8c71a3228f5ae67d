// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// BlobVersion is the only envelope format version currently produced and
	// accepted.
	BlobVersion byte = 1

	// NonceSize is the AES-GCM nonce length.
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag length.
	TagSize = 16

	// Overhead is the number of bytes a framed blob adds to the plaintext.
	Overhead = 1 + NonceSize + TagSize
)

// EncryptedBlob is a parsed envelope. Its binary framing is
//
//	[version (1)][nonce (12)][ciphertext ‖ tag (len(plaintext)+16)]
type EncryptedBlob struct {
	Version          byte
	Nonce            []byte
	CiphertextAndTag []byte
}

// Bytes returns the framed representation of b.
func (b EncryptedBlob) Bytes() []byte {
	out := make([]byte, 0, 1+len(b.Nonce)+len(b.CiphertextAndTag))
	out = append(out, b.Version)
	out = append(out, b.Nonce...)
	return append(out, b.CiphertextAndTag...)
}

// MarshalBinary implements [encoding.BinaryMarshaler].
func (b EncryptedBlob) MarshalBinary() ([]byte, error) {
	return b.Bytes(), nil
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler] on top of
// [ParseBlob].
func (b *EncryptedBlob) UnmarshalBinary(data []byte) error {
	parsed, err := ParseBlob(data)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBlob splits framed bytes into an [EncryptedBlob]. The version byte is
// checked first: an empty input or unknown version fails with [ErrFormat].
// A version-1 blob too short to hold a nonce and a tag fails with
// [ErrIntegrity]. The returned blob does not alias data.
func ParseBlob(data []byte) (EncryptedBlob, error) {
	if len(data) == 0 {
		return EncryptedBlob{}, fmt.Errorf("%w: empty blob", ErrFormat)
	}
	if data[0] != BlobVersion {
		return EncryptedBlob{}, fmt.Errorf("%w: version %d", ErrFormat, data[0])
	}
	if len(data) < Overhead {
		return EncryptedBlob{}, ErrIntegrity
	}

	return EncryptedBlob{
		Version:          data[0],
		Nonce:            append([]byte(nil), data[1:1+NonceSize]...),
		CiphertextAndTag: append([]byte(nil), data[1+NonceSize:]...),
	}, nil
}

// envelopeCipher is the AES-GCM implementation of [EnvelopeCipher].
type envelopeCipher struct {
	rand io.Reader
}

// NewEnvelopeCipher constructs an [EnvelopeCipher] drawing nonces from the
// OS CSPRNG.
func NewEnvelopeCipher() EnvelopeCipher {
	return &envelopeCipher{rand: rand.Reader}
}

// Encrypt implements [EnvelopeCipher].
func (e *envelopeCipher) Encrypt(key, plaintext, associatedData []byte) (EncryptedBlob, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return EncryptedBlob{}, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(e.rand, nonce); err != nil {
		return EncryptedBlob{}, fmt.Errorf("generate nonce: %w", err)
	}

	return EncryptedBlob{
		Version:          BlobVersion,
		Nonce:            nonce,
		CiphertextAndTag: gcm.Seal(nil, nonce, plaintext, associatedData),
	}, nil
}

// Decrypt implements [EnvelopeCipher].
func (e *envelopeCipher) Decrypt(key []byte, blob EncryptedBlob, associatedData []byte) ([]byte, error) {
	if blob.Version != BlobVersion {
		return nil, fmt.Errorf("%w: version %d", ErrFormat, blob.Version)
	}
	gcm, err := newGCM(key)
	if err != nil {
		// a key AES rejects is just another wrong key
		return nil, ErrIntegrity
	}
	if len(blob.Nonce) != NonceSize || len(blob.CiphertextAndTag) < TagSize {
		return nil, ErrIntegrity
	}

	plaintext, err := gcm.Open(nil, blob.Nonce, blob.CiphertextAndTag, associatedData)
	if err != nil {
		return nil, ErrIntegrity
	}

	return plaintext, nil
}

// Seal encrypts plaintext and returns the framed bytes.
func Seal(c EnvelopeCipher, key, plaintext, associatedData []byte) ([]byte, error) {
	blob, err := c.Encrypt(key, plaintext, associatedData)
	if err != nil {
		return nil, err
	}
	return blob.Bytes(), nil
}

// Open parses framed bytes and decrypts them.
func Open(c EnvelopeCipher, key, data, associatedData []byte) ([]byte, error) {
	blob, err := ParseBlob(data)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(key, blob, associatedData)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
