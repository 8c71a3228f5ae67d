// Package crypto implements the password-based key derivation, the password
// verifier and the authenticated-encryption envelope shared by the server and
// the client.
//
// The content-encryption key is only ever derived on the client:
//
//	key  = Derive(password, user.Salt, user.KDF)   (client)
//	blob = Encrypt(key, plaintext, username)        (client)
//	ok   = Verify(user.PasswordVerifier, password)  (server)
//
// The verifier uses its own random salt and a fixed PBKDF2 configuration, so
// it is computed independently of the content key and never yields it.
package crypto

import "github.com/MKhiriev/go-totp-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDerivationService turns a password, a salt and cost parameters into a
// fixed-length key. Implementations are pure and safe for concurrent use.
type KeyDerivationService interface {
	// Derive returns params.KeyLength bytes. The output is deterministic for
	// identical inputs. Malformed params fail with [ErrInvalidKDFParams].
	Derive(password string, salt []byte, params models.KDFParams) ([]byte, error)
}

// PasswordVerifier produces and checks the one-way value stored in place of
// a password.
type PasswordVerifier interface {
	// Hash returns an encoded verifier for password with a fresh random salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. Malformed encodings
	// never match. The comparison is constant-time.
	Verify(encoded, password string) bool
}

// EnvelopeCipher encrypts and decrypts opaque payloads under a derived key.
type EnvelopeCipher interface {
	// Encrypt seals plaintext with a fresh random nonce and binds
	// associatedData (the owning username) to the result.
	Encrypt(key, plaintext, associatedData []byte) (EncryptedBlob, error)

	// Decrypt opens blob. It fails with [ErrFormat] for an unknown version and
	// with [ErrIntegrity] for every other verification failure; no partial
	// plaintext is returned.
	Decrypt(key []byte, blob EncryptedBlob, associatedData []byte) ([]byte, error)
}
