// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// UserRecord is the persisted account entity owned by the credential store.
// It holds only derived values: the raw password and the content-encryption
// key are never part of it.
type UserRecord struct {
	// Username is the unique account identifier.
	Username string `json:"username"`

	// PasswordVerifier is the encoded one-way verifier
	// ("pbkdf2$sha256$<iterations>$<saltB64>$<dkB64>").
	PasswordVerifier string `json:"pwdStored"`

	// Salt is the per-user random salt handed back to the client at login so
	// that it can re-derive its content key.
	Salt []byte `json:"salt"`

	// TOTPSecret is the Base32-encoded shared secret generated at registration.
	TOTPSecret string `json:"totpSecretBase32"`

	// KDF is the key-derivation configuration chosen at registration and
	// echoed back to the client on every successful login.
	KDF KDFParams `json:"kdf"`

	// Files maps a filename to the ciphertext stored under it.
	Files map[string]StoredFile `json:"files"`

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// StoredFile is an opaque encrypted blob kept on behalf of a user. The server
// never interprets Data beyond checking its envelope framing.
type StoredFile struct {
	Name       string    `json:"name"`
	Data       []byte    `json:"data"`
	UploadedAt time.Time `json:"ts"`
}

// Clone returns a deep copy of the record, so callers holding the copy can
// never observe or cause a partial update of shared state.
func (u UserRecord) Clone() UserRecord {
	out := u
	out.Salt = append([]byte(nil), u.Salt...)
	out.Files = make(map[string]StoredFile, len(u.Files))
	for name, f := range u.Files {
		out.Files[name] = f.Clone()
	}
	return out
}

// Clone returns a deep copy of the stored file.
func (f StoredFile) Clone() StoredFile {
	out := f
	out.Data = append([]byte(nil), f.Data...)
	return out
}
