package models

import "strings"

// KDFAlgorithm names a password-based key-derivation function supported by
// both the server and the client.
type KDFAlgorithm string

const (
	// KDFPBKDF2 is PBKDF2-HMAC-SHA-256.
	KDFPBKDF2 KDFAlgorithm = "pbkdf2"
	// KDFScrypt is scrypt (RFC 7914).
	KDFScrypt KDFAlgorithm = "scrypt"
)

// ParseKDFAlgorithm maps a case-insensitive name onto a known algorithm.
func ParseKDFAlgorithm(s string) (KDFAlgorithm, bool) {
	switch KDFAlgorithm(strings.ToLower(strings.TrimSpace(s))) {
	case KDFPBKDF2:
		return KDFPBKDF2, true
	case KDFScrypt:
		return KDFScrypt, true
	default:
		return "", false
	}
}

// KDFParams carries the algorithm and cost parameters needed to reproduce a
// derived key. Only parameters are ever persisted or transmitted, never the
// key itself.
type KDFParams struct {
	Algorithm KDFAlgorithm `json:"algorithm"`

	// Iterations is the PBKDF2 iteration count.
	Iterations int `json:"iterations,omitempty"`

	// CostFactor (N), BlockSize (r) and Parallelism (p) are the scrypt costs.
	CostFactor  int `json:"N,omitempty"`
	BlockSize   int `json:"r,omitempty"`
	Parallelism int `json:"p,omitempty"`

	// KeyLength is the output length in bytes.
	KeyLength int `json:"dkLen"`
}
