// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SessionTokenHeader carries the session token on authenticated requests.
const SessionTokenHeader = "X-Session-Token"

// Credentials is the request body of register and login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// VerifyTOTPRequest is the request body of the second login step.
type VerifyTOTPRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`

	// LoginTicket is the short-lived proof of a successful password check
	// returned by login.
	LoginTicket string `json:"loginTicket"`
}

// UploadRequest stores an already-encrypted blob under Filename. Byte slices
// travel as standard Base64 in JSON.
type UploadRequest struct {
	Filename string `json:"filename"`
	Data     []byte `json:"dataB64"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message       string `json:"message"`
	Issuer        string `json:"issuer"`
	Account       string `json:"account"`
	SecretBase32  string `json:"secretBase32"`
	OTPAuthURI    string `json:"otpauthUri"`
	QRCodeDataURI string `json:"qrcodeDataUri"`
}

// LoginResponse is returned after a successful password check. It carries
// the KDF parameters and salt the client needs to re-derive its content key,
// never key material.
type LoginResponse struct {
	OK          bool   `json:"ok"`
	Message     string `json:"message"`
	KDF         string `json:"kdf"`
	Iterations  int    `json:"iterations,omitempty"`
	N           int    `json:"N,omitempty"`
	R           int    `json:"r,omitempty"`
	P           int    `json:"p,omitempty"`
	DKLen       int    `json:"dkLen"`
	Salt        []byte `json:"saltB64"`
	TOTPPeriod  int    `json:"totpPeriod"`
	TOTPDigits  int    `json:"totpDigits"`
	LoginTicket string `json:"loginTicket"`
}

// Params converts the wire representation back into [KDFParams].
func (r LoginResponse) Params() KDFParams {
	return KDFParams{
		Algorithm:   KDFAlgorithm(r.KDF),
		Iterations:  r.Iterations,
		CostFactor:  r.N,
		BlockSize:   r.R,
		Parallelism: r.P,
		KeyLength:   r.DKLen,
	}
}

// VerifyTOTPResponse is returned by the second login step.
type VerifyTOTPResponse struct {
	OK           bool       `json:"ok"`
	SessionToken string     `json:"sessionToken,omitempty"`
	Message      string     `json:"message"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// DownloadResponse returns a stored ciphertext blob.
type DownloadResponse struct {
	Filename string `json:"filename"`
	Data     []byte `json:"dataB64"`
}

// OKResponse is the body of operations that only report success.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse is the body of every failed request. Kind is one of the
// fixed [ErrorKind] values; Message is safe to show to the caller.
type ErrorResponse struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// HealthResponse reports that the server is up and which build it runs.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
