// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package totp

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"image/png"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// DefaultPeriod is the time-step length in seconds.
	DefaultPeriod = 30

	// DefaultSkew is the number of steps accepted on either side of the
	// current one.
	DefaultSkew = 1

	// SecretSize is the raw secret length in bytes (160 bits).
	SecretSize = 20

	// QRCodeSize is the edge length of rendered QR images in pixels.
	QRCodeSize = 256
)

// authenticator is the pquerna/otp backed implementation of [Authenticator].
type authenticator struct {
	issuer string
	period uint
	skew   uint
	digits otp.Digits
	rand   io.Reader
}

// NewAuthenticator constructs an [Authenticator] that labels its secrets
// with issuer.
func NewAuthenticator(issuer string) Authenticator {
	return &authenticator{
		issuer: issuer,
		period: DefaultPeriod,
		skew:   DefaultSkew,
		digits: otp.DigitsSix,
		rand:   rand.Reader,
	}
}

// NewSecret implements [Authenticator].
func (a *authenticator) NewSecret(account string) (Secret, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      a.issuer,
		AccountName: account,
		Period:      a.period,
		SecretSize:  SecretSize,
		Digits:      a.digits,
		Algorithm:   otp.AlgorithmSHA1,
		Rand:        a.rand,
	})
	if err != nil {
		return Secret{}, fmt.Errorf("generate totp secret: %w", err)
	}

	return Secret{Base32: key.Secret(), URI: key.URL()}, nil
}

// URI implements [Authenticator].
func (a *authenticator) URI(account, secret string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", a.issuer)
	v.Set("algorithm", otp.AlgorithmSHA1.String())
	v.Set("digits", a.digits.String())
	v.Set("period", strconv.FormatUint(uint64(a.period), 10))

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + a.issuer + ":" + account,
		RawQuery: v.Encode(),
	}

	return u.String()
}

// CurrentCode implements [Authenticator].
func (a *authenticator) CurrentCode(secret string, t time.Time) (string, error) {
	code, err := totp.GenerateCodeCustom(secret, t, a.validateOpts())
	if err != nil {
		return "", fmt.Errorf("generate totp code: %w", err)
	}
	return code, nil
}

// Verify implements [Authenticator]. Codes from the current step and from
// the steps directly before and after it are accepted; anything further away
// is rejected. Malformed codes or secrets verify false.
func (a *authenticator) Verify(secret, code string, t time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, t, a.validateOpts())
	return err == nil && ok
}

// QRCode implements [Authenticator].
func (a *authenticator) QRCode(account, secret string) ([]byte, error) {
	key, err := otp.NewKeyFromURL(a.URI(account, secret))
	if err != nil {
		return nil, fmt.Errorf("parse otpauth uri: %w", err)
	}

	img, err := key.Image(QRCodeSize, QRCodeSize)
	if err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode qr code png: %w", err)
	}

	return buf.Bytes(), nil
}

func (a *authenticator) Issuer() string { return a.issuer }
func (a *authenticator) Period() int    { return int(a.period) }
func (a *authenticator) Digits() int    { return a.digits.Length() }

func (a *authenticator) validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    a.period,
		Skew:      a.skew,
		Digits:    a.digits,
		Algorithm: otp.AlgorithmSHA1,
	}
}
