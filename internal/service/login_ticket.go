// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-totp-vault/internal/utils"
)

// LoginTicketAudience is the only step a login ticket can be redeemed at.
const LoginTicketAudience = "verify-totp"

const generatedSignKeySize = 32

var errTicketSubjectMismatch = errors.New("login ticket issued for another user")

// loginTicketIssuer signs and checks the HS256 tickets that prove a
// successful password check to the TOTP step.
type loginTicketIssuer struct {
	signKey []byte
	ttl     time.Duration
}

// newLoginTicketIssuer uses signKey when set and a random key otherwise.
func newLoginTicketIssuer(signKey string, ttl time.Duration) (*loginTicketIssuer, error) {
	key := []byte(signKey)
	if len(key) == 0 {
		key = make([]byte, generatedSignKeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate login ticket key: %w", err)
		}
	}

	return &loginTicketIssuer{signKey: key, ttl: ttl}, nil
}

func (i *loginTicketIssuer) Issue(username string, now time.Time) (string, error) {
	return utils.GenerateJWTToken(username, LoginTicketAudience, now, i.ttl, i.signKey)
}

// Redeem checks signature, audience and expiry, and that the ticket was
// issued for username.
func (i *loginTicketIssuer) Redeem(ticket, username string, now time.Time) error {
	subject, err := utils.ValidateAndParseJWTToken(ticket, i.signKey, LoginTicketAudience, now)
	if err != nil {
		return err
	}
	if subject != username {
		return errTicketSubjectMismatch
	}
	return nil
}
