package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT with the given parameters.
//
// The token includes the following standard claims:
//   - Subject   (sub): the account the token was issued for
//   - Audience  (aud): the single step the token may be redeemed at
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or
// tokenDuration is zero.
//
// Example usage:
//
//	signed, err := utils.GenerateJWTToken("alice", "verify-totp", time.Now(), 5*time.Minute, key)
func GenerateJWTToken(subject, audience string, now time.Time, tokenDuration time.Duration, signKey []byte) (string, error) {
	if subject == "" || audience == "" || tokenDuration == 0 || len(signKey) == 0 {
		return "", errors.New("invalid params for generating JWT Token")
	}

	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(signKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseJWTToken validates the given JWT string and returns its
// subject.
//
// Validation includes:
//   - HS256 signature verification using the provided sign key
//   - Audience (aud) claim check against the provided audience
//   - Expiration (exp) claim check against now
//   - Subject (sub) claim presence
func ValidateAndParseJWTToken(tokenString string, signKey []byte, audience string, now time.Time) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return signKey, nil
	},
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return "", fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return "", errors.New("empty subject error")
	}

	return subject, nil
}
