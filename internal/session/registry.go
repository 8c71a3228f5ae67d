// Package session keeps the process-local map of authenticated session
// tokens. Tokens are opaque 256-bit random values; the registry resolves a
// token to the username it was issued for until it expires or is revoked.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/MKhiriev/go-totp-vault/models"
)

// TokenSize is the number of random bytes in a session token.
const TokenSize = 32

// Registry is a concurrency-safe token → session map.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]models.Session

	ttl  time.Duration
	now  func() time.Time
	rand io.Reader
}

// Option customises a [Registry].
type Option func(*Registry)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithRandom replaces the token entropy source.
func WithRandom(rnd io.Reader) Option {
	return func(r *Registry) { r.rand = rnd }
}

// NewRegistry creates an empty registry. A non-positive ttl issues sessions that
// never expire.
func NewRegistry(ttl time.Duration, opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]models.Session),
		ttl:      ttl,
		now:      time.Now,
		rand:     rand.Reader,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Issue mints a new session for username.
func (r *Registry) Issue(username string) (models.Session, error) {
	raw := make([]byte, TokenSize)
	if _, err := io.ReadFull(r.rand, raw); err != nil {
		return models.Session{}, fmt.Errorf("generate session token: %w", err)
	}

	now := r.now().UTC()
	s := models.Session{
		Token:    hex.EncodeToString(raw),
		Username: username,
		IssuedAt: now,
	}
	if r.ttl > 0 {
		s.ExpiresAt = now.Add(r.ttl)
	}

	r.mu.Lock()
	r.sessions[s.Token] = s
	r.mu.Unlock()

	return s, nil
}

// Resolve returns the username bound to token. Unknown and expired tokens
// report ok=false.
func (r *Registry) Resolve(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()

	if !ok || s.Expired(r.now()) {
		return "", false
	}
	return s.Username, true
}

// Revoke forgets token. It reports whether the token was live.
func (r *Registry) Revoke(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return false
	}
	delete(r.sessions, token)
	return !s.Expired(r.now())
}

// Sweep drops every session expired at now and returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for token, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included until the
// next sweep.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
