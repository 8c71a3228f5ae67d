// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-totp-vault/internal/logger"
)

// SessionSweeper periodically drops expired sessions so that tokens which
// are never presented again do not accumulate. Expiry itself is enforced on
// every lookup; the sweep only reclaims memory.
type SessionSweeper struct {
	sessions SessionStore
	interval time.Duration
	now      func() time.Time

	done chan struct{}

	logger *logger.Logger
}

// NewSessionSweeper returns a sweeper for sessions. A non-positive interval
// yields a worker that stops immediately.
func NewSessionSweeper(sessions SessionStore, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		logger:   logger,
	}
}

func (s *SessionSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info().Msg("session sweeper disabled")
		close(s.done)
		return
	}

	go s.loop(ctx)
}

func (s *SessionSweeper) Done() <-chan struct{} {
	return s.done
}

func (s *SessionSweeper) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			if removed := s.sessions.Sweep(s.now()); removed > 0 {
				s.logger.Debug().Int("removed", removed).Msg("expired sessions swept")
			}
		}
	}
}
