// Package workers runs the server's background jobs. Every [Worker] stops
// when the context passed to Run is cancelled; [Workers.Wait] blocks until
// all of them have.
package workers

import (
	"context"
	"time"
)

// Worker is a background job.
//
// Run must not block: it starts the job's goroutine and returns. The job
// ends when ctx is cancelled, after which Done is closed.
type Worker interface {
	Run(ctx context.Context)
	Done() <-chan struct{}
}

// SessionStore is the part of the session registry the sweeper needs.
type SessionStore interface {
	Sweep(now time.Time) int
}
