// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract of runnable client applications.
type Client interface {
	// Run starts the client and blocks until the user exits or ctx ends.
	Run(ctx context.Context) error
}

var _ Client = (*App)(nil)
