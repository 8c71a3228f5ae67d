// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoServersAreCreated is returned when there is no HTTP handler or
	// listen address to serve.
	errNoServersAreCreated = errors.New("no http handler or address configured")
)
