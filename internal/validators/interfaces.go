// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the request models of the vault API before they
// reach the services: username and password bounds, one-time code shape,
// login ticket presence and upload framing.
//
// [Validator] takes optional field names to restrict the check, e.g. only
// [FieldUsername] for a QR code lookup.
package validators

import "context"

// Validator validates a request model, optionally restricted to the named
// fields. Violations return one of the sentinels in errors.go.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
