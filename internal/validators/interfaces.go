// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds input validation shared by the server service
// layer and the client editor, so the same rules run on both sides of the
// wire.
//
// A Validator checks a value and can be restricted to a subset of named
// fields. Failures are returned as *FieldError values wrapping one of the
// sentinel errors of this package.
package validators

import "context"

// Validator validates arbitrary input, optionally only the named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
