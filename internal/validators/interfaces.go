// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for values that cross the
// boundary to the secure item store.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values.
//     Supports optional field-level scoping: the names passed after the
//     value are fields that must be present.
//
// Validation failures are reported with the sentinel errors of this package
// so callers can classify them with [errors.Is].
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input. The optional field names are
	// fields that must be present in addition to the always-required ones.
	Validate(context.Context, any, ...string) error
}
