// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the input rules shared by the terminal client
// and the server.
//
// A Validator checks a value and may be scoped to a subset of its fields:
//
//	v := validators.NewBookmarkValidator()
//	err := v.Validate(ctx, input)                       // every field
//	err = v.Validate(ctx, input, validators.FieldURL)   // url only
//
// Validators never modify their input. Use [NormalizeBookmarkInput] to trim
// user-entered values before validating and sending them.
package validators

import "context"

// Validator validates the provided input, optionally restricted to the
// named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
