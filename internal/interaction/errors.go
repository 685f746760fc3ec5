// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package interaction

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates an out-of-range or semantically invalid field.
var ErrInvalidInput = errors.New("invalid input")

// InputError names the offending field for the 400 response.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input field %q: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalidInput(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}
