// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package admin

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates a malformed admin request field.
var ErrInvalidInput = errors.New("invalid input")

// InvalidWindowError indicates an unparseable or inverted banner window.
type InvalidWindowError struct {
	Field string
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid banner window field %q", e.Field)
}

func (e *InvalidWindowError) Unwrap() error { return ErrInvalidInput }
