// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates a unique-key violation or a concurrent state
	// clash.
	ErrConflict = errors.New("conflict")

	// ErrBackendUnavailable indicates the database could not serve the
	// operation. Retryable.
	ErrBackendUnavailable = errors.New("store backend unavailable")
)

// ConflictError carries the ID of the record that caused a conflict, such
// as the already-running update job.
type ConflictError struct {
	ID     string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s (id=%s)", e.Reason, e.ID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
