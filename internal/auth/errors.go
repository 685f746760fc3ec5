// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package auth

import "errors"

var (
	// ErrUnauthenticated indicates a missing, expired, or invalid
	// credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates the caller is authenticated but lacks the
	// required role.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials indicates a failed email/password check.
	// Mapped to the same response as ErrUnauthenticated so login failures
	// do not reveal which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrExternalAccount indicates a password operation was attempted on
	// an external-identity account.
	ErrExternalAccount = errors.New("account uses external identity")
)
