// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package api

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/jparkin/motodex/internal/interaction"
	"github.com/jparkin/motodex/internal/validation"
)

// maxBodyBytes caps request payloads. Every write endpoint carries small
// JSON documents; anything larger is abuse.
const maxBodyBytes = 1 << 20

// decodeJSON strictly decodes the request body into dst and validates it.
// Unknown fields, trailing garbage, and oversized bodies are rejected.
func decodeJSON(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", interaction.ErrInvalidInput, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected trailing data in request body", interaction.ErrInvalidInput)
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		return verr
	}
	return nil
}
