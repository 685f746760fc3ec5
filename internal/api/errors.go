// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package api

import (
	"errors"
	"net/http"

	"github.com/jparkin/motodex/internal/admin"
	"github.com/jparkin/motodex/internal/auth"
	"github.com/jparkin/motodex/internal/interaction"
	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/query"
	"github.com/jparkin/motodex/internal/store"
	"github.com/jparkin/motodex/internal/validation"
)

// Error codes returned in the envelope.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	CodeInternal           = "INTERNAL"
)

// respondErr is the single mapping point from engine errors to HTTP
// responses. Handlers never pick status codes themselves.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var (
		reqErr      *validation.RequestError
		conflictErr *store.ConflictError
	)

	switch {
	case errors.As(err, &reqErr):
		details := make(map[string]interface{}, len(reqErr.Fields))
		for _, f := range reqErr.Fields {
			details[f.Field] = f.Message
		}
		respondError(w, r, http.StatusUnprocessableEntity, CodeValidationFailed, "request validation failed", details)

	case errors.Is(err, query.ErrInvalidFilter),
		errors.Is(err, interaction.ErrInvalidInput),
		errors.Is(err, admin.ErrInvalidInput):
		respondError(w, r, http.StatusBadRequest, CodeInvalidInput, err.Error(), nil)

	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, r, http.StatusUnauthorized, CodeUnauthenticated, "authentication required", nil)

	case errors.Is(err, auth.ErrForbidden):
		respondError(w, r, http.StatusForbidden, CodeForbidden, "insufficient permissions", nil)

	case errors.Is(err, store.ErrNotFound):
		respondError(w, r, http.StatusNotFound, CodeNotFound, "resource not found", nil)

	case errors.As(err, &conflictErr):
		details := map[string]interface{}{"id": conflictErr.ID}
		respondError(w, r, http.StatusConflict, CodeConflict, conflictErr.Reason, details)

	case errors.Is(err, store.ErrConflict):
		respondError(w, r, http.StatusConflict, CodeConflict, "conflicting concurrent update", nil)

	case errors.Is(err, store.ErrBackendUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, CodeBackendUnavailable, "storage backend unavailable", nil)

	default:
		// Internal details stay in the logs; the correlation ID links
		// the response to them.
		correlationID := logging.CorrelationIDFromContext(r.Context())
		logging.Ctx(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
		details := map[string]interface{}{}
		if correlationID != "" {
			details["correlation_id"] = correlationID
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "internal server error", details)
	}
}
