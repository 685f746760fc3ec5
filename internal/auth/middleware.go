// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/jparkin/motodex/internal/models"
)

type contextKey string

const userContextKey contextKey = "auth_user"

// ContextWithUser attaches the authenticated user to the context.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user, nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *models.User {
	if u, ok := ctx.Value(userContextKey).(*models.User); ok {
		return u
	}
	return nil
}

// credentials pulls the bearer token and session ID out of a request.
func credentials(r *http.Request) (bearer, sessionID string) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		bearer = strings.TrimPrefix(h, "Bearer ")
	}
	sessionID = r.Header.Get("X-Session-ID")
	return bearer, sessionID
}

// Middleware resolves credentials into a context user. With required
// false, anonymous requests pass through without a user; invalid
// credentials still fail so a client never silently loses its identity.
func (s *Service) Middleware(required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer, sessionID := credentials(r)

			if bearer == "" && sessionID == "" {
				if required {
					unauthorized(w)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			user, err := s.Authenticate(r.Context(), bearer, sessionID)
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireRoleMiddleware gates a route group on a minimum role. Must run
// after Middleware(true).
func (s *Service) RequireRoleMiddleware(minRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				unauthorized(w)
				return
			}
			if !models.RoleAtLeast(user.Role, minRole) {
				forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"error":{"code":"UNAUTHENTICATED","message":"authentication required"}}`))
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"success":false,"error":{"code":"FORBIDDEN","message":"insufficient role"}}`))
}
