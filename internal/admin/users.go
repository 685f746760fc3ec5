// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package admin

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/models"
)

// ListUsers returns all active accounts, newest-first.
func (s *Service) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		if u.Deleted {
			continue
		}
		out = append(out, u.Public())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// SetUserRole mutates one user's role. Existing bearer tokens keep their
// old role snapshot until reissued.
func (s *Service) SetUserRole(ctx context.Context, userID, newRole string) (*models.PublicUser, error) {
	if !models.IsValidRole(newRole) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, newRole)
	}

	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldRole := u.Role
	u.Role = newRole
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("user_id", userID).
		Str("old_role", oldRole).
		Str("new_role", newRole).
		Msg("user role changed")

	pub := u.Public()
	return &pub, nil
}

// ListRequests returns all user requests, newest-first.
func (s *Service) ListRequests(ctx context.Context) ([]*models.UserRequest, error) {
	out, err := s.store.ListUserRequests(ctx, "")
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ResolveRequest moves a user request through its workflow and records
// the admin's response.
func (s *Service) ResolveRequest(ctx context.Context, id string, upd *models.RequestStatusUpdate) (*models.UserRequest, error) {
	if !models.IsValidRequestStatus(upd.Status) {
		return nil, fmt.Errorf("%w: unknown request status %q", ErrInvalidInput, upd.Status)
	}

	r, err := s.store.GetUserRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Status = upd.Status
	r.AdminResponse = upd.AdminResponse
	r.UpdatedAt = time.Now()
	if err := s.store.UpdateUserRequest(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
