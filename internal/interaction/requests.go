// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package interaction

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jparkin/motodex/internal/models"
)

// CreateRequest submits a user request for admin review.
func (s *Service) CreateRequest(ctx context.Context, userID string, req *models.UserRequestCreate) (*models.UserRequest, error) {
	now := time.Now()
	r := &models.UserRequest{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        req.Type,
		Priority:    req.Priority,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.RequestPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateUserRequest(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListMyRequests returns the caller's requests newest-first.
func (s *Service) ListMyRequests(ctx context.Context, userID string) ([]*models.UserRequest, error) {
	out, err := s.store.ListUserRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
