// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package admin implements the role-gated administrative surface: banner
// management, user role mutation, request moderation, and aggregate
// statistics.
package admin

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

// Service implements the admin operations. Role checks happen in the
// router middleware; methods here assume an authorized caller.
type Service struct {
	store *store.Store
}

// NewService wires the admin service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// CreateBanner stores a new banner.
func (s *Service) CreateBanner(ctx context.Context, req *models.BannerRequest) (*models.Banner, error) {
	now := time.Now()
	b := &models.Banner{
		ID:        uuid.New().String(),
		Message:   req.Message,
		Priority:  req.Priority,
		Active:    req.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyWindow(b, req); err != nil {
		return nil, err
	}
	if err := s.store.PutBanner(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBanner rewrites an existing banner.
func (s *Service) UpdateBanner(ctx context.Context, id string, req *models.BannerRequest) (*models.Banner, error) {
	b, err := s.store.GetBanner(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Message = req.Message
	b.Priority = req.Priority
	b.Active = req.Active
	b.StartsAt = nil
	b.EndsAt = nil
	b.UpdatedAt = time.Now()
	if err := applyWindow(b, req); err != nil {
		return nil, err
	}

	if err := s.store.PutBanner(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBanner removes a banner.
func (s *Service) DeleteBanner(ctx context.Context, id string) error {
	return s.store.DeleteBanner(ctx, id)
}

// ListBanners returns every banner for the admin console, newest-first.
func (s *Service) ListBanners(ctx context.Context) ([]*models.Banner, error) {
	out, err := s.store.ListBanners(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// LiveBanners returns the banners visible right now, ordered by priority
// descending then created_at descending.
func (s *Service) LiveBanners(ctx context.Context) ([]*models.Banner, error) {
	all, err := s.store.ListBanners(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]*models.Banner, 0, len(all))
	for _, b := range all {
		if b.IsLive(now) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func applyWindow(b *models.Banner, req *models.BannerRequest) error {
	parse := func(raw string) (*time.Time, error) {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	if req.StartsAt != nil {
		t, err := parse(*req.StartsAt)
		if err != nil {
			return &InvalidWindowError{Field: "starts_at"}
		}
		b.StartsAt = t
	}
	if req.EndsAt != nil {
		t, err := parse(*req.EndsAt)
		if err != nil {
			return &InvalidWindowError{Field: "ends_at"}
		}
		b.EndsAt = t
	}
	if b.StartsAt != nil && b.EndsAt != nil && b.EndsAt.Before(*b.StartsAt) {
		return &InvalidWindowError{Field: "ends_at"}
	}
	return nil
}
