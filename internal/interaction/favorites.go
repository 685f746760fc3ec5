// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package interaction

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/metrics"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

// Favorite marks a motorcycle as a favorite. A second call for the same
// pair is a no-op; the achievement counter moves only on the first.
func (s *Service) Favorite(ctx context.Context, userID, motorcycleID string) error {
	if _, err := s.store.GetMotorcycle(ctx, motorcycleID); err != nil {
		return err
	}

	exists, err := s.store.HasFavorite(ctx, userID, motorcycleID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	fav := &models.Favorite{
		UserID:       userID,
		MotorcycleID: motorcycleID,
		CreatedAt:    time.Now(),
	}
	if err := s.store.SetFavorite(ctx, fav); err != nil {
		return err
	}

	metrics.FavoritesToggled.WithLabelValues("add").Inc()
	s.bumpCounter(ctx, userID, models.CounterFavorites)
	return nil
}

// Unfavorite removes a favorite. Absent pairs are a no-op.
func (s *Service) Unfavorite(ctx context.Context, userID, motorcycleID string) error {
	if _, err := s.store.GetMotorcycle(ctx, motorcycleID); err != nil {
		return err
	}
	if err := s.store.DeleteFavorite(ctx, userID, motorcycleID); err != nil {
		return err
	}
	metrics.FavoritesToggled.WithLabelValues("remove").Inc()
	return nil
}

// ListFavorites returns the user's favorited motorcycles, newest favorite
// first. Records removed from the catalog are skipped.
func (s *Service) ListFavorites(ctx context.Context, userID string) ([]models.Motorcycle, error) {
	favs, err := s.store.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(favs, func(i, j int) bool {
		return favs[i].CreatedAt.After(favs[j].CreatedAt)
	})

	out := make([]models.Motorcycle, 0, len(favs))
	for _, f := range favs {
		m, err := s.store.GetMotorcycle(ctx, f.MotorcycleID)
		if errors.Is(err, store.ErrNotFound) {
			logging.Ctx(ctx).Warn().Str("motorcycle_id", f.MotorcycleID).Msg("favorite points at missing motorcycle")
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, nil
}
