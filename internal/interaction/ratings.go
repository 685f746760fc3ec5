// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package interaction

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/metrics"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

// aggregateRetries bounds the recompute loop when concurrent raters race
// on the same motorcycle.
const aggregateRetries = 3

// Rate upserts the caller's rating and recomputes the motorcycle's
// aggregate. One rating per (user, motorcycle); a second submission
// replaces the first in place.
func (s *Service) Rate(ctx context.Context, userID, motorcycleID string, stars int, reviewText string) (*models.Rating, error) {
	if stars < 1 || stars > 5 {
		return nil, invalidInput("rating", "must be between 1 and 5")
	}
	if len(reviewText) > 500 {
		return nil, invalidInput("review_text", "exceeds 500 characters")
	}
	if _, err := s.store.GetMotorcycle(ctx, motorcycleID); err != nil {
		return nil, err
	}

	now := time.Now()
	rating := &models.Rating{
		ID:           uuid.New().String(),
		UserID:       userID,
		MotorcycleID: motorcycleID,
		Stars:        stars,
		ReviewText:   reviewText,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	existing, err := s.store.GetRating(ctx, motorcycleID, userID)
	isNew := errors.Is(err, store.ErrNotFound)
	if err != nil && !isNew {
		return nil, err
	}
	if !isNew {
		rating.ID = existing.ID
		rating.CreatedAt = existing.CreatedAt
	}

	if err := s.store.PutRating(ctx, rating); err != nil {
		return nil, err
	}

	if err := s.recomputeAggregate(ctx, motorcycleID); err != nil {
		return nil, err
	}

	metrics.RatingsSubmitted.Inc()
	if isNew {
		s.bumpCounter(ctx, userID, models.CounterRatingsGiven)
	}
	return rating, nil
}

// recomputeAggregate rewrites average_rating and total_ratings from a
// full scan of the motorcycle's ratings. Concurrent raters may race the
// scan, so after writing it re-reads the count and repeats while they
// disagree, up to aggregateRetries. A transient mismatch after the last
// try is tolerated; the next rating heals it.
func (s *Service) recomputeAggregate(ctx context.Context, motorcycleID string) error {
	for attempt := 0; attempt < aggregateRetries; attempt++ {
		ratings, err := s.store.ListRatingsForMotorcycle(ctx, motorcycleID)
		if err != nil {
			return err
		}

		count := len(ratings)
		avg := 0.0
		if count > 0 {
			sum := 0
			for _, r := range ratings {
				sum += r.Stars
			}
			avg = math.Round(float64(sum)/float64(count)*10) / 10
		}

		err = s.store.UpdateMotorcycle(ctx, motorcycleID, func(m *models.Motorcycle) error {
			m.AverageRating = avg
			m.TotalRatings = count
			return nil
		})
		if err != nil {
			return err
		}

		after, err := s.store.ListRatingsForMotorcycle(ctx, motorcycleID)
		if err != nil {
			return err
		}
		if len(after) == count {
			return nil
		}
		logging.Ctx(ctx).Debug().
			Str("motorcycle_id", motorcycleID).
			Int("attempt", attempt+1).
			Msg("rating aggregate raced, recomputing")
	}
	return nil
}

// GetRatings returns a motorcycle's ratings newest-first, each joined
// with the author's current profile.
func (s *Service) GetRatings(ctx context.Context, motorcycleID string) ([]models.RatingView, error) {
	if _, err := s.store.GetMotorcycle(ctx, motorcycleID); err != nil {
		return nil, err
	}

	ratings, err := s.store.ListRatingsForMotorcycle(ctx, motorcycleID)
	if err != nil {
		return nil, err
	}

	sort.Slice(ratings, func(i, j int) bool {
		return ratings[i].UpdatedAt.After(ratings[j].UpdatedAt)
	})

	out := make([]models.RatingView, 0, len(ratings))
	for _, r := range ratings {
		view := models.RatingView{Rating: *r}
		if author, err := s.store.GetUser(ctx, r.UserID); err == nil {
			view.AuthorName = author.Name
			view.AuthorPicture = author.PictureURL
		}
		out = append(out, view)
	}
	return out, nil
}
