// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package admin

import (
	"context"
	"time"
)

// Stats is the aggregate statistics payload. Counts come from the same
// store scans the public endpoints use, so the numbers always agree with
// what clients see in listings.
type Stats struct {
	Motorcycles     int `json:"motorcycles"`
	Users           int `json:"users"`
	Ratings         int `json:"ratings"`
	Comments        int `json:"comments"`
	Favorites       int `json:"favorites"`
	AnalyticsEvents int `json:"analytics_events"`

	NewUsers7d    int `json:"new_users_7d"`
	NewComments7d int `json:"new_comments_7d"`
	NewRatings7d  int `json:"new_ratings_7d"`
}

// Stats aggregates entity counts plus last-7-day deltas at request time.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	out := &Stats{}

	motorcycles, err := s.store.ListMotorcycles(ctx)
	if err != nil {
		return nil, err
	}
	out.Motorcycles = len(motorcycles)

	cutoff := time.Now().AddDate(0, 0, -7)

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Deleted {
			continue
		}
		out.Users++
		if u.CreatedAt.After(cutoff) {
			out.NewUsers7d++
		}
	}

	// Ratings and comments need timestamps for the deltas, so count by
	// walking per-motorcycle rows rather than raw keys.
	for _, m := range motorcycles {
		ratings, err := s.store.ListRatingsForMotorcycle(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out.Ratings += len(ratings)
		for _, r := range ratings {
			if r.CreatedAt.After(cutoff) {
				out.NewRatings7d++
			}
		}

		comments, err := s.store.ListCommentsForMotorcycle(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out.Comments += len(comments)
		for _, c := range comments {
			if c.CreatedAt.After(cutoff) {
				out.NewComments7d++
			}
		}
	}

	if out.Favorites, err = s.store.CountFavorites(ctx); err != nil {
		return nil, err
	}
	if out.AnalyticsEvents, err = s.store.CountEvents(ctx); err != nil {
		return nil, err
	}

	return out, nil
}
