// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package interaction

import (
	"context"
	"errors"
	"time"

	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/metrics"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

// bumpCounter increments a user counter and evaluates the achievements
// tracking it. Achievement failures never fail the triggering mutation;
// they are logged and the next mutation retries the evaluation naturally.
func (s *Service) bumpCounter(ctx context.Context, userID, counter string) {
	value, err := s.store.IncrementCounter(ctx, userID, counter)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).
			Str("counter", counter).
			Msg("counter increment failed")
		return
	}

	if err := s.evaluateAchievements(ctx, userID, counter, value); err != nil {
		logging.Ctx(ctx).Error().Err(err).
			Str("counter", counter).
			Msg("achievement evaluation failed")
	}
}

// evaluateAchievements awards every achievement of the counter's category
// whose threshold is now met and which the user has not already earned.
// Idempotent: earned rows are skipped, progress rows are refreshed.
func (s *Service) evaluateAchievements(ctx context.Context, userID, counter string, value int) error {
	defs, err := s.store.ListAchievements(ctx)
	if err != nil {
		return err
	}

	for _, def := range defs {
		if def.Category != counter {
			continue
		}

		existing, err := s.store.GetUserAchievement(ctx, userID, def.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if existing != nil && existing.EarnedAt != nil {
			continue
		}

		ua := &models.UserAchievement{
			UserID:        userID,
			AchievementID: def.ID,
			Progress:      value,
		}
		if value >= def.Threshold {
			now := time.Now()
			ua.EarnedAt = &now
			metrics.AchievementsEarned.Inc()
			logging.Ctx(ctx).Info().
				Str("user_id", userID).
				Str("achievement_id", def.ID).
				Msg("achievement earned")
		}
		if err := s.store.PutUserAchievement(ctx, ua); err != nil {
			return err
		}
	}
	return nil
}

// AchievementStatus is one achievement definition joined with the
// caller's progress.
type AchievementStatus struct {
	models.Achievement
	Progress int        `json:"progress"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// ListAchievements returns every achievement with the user's progress.
func (s *Service) ListAchievements(ctx context.Context, userID string) ([]AchievementStatus, error) {
	defs, err := s.store.ListAchievements(ctx)
	if err != nil {
		return nil, err
	}

	progress := make(map[string]*models.UserAchievement)
	if userID != "" {
		rows, err := s.store.ListUserAchievements(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, ua := range rows {
			progress[ua.AchievementID] = ua
		}
	}

	out := make([]AchievementStatus, 0, len(defs))
	for _, def := range defs {
		st := AchievementStatus{Achievement: *def}
		if ua, ok := progress[def.ID]; ok {
			st.Progress = ua.Progress
			st.EarnedAt = ua.EarnedAt
		}
		out = append(out, st)
	}
	return out, nil
}
