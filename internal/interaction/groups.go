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

	"github.com/jparkin/motodex/internal/auth"
	"github.com/jparkin/motodex/internal/models"
)

// CreateGroup creates a rider group with the caller as Creator. The
// creator invariant is established here and never violated afterwards:
// the creator cannot leave and their membership row is immutable.
func (s *Service) CreateGroup(ctx context.Context, userID string, req *models.GroupRequest) (*models.RiderGroup, error) {
	if !models.IsValidGroupType(req.Type) {
		return nil, invalidInput("type", "unknown group type")
	}

	now := time.Now()
	g := &models.RiderGroup{
		ID:          uuid.New().String(),
		CreatorID:   userID,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Location:    req.Location,
		MaxMembers:  req.MaxMembers,
		Public:      req.Public,
		Members: []models.GroupMember{
			{UserID: userID, Role: models.MemberCreator, JoinedAt: now},
		},
		CreatedAt: now,
	}
	if err := s.store.CreateGroup(ctx, g); err != nil {
		return nil, err
	}

	s.bumpCounter(ctx, userID, models.CounterGroupsJoined)
	return g, nil
}

// JoinGroup adds the caller as a Member. Joining twice is a no-op; a full
// group rejects the join.
func (s *Service) JoinGroup(ctx context.Context, userID, groupID string) (*models.RiderGroup, error) {
	joined := false
	var out *models.RiderGroup

	err := s.store.UpdateGroup(ctx, groupID, func(g *models.RiderGroup) error {
		if g.MemberRole(userID) != "" {
			out = g
			return nil
		}
		if g.MaxMembers > 0 && len(g.Members) >= g.MaxMembers {
			return invalidInput("group", "group is full")
		}
		g.Members = append(g.Members, models.GroupMember{
			UserID:   userID,
			Role:     models.MemberMember,
			JoinedAt: time.Now(),
		})
		joined = true
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	if joined {
		s.bumpCounter(ctx, userID, models.CounterGroupsJoined)
	}
	return out, nil
}

// LeaveGroup removes the caller's membership. The creator cannot leave.
func (s *Service) LeaveGroup(ctx context.Context, userID, groupID string) error {
	return s.store.UpdateGroup(ctx, groupID, func(g *models.RiderGroup) error {
		if g.CreatorID == userID {
			return invalidInput("group", "the creator cannot leave")
		}
		kept := g.Members[:0]
		for _, m := range g.Members {
			if m.UserID != userID {
				kept = append(kept, m)
			}
		}
		g.Members = kept
		return nil
	})
}

// GetGroup returns one group. Private groups are visible only to members.
func (s *Service) GetGroup(ctx context.Context, callerID, groupID string) (*models.RiderGroup, error) {
	g, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !g.Public && (callerID == "" || g.MemberRole(callerID) == "") {
		return nil, auth.ErrForbidden
	}
	return g, nil
}

// ListGroups returns public groups plus any private groups the caller
// belongs to, newest-first.
func (s *Service) ListGroups(ctx context.Context, callerID string) ([]*models.RiderGroup, error) {
	all, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.RiderGroup, 0, len(all))
	for _, g := range all {
		if g.Public || (callerID != "" && g.MemberRole(callerID) != "") {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
