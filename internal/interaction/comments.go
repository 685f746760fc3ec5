// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package interaction

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jparkin/motodex/internal/auth"
	"github.com/jparkin/motodex/internal/metrics"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

// likeRetries bounds the compare-and-swap loop on the like-set.
const likeRetries = 3

// Comment posts a comment or a one-level reply. A reply to a reply is
// rejected.
func (s *Service) Comment(ctx context.Context, userID, motorcycleID, content, parentID string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidInput("content", "must not be empty")
	}
	if len(content) > 1000 {
		return nil, invalidInput("content", "exceeds 1000 characters")
	}
	if _, err := s.store.GetMotorcycle(ctx, motorcycleID); err != nil {
		return nil, err
	}

	if parentID != "" {
		parent, err := s.store.GetComment(ctx, parentID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalidInput("parent_comment_id", "parent comment not found")
		}
		if err != nil {
			return nil, err
		}
		if parent.MotorcycleID != motorcycleID {
			return nil, invalidInput("parent_comment_id", "parent belongs to another motorcycle")
		}
		if parent.ParentCommentID != "" {
			return nil, invalidInput("parent_comment_id", "replies cannot be nested")
		}
	}

	now := time.Now()
	c := &models.Comment{
		ID:              uuid.New().String(),
		MotorcycleID:    motorcycleID,
		UserID:          userID,
		Content:         content,
		ParentCommentID: parentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	metrics.CommentsPosted.Inc()
	s.bumpCounter(ctx, userID, models.CounterCommentsPosted)
	return c, nil
}

// LikeComment toggles the caller's membership in the like-set. The update
// is a compare-and-swap on the comment document; conflicting toggles
// retry.
func (s *Service) LikeComment(ctx context.Context, userID, commentID string) (liked bool, err error) {
	for attempt := 0; attempt < likeRetries; attempt++ {
		err = s.store.UpdateComment(ctx, commentID, func(c *models.Comment) error {
			if c.Deleted {
				return invalidInput("comment", "comment is deleted")
			}
			if c.IsLikedBy(userID) {
				kept := c.LikedBy[:0]
				for _, id := range c.LikedBy {
					if id != userID {
						kept = append(kept, id)
					}
				}
				c.LikedBy = kept
				liked = false
			} else {
				c.LikedBy = append(c.LikedBy, userID)
				liked = true
			}
			c.LikeCount = len(c.LikedBy)
			c.UpdatedAt = time.Now()
			return nil
		})
		if !errors.Is(err, store.ErrConflict) {
			break
		}
	}
	return liked, err
}

// FlagComment increments the flag count for moderator review.
func (s *Service) FlagComment(ctx context.Context, userID, commentID string) error {
	var err error
	for attempt := 0; attempt < likeRetries; attempt++ {
		err = s.store.UpdateComment(ctx, commentID, func(c *models.Comment) error {
			if c.Deleted {
				return invalidInput("comment", "comment is deleted")
			}
			c.FlagCount++
			c.UpdatedAt = time.Now()
			return nil
		})
		if !errors.Is(err, store.ErrConflict) {
			break
		}
	}
	return err
}

// DeleteComment tombstones a comment. Allowed for the author or a
// caller with role Moderator or above; replies remain visible.
func (s *Service) DeleteComment(ctx context.Context, caller *models.User, commentID string) error {
	c, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != caller.ID && !models.RoleAtLeast(caller.Role, models.RoleModerator) {
		return auth.ErrForbidden
	}
	if c.Deleted {
		return nil
	}

	return s.store.UpdateComment(ctx, commentID, func(c *models.Comment) error {
		c.Deleted = true
		c.UpdatedAt = time.Now()
		return nil
	})
}

// GetComments returns a motorcycle's top-level comments newest-first with
// replies inlined oldest-first. Each view carries current author info and
// the caller's like status; callerID may be empty for anonymous reads.
// Deleted comments appear as tombstones with their content blanked.
func (s *Service) GetComments(ctx context.Context, motorcycleID, callerID string) ([]models.CommentView, error) {
	if _, err := s.store.GetMotorcycle(ctx, motorcycleID); err != nil {
		return nil, err
	}

	all, err := s.store.ListCommentsForMotorcycle(ctx, motorcycleID)
	if err != nil {
		return nil, err
	}

	authorNames := make(map[string]*models.User)
	view := func(c *models.Comment) models.CommentView {
		v := models.CommentView{
			ID:              c.ID,
			MotorcycleID:    c.MotorcycleID,
			UserID:          c.UserID,
			Content:         c.Content,
			ParentCommentID: c.ParentCommentID,
			LikeCount:       c.LikeCount,
			FlagCount:       c.FlagCount,
			Deleted:         c.Deleted,
			LikedByMe:       callerID != "" && c.IsLikedBy(callerID),
			CreatedAt:       c.CreatedAt,
		}
		if c.Deleted {
			v.Content = ""
		}
		author, ok := authorNames[c.UserID]
		if !ok {
			author, _ = s.store.GetUser(ctx, c.UserID)
			authorNames[c.UserID] = author
		}
		if author != nil {
			v.AuthorName = author.Name
			v.AuthorPicture = author.PictureURL
		}
		return v
	}

	replies := make(map[string][]models.CommentView)
	var top []models.CommentView
	for _, c := range all {
		if c.ParentCommentID != "" {
			replies[c.ParentCommentID] = append(replies[c.ParentCommentID], view(c))
		} else {
			top = append(top, view(c))
		}
	}

	sort.Slice(top, func(i, j int) bool {
		return top[i].CreatedAt.After(top[j].CreatedAt)
	})
	for i := range top {
		kids := replies[top[i].ID]
		sort.Slice(kids, func(a, b int) bool {
			return kids[a].CreatedAt.Before(kids[b].CreatedAt)
		})
		top[i].Replies = kids
	}
	return top, nil
}
