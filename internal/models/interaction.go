// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package models

import "time"

// Favorite marks a (user, motorcycle) pair. At most one exists per pair.
type Favorite struct {
	UserID       string    `json:"user_id"`
	MotorcycleID string    `json:"motorcycle_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Rating is a 1..5 star review. At most one exists per (user, motorcycle);
// re-rating updates in place.
type Rating struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	MotorcycleID string    `json:"motorcycle_id"`
	Stars        int       `json:"stars"`
	ReviewText   string    `json:"review_text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RatingView is a rating joined with the author's current profile at read
// time.
type RatingView struct {
	Rating
	AuthorName    string `json:"author_name"`
	AuthorPicture string `json:"author_picture,omitempty"`
}

// Comment is a discussion entry on a motorcycle. Replies nest at most one
// level deep. Deleted comments persist as tombstones so replies keep their
// anchor.
type Comment struct {
	ID              string    `json:"id"`
	MotorcycleID    string    `json:"motorcycle_id"`
	UserID          string    `json:"user_id"`
	Content         string    `json:"content"`
	ParentCommentID string    `json:"parent_comment_id,omitempty"`
	LikedBy         []string  `json:"liked_by,omitempty"`
	LikeCount       int       `json:"like_count"`
	FlagCount       int       `json:"flag_count"`
	Deleted         bool      `json:"deleted,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsLikedBy reports whether the user is in the like set.
func (c *Comment) IsLikedBy(userID string) bool {
	for _, id := range c.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// CommentView is a comment joined with author info and the caller's own
// like status. Top-level views carry replies inlined oldest-first.
type CommentView struct {
	ID              string        `json:"id"`
	MotorcycleID    string        `json:"motorcycle_id"`
	UserID          string        `json:"user_id"`
	Content         string        `json:"content"`
	ParentCommentID string        `json:"parent_comment_id,omitempty"`
	LikeCount       int           `json:"like_count"`
	FlagCount       int           `json:"flag_count"`
	Deleted         bool          `json:"deleted"`
	LikedByMe       bool          `json:"liked_by_me"`
	AuthorName      string        `json:"author_name"`
	AuthorPicture   string        `json:"author_picture,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	Replies         []CommentView `json:"replies,omitempty"`
}

// Achievement counter names incremented by interaction mutations.
const (
	CounterCommentsPosted = "comments_posted"
	CounterRatingsGiven   = "ratings_given"
	CounterFavorites      = "favorites_count"
	CounterGarageItems    = "garage_items"
	CounterGroupsJoined   = "groups_joined"
)

// Achievement defines a threshold on one counter.
type Achievement struct {
	ID          string `json:"id"`
	Category    string `json:"category"` // counter name this achievement tracks
	Name        string `json:"name"`
	Description string `json:"description"`
	Threshold   int    `json:"threshold"`
	Points      int    `json:"points"`
}

// UserAchievement tracks a user's progress toward one achievement.
// EarnedAt is nil until the threshold is met.
type UserAchievement struct {
	UserID        string     `json:"user_id"`
	AchievementID string     `json:"achievement_id"`
	Progress      int        `json:"progress"`
	EarnedAt      *time.Time `json:"earned_at,omitempty"`
}
