// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package interaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparkin/motodex/internal/auth"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st), st
}

func seedMotorcycle(t *testing.T, st *store.Store, id string) {
	t.Helper()
	require.NoError(t, st.PutMotorcycle(context.Background(), &models.Motorcycle{
		ID:           id,
		Manufacturer: "Honda",
		Model:        "CB650R",
		Year:         2024,
		Category:     models.CategoryNaked,
		PriceUSD:     9199,
		Availability: models.AvailabilityAvailable,
		CreatedAt:    time.Now(),
	}))
}

func seedUser(t *testing.T, st *store.Store, id, role string) *models.User {
	t.Helper()
	u := &models.User{ID: id, Email: id + "@example.com", Name: id, Role: role, CreatedAt: time.Now()}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func TestRatingAggregate(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "x")

	_, err := svc.Rate(ctx, "alice", "x", 4, "")
	require.NoError(t, err)
	_, err = svc.Rate(ctx, "bob", "x", 2, "solid commuter")
	require.NoError(t, err)

	m, err := st.GetMotorcycle(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.AverageRating)
	assert.Equal(t, 2, m.TotalRatings)
}

func TestRatingUpsertKeepsSingleRow(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "x")

	first, err := svc.Rate(ctx, "alice", "x", 5, "")
	require.NoError(t, err)
	second, err := svc.Rate(ctx, "alice", "x", 1, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	m, err := st.GetMotorcycle(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.AverageRating)
	assert.Equal(t, 1, m.TotalRatings)
}

func TestRateValidation(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "x")

	_, err := svc.Rate(ctx, "alice", "x", 0, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Rate(ctx, "alice", "x", 6, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Rate(ctx, "alice", "missing", 3, "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCommentReplyDepthLimit(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "m")

	c1, err := svc.Comment(ctx, "alice", "m", "great bike", "")
	require.NoError(t, err)

	c2, err := svc.Comment(ctx, "bob", "m", "agreed", c1.ID)
	require.NoError(t, err)
	assert.Equal(t, c1.ID, c2.ParentCommentID)

	_, err = svc.Comment(ctx, "carol", "m", "me too", c2.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCommentParentMustMatchMotorcycle(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "m1")
	seedMotorcycle(t, st, "m2")

	c1, err := svc.Comment(ctx, "alice", "m1", "first", "")
	require.NoError(t, err)

	_, err = svc.Comment(ctx, "bob", "m2", "cross-thread", c1.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLikeToggle(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "m")

	c, err := svc.Comment(ctx, "alice", "m", "nice", "")
	require.NoError(t, err)

	liked, err := svc.LikeComment(ctx, "bob", c.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.LikeComment(ctx, "bob", c.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	got, err := st.GetComment(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, got.LikeCount)
}

func TestDeleteCommentPermissions(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "m")
	author := seedUser(t, st, "author", models.RoleUser)
	stranger := seedUser(t, st, "stranger", models.RoleUser)
	mod := seedUser(t, st, "mod", models.RoleModerator)

	c, err := svc.Comment(ctx, author.ID, "m", "to be removed", "")
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, stranger, c.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	require.NoError(t, svc.DeleteComment(ctx, mod, c.ID))

	got, err := st.GetComment(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)

	// Deleting again is a no-op.
	require.NoError(t, svc.DeleteComment(ctx, author, c.ID))
}

func TestGetCommentsThreading(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "m")
	seedUser(t, st, "alice", models.RoleUser)
	seedUser(t, st, "bob", models.RoleUser)

	c1, err := svc.Comment(ctx, "alice", "m", "top level", "")
	require.NoError(t, err)
	_, err = svc.Comment(ctx, "bob", "m", "reply", c1.ID)
	require.NoError(t, err)

	views, err := svc.GetComments(ctx, "m", "bob")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "top level", views[0].Content)
	assert.Equal(t, "alice", views[0].AuthorName)
	require.Len(t, views[0].Replies, 1)
	assert.Equal(t, "reply", views[0].Replies[0].Content)
}

func TestDeletedCommentTombstone(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "m")
	author := seedUser(t, st, "alice", models.RoleUser)

	c1, err := svc.Comment(ctx, author.ID, "m", "parent", "")
	require.NoError(t, err)
	_, err = svc.Comment(ctx, author.ID, "m", "child", c1.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(ctx, author, c1.ID))

	views, err := svc.GetComments(ctx, "m", "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Deleted)
	assert.Empty(t, views[0].Content)
	// Replies stay visible under the tombstone.
	require.Len(t, views[0].Replies, 1)
}

func TestFavoriteAtMostOnce(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "m")

	require.NoError(t, svc.Favorite(ctx, "alice", "m"))
	require.NoError(t, svc.Favorite(ctx, "alice", "m"))

	// The counter reflects the effective favorite count, not call count.
	n, err := st.GetCounter(ctx, "alice", models.CounterFavorites)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, svc.Unfavorite(ctx, "alice", "m"))
	require.NoError(t, svc.Unfavorite(ctx, "alice", "m"))

	list, err := svc.ListFavorites(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFavoriteMissingMotorcycle(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Favorite(context.Background(), "alice", "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAchievementEarnedAtThreshold(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "m")
	require.NoError(t, st.PutAchievement(ctx, &models.Achievement{
		ID: "first-comment", Category: models.CounterCommentsPosted,
		Name: "First Words", Threshold: 1, Points: 10,
	}))
	require.NoError(t, st.PutAchievement(ctx, &models.Achievement{
		ID: "chatty", Category: models.CounterCommentsPosted,
		Name: "Chatty", Threshold: 3, Points: 30,
	}))

	_, err := svc.Comment(ctx, "alice", "m", "hello", "")
	require.NoError(t, err)

	list, err := svc.ListAchievements(ctx, "alice")
	require.NoError(t, err)

	byID := make(map[string]AchievementStatus, len(list))
	for _, a := range list {
		byID[a.ID] = a
	}
	require.Contains(t, byID, "first-comment")
	assert.NotNil(t, byID["first-comment"].EarnedAt)
	require.Contains(t, byID, "chatty")
	assert.Nil(t, byID["chatty"].EarnedAt)
	assert.Equal(t, 1, byID["chatty"].Progress)
}

func TestGroupJoinLeave(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedUser(t, st, "alice", models.RoleUser)
	seedUser(t, st, "bob", models.RoleUser)

	g, err := svc.CreateGroup(ctx, "alice", &models.GroupRequest{
		Name: "Track Days", Type: models.GroupRidingStyle, Public: true, MaxMembers: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MemberCreator, g.MemberRole("alice"))

	g, err = svc.JoinGroup(ctx, "bob", g.ID)
	require.NoError(t, err)
	assert.Len(t, g.Members, 2)

	// Joining again is a no-op.
	g, err = svc.JoinGroup(ctx, "bob", g.ID)
	require.NoError(t, err)
	assert.Len(t, g.Members, 2)

	// Full group rejects a third member.
	seedUser(t, st, "carol", models.RoleUser)
	_, err = svc.JoinGroup(ctx, "carol", g.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// The creator cannot leave their own group.
	err = svc.LeaveGroup(ctx, "alice", g.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.LeaveGroup(ctx, "bob", g.ID))
}

func TestGarageLifecycle(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedMotorcycle(t, st, "m")

	item, err := svc.AddGarageItem(ctx, "alice", &models.GarageItemRequest{
		MotorcycleID: "m", Status: models.GarageOwned, Public: true,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateGarageItem(ctx, "alice", item.ID, &models.GarageItemRequest{
		MotorcycleID: "m", Status: models.GaragePreviouslyOwned,
	})
	require.NoError(t, err)
	assert.Equal(t, models.GaragePreviouslyOwned, updated.Status)

	list, err := svc.ListGarage(ctx, "alice", false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Motorcycle)
	assert.Equal(t, "m", list[0].Motorcycle.ID)

	require.NoError(t, svc.RemoveGarageItem(ctx, "alice", item.ID))
	err = svc.RemoveGarageItem(ctx, "alice", item.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGarageRejectsUnknownStatus(t *testing.T) {
	svc, st := newTestService(t)
	seedMotorcycle(t, st, "m")

	_, err := svc.AddGarageItem(context.Background(), "alice", &models.GarageItemRequest{
		MotorcycleID: "m", Status: "Borrowed",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
