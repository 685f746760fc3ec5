// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

func newTestAdmin(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st), st
}

func strPtr(s string) *string { return &s }

func TestBannerWindowValidation(t *testing.T) {
	svc, _ := newTestAdmin(t)
	ctx := context.Background()

	_, err := svc.CreateBanner(ctx, &models.BannerRequest{
		Message:  "maintenance",
		Active:   true,
		StartsAt: strPtr("2026-09-01T00:00:00Z"),
		EndsAt:   strPtr("2026-08-01T00:00:00Z"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateBanner(ctx, &models.BannerRequest{
		Message:  "bad time",
		Active:   true,
		StartsAt: strPtr("not-a-timestamp"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLiveBannersOrderingAndWindow(t *testing.T) {
	svc, _ := newTestAdmin(t)
	ctx := context.Background()

	low, err := svc.CreateBanner(ctx, &models.BannerRequest{Message: "low", Priority: 1, Active: true})
	require.NoError(t, err)
	high, err := svc.CreateBanner(ctx, &models.BannerRequest{Message: "high", Priority: 9, Active: true})
	require.NoError(t, err)

	// Inactive and out-of-window banners are invisible.
	_, err = svc.CreateBanner(ctx, &models.BannerRequest{Message: "off", Priority: 99, Active: false})
	require.NoError(t, err)
	_, err = svc.CreateBanner(ctx, &models.BannerRequest{
		Message: "future", Priority: 99, Active: true,
		StartsAt: strPtr(time.Now().Add(time.Hour).Format(time.RFC3339)),
	})
	require.NoError(t, err)

	live, err := svc.LiveBanners(ctx)
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, high.ID, live[0].ID)
	assert.Equal(t, low.ID, live[1].ID)
}

func TestBannerUpdateAndDelete(t *testing.T) {
	svc, _ := newTestAdmin(t)
	ctx := context.Background()

	b, err := svc.CreateBanner(ctx, &models.BannerRequest{Message: "v1", Active: true})
	require.NoError(t, err)

	updated, err := svc.UpdateBanner(ctx, b.ID, &models.BannerRequest{Message: "v2", Active: false})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Message)
	assert.False(t, updated.Active)

	require.NoError(t, svc.DeleteBanner(ctx, b.ID))
	err = svc.DeleteBanner(ctx, b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetUserRole(t *testing.T) {
	svc, st := newTestAdmin(t)
	ctx := context.Background()

	u := &models.User{ID: "u1", Email: "rider@example.com", Name: "Rider", Role: models.RoleUser, CreatedAt: time.Now()}
	require.NoError(t, st.CreateUser(ctx, u))

	pub, err := svc.SetUserRole(ctx, "u1", models.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, pub.Role)

	_, err = svc.SetUserRole(ctx, "u1", "Overlord")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetUserRole(ctx, "missing", models.RoleAdmin)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResolveRequestWorkflow(t *testing.T) {
	svc, st := newTestAdmin(t)
	ctx := context.Background()

	req := &models.UserRequest{
		ID: "r1", UserID: "u1", Type: "data_correction",
		Title: "Wrong horsepower", Description: "The CB650R figure is off",
		Status: models.RequestPending, CreatedAt: time.Now(),
	}
	require.NoError(t, st.CreateUserRequest(ctx, req))

	resolved, err := svc.ResolveRequest(ctx, "r1", &models.RequestStatusUpdate{
		Status: models.RequestResolved, AdminResponse: "fixed",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestResolved, resolved.Status)
	assert.Equal(t, "fixed", resolved.AdminResponse)

	_, err = svc.ResolveRequest(ctx, "r1", &models.RequestStatusUpdate{Status: "Paused"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatsCounts(t *testing.T) {
	svc, st := newTestAdmin(t)
	ctx := context.Background()

	require.NoError(t, st.PutMotorcycle(ctx, &models.Motorcycle{ID: "m1", Manufacturer: "Honda", Model: "A"}))
	require.NoError(t, st.PutMotorcycle(ctx, &models.Motorcycle{ID: "m2", Manufacturer: "Honda", Model: "B"}))
	require.NoError(t, st.CreateUser(ctx, &models.User{ID: "u1", Email: "a@example.com", Role: models.RoleUser, CreatedAt: time.Now()}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Motorcycles)
	assert.Equal(t, 1, stats.Users)
	assert.Zero(t, stats.Ratings)
}
