// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparkin/motodex/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestMotorcycleRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := &models.Motorcycle{
		ID:           "honda-cb650r-2024",
		Manufacturer: "Honda",
		Model:        "CB650R",
		Year:         2024,
		Category:     models.CategoryNaked,
		PriceUSD:     9199,
		Availability: models.AvailabilityAvailable,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, st.PutMotorcycle(ctx, m))

	got, err := st.GetMotorcycle(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "CB650R", got.Model)

	_, err = st.GetMotorcycle(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMotorcycleLegacyFeaturesMigration(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// Old documents carried "features"; reads fold it into specialisations.
	m := &models.Motorcycle{
		ID:             "old-doc",
		Manufacturer:   "Honda",
		Model:          "Legacy",
		LegacyFeatures: []string{"ABS", "LED Lighting"},
	}
	require.NoError(t, st.PutMotorcycle(ctx, m))

	got, err := st.GetMotorcycle(ctx, "old-doc")
	require.NoError(t, err)
	assert.Equal(t, []string{"ABS", "LED Lighting"}, got.Specialisations)
	assert.Nil(t, got.LegacyFeatures)
}

func TestUpdateMotorcycleClosure(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.PutMotorcycle(ctx, &models.Motorcycle{ID: "m", PriceUSD: 100}))
	require.NoError(t, st.UpdateMotorcycle(ctx, "m", func(m *models.Motorcycle) error {
		m.PriceUSD = 200
		return nil
	}))

	got, err := st.GetMotorcycle(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, 200.0, got.PriceUSD)

	err = st.UpdateMotorcycle(ctx, "missing", func(*models.Motorcycle) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := &models.User{ID: "u1", Email: "rider@example.com", Name: "Rider", Role: models.RoleUser}
	require.NoError(t, st.CreateUser(ctx, u))

	dup := &models.User{ID: "u2", Email: "RIDER@example.com", Name: "Other", Role: models.RoleUser}
	err := st.CreateUser(ctx, dup)
	require.ErrorIs(t, err, ErrConflict)

	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "rider@example.com", cerr.ID)
}

func TestGetUserByEmailCaseInsensitive(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateUser(ctx, &models.User{ID: "u1", Email: "Rider@Example.com", Role: models.RoleUser}))

	got, err := st.GetUserByEmail(ctx, "rider@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func TestSessionExpiryAndRevocation(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	expired := &models.Session{
		ID: "s-old", UserID: "u1", Kind: models.SessionKindBearer,
		IssuedAt: time.Now().Add(-8 * 24 * time.Hour), ExpiresAt: time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, st.CreateSession(ctx, expired))
	_, err := st.GetSession(ctx, "s-old")
	assert.ErrorIs(t, err, ErrNotFound)

	live := &models.Session{
		ID: "s-live", UserID: "u1", Kind: models.SessionKindBearer,
		IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, st.CreateSession(ctx, live))
	_, err = st.GetSession(ctx, "s-live")
	require.NoError(t, err)

	require.NoError(t, st.RevokeSession(ctx, "s-live"))
	_, err = st.GetSession(ctx, "s-live")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCleanupExpiredSessions(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateSession(ctx, &models.Session{
		ID: "dead", UserID: "u1", ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, st.CreateSession(ctx, &models.Session{
		ID: "alive", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour),
	}))

	n, err := st.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = st.GetSession(ctx, "alive")
	assert.NoError(t, err)
}

func TestJobSingleFlight(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	j1 := &models.UpdateJob{ID: "j1", StartTime: time.Now(), Status: models.JobRunning}
	require.NoError(t, st.StartJob(ctx, j1))

	j2 := &models.UpdateJob{ID: "j2", StartTime: time.Now(), Status: models.JobRunning}
	err := st.StartJob(ctx, j2)
	require.ErrorIs(t, err, ErrConflict)

	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "j1", cerr.ID)

	end := time.Now()
	j1.EndTime = &end
	j1.Status = models.JobCompleted
	require.NoError(t, st.FinishJob(ctx, j1))

	require.NoError(t, st.StartJob(ctx, j2))
}

func TestRunningJobID(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.RunningJobID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, st.StartJob(ctx, &models.UpdateJob{ID: "j1", StartTime: time.Now(), Status: models.JobRunning}))
	id, err = st.RunningJobID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "j1", id)
}

func TestCounterIncrement(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	n, err := st.IncrementCounter(ctx, "u1", models.CounterCommentsPosted)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = st.IncrementCounter(ctx, "u1", models.CounterCommentsPosted)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := st.GetCounter(ctx, "u1", models.CounterCommentsPosted)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	got, err = st.GetCounter(ctx, "u1", models.CounterRatingsGiven)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestFavoriteIdempotence(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	f := &models.Favorite{UserID: "u1", MotorcycleID: "m1", CreatedAt: time.Now()}
	require.NoError(t, st.SetFavorite(ctx, f))
	require.NoError(t, st.SetFavorite(ctx, f))

	has, err := st.HasFavorite(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, st.DeleteFavorite(ctx, "u1", "m1"))
	require.NoError(t, st.DeleteFavorite(ctx, "u1", "m1"))

	has, err = st.HasFavorite(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestListJobsNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		job := &models.UpdateJob{ID: id, StartTime: base.Add(time.Duration(i) * time.Minute), Status: models.JobRunning}
		require.NoError(t, st.StartJob(ctx, job))
		end := job.StartTime.Add(time.Second)
		job.EndTime = &end
		job.Status = models.JobCompleted
		require.NoError(t, st.FinishJob(ctx, job))
	}

	jobs, err := st.ListJobs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "c", jobs[0].ID)
	assert.Equal(t, "b", jobs[1].ID)
}
