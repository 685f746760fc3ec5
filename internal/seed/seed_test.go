// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparkin/motodex/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestLoadWritesFullCorpus(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	want := 0
	for _, mf := range manufacturers {
		want += len(mf.Series)
	}

	n, err := Load(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, want, n)

	count, err := st.CountMotorcycles(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, count)

	achievements, err := st.ListAchievements(ctx)
	require.NoError(t, err)
	assert.Len(t, achievements, 9)
}

func TestLoadInterestScoresInRange(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := Load(ctx, st)
	require.NoError(t, err)

	all, err := st.ListMotorcycles(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)
	for _, m := range all {
		assert.GreaterOrEqual(t, m.UserInterestScore, 0, "motorcycle %s", m.ID)
		assert.LessOrEqual(t, m.UserInterestScore, 100, "motorcycle %s", m.ID)
	}
}

func TestReseedIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := Load(ctx, st)
	require.NoError(t, err)
	first, err := st.CountMotorcycles(ctx)
	require.NoError(t, err)

	// Slug-derived IDs make a second load overwrite in place.
	_, err = Load(ctx, st)
	require.NoError(t, err)
	second, err := st.CountMotorcycles(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadIfEmptySkipsPopulatedCatalog(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	n, err := LoadIfEmpty(ctx, st)
	require.NoError(t, err)
	assert.Positive(t, n)

	n, err = LoadIfEmpty(ctx, st)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "bmw-motorrad", slug("BMW Motorrad"))
	assert.Equal(t, "cbr1000rr-r", slug("CBR1000RR-R"))
	assert.Equal(t, "classic-350i", slug("Classic 350i"))
}
