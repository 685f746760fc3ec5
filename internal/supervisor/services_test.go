// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

func TestSessionJanitorRemovesExpired(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	ctx := context.Background()

	require.NoError(t, st.CreateSession(ctx, &models.Session{
		ID: "dead", UserID: "u1", ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, st.CreateSession(ctx, &models.Session{
		ID: "alive", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour),
	}))

	j := NewSessionJanitor(st, 10*time.Millisecond)
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- j.Serve(runCtx) }()

	require.Eventually(t, func() bool {
		// The expired row is invisible through GetSession either way;
		// the janitor physically deleting it leaves nothing to clean.
		n, err := st.CleanupExpiredSessions(ctx)
		return err == nil && n == 0
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	_, err = st.GetSession(ctx, "alive")
	assert.NoError(t, err)
}

func TestSessionJanitorDefaultInterval(t *testing.T) {
	j := NewSessionJanitor(nil, 0)
	assert.Equal(t, time.Hour, j.interval)
}
