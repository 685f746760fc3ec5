// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

func newTestRecorder(t *testing.T, queueSize int, enabled bool) (*Recorder, *store.Store) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewRecorder(st, queueSize, enabled), st
}

func TestRecordDisabledIsNoop(t *testing.T) {
	r, _ := newTestRecorder(t, 4, false)
	r.Record("u1", models.EventSearch, nil)
	assert.Empty(t, r.queue)
}

func TestRecordDropsOnFullQueue(t *testing.T) {
	r, _ := newTestRecorder(t, 1, true)

	r.Record("u1", models.EventSearch, nil)
	r.Record("u1", models.EventSearch, nil) // dropped, queue is full
	assert.Len(t, r.queue, 1)
}

func TestServePersistsAndFlushes(t *testing.T) {
	r, st := newTestRecorder(t, 8, true)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx) }()

	r.Record("u1", models.EventSearch, map[string]string{"q": "honda"})
	r.Record("u1", models.EventPageView, nil)

	require.Eventually(t, func() bool {
		events, err := st.ListRecentEvents(context.Background(), 10)
		return err == nil && len(events) == 2
	}, 5*time.Second, 10*time.Millisecond)

	// Buffered events survive shutdown via the final flush.
	r.Record("u2", models.EventAction, nil)
	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)

	events, err := st.ListRecentEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(events), 2)
}
