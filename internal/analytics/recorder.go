// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package analytics records best-effort usage events. Handlers enqueue
// without blocking; a supervised drain loop persists events. Overflow is
// dropped and counted, never surfaced to the request.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/metrics"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

// Recorder is the fire-and-forget analytics pipeline.
type Recorder struct {
	store   *store.Store
	queue   chan *models.AnalyticsEvent
	enabled bool
}

// NewRecorder builds a recorder with a bounded queue.
func NewRecorder(st *store.Store, queueSize int, enabled bool) *Recorder {
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &Recorder{
		store:   st,
		queue:   make(chan *models.AnalyticsEvent, queueSize),
		enabled: enabled,
	}
}

// Record enqueues an event. Never blocks: a full queue drops the event
// and increments the drop counter.
func (r *Recorder) Record(userID, kind string, payload map[string]string) {
	if !r.enabled {
		return
	}

	e := &models.AnalyticsEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	select {
	case r.queue <- e:
	default:
		metrics.AnalyticsDropped.Inc()
	}
}

// Serve drains the queue until ctx is canceled, then flushes what is
// already buffered. Implements suture.Service.
func (r *Recorder) Serve(ctx context.Context) error {
	log := logging.WithComponent("analytics")

	for {
		select {
		case <-ctx.Done():
			r.flush()
			return ctx.Err()
		case e := <-r.queue:
			if err := r.store.AppendEvent(context.WithoutCancel(ctx), e); err != nil {
				log.Error().Err(err).Msg("analytics write failed")
			}
		}
	}
}

// flush persists events already buffered at shutdown.
func (r *Recorder) flush() {
	for {
		select {
		case e := <-r.queue:
			if err := r.store.AppendEvent(context.Background(), e); err != nil {
				return
			}
		default:
			return
		}
	}
}
