// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package updater

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jparkin/motodex/internal/config"
	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/metrics"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/query"
	"github.com/jparkin/motodex/internal/store"
)

// errCanceled marks a cooperative cancellation requested by an admin.
var errCanceled = errors.New("canceled")

// Scheduler runs the daily catalog reconciliation. One job at a time:
// the store's running-job marker is the single-flight gate, so triggers
// from the timer and the admin endpoint cannot overlap.
type Scheduler struct {
	store *store.Store
	feed  *FeedClient
	query *query.Engine
	cfg   *config.UpdaterConfig

	mu            sync.Mutex
	runningCancel context.CancelFunc
}

// NewScheduler wires the update scheduler.
func NewScheduler(st *store.Store, feed *FeedClient, qe *query.Engine, cfg *config.UpdaterConfig) *Scheduler {
	return &Scheduler{store: st, feed: feed, query: qe, cfg: cfg}
}

// Serve runs the time-based trigger until ctx is canceled. Implements
// suture.Service.
func (s *Scheduler) Serve(ctx context.Context) error {
	if !s.cfg.Enabled {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Run(ctx); err != nil {
				if errors.Is(err, store.ErrConflict) {
					logging.Warn().Msg("scheduled update skipped, job already running")
					continue
				}
				logging.Error().Err(err).Msg("scheduled update failed to start")
			}
		}
	}
}

// Run starts a new update job and returns its ID immediately. A running
// job rejects the trigger with store.ConflictError carrying its ID.
func (s *Scheduler) Run(ctx context.Context) (string, error) {
	job := &models.UpdateJob{
		ID:        uuid.New().String(),
		StartTime: time.Now(),
		Status:    models.JobRunning,
	}
	if err := s.store.StartJob(ctx, job); err != nil {
		return "", err
	}

	// The job outlives the triggering request.
	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Lock()
	s.runningCancel = cancel
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.runningCancel = nil
			s.mu.Unlock()
			cancel()
		}()
		s.execute(jobCtx, job)
	}()

	return job.ID, nil
}

// Cancel requests cooperative cancellation of the running job. Returns
// false when no job is running.
func (s *Scheduler) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runningCancel == nil {
		return false
	}
	s.runningCancel()
	return true
}

// execute drives one job to a terminal state.
func (s *Scheduler) execute(ctx context.Context, job *models.UpdateJob) {
	log := logging.WithComponent("updater")
	log.Info().Str("job_id", job.ID).Msg("update job started")

	err := s.reconcile(ctx, job)

	now := time.Now()
	job.EndTime = &now
	switch {
	case errors.Is(err, errCanceled) || errors.Is(err, context.Canceled):
		job.Status = models.JobFailed
		job.Error = "canceled"
	case err != nil:
		job.Status = models.JobFailed
		job.Error = err.Error()
	default:
		job.Status = models.JobCompleted
	}

	if ferr := s.store.FinishJob(context.WithoutCancel(ctx), job); ferr != nil {
		log.Error().Err(ferr).Str("job_id", job.ID).Msg("failed to finalize job record")
	}
	metrics.UpdateJobsRun.WithLabelValues(job.Status).Inc()

	// Listings, summaries, and suggestions must see the new catalog.
	s.query.Invalidate(context.WithoutCancel(ctx))

	log.Info().
		Str("job_id", job.ID).
		Str("status", job.Status).
		Int("records_updated", job.Stats.RecordsUpdated).
		Msg("update job finished")
}

// reconcile processes every manufacturer with bounded parallelism,
// checking for cancellation between dispatches. Per-manufacturer failures
// count as errors in the stats without failing the job.
func (s *Scheduler) reconcile(ctx context.Context, job *models.UpdateJob) error {
	all, err := s.store.ListMotorcycles(ctx)
	if err != nil {
		return err
	}

	byManufacturer := make(map[string][]*models.Motorcycle)
	for _, m := range all {
		byManufacturer[m.Manufacturer] = append(byManufacturer[m.Manufacturer], m)
	}
	manufacturers := make([]string, 0, len(byManufacturer))
	for name := range byManufacturer {
		manufacturers = append(manufacturers, name)
	}
	sort.Strings(manufacturers)

	var statsMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for _, name := range manufacturers {
		if err := ctx.Err(); err != nil {
			// Drain in-flight workers, then surface the cancel.
			if werr := g.Wait(); werr != nil && !errors.Is(werr, context.Canceled) {
				return werr
			}
			return errCanceled
		}

		records := byManufacturer[name]
		g.Go(func() error {
			stats, err := s.applyManufacturer(gctx, name, records)
			statsMu.Lock()
			defer statsMu.Unlock()
			job.Stats.ManufacturersProcessed++
			if err != nil {
				job.Stats.Errors++
				logging.Error().Err(err).Str("manufacturer", name).Msg("manufacturer update failed")
				return nil
			}
			job.Stats.RecordsUpdated += stats.RecordsUpdated
			job.Stats.PriceChanges += stats.PriceChanges
			job.Stats.SpecChanges += stats.SpecChanges
			job.Stats.RegionalUpdates += stats.RegionalUpdates
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errCanceled
	}

	// Persist accumulated stats mid-flight readers can see.
	return s.store.UpdateJobRecord(ctx, job)
}

// applyManufacturer fetches and applies one manufacturer's update set.
func (s *Scheduler) applyManufacturer(ctx context.Context, name string, records []*models.Motorcycle) (models.UpdateStats, error) {
	var stats models.UpdateStats

	updates, err := s.feed.Fetch(ctx, name, records)
	if err != nil {
		return stats, err
	}

	for _, u := range updates {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := s.applyUpdate(ctx, u); err != nil {
			return stats, err
		}
		stats.RecordsUpdated++
		switch {
		case u.PriceDelta != nil:
			stats.PriceChanges++
			metrics.UpdateRecordsChanged.WithLabelValues("price").Inc()
		case u.SpecField != "":
			stats.SpecChanges++
			metrics.UpdateRecordsChanged.WithLabelValues("spec").Inc()
		default:
			stats.RegionalUpdates++
			metrics.UpdateRecordsChanged.WithLabelValues("regional").Inc()
		}
	}
	return stats, nil
}

// applyUpdate rewrites one record in place. Readers observe either the
// old or the new document; no catalog-wide lock is taken.
func (s *Scheduler) applyUpdate(ctx context.Context, u RecordUpdate) error {
	return s.store.UpdateMotorcycle(ctx, u.MotorcycleID, func(m *models.Motorcycle) error {
		now := time.Now()
		m.LastUpdatedAt = &now

		switch {
		case u.PriceDelta != nil:
			m.PriceUSD = roundCents(m.PriceUSD * (1 + *u.PriceDelta))
		case u.SpecField != "":
			adjustSpec(&m.Specs, u.SpecField, u.SpecDelta)
		case u.Region != "":
			if u.RegionalStatus == "" {
				delete(m.AvailabilityByRegion, u.Region)
			} else {
				if m.AvailabilityByRegion == nil {
					m.AvailabilityByRegion = make(map[string]models.RegionalAvailability)
				}
				m.AvailabilityByRegion[u.Region] = models.RegionalAvailability{
					Status:    u.RegionalStatus,
					Rationale: u.Rationale,
				}
			}
		}
		return nil
	})
}

func adjustSpec(specs *models.Specs, field string, delta float64) {
	apply := func(v float64) float64 { return v * (1 + delta) }
	switch field {
	case "horsepower":
		specs.Horsepower = apply(specs.Horsepower)
	case "torque_nm":
		specs.TorqueNm = apply(specs.TorqueNm)
	case "top_speed_kmh":
		specs.TopSpeedKmh = apply(specs.TopSpeedKmh)
	case "weight_kg":
		specs.WeightKg = apply(specs.WeightKg)
	case "fuel_capacity_l":
		specs.FuelCapacityL = apply(specs.FuelCapacityL)
	case "mileage_kmpl":
		specs.MileageKmpl = apply(specs.MileageKmpl)
	}
}

func roundCents(v float64) float64 {
	if v < 0 {
		v = 0
	}
	return float64(int64(v*100+0.5)) / 100
}
