// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package updater implements the daily catalog reconciliation job:
// per-manufacturer simulated feed fetches applied to the catalog under
// bounded parallelism, with single-flight job tracking.
package updater

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/models"
)

// RecordUpdate is one change from a manufacturer feed. Exactly one of the
// three update kinds is set per record per run.
type RecordUpdate struct {
	MotorcycleID string

	// PriceDelta is a multiplicative adjustment within ±15%.
	PriceDelta *float64

	// SpecDelta adjusts one numeric spec within ±5%.
	SpecField string
	SpecDelta float64

	// Regional sets or clears one availability-map entry.
	Region         string
	RegionalStatus string // empty clears the entry
	Rationale      string
}

// FeedClient fetches the simulated per-manufacturer update set. Calls go
// through a circuit breaker and a rate limiter so a misbehaving upstream
// degrades the job instead of hammering it.
type FeedClient struct {
	breaker *gobreaker.CircuitBreaker[[]RecordUpdate]
	limiter *rate.Limiter
	rng     *rand.Rand
}

// NewFeedClient builds a feed client. ratePerSecond bounds fetch pacing;
// zero disables pacing.
func NewFeedClient(ratePerSecond float64) *FeedClient {
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}

	breaker := gobreaker.NewCircuitBreaker[[]RecordUpdate](gobreaker.Settings{
		Name:        "manufacturer-feed",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("feed breaker state change")
		},
	})

	return &FeedClient{
		breaker: breaker,
		limiter: rate.NewLimiter(limit, 1),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Fetch returns the update set for one manufacturer's current records.
func (c *FeedClient) Fetch(ctx context.Context, manufacturer string, records []*models.Motorcycle) ([]RecordUpdate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	updates, err := c.breaker.Execute(func() ([]RecordUpdate, error) {
		return c.simulate(manufacturer, records), nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch feed for %s: %w", manufacturer, err)
	}
	return updates, nil
}

// simulate stands in for the real vendor feed. Roughly a third of a
// manufacturer's records change per run, split across price, spec, and
// regional updates.
func (c *FeedClient) simulate(manufacturer string, records []*models.Motorcycle) []RecordUpdate {
	var out []RecordUpdate
	for _, m := range records {
		if c.rng.Intn(3) != 0 {
			continue
		}

		u := RecordUpdate{MotorcycleID: m.ID}
		switch c.rng.Intn(3) {
		case 0:
			// ±15% price move.
			delta := (c.rng.Float64()*2 - 1) * 0.15
			u.PriceDelta = &delta
		case 1:
			// ±5% adjustment to one numeric spec.
			u.SpecField = specFields[c.rng.Intn(len(specFields))]
			u.SpecDelta = (c.rng.Float64()*2 - 1) * 0.05
		default:
			u.Region = models.KnownRegions[c.rng.Intn(len(models.KnownRegions))]
			if c.rng.Intn(4) == 0 {
				u.RegionalStatus = "" // clear the entry
			} else {
				u.RegionalStatus = regionalStatuses[c.rng.Intn(len(regionalStatuses))]
				u.Rationale = "vendor feed update"
			}
		}
		out = append(out, u)
	}
	return out
}

// specFields are the numeric specs the feed may adjust.
var specFields = []string{
	"horsepower", "torque_nm", "top_speed_kmh", "weight_kg",
	"fuel_capacity_l", "mileage_kmpl",
}

var regionalStatuses = []string{
	models.AvailabilityAvailable,
	models.AvailabilityLimited,
	models.AvailabilityNotInRegion,
}
