// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package updater

import (
	"context"
	"sort"

	"github.com/jparkin/motodex/internal/models"
)

// JobStatus returns one job record.
func (s *Scheduler) JobStatus(ctx context.Context, id string) (*models.UpdateJob, error) {
	return s.store.GetJob(ctx, id)
}

// History returns past jobs newest-first, at most limit (0 = all).
func (s *Scheduler) History(ctx context.Context, limit int) ([]*models.UpdateJob, error) {
	return s.store.ListJobs(ctx, limit)
}

// RegionalCustomization is one record's availability override for a
// region.
type RegionalCustomization struct {
	MotorcycleID string `json:"motorcycle_id"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Status       string `json:"status"`
	Rationale    string `json:"rationale,omitempty"`
}

// RegionalCustomizations lists the catalog records carrying an
// availability override for the region.
func (s *Scheduler) RegionalCustomizations(ctx context.Context, region string) ([]RegionalCustomization, error) {
	all, err := s.store.ListMotorcycles(ctx)
	if err != nil {
		return nil, err
	}

	var out []RegionalCustomization
	for _, m := range all {
		if ra, ok := m.AvailabilityByRegion[region]; ok {
			out = append(out, RegionalCustomization{
				MotorcycleID: m.ID,
				Manufacturer: m.Manufacturer,
				Model:        m.Model,
				Status:       ra.Status,
				Rationale:    ra.Rationale,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MotorcycleID < out[j].MotorcycleID
	})
	return out, nil
}
