// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package query

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"github.com/jparkin/motodex/internal/models"
)

// pricingVendors are the simulated vendors quoted by the pricing endpoint.
var pricingVendors = []string{"MotoDirect", "RideNow", "CycleHub", "TwoWheel Traders"}

// Pricing returns per-vendor price snapshots for one motorcycle in a
// region. Snapshots derive deterministically from the record's base price
// and last update, so they are stable between daily-update runs without
// storing per-vendor rows.
func (e *Engine) Pricing(ctx context.Context, id, region string) ([]models.PriceSnapshot, error) {
	if region == "" {
		region = "US"
	}
	if !models.IsKnownRegion(region) {
		return nil, invalidField("region", "unknown region code")
	}

	m, err := e.store.GetMotorcycle(ctx, id)
	if err != nil {
		return nil, err
	}

	capturedAt := m.CreatedAt
	if m.LastUpdatedAt != nil {
		capturedAt = *m.LastUpdatedAt
	}

	out := make([]models.PriceSnapshot, 0, len(pricingVendors))
	for _, vendor := range pricingVendors {
		offset, stocked := vendorOffset(m.ID, vendor, region, capturedAt)
		price := math.Round(m.PriceUSD*(1+offset)*100) / 100
		out = append(out, models.PriceSnapshot{
			Vendor:     vendor,
			Region:     region,
			PriceUSD:   price,
			InStock:    stocked,
			CapturedAt: capturedAt,
		})
	}
	return out, nil
}

// vendorOffset hashes (id, vendor, region, capture time) into a price
// offset within ±8% and a stock flag.
func vendorOffset(id, vendor, region string, capturedAt time.Time) (float64, bool) {
	h := fnv.New64a()
	h.Write([]byte(id))
	h.Write([]byte(vendor))
	h.Write([]byte(region))
	h.Write([]byte(capturedAt.UTC().Format(time.RFC3339)))
	sum := h.Sum64()

	// Map hash to [-0.08, +0.08].
	offset := (float64(sum%1600)/1600 - 0.5) * 0.16
	stocked := sum%10 != 0
	return offset, stocked
}
