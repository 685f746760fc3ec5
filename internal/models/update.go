// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package models

import "time"

// Update job status constants.
const (
	JobRunning   = "Running"
	JobCompleted = "Completed"
	JobFailed    = "Failed"
)

// UpdateStats accumulates what one daily-update run changed.
type UpdateStats struct {
	ManufacturersProcessed int `json:"manufacturers_processed"`
	RecordsUpdated         int `json:"records_updated"`
	PriceChanges           int `json:"price_changes"`
	SpecChanges            int `json:"spec_changes"`
	RegionalUpdates        int `json:"regional_updates"`
	Errors                 int `json:"errors"`
}

// UpdateJob is one run of the catalog reconciliation job. At most one job
// is Running at any time.
type UpdateJob struct {
	ID        string      `json:"id"`
	StartTime time.Time   `json:"start_time"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Status    string      `json:"status"`
	Stats     UpdateStats `json:"stats"`
	Error     string      `json:"error,omitempty"`
}
