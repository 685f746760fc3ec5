// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package models

import "time"

// Analytics event kind constants.
const (
	EventSearch          = "Search"
	EventPageView        = "PageView"
	EventAction          = "Action"
	EventMotorcycleClick = "MotorcycleClick"
)

// IsValidEventKind checks whether an event kind is recognized.
func IsValidEventKind(kind string) bool {
	switch kind {
	case EventSearch, EventPageView, EventAction, EventMotorcycleClick:
		return true
	default:
		return false
	}
}

// AnalyticsEvent is a best-effort usage event. Writes never fail a
// request; overflow is dropped.
type AnalyticsEvent struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id,omitempty"`
	Kind      string            `json:"kind"`
	Payload   map[string]string `json:"payload,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
