// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package interaction implements the user-interaction engine: favorites,
// ratings with derived aggregates, threaded comments with moderation, and
// achievement progression.
package interaction

import (
	"github.com/jparkin/motodex/internal/store"
)

// Service implements all interaction operations against the store.
type Service struct {
	store *store.Store
}

// NewService wires the interaction engine.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}
