// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/jparkin/motodex/internal/models"
)

// rebuildSuggestions reloads the trie from the corpus: one entry per
// distinct manufacturer and per distinct model, counted by matching
// records.
func (e *Engine) rebuildSuggestions(ctx context.Context) error {
	all, err := e.store.ListMotorcycles(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	manufacturers := make(map[string]int)
	modelCounts := make(map[string]int)
	display := make(map[string]string)
	for _, m := range all {
		if m.Manufacturer != "" {
			key := strings.ToLower(m.Manufacturer)
			manufacturers[key]++
			display["m:"+key] = m.Manufacturer
		}
		if m.Model != "" {
			key := strings.ToLower(m.Model)
			modelCounts[key]++
			display["d:"+key] = m.Model
		}
	}

	e.trie.Clear()
	for key, count := range manufacturers {
		e.trie.Upsert(display["m:"+key], models.SuggestionManufacturer, count)
	}
	for key, count := range modelCounts {
		e.trie.Upsert(display["d:"+key], models.SuggestionModel, count)
	}
	return nil
}

// Suggest returns at most limit typeahead suggestions for q. Exact prefix
// matches rank before substring matches; within each class the order is
// count descending, then alphabetical.
func (e *Engine) Suggest(ctx context.Context, q string, limit int) []models.Suggestion {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	if limit <= 0 || limit > 25 {
		limit = 10
	}

	entries := e.trie.PrefixMatches(q, limit)
	if len(entries) < limit {
		entries = append(entries, e.trie.SubstringMatches(q, limit-len(entries))...)
	}

	out := make([]models.Suggestion, 0, len(entries))
	for _, entry := range entries {
		out = append(out, models.Suggestion{
			Value:       entry.Value,
			Type:        entry.Kind,
			Count:       entry.Count,
			DisplayText: fmt.Sprintf("%s (%d)", entry.Value, entry.Count),
		})
	}
	return out
}
