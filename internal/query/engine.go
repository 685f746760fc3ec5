// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jparkin/motodex/internal/cache"
	"github.com/jparkin/motodex/internal/config"
	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/metrics"
	"github.com/jparkin/motodex/internal/models"
)

// CatalogStore is the slice of the store the query engine reads.
type CatalogStore interface {
	ListMotorcycles(ctx context.Context) ([]*models.Motorcycle, error)
	GetMotorcycle(ctx context.Context, id string) (*models.Motorcycle, error)
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
	Limit      int `json:"limit"`
}

// Engine answers all catalog read queries. Listings and summaries come
// from the same full-corpus scan, so counts agree across endpoints. The
// suggestion trie and the options cache are rebuilt or purged whenever the
// catalog mutates.
type Engine struct {
	store   CatalogStore
	trie    *cache.SuggestionTrie
	results *cache.LRUCache
	cfg     *config.APIConfig
}

// NewEngine wires the query engine.
func NewEngine(st CatalogStore, cfg *config.APIConfig) *Engine {
	return &Engine{
		store:   st,
		trie:    cache.NewSuggestionTrie(),
		results: cache.NewLRUCache(256, 5*time.Minute),
		cfg:     cfg,
	}
}

// List filters, sorts, and paginates the catalog. limit above the
// configured maximum clamps; page or limit below 1 is invalid.
// Out-of-range pages return an empty page with correct totals. When a
// region is selected, each returned record's availability reflects its
// regional override.
func (e *Engine) List(ctx context.Context, f *Filter, s SortSpec, page, limit int) ([]models.Motorcycle, Pagination, error) {
	if page <= 0 {
		return nil, Pagination{}, invalidField("page", "must be positive")
	}
	if limit <= 0 {
		return nil, Pagination{}, invalidField("limit", "must be positive")
	}
	if limit > e.cfg.MaxPageSize {
		limit = e.cfg.MaxPageSize
	}

	all, err := e.store.ListMotorcycles(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}

	matched := make([]*models.Motorcycle, 0, len(all))
	for _, m := range all {
		if f.Matches(m) {
			matched = append(matched, m)
		}
	}
	s.Apply(matched)

	total := len(matched)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]models.Motorcycle, 0, end-start)
	for _, m := range matched[start:end] {
		out = append(out, e.displayed(m, f.Region))
	}

	return out, Pagination{Page: page, TotalPages: totalPages, TotalCount: total, Limit: limit}, nil
}

// Get returns one record with regional display applied.
func (e *Engine) Get(ctx context.Context, id, region string) (*models.Motorcycle, error) {
	m, err := e.store.GetMotorcycle(ctx, id)
	if err != nil {
		return nil, err
	}
	d := e.displayed(m, region)
	return &d, nil
}

// displayed copies a record and resolves its region-specific availability.
func (e *Engine) displayed(m *models.Motorcycle, region string) models.Motorcycle {
	out := *m
	if region != "" {
		out.Availability = m.AvailabilityIn(region)
	}
	return out
}

// Summary returns per-category counts and the top-k featured records by
// user interest score. Cached per (region, hide) pair.
func (e *Engine) Summary(ctx context.Context, region string, hideUnavailable bool, topK int) ([]models.CategorySummary, error) {
	if topK <= 0 {
		topK = 3
	}
	cacheKey := fmt.Sprintf("summary:%s:%t:%d", region, hideUnavailable, topK)
	if v, ok := e.results.Get(cacheKey); ok {
		return v.([]models.CategorySummary), nil
	}

	f := &Filter{Region: region, HideUnavailable: hideUnavailable}
	all, err := e.store.ListMotorcycles(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]*models.Motorcycle)
	for _, m := range all {
		if f.Matches(m) {
			byCategory[m.Category] = append(byCategory[m.Category], m)
		}
	}

	out := make([]models.CategorySummary, 0, len(models.Categories))
	for _, cat := range models.Categories {
		group := byCategory[cat]
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			if group[i].UserInterestScore != group[j].UserInterestScore {
				return group[i].UserInterestScore > group[j].UserInterestScore
			}
			return group[i].ID < group[j].ID
		})

		k := topK
		if k > len(group) {
			k = len(group)
		}
		featured := make([]models.Motorcycle, 0, k)
		for _, m := range group[:k] {
			featured = append(featured, e.displayed(m, region))
		}
		out = append(out, models.CategorySummary{Category: cat, Count: len(group), Featured: featured})
	}

	e.results.Add(cacheKey, out)
	return out, nil
}

// Options computes distinct manufacturers, categories, and year/price
// ranges from the live corpus. Cached until the next catalog mutation.
func (e *Engine) Options(ctx context.Context) (*models.FilterOptions, error) {
	if v, ok := e.results.Get("options"); ok {
		return v.(*models.FilterOptions), nil
	}

	all, err := e.store.ListMotorcycles(ctx)
	if err != nil {
		return nil, err
	}

	manufacturers := make(map[string]struct{})
	categories := make(map[string]struct{})
	opts := &models.FilterOptions{}
	for i, m := range all {
		manufacturers[m.Manufacturer] = struct{}{}
		categories[m.Category] = struct{}{}
		if i == 0 {
			opts.YearRange = [2]int{m.Year, m.Year}
			opts.PriceRange = [2]float64{m.PriceUSD, m.PriceUSD}
			continue
		}
		if m.Year < opts.YearRange[0] {
			opts.YearRange[0] = m.Year
		}
		if m.Year > opts.YearRange[1] {
			opts.YearRange[1] = m.Year
		}
		if m.PriceUSD < opts.PriceRange[0] {
			opts.PriceRange[0] = m.PriceUSD
		}
		if m.PriceUSD > opts.PriceRange[1] {
			opts.PriceRange[1] = m.PriceUSD
		}
	}

	opts.Manufacturers = sortedKeys(manufacturers)
	for _, cat := range models.Categories {
		if _, ok := categories[cat]; ok {
			opts.Categories = append(opts.Categories, cat)
		}
	}

	e.results.Add("options", opts)
	return opts, nil
}

// Features returns the distinct specialisation tags across the corpus.
func (e *Engine) Features(ctx context.Context) ([]string, error) {
	if v, ok := e.results.Get("features"); ok {
		return v.([]string), nil
	}

	all, err := e.store.ListMotorcycles(ctx)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{})
	for _, m := range all {
		for _, tag := range m.Specialisations {
			set[tag] = struct{}{}
		}
	}
	out := sortedKeys(set)

	e.results.Add("features", out)
	return out, nil
}

// Compare returns the selected records in request order for side-by-side
// display. Any missing ID fails the whole call.
func (e *Engine) Compare(ctx context.Context, ids []string, region string) ([]models.Motorcycle, error) {
	out := make([]models.Motorcycle, 0, len(ids))
	for _, id := range ids {
		m, err := e.store.GetMotorcycle(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, e.displayed(m, region))
	}
	return out, nil
}

// Invalidate purges result caches and rebuilds the suggestion index.
// Called after any catalog mutation (seed, scheduler run, admin edit).
func (e *Engine) Invalidate(ctx context.Context) {
	e.results.Purge()
	if err := e.rebuildSuggestions(ctx); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("suggestion index rebuild failed")
		return
	}
	metrics.SuggestionIndexSize.Set(float64(e.trie.Size()))
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
