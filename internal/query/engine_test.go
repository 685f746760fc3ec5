// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package query

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparkin/motodex/internal/config"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

// fakeCatalog serves a fixed slice, no database involved.
type fakeCatalog struct {
	records []*models.Motorcycle
}

func (f *fakeCatalog) ListMotorcycles(_ context.Context) ([]*models.Motorcycle, error) {
	return f.records, nil
}

func (f *fakeCatalog) GetMotorcycle(_ context.Context, id string) (*models.Motorcycle, error) {
	for _, m := range f.records {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, store.ErrNotFound
}

func testEngine(records ...*models.Motorcycle) *Engine {
	cfg := &config.APIConfig{DefaultPageSize: 25, MaxPageSize: 3000}
	return NewEngine(&fakeCatalog{records: records}, cfg)
}

func moto(id, maker, model string, year int, price float64) *models.Motorcycle {
	return &models.Motorcycle{
		ID:           id,
		Manufacturer: maker,
		Model:        model,
		Year:         year,
		Category:     models.CategorySport,
		PriceUSD:     price,
		Availability: models.AvailabilityAvailable,
	}
}

func TestDefaultSortIsYearDescPriceAsc(t *testing.T) {
	a := moto("a", "Honda", "A", 2024, 5000)
	b := moto("b", "Honda", "B", 2024, 3000)
	c := moto("c", "Honda", "C", 2023, 1000)
	e := testEngine(a, b, c)

	spec, err := ParseSort("default", "")
	require.NoError(t, err)

	list, p, err := e.List(context.Background(), &Filter{}, spec, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, 3, p.TotalCount)
	assert.Equal(t, 1, p.TotalPages)
}

func TestSortTiebreakByID(t *testing.T) {
	// Identical sort keys must still give a stable total order.
	a := moto("a", "Honda", "A", 2024, 5000)
	b := moto("b", "Honda", "B", 2024, 5000)
	e := testEngine(b, a)

	spec, err := ParseSort("price_usd", "asc")
	require.NoError(t, err)

	list, _, err := e.List(context.Background(), &Filter{}, spec, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}

func TestRegionExclusion(t *testing.T) {
	m := moto("m", "Honda", "M", 2024, 5000)
	m.AvailabilityByRegion = map[string]models.RegionalAvailability{
		"IN": {Status: models.AvailabilityNotInRegion},
		"US": {Status: models.AvailabilityAvailable},
	}
	e := testEngine(m)

	spec, _ := ParseSort("", "")

	list, _, err := e.List(context.Background(), &Filter{Region: "IN", HideUnavailable: true}, spec, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, _, err = e.List(context.Background(), &Filter{Region: "US", HideUnavailable: true}, spec, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.AvailabilityAvailable, list[0].Availability)
}

func TestRegionalOverrideDisplayed(t *testing.T) {
	m := moto("m", "Honda", "M", 2024, 5000)
	m.AvailabilityByRegion = map[string]models.RegionalAvailability{
		"IN": {Status: models.AvailabilityLimited},
	}
	e := testEngine(m)

	got, err := e.Get(context.Background(), "m", "IN")
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityLimited, got.Availability)

	got, err = e.Get(context.Background(), "m", "US")
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityAvailable, got.Availability)
}

func TestHideUnavailableExcludesDiscontinued(t *testing.T) {
	live := moto("live", "Honda", "Live", 2024, 5000)
	dead := moto("dead", "Honda", "Dead", 2024, 5000)
	dead.Availability = models.AvailabilityDiscontinued
	e := testEngine(live, dead)

	spec, _ := ParseSort("", "")
	list, _, err := e.List(context.Background(), &Filter{HideUnavailable: true}, spec, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "live", list[0].ID)
}

func TestListPageAndLimitValidation(t *testing.T) {
	e := testEngine(moto("a", "Honda", "A", 2024, 5000))
	spec, _ := ParseSort("", "")

	_, _, err := e.List(context.Background(), &Filter{}, spec, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, _, err = e.List(context.Background(), &Filter{}, spec, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidFilter)

	// Oversized limit clamps instead of failing.
	_, p, err := e.List(context.Background(), &Filter{}, spec, 1, 5000)
	require.NoError(t, err)
	assert.Equal(t, 3000, p.Limit)
}

func TestListOutOfRangePage(t *testing.T) {
	e := testEngine(moto("a", "Honda", "A", 2024, 5000))
	spec, _ := ParseSort("", "")

	list, p, err := e.List(context.Background(), &Filter{}, spec, 50, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, p.TotalCount)
	assert.Equal(t, 50, p.Page)
}

func TestSuggestPrefixBeforeSubstring(t *testing.T) {
	records := []*models.Motorcycle{
		moto("1", "Yamaha", "R1", 2024, 15000),
		moto("2", "Yamaha", "MT-09", 2023, 9000),
		moto("3", "Yam-Tech", "Bolt", 2024, 7000),
		moto("4", "Honda-Yamaha-Imports", "Classic", 2022, 4000),
	}
	e := testEngine(records...)
	e.Invalidate(context.Background())

	got := e.Suggest(context.Background(), "Ya", 3)
	require.Len(t, got, 3)
	assert.Equal(t, "Yamaha", got[0].Value)
	assert.Equal(t, "Yam-Tech", got[1].Value)
	assert.Equal(t, "Honda-Yamaha-Imports", got[2].Value)
	assert.Equal(t, "Yamaha (2)", got[0].DisplayText)
}

func TestSuggestLimitBounds(t *testing.T) {
	e := testEngine(moto("1", "Yamaha", "R1", 2024, 15000))
	e.Invalidate(context.Background())

	// Out-of-range limits fall back to the default of 10.
	assert.NotEmpty(t, e.Suggest(context.Background(), "ya", 0))
	assert.NotEmpty(t, e.Suggest(context.Background(), "ya", 99))
}

func TestSummaryCountsAndFeatured(t *testing.T) {
	a := moto("a", "Honda", "A", 2024, 5000)
	a.UserInterestScore = 10
	b := moto("b", "Honda", "B", 2024, 6000)
	b.UserInterestScore = 90
	c := moto("c", "Honda", "C", 2024, 7000)
	c.Category = models.CategoryCruiser
	e := testEngine(a, b, c)

	summary, err := e.Summary(context.Background(), "", false, 1)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, models.CategorySport, summary[0].Category)
	assert.Equal(t, 2, summary[0].Count)
	require.Len(t, summary[0].Featured, 1)
	assert.Equal(t, "b", summary[0].Featured[0].ID)
}

func TestOptionsRanges(t *testing.T) {
	e := testEngine(
		moto("a", "Honda", "A", 2020, 4000),
		moto("b", "Yamaha", "B", 2024, 16000),
	)

	opts, err := e.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Honda", "Yamaha"}, opts.Manufacturers)
	assert.Equal(t, [2]int{2020, 2024}, opts.YearRange)
	assert.Equal(t, [2]float64{4000, 16000}, opts.PriceRange)
}

func TestCompareMissingIDFails(t *testing.T) {
	e := testEngine(moto("a", "Honda", "A", 2024, 5000))

	_, err := e.Compare(context.Background(), []string{"a", "missing"}, "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestParseFilterRejectsBadInput(t *testing.T) {
	cases := []url.Values{
		{"category": {"Hoverbike"}},
		{"region": {"XX"}},
		{"price_min": {"abc"}},
		{"price_min": {"500"}, "price_max": {"100"}},
		{"year_min": {"-5"}},
		{"abs_available": {"maybe"}},
	}
	for i, v := range cases {
		_, err := ParseFilter(v)
		assert.ErrorIs(t, err, ErrInvalidFilter, fmt.Sprintf("case %d", i))
	}
}

func TestParseSortRejectsUnknownKey(t *testing.T) {
	_, err := ParseSort("popularity", "asc")
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = ParseSort("price", "sideways")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestPricingDeterministic(t *testing.T) {
	e := testEngine(moto("a", "Honda", "A", 2024, 10000))

	first, err := e.Pricing(context.Background(), "a", "US")
	require.NoError(t, err)
	second, err := e.Pricing(context.Background(), "a", "US")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.NotEmpty(t, first)

	for _, snap := range first {
		assert.InDelta(t, 10000, snap.PriceUSD, 10000*0.09)
		assert.Equal(t, "US", snap.Region)
	}
}

func TestPricingUnknownRegion(t *testing.T) {
	e := testEngine(moto("a", "Honda", "A", 2024, 10000))

	_, err := e.Pricing(context.Background(), "a", "ZZ")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
