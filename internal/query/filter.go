// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package query implements the catalog query engine: filter compilation,
// deterministic sorting, pagination, typeahead suggestions, and category
// summaries.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jparkin/motodex/internal/models"
)

// ErrInvalidFilter indicates an unparseable or out-of-range filter field.
var ErrInvalidFilter = errors.New("invalid filter")

// InvalidFilterError names the offending field for the 400 response.
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter field %q: %s", e.Field, e.Reason)
}

func (e *InvalidFilterError) Unwrap() error { return ErrInvalidFilter }

func invalidField(field, reason string) error {
	return &InvalidFilterError{Field: field, Reason: reason}
}

// numericRange is a closed interval filter on one numeric spec.
type numericRange struct {
	min *float64
	max *float64
}

func (r numericRange) matches(v float64) bool {
	if r.min != nil && v < *r.min {
		return false
	}
	if r.max != nil && v > *r.max {
		return false
	}
	return true
}

func (r numericRange) active() bool { return r.min != nil || r.max != nil }

// Filter is a compiled filter specification. All set fields combine with
// AND.
type Filter struct {
	Search       string
	Manufacturer string
	Category     string
	Feature      string

	Year            numericRange
	Price           numericRange
	Displacement    numericRange
	Horsepower      numericRange
	Mileage         numericRange
	GroundClearance numericRange
	SeatHeight      numericRange

	Transmission  string
	BrakingSystem string
	FuelType      string
	ABS           *bool

	HideUnavailable bool
	Region          string
}

// ParseFilter compiles query parameters into a Filter, validating enums
// and numerics. Empty and whitespace-only values are ignored.
func ParseFilter(values url.Values) (*Filter, error) {
	f := &Filter{
		Search:        strings.TrimSpace(values.Get("search")),
		Manufacturer:  strings.TrimSpace(values.Get("manufacturer")),
		Category:      strings.TrimSpace(values.Get("category")),
		Feature:       strings.TrimSpace(values.Get("features")),
		Transmission:  strings.TrimSpace(values.Get("transmission_type")),
		BrakingSystem: strings.TrimSpace(values.Get("braking_system")),
		FuelType:      strings.TrimSpace(values.Get("fuel_type")),
		Region:        strings.ToUpper(strings.TrimSpace(values.Get("region"))),
	}

	if f.Category != "" && !models.IsValidCategory(f.Category) {
		return nil, invalidField("category", "unknown category")
	}
	if f.Region != "" && !models.IsKnownRegion(f.Region) {
		return nil, invalidField("region", "unknown region code")
	}

	var err error
	if f.Year, err = parseRange(values, "year_min", "year_max"); err != nil {
		return nil, err
	}
	if f.Price, err = parseRange(values, "price_min", "price_max"); err != nil {
		return nil, err
	}
	if f.Displacement, err = parseRange(values, "displacement_min", "displacement_max"); err != nil {
		return nil, err
	}
	if f.Horsepower, err = parseRange(values, "horsepower_min", "horsepower_max"); err != nil {
		return nil, err
	}
	if f.Mileage, err = parseRange(values, "mileage_min", "mileage_max"); err != nil {
		return nil, err
	}
	if f.GroundClearance, err = parseRange(values, "ground_clearance_min", "ground_clearance_max"); err != nil {
		return nil, err
	}
	if f.SeatHeight, err = parseRange(values, "seat_height_min", "seat_height_max"); err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(values.Get("abs_available")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, invalidField("abs_available", "not a boolean")
		}
		f.ABS = &b
	}
	if raw := strings.TrimSpace(values.Get("hide_unavailable")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, invalidField("hide_unavailable", "not a boolean")
		}
		f.HideUnavailable = b
	}

	return f, nil
}

func parseRange(values url.Values, minKey, maxKey string) (numericRange, error) {
	var r numericRange
	if raw := strings.TrimSpace(values.Get(minKey)); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return r, invalidField(minKey, "not a number")
		}
		if v < 0 {
			return r, invalidField(minKey, "negative")
		}
		r.min = &v
	}
	if raw := strings.TrimSpace(values.Get(maxKey)); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return r, invalidField(maxKey, "not a number")
		}
		if v < 0 {
			return r, invalidField(maxKey, "negative")
		}
		r.max = &v
	}
	if r.min != nil && r.max != nil && *r.min > *r.max {
		return r, invalidField(minKey, "min exceeds max")
	}
	return r, nil
}

// Matches evaluates the filter against one record.
func (f *Filter) Matches(m *models.Motorcycle) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.Manufacturer), needle) &&
			!strings.Contains(strings.ToLower(m.Model), needle) &&
			!strings.Contains(strings.ToLower(m.Description), needle) {
			return false
		}
	}
	if f.Manufacturer != "" && !strings.EqualFold(m.Manufacturer, f.Manufacturer) {
		return false
	}
	if f.Category != "" && m.Category != f.Category {
		return false
	}
	if f.Feature != "" && !m.HasSpecialisation(f.Feature) {
		return false
	}

	if f.Year.active() && !f.Year.matches(float64(m.Year)) {
		return false
	}
	if f.Price.active() && !f.Price.matches(m.PriceUSD) {
		return false
	}
	if f.Displacement.active() && !f.Displacement.matches(m.Specs.DisplacementCC) {
		return false
	}
	if f.Horsepower.active() && !f.Horsepower.matches(m.Specs.Horsepower) {
		return false
	}
	if f.Mileage.active() && !f.Mileage.matches(m.Specs.MileageKmpl) {
		return false
	}
	if f.GroundClearance.active() && !f.GroundClearance.matches(m.Specs.GroundClearanceMm) {
		return false
	}
	if f.SeatHeight.active() && !f.SeatHeight.matches(m.Specs.SeatHeightMm) {
		return false
	}

	if f.Transmission != "" && !strings.EqualFold(m.Specs.Transmission, f.Transmission) {
		return false
	}
	if f.BrakingSystem != "" && !strings.EqualFold(m.Specs.BrakingSystem, f.BrakingSystem) {
		return false
	}
	if f.FuelType != "" && !strings.EqualFold(m.Specs.FuelType, f.FuelType) {
		return false
	}
	if f.ABS != nil && m.Specs.ABS != *f.ABS {
		return false
	}

	if f.HideUnavailable {
		if m.Availability == models.AvailabilityDiscontinued {
			return false
		}
		if f.Region != "" && m.AvailabilityIn(f.Region) == models.AvailabilityNotInRegion {
			return false
		}
	}

	return true
}
