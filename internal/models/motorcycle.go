// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package models provides data models for the application.
package models

import "time"

// Category constants for the motorcycle catalog.
const (
	CategorySport     = "Sport"
	CategoryCruiser   = "Cruiser"
	CategoryTouring   = "Touring"
	CategoryAdventure = "Adventure"
	CategoryNaked     = "Naked"
	CategoryVintage   = "Vintage"
	CategoryScooter   = "Scooter"
	CategoryStandard  = "Standard"
	CategoryEnduro    = "Enduro"
	CategoryMotocross = "Motocross"
)

// Categories lists every recognized category in display order.
var Categories = []string{
	CategorySport, CategoryCruiser, CategoryTouring, CategoryAdventure,
	CategoryNaked, CategoryVintage, CategoryScooter, CategoryStandard,
	CategoryEnduro, CategoryMotocross,
}

// IsValidCategory checks whether a category is recognized.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Availability constants for global and per-region status.
const (
	AvailabilityAvailable    = "Available"
	AvailabilityLimited      = "Limited"
	AvailabilityDiscontinued = "Discontinued"
	AvailabilityNotInRegion  = "NotAvailableInRegion"
)

// IsValidAvailability checks whether an availability status is recognized.
func IsValidAvailability(status string) bool {
	switch status {
	case AvailabilityAvailable, AvailabilityLimited, AvailabilityDiscontinued, AvailabilityNotInRegion:
		return true
	default:
		return false
	}
}

// KnownRegions lists the ISO-3166-style region codes the availability map
// and pricing snapshots accept.
var KnownRegions = []string{"US", "IN", "GB", "DE", "FR", "IT", "JP", "AU", "BR", "CA"}

// IsKnownRegion checks whether a region code is recognized.
func IsKnownRegion(code string) bool {
	for _, r := range KnownRegions {
		if r == code {
			return true
		}
	}
	return false
}

// Specs holds the technical specification sheet of a motorcycle.
type Specs struct {
	DisplacementCC    float64 `json:"displacement_cc"`
	Horsepower        float64 `json:"horsepower"`
	TorqueNm          float64 `json:"torque_nm"`
	TopSpeedKmh       float64 `json:"top_speed_kmh"`
	WeightKg          float64 `json:"weight_kg"`
	FuelCapacityL     float64 `json:"fuel_capacity_l"`
	MileageKmpl       float64 `json:"mileage_kmpl"`
	Transmission      string  `json:"transmission"`
	GearCount         int     `json:"gear_count"`
	GroundClearanceMm float64 `json:"ground_clearance_mm"`
	SeatHeightMm      float64 `json:"seat_height_mm"`
	ABS               bool    `json:"abs"`
	BrakingSystem     string  `json:"braking_system"`
	Suspension        string  `json:"suspension"`
	TyreType          string  `json:"tyre_type"`
	WheelSizeIn       float64 `json:"wheel_size_in"`
	HeadlightType     string  `json:"headlight_type"`
	FuelType          string  `json:"fuel_type"`
}

// RegionalAvailability is one entry of the per-region availability map.
type RegionalAvailability struct {
	Status    string `json:"status"`
	Rationale string `json:"rationale,omitempty"`
}

// Motorcycle is a catalog record. Records are created by seeding or the
// update scheduler and are never physically deleted.
type Motorcycle struct {
	ID           string  `json:"id"`
	Manufacturer string  `json:"manufacturer"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url,omitempty"`
	PriceUSD     float64 `json:"price_usd"`
	Availability string  `json:"availability"`
	Specs        Specs   `json:"specs"`

	// Specialisations are short capability tags ("ABS", "Ride-by-wire").
	Specialisations []string `json:"specialisations"`

	// legacyFeatures carries the pre-migration field name; populated only
	// when decoding old documents and folded into Specialisations by
	// Normalize.
	LegacyFeatures []string `json:"features,omitempty"`

	AvailabilityByRegion map[string]RegionalAvailability `json:"availability_by_region,omitempty"`

	UserInterestScore int     `json:"user_interest_score"`
	AverageRating     float64 `json:"average_rating"`
	TotalRatings      int     `json:"total_ratings"`

	CreatedAt     time.Time  `json:"created_at"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
}

// Normalize folds legacy document fields into their current form. It must
// be called after decoding a stored motorcycle document.
func (m *Motorcycle) Normalize() {
	if len(m.Specialisations) == 0 && len(m.LegacyFeatures) > 0 {
		m.Specialisations = m.LegacyFeatures
	}
	m.LegacyFeatures = nil
}

// AvailabilityIn resolves the effective availability for a region. A
// regional override wins over the global status.
func (m *Motorcycle) AvailabilityIn(region string) string {
	if region != "" {
		if ra, ok := m.AvailabilityByRegion[region]; ok {
			return ra.Status
		}
	}
	return m.Availability
}

// HasSpecialisation reports whether the named tag is present.
func (m *Motorcycle) HasSpecialisation(tag string) bool {
	for _, s := range m.Specialisations {
		if s == tag {
			return true
		}
	}
	return false
}

// PriceSnapshot is a cached vendor price for a motorcycle in one region.
// Snapshots are refreshed by the daily update job; they are not live quotes.
type PriceSnapshot struct {
	Vendor     string    `json:"vendor"`
	Region     string    `json:"region"`
	PriceUSD   float64   `json:"price_usd"`
	InStock    bool      `json:"in_stock"`
	CapturedAt time.Time `json:"captured_at"`
}

// CategorySummary is one row of the category summary endpoint.
type CategorySummary struct {
	Category string       `json:"category"`
	Count    int          `json:"count"`
	Featured []Motorcycle `json:"featured_motorcycles"`
}

// FilterOptions describes the distinct values and ranges available for
// filtering, computed from the live corpus.
type FilterOptions struct {
	Manufacturers []string   `json:"manufacturers"`
	Categories    []string   `json:"categories"`
	YearRange     [2]int     `json:"year_range"`
	PriceRange    [2]float64 `json:"price_range"`
}

// Suggestion is one typeahead result.
type Suggestion struct {
	Value       string `json:"value"`
	Type        string `json:"type"` // manufacturer or model
	Count       int    `json:"count"`
	DisplayText string `json:"display_text"`
}

// Suggestion type constants.
const (
	SuggestionManufacturer = "manufacturer"
	SuggestionModel        = "model"
)
