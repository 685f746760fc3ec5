// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package seed generates the deterministic demo corpus: a catalog
// covering every manufacturer and category plus the achievement
// definitions. Record IDs are derived from manufacturer and model, so
// reseeding overwrites in place instead of duplicating.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

// rngSeed pins the generated corpus so tests and demos see the same data.
const rngSeed = 52

type manufacturer struct {
	Name   string
	Series []string
}

var manufacturers = []manufacturer{
	{"Yamaha", []string{"YZF-R1", "MT-09", "Tenere 700", "XSR900", "NMAX", "FJR1300"}},
	{"Yam-Tech", []string{"Bolt E1", "Volt S", "Charge R"}},
	{"Honda-Yamaha-Imports", []string{"Classic 350i", "Retro 500i"}},
	{"Honda", []string{"CBR1000RR-R", "Africa Twin", "Rebel 500", "CB650R", "Gold Wing", "Forza 350"}},
	{"Kawasaki", []string{"Ninja ZX-10R", "Z900", "Versys 650", "Vulcan S", "KLX300", "W800"}},
	{"Suzuki", []string{"GSX-R1000", "V-Strom 800", "Hayabusa", "SV650", "Burgman 400"}},
	{"Ducati", []string{"Panigale V4", "Monster", "Multistrada V4", "Scrambler Icon", "Diavel V4"}},
	{"BMW Motorrad", []string{"S1000RR", "R1250GS", "R nineT", "F900R", "C400X"}},
	{"KTM", []string{"1290 Super Duke R", "390 Adventure", "450 SX-F", "690 Enduro R"}},
	{"Triumph", []string{"Street Triple RS", "Tiger 900", "Bonneville T120", "Rocket 3"}},
	{"Royal Enfield", []string{"Classic 350", "Himalayan", "Interceptor 650", "Meteor 350"}},
	{"Harley-Davidson", []string{"Sportster S", "Road Glide", "Pan America", "Fat Boy"}},
}

var specialisationPool = []string{
	"ABS", "Ride-by-wire", "Traction Control", "Quickshifter", "Cruise Control",
	"Heated Grips", "TFT Display", "Cornering ABS", "Slipper Clutch", "LED Lighting",
}

var descriptions = []string{
	"A confident all-rounder with a linear power delivery.",
	"Track-bred performance in a road-legal package.",
	"Built for long hauls with comfort-first ergonomics.",
	"Light, flickable, and happy in city traffic.",
	"Classic styling over thoroughly modern internals.",
}

// Load writes the generated corpus and achievement definitions. Returns
// the number of motorcycle records written.
func Load(ctx context.Context, st *store.Store) (int, error) {
	rng := rand.New(rand.NewSource(rngSeed))
	now := time.Now()

	count := 0
	for _, mf := range manufacturers {
		for i, model := range mf.Series {
			m := generate(rng, mf.Name, model, i, now)
			if err := st.PutMotorcycle(ctx, m); err != nil {
				return count, fmt.Errorf("seed motorcycle %s: %w", m.ID, err)
			}
			count++
		}
	}

	for _, a := range achievementDefs() {
		if err := st.PutAchievement(ctx, a); err != nil {
			return count, fmt.Errorf("seed achievement %s: %w", a.ID, err)
		}
	}

	logging.Ctx(ctx).Info().Int("motorcycles", count).Msg("seed corpus loaded")
	return count, nil
}

// LoadIfEmpty seeds only when the catalog has no records.
func LoadIfEmpty(ctx context.Context, st *store.Store) (int, error) {
	n, err := st.CountMotorcycles(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	return Load(ctx, st)
}

func slug(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(" ", "-", "/", "-", ".", "").Replace(s)
	return s
}

func generate(rng *rand.Rand, maker, model string, idx int, now time.Time) *models.Motorcycle {
	category := models.Categories[rng.Intn(len(models.Categories))]
	year := 2018 + rng.Intn(8)
	displacement := 125 + rng.Float64()*1675
	price := 3000 + rng.Float64()*27000

	availability := models.AvailabilityAvailable
	switch rng.Intn(10) {
	case 0:
		availability = models.AvailabilityDiscontinued
	case 1:
		availability = models.AvailabilityLimited
	}

	tags := make([]string, 0, 4)
	for _, t := range specialisationPool {
		if rng.Intn(3) == 0 {
			tags = append(tags, t)
		}
	}

	regional := make(map[string]models.RegionalAvailability)
	for _, region := range models.KnownRegions {
		switch rng.Intn(12) {
		case 0:
			regional[region] = models.RegionalAvailability{
				Status:    models.AvailabilityNotInRegion,
				Rationale: "not homologated for this market",
			}
		case 1:
			regional[region] = models.RegionalAvailability{
				Status:    models.AvailabilityLimited,
				Rationale: "limited dealer allocation",
			}
		}
	}
	if len(regional) == 0 {
		regional = nil
	}

	hp := displacement * (0.08 + rng.Float64()*0.1)
	return &models.Motorcycle{
		ID:           fmt.Sprintf("%s-%s-%d", slug(maker), slug(model), year),
		Manufacturer: maker,
		Model:        model,
		Year:         year,
		Category:     category,
		Description:  descriptions[(idx+rng.Intn(len(descriptions)))%len(descriptions)],
		PriceUSD:     float64(int(price*100)) / 100,
		Availability: availability,
		Specs: models.Specs{
			DisplacementCC:    float64(int(displacement)),
			Horsepower:        float64(int(hp)),
			TorqueNm:          float64(int(hp * 0.9)),
			TopSpeedKmh:       float64(120 + rng.Intn(180)),
			WeightKg:          float64(130 + rng.Intn(200)),
			FuelCapacityL:     float64(10 + rng.Intn(15)),
			MileageKmpl:       float64(12 + rng.Intn(28)),
			Transmission:      "Manual",
			GearCount:         5 + rng.Intn(2),
			GroundClearanceMm: float64(130 + rng.Intn(120)),
			SeatHeightMm:      float64(700 + rng.Intn(200)),
			ABS:               rng.Intn(4) != 0,
			BrakingSystem:     "Disc",
			Suspension:        "Telescopic",
			TyreType:          "Tubeless",
			WheelSizeIn:       17,
			HeadlightType:     "LED",
			FuelType:          "Petrol",
		},
		Specialisations:      tags,
		AvailabilityByRegion: regional,
		UserInterestScore:    rng.Intn(101),
		CreatedAt:            now,
	}
}

func achievementDefs() []*models.Achievement {
	return []*models.Achievement{
		{ID: "first-comment", Category: models.CounterCommentsPosted, Name: "First Words", Description: "Post your first comment", Threshold: 1, Points: 10},
		{ID: "conversationalist", Category: models.CounterCommentsPosted, Name: "Conversationalist", Description: "Post 25 comments", Threshold: 25, Points: 50},
		{ID: "first-rating", Category: models.CounterRatingsGiven, Name: "Critic", Description: "Rate your first motorcycle", Threshold: 1, Points: 10},
		{ID: "road-tester", Category: models.CounterRatingsGiven, Name: "Road Tester", Description: "Rate 20 motorcycles", Threshold: 20, Points: 50},
		{ID: "collector", Category: models.CounterFavorites, Name: "Collector", Description: "Favorite 10 motorcycles", Threshold: 10, Points: 25},
		{ID: "garage-starter", Category: models.CounterGarageItems, Name: "Garage Starter", Description: "Add a motorcycle to your garage", Threshold: 1, Points: 10},
		{ID: "garage-full", Category: models.CounterGarageItems, Name: "Full Garage", Description: "Keep 5 motorcycles in your garage", Threshold: 5, Points: 40},
		{ID: "joiner", Category: models.CounterGroupsJoined, Name: "Joiner", Description: "Join your first rider group", Threshold: 1, Points: 10},
		{ID: "community-pillar", Category: models.CounterGroupsJoined, Name: "Community Pillar", Description: "Belong to 5 rider groups", Threshold: 5, Points: 40},
	}
}
