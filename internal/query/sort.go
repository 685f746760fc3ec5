// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package query

import (
	"sort"
	"strings"

	"github.com/jparkin/motodex/internal/models"
)

// Recognized sort keys.
const (
	SortDefault    = "default"
	SortYear       = "year"
	SortPrice      = "price_usd"
	SortHorsepower = "horsepower"
	SortInterest   = "user_interest_score"
)

// SortSpec is a compiled sort: a key plus direction. The default key is
// the dual-level sort (year descending, price ascending) and ignores the
// direction. Every ordering tie-breaks on ID ascending so pagination is
// stable.
type SortSpec struct {
	Key  string
	Desc bool
}

// ParseSort validates sort parameters. Empty sortBy means default.
func ParseSort(sortBy, sortOrder string) (SortSpec, error) {
	key := strings.ToLower(strings.TrimSpace(sortBy))
	if key == "" {
		key = SortDefault
	}
	switch key {
	case SortDefault, SortYear, SortPrice, SortHorsepower, SortInterest:
	default:
		return SortSpec{}, invalidField("sort_by", "unknown sort key")
	}

	order := strings.ToLower(strings.TrimSpace(sortOrder))
	switch order {
	case "", "asc", "desc":
	default:
		return SortSpec{}, invalidField("sort_order", "must be asc or desc")
	}

	return SortSpec{Key: key, Desc: order == "desc"}, nil
}

// Apply orders the slice in place.
func (s SortSpec) Apply(list []*models.Motorcycle) {
	sort.SliceStable(list, func(i, j int) bool {
		return s.less(list[i], list[j])
	})
}

func (s SortSpec) less(a, b *models.Motorcycle) bool {
	switch s.Key {
	case SortDefault:
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.PriceUSD != b.PriceUSD {
			return a.PriceUSD < b.PriceUSD
		}
	case SortYear:
		if a.Year != b.Year {
			return s.directed(a.Year < b.Year)
		}
	case SortPrice:
		if a.PriceUSD != b.PriceUSD {
			return s.directed(a.PriceUSD < b.PriceUSD)
		}
	case SortHorsepower:
		if a.Specs.Horsepower != b.Specs.Horsepower {
			return s.directed(a.Specs.Horsepower < b.Specs.Horsepower)
		}
	case SortInterest:
		if a.UserInterestScore != b.UserInterestScore {
			return s.directed(a.UserInterestScore < b.UserInterestScore)
		}
	}
	return a.ID < b.ID
}

func (s SortSpec) directed(asc bool) bool {
	if s.Desc {
		return !asc
	}
	return asc
}
