// Package discovery filters and sorts the Discover performer catalog.
package discovery

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Sentinels that disable a constraint.
const (
	AllGenres    = "all"
	AnyLocation  = "any"
	AnyPrice     = "any"
	DefaultQuery = ""
)

// SortMode orders filtered listings.
type SortMode string

// Sort modes.
const (
	SortPopular   SortMode = "popular"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
)

// Valid reports whether m is a known sort mode.
func (m SortMode) Valid() bool {
	switch m {
	case SortPopular, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}

// Criteria is the full set of Discover options.
type Criteria struct {
	Query    string   `json:"query"`
	Genre    string   `json:"genre"`
	Location string   `json:"location"`
	Price    string   `json:"price"` // "any" or "min-max", max may be empty
	Sort     SortMode `json:"sort"`
}

// DefaultCriteria returns the criteria that select the whole catalog in
// catalog order. It is also what "clear all" resets to.
func DefaultCriteria() Criteria {
	return Criteria{
		Query:    DefaultQuery,
		Genre:    AllGenres,
		Location: AnyLocation,
		Sort:     SortPopular,
		Price:    AnyPrice,
	}
}

// PriceRanges lists the ranges offered by the Discover page.
func PriceRanges() []string {
	return []string{"0-10000", "10000-20000", "20000-40000", "40000-"}
}

// PriceRange is an inclusive price window. A missing bound is open.
type PriceRange struct {
	Min    int
	Max    int
	HasMin bool
	HasMax bool
}

// Contains reports whether price falls inside r.
func (r PriceRange) Contains(price int) bool {
	if r.HasMin && price < r.Min {
		return false
	}
	if r.HasMax && price > r.Max {
		return false
	}
	return true
}

// ParsePriceRange decodes "min-max". Bounds that are empty or not numbers are
// left open, so a malformed range never fails and never means zero.
func ParsePriceRange(s string) PriceRange {
	var r PriceRange
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, AnyPrice) {
		return r
	}
	lo, hi, _ := strings.Cut(s, "-")
	if v, err := strconv.Atoi(strings.TrimSpace(lo)); err == nil {
		r.Min, r.HasMin = v, true
	}
	if v, err := strconv.Atoi(strings.TrimSpace(hi)); err == nil {
		r.Max, r.HasMax = v, true
	}
	return r
}

// ParseCriteria builds Criteria from query parameters q, genre, location,
// price and sort. Missing parameters keep their defaults. Unrecognized
// parameters and sort modes are rejected.
func ParseCriteria(values url.Values) (Criteria, error) {
	c := DefaultCriteria()
	for key, vals := range values {
		v := ""
		if len(vals) > 0 {
			v = strings.TrimSpace(vals[0])
		}
		switch key {
		case "q":
			c.Query = v
		case "genre":
			if v != "" {
				c.Genre = v
			}
		case "location":
			if v != "" {
				c.Location = v
			}
		case "price":
			if v != "" {
				c.Price = v
			}
		case "sort":
			if v == "" {
				continue
			}
			mode := SortMode(v)
			if !mode.Valid() {
				return Criteria{}, fmt.Errorf("%w: %q", ErrUnknownSort, v)
			}
			c.Sort = mode
		default:
			return Criteria{}, fmt.Errorf("%w: %q", ErrUnknownCriterion, key)
		}
	}
	return c, nil
}
