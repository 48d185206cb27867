package discovery

import (
	"sort"
	"strings"

	"github.com/okian/stagebook/internal/domain/model"
)

// Filter keeps the listings matching every active constraint, in catalog
// order. Constraints set to their sentinel are skipped.
func Filter(catalog []model.PerformerListing, c Criteria) []model.PerformerListing {
	query := strings.ToLower(c.Query)
	matchGenre := c.Genre != "" && !strings.EqualFold(c.Genre, AllGenres)
	matchLocation := c.Location != "" && !strings.EqualFold(c.Location, AnyLocation)
	price := ParsePriceRange(c.Price)

	out := make([]model.PerformerListing, 0, len(catalog))
	for _, p := range catalog {
		if query != "" && !strings.Contains(strings.ToLower(p.Name+p.Genre), query) {
			continue
		}
		if matchGenre && !strings.EqualFold(p.Genre, c.Genre) {
			continue
		}
		if matchLocation && !strings.EqualFold(p.Location, c.Location) {
			continue
		}
		if !price.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort returns a stably sorted copy. Popular keeps the input order and an
// unknown mode is treated the same way.
func Sort(listings []model.PerformerListing, mode SortMode) []model.PerformerListing {
	out := make([]model.PerformerListing, len(listings))
	copy(out, listings)

	switch mode {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}

// Apply filters and then sorts.
func Apply(catalog []model.PerformerListing, c Criteria) []model.PerformerListing {
	return Sort(Filter(catalog, c), c.Sort)
}

// Genres returns the distinct genres of the catalog in first-seen order.
func Genres(catalog []model.PerformerListing) []string {
	return distinct(catalog, func(p model.PerformerListing) string { return p.Genre })
}

// Locations returns the distinct locations of the catalog in first-seen order.
func Locations(catalog []model.PerformerListing) []string {
	return distinct(catalog, func(p model.PerformerListing) string { return p.Location })
}

func distinct(catalog []model.PerformerListing, field func(model.PerformerListing) string) []string {
	seen := make(map[string]struct{}, len(catalog))
	out := []string{}
	for _, p := range catalog {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
