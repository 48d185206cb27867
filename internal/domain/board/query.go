package board

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/stagebook/internal/domain/model"
)

// SortMode orders board views.
type SortMode string

// Sort modes.
const (
	SortRecent     SortMode = "recent"
	SortDateSoon   SortMode = "date-soon"
	SortBudgetHigh SortMode = "budget-high"
	SortBudgetLow  SortMode = "budget-low"
)

// Valid reports whether m is a known sort mode.
func (m SortMode) Valid() bool {
	switch m {
	case SortRecent, SortDateSoon, SortBudgetHigh, SortBudgetLow:
		return true
	}
	return false
}

// AnyBudget disables the minimum budget constraint.
const AnyBudget = "any"

// MinBudgetOptions lists the minimum budgets offered to artists.
func MinBudgetOptions() []string {
	return []string{AnyBudget, "5000", "10000", "20000", "40000"}
}

// Query is the artist view of the board. Zero values mean "unconstrained".
type Query struct {
	Search    string         `json:"q"`
	Category  model.Category `json:"category"`
	Location  string         `json:"location"`
	MinBudget *float64       `json:"minBudget,omitempty"`
	Sort      SortMode       `json:"sort"`
}

// DefaultQuery is the cleared filter set: everything, newest first.
func DefaultQuery() Query {
	return Query{Sort: SortRecent}
}

// ParseQuery builds a Query from parameters q, category, location,
// min_budget and sort. Unrecognized parameters and sort modes are rejected.
func ParseQuery(values url.Values) (Query, error) {
	q := DefaultQuery()
	for key, vals := range values {
		v := ""
		if len(vals) > 0 {
			v = strings.TrimSpace(vals[0])
		}
		switch key {
		case "q":
			q.Search = v
		case "category":
			q.Category = model.Category(v)
		case "location":
			q.Location = v
		case "min_budget":
			if v == "" || strings.EqualFold(v, AnyBudget) {
				continue
			}
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Query{}, fmt.Errorf("%w: min_budget %q", ErrInvalidCriterion, v)
			}
			q.MinBudget = &n
		case "sort":
			if v == "" {
				continue
			}
			mode := SortMode(v)
			if !mode.Valid() {
				return Query{}, fmt.Errorf("%w: %q", ErrUnknownSort, v)
			}
			q.Sort = mode
		default:
			return Query{}, fmt.Errorf("%w: %q", ErrUnknownCriterion, key)
		}
	}
	return q, nil
}

// Apply filters collection by q and returns a sorted copy. The collection
// itself is never reordered.
func Apply(collection []model.Requirement, q Query) []model.Requirement {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]model.Requirement, 0, len(collection))
	for _, r := range collection {
		if q.Category != "" && r.Category != q.Category {
			continue
		}
		if q.Location != "" && !strings.EqualFold(r.Location, q.Location) {
			continue
		}
		if q.MinBudget != nil && r.Budget < *q.MinBudget {
			continue
		}
		if search != "" && !matches(r, search) {
			continue
		}
		out = append(out, r)
	}
	sortRequirements(out, q.Sort)
	return out
}

func matches(r model.Requirement, q string) bool {
	for _, field := range []string{r.Title, r.Description, r.Location, string(r.Category)} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func sortRequirements(items []model.Requirement, mode SortMode) {
	switch mode {
	case SortBudgetHigh:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Budget > items[j].Budget })
	case SortBudgetLow:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Budget < items[j].Budget })
	case SortDateSoon:
		// Undated or malformed dates go last.
		sort.SliceStable(items, func(i, j int) bool {
			a, aok := eventDate(items[i].Date)
			b, bok := eventDate(items[j].Date)
			if aok != bok {
				return aok
			}
			return aok && a.Before(b)
		})
	default:
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	}
}

func eventDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Locations returns the distinct non-empty locations in first-appearance order.
func Locations(collection []model.Requirement) []string {
	seen := make(map[string]struct{}, len(collection))
	out := []string{}
	for _, r := range collection {
		if r.Location == "" {
			continue
		}
		if _, ok := seen[r.Location]; ok {
			continue
		}
		seen[r.Location] = struct{}{}
		out = append(out, r.Location)
	}
	return out
}

// TimeAgo renders the age of createdAt relative to now as "Ns ago", "Nm ago",
// "Nh ago" or "Nd ago". Future timestamps read as "0s ago".
func TimeAgo(createdAt, now time.Time) string {
	secs := int64(now.Sub(createdAt) / time.Second)
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds ago", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh ago", secs/3600)
	}
	return fmt.Sprintf("%dd ago", secs/86400)
}
