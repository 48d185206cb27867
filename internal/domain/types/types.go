// Package types contains common types used across the application
package types

import (
	"math"

	"github.com/okian/stagebook/internal/domain/scoring"
)

// ChartEntry is one row of the Top Charts as served to clients.
type ChartEntry struct {
	Rank         int     `json:"rank"`
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Genre        string  `json:"genre"`
	Avatar       string  `json:"avatar"`
	ProfileURL   string  `json:"profileUrl"`
	Score        float64 `json:"score"`
	Bookings     int     `json:"bookings"`
	Views        int     `json:"views"`
	Likes        int     `json:"likes"`
	Rating       float64 `json:"rating"`
	ViewsCompact string  `json:"viewsCompact"`
	LikesCompact string  `json:"likesCompact"`
}

// NewChartEntry converts a ranked performer. The score is rounded to two
// decimals for display; ordering was decided on the exact value.
func NewChartEntry(r scoring.Ranked, locale string) ChartEntry {
	p := r.Performer
	return ChartEntry{
		Rank:         r.Rank,
		ID:           p.ID,
		Name:         p.Name,
		Genre:        p.Genre,
		Avatar:       p.Avatar,
		ProfileURL:   p.ProfileURL,
		Score:        math.Round(r.Score*100) / 100,
		Bookings:     p.Bookings,
		Views:        p.Views,
		Likes:        p.Likes,
		Rating:       p.Rating,
		ViewsCompact: scoring.FormatCompact(int64(p.Views), locale),
		LikesCompact: scoring.FormatCompact(int64(p.Likes), locale),
	}
}

// NewChart converts a whole ranked slice, never returning nil.
func NewChart(ranked []scoring.Ranked, locale string) []ChartEntry {
	out := make([]ChartEntry, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, NewChartEntry(r, locale))
	}
	return out
}
