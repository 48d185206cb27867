// Package model contains domain models passed between layers.
package model

// PerformerStat is a Top Charts catalog entry. Score and rank are derived by
// the scoring package and never stored here.
type PerformerStat struct {
	ID         string  `json:"id" koanf:"id"`
	Name       string  `json:"name" koanf:"name"`
	Genre      string  `json:"genre" koanf:"genre"`
	Avatar     string  `json:"avatar" koanf:"avatar"`
	ProfileURL string  `json:"profileUrl" koanf:"profile_url"`
	ShareURL   string  `json:"shareUrl,omitempty" koanf:"share_url"`
	Bookings   int     `json:"bookings" koanf:"bookings"`
	Views      int     `json:"views" koanf:"views"`
	Likes      int     `json:"likes" koanf:"likes"`
	Rating     float64 `json:"rating" koanf:"rating"` // 0.0 - 5.0
}

// Valid reports whether the metrics are inside their documented ranges.
func (p PerformerStat) Valid() bool {
	return p.Bookings >= 0 && p.Views >= 0 && p.Likes >= 0 && p.Rating >= 0 && p.Rating <= 5
}

// PerformerListing is a Discover catalog entry.
type PerformerListing struct {
	ID       string `json:"id" koanf:"id"`
	Name     string `json:"name" koanf:"name"`
	Genre    string `json:"genre" koanf:"genre"`
	Location string `json:"location" koanf:"location"`
	Price    int    `json:"price" koanf:"price"`
	Image    string `json:"image" koanf:"image"`
}
