// Package scoring ranks Top Charts performers by a weighted popularity score.
package scoring

import (
	"sort"

	"github.com/okian/stagebook/internal/domain/model"
)

// Score weights. Views are counted per thousand, likes per hundred and the
// rating is rescaled from 0-5 to 0-10.
const (
	bookingsWeight = 0.5
	viewsWeight    = 0.2
	likesWeight    = 0.2
	ratingWeight   = 0.1

	viewsUnit  = 1000
	likesUnit  = 100
	ratingBase = 5
	ratingSpan = 10
)

// DefaultTopK is the size of the chart.
const DefaultTopK = 10

// Ranked is a performer with its derived chart position.
type Ranked struct {
	Performer model.PerformerStat
	Rank      int // 1-based
	Score     float64
}

// Score computes the popularity score of p.
func Score(p model.PerformerStat) float64 {
	return bookingsWeight*float64(p.Bookings) +
		viewsWeight*(float64(p.Views)/viewsUnit) +
		likesWeight*(float64(p.Likes)/likesUnit) +
		ratingWeight*((p.Rating/ratingBase)*ratingSpan)
}

// Rank orders the catalog by descending score and returns the top entries.
// Equal scores keep their catalog order. The catalog is not modified.
func Rank(catalog []model.PerformerStat, opts ...Option) []Ranked {
	cfg := options{topK: DefaultTopK}
	for _, opt := range opts {
		opt(&cfg)
	}

	ranked := make([]Ranked, len(catalog))
	for i, p := range catalog {
		ranked[i] = Ranked{Performer: p, Score: Score(p)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > cfg.topK {
		ranked = ranked[:cfg.topK]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Find returns the ranked entry for id, if it made the chart.
func Find(ranked []Ranked, id string) (Ranked, bool) {
	for _, r := range ranked {
		if r.Performer.ID == id {
			return r, true
		}
	}
	return Ranked{}, false
}
