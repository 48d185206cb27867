package scoring_test

import (
	"fmt"
	"testing"

	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

const epsilon = 1e-9

func performer(id string, bookings, views, likes int, rating float64) model.PerformerStat {
	return model.PerformerStat{
		ID:       id,
		Name:     "performer " + id,
		Bookings: bookings,
		Views:    views,
		Likes:    likes,
		Rating:   rating,
	}
}

func catalogOf(n int) []model.PerformerStat {
	out := make([]model.PerformerStat, n)
	for i := range out {
		out[i] = performer(fmt.Sprint(i+1), (i*7)%13, 1000*(i%5), 100*(i%3), float64(i%6)*0.8)
	}
	return out
}

func TestScore(t *testing.T) {
	Convey("Given the chart scenario", t, func() {
		first := performer("1", 42, 128000, 5100, 4.9)
		second := performer("2", 10, 60000, 1700, 4.4)

		Convey("Then the weighted scores match", func() {
			So(scoring.Score(first), ShouldAlmostEqual, 57.78, epsilon)
			So(scoring.Score(second), ShouldAlmostEqual, 21.28, epsilon)
		})

		Convey("And the rank order is first then second", func() {
			ranked := scoring.Rank([]model.PerformerStat{second, first})
			So(len(ranked), ShouldEqual, 2)
			So(ranked[0].Performer.ID, ShouldEqual, "1")
			So(ranked[0].Rank, ShouldEqual, 1)
			So(ranked[1].Performer.ID, ShouldEqual, "2")
			So(ranked[1].Rank, ShouldEqual, 2)
			So(ranked[1].Score, ShouldAlmostEqual, 21.28, epsilon)
		})
	})

	Convey("Given an empty performer", t, func() {
		So(scoring.Score(model.PerformerStat{}), ShouldEqual, 0)
	})
}

func TestRank(t *testing.T) {
	Convey("Given a catalog", t, func() {
		catalog := catalogOf(15)

		Convey("When ranked twice", func() {
			a := scoring.Rank(catalog)
			b := scoring.Rank(catalog)

			Convey("Then both results are identical", func() {
				So(a, ShouldResemble, b)
			})
		})

		Convey("When ranked", func() {
			ranked := scoring.Rank(catalog)

			Convey("Then at most ten entries are returned", func() {
				So(len(ranked), ShouldEqual, 10)
			})

			Convey("Then scores are non-increasing and ranks are 1-based positions", func() {
				for i, r := range ranked {
					So(r.Rank, ShouldEqual, i+1)
					if i > 0 {
						So(r.Score, ShouldBeLessThanOrEqualTo, ranked[i-1].Score)
					}
				}
			})

			Convey("Then the catalog is untouched", func() {
				So(catalog, ShouldResemble, catalogOf(15))
			})
		})

		Convey("When the catalog is smaller than the chart", func() {
			for n := 0; n <= 12; n++ {
				So(len(scoring.Rank(catalogOf(n))), ShouldEqual, min(10, n))
			}
		})

		Convey("When the top size is changed", func() {
			So(len(scoring.Rank(catalog, scoring.WithTopK(3))), ShouldEqual, 3)
			So(len(scoring.Rank(catalog, scoring.WithTopK(0))), ShouldEqual, 10)
		})
	})

	Convey("Given performers with equal scores", t, func() {
		catalog := []model.PerformerStat{
			performer("a", 5, 0, 0, 0),
			performer("b", 5, 0, 0, 0),
			performer("c", 5, 0, 0, 0),
		}

		Convey("Then catalog order breaks the tie", func() {
			ranked := scoring.Rank(catalog)
			So(ranked[0].Performer.ID, ShouldEqual, "a")
			So(ranked[1].Performer.ID, ShouldEqual, "b")
			So(ranked[2].Performer.ID, ShouldEqual, "c")
		})
	})

	Convey("Given a performer whose bookings increase", t, func() {
		catalog := catalogOf(12)
		before := scoring.Rank(catalog, scoring.WithTopK(len(catalog)))
		target := catalog[4].ID
		old, _ := scoring.Find(before, target)

		bumped := make([]model.PerformerStat, len(catalog))
		copy(bumped, catalog)
		bumped[4].Bookings += 20
		after := scoring.Rank(bumped, scoring.WithTopK(len(bumped)))
		now, ok := scoring.Find(after, target)

		Convey("Then its score never decreases and its rank never worsens", func() {
			So(ok, ShouldBeTrue)
			So(now.Score, ShouldBeGreaterThanOrEqualTo, old.Score)
			So(now.Rank, ShouldBeLessThanOrEqualTo, old.Rank)
		})
	})
}

func TestFind(t *testing.T) {
	Convey("Given a ranked chart", t, func() {
		ranked := scoring.Rank(catalogOf(3))

		Convey("When looking up a charted performer", func() {
			r, ok := scoring.Find(ranked, "2")
			So(ok, ShouldBeTrue)
			So(r.Performer.ID, ShouldEqual, "2")
		})

		Convey("When looking up an unknown id", func() {
			_, ok := scoring.Find(ranked, "404")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestFormatCompact(t *testing.T) {
	Convey("Given English formatting", t, func() {
		cases := map[int64]string{
			0:             "0",
			999:           "999",
			1000:          "1K",
			5100:          "5.1K",
			128000:        "128K",
			210500:        "211K",
			999950:        "1M",
			1250000:       "1.3M",
			3000000000:    "3B",
			4200000000000: "4.2T",
			-1500:         "-1.5K",
		}
		for in, want := range cases {
			So(scoring.FormatCompact(in, "en"), ShouldEqual, want)
		}
	})

	Convey("Given German formatting", t, func() {
		So(scoring.FormatCompact(1250000, "de"), ShouldEqual, "1,3M")
		So(scoring.FormatCompact(128000, "de"), ShouldEqual, "128K")
	})

	Convey("Given an unparseable locale", t, func() {
		So(scoring.FormatCompact(5100, "!!"), ShouldEqual, "5.1K")
	})
}
