package board_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/okian/stagebook/internal/domain/board"
	"github.com/okian/stagebook/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var base = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func collection() []model.Requirement {
	return []model.Requirement{
		{ID: "a", Title: "DJ for launch", Category: model.CategoryDJ, Date: "2025-03-10", Location: "Delhi", Budget: 20000, CreatedAt: base.Add(4 * time.Hour)},
		{ID: "b", Title: "Birthday magic", Description: "kids party", Category: model.CategoryMagician, Date: "2025-01-05", Location: "Mumbai", Budget: 5000, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "c", Title: "Jazz evening", Category: model.CategoryBand, Date: "", Location: "delhi", Budget: 40000, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "d", Title: "Wedding", Description: "need a singer", Category: model.CategorySinger, Date: "2025-02-01", Location: "Pune", Budget: 20000, CreatedAt: base.Add(1 * time.Hour)},
	}
}

func reqIDs(rs []model.Requirement) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func minBudget(v float64) *float64 { return &v }

func TestApply(t *testing.T) {
	Convey("Given a requirement collection", t, func() {
		items := collection()

		Convey("When using the default query", func() {
			So(reqIDs(board.Apply(items, board.DefaultQuery())), ShouldResemble, []string{"a", "b", "c", "d"})
		})

		Convey("When filtering by category", func() {
			So(reqIDs(board.Apply(items, board.Query{Category: model.CategoryBand})), ShouldResemble, []string{"c"})
		})

		Convey("When filtering by location", func() {
			Convey("Then the match is exact and case-insensitive", func() {
				So(reqIDs(board.Apply(items, board.Query{Location: "DELHI"})), ShouldResemble, []string{"a", "c"})
				So(board.Apply(items, board.Query{Location: "Del"}), ShouldBeEmpty)
			})
		})

		Convey("When filtering by minimum budget", func() {
			Convey("Then the bound is inclusive", func() {
				So(reqIDs(board.Apply(items, board.Query{MinBudget: minBudget(20000)})), ShouldResemble, []string{"a", "c", "d"})
			})
		})

		Convey("When searching", func() {
			Convey("Then any of title, description, location or category may match", func() {
				So(reqIDs(board.Apply(items, board.Query{Search: "singer"})), ShouldResemble, []string{"d"})
				So(reqIDs(board.Apply(items, board.Query{Search: "KIDS"})), ShouldResemble, []string{"b"})
				So(reqIDs(board.Apply(items, board.Query{Search: "pune"})), ShouldResemble, []string{"d"})
				So(reqIDs(board.Apply(items, board.Query{Search: "magician"})), ShouldResemble, []string{"b"})
			})
		})

		Convey("When sorting", func() {
			So(reqIDs(board.Apply(items, board.Query{Sort: board.SortBudgetHigh})), ShouldResemble, []string{"c", "a", "d", "b"})
			So(reqIDs(board.Apply(items, board.Query{Sort: board.SortBudgetLow})), ShouldResemble, []string{"b", "a", "d", "c"})
			So(reqIDs(board.Apply(items, board.Query{Sort: board.SortDateSoon})), ShouldResemble, []string{"b", "d", "a", "c"})
			So(reqIDs(board.Apply(items, board.Query{Sort: board.SortRecent})), ShouldResemble, []string{"a", "b", "c", "d"})
		})

		Convey("Then the collection itself is never reordered", func() {
			_ = board.Apply(items, board.Query{Sort: board.SortBudgetLow})
			So(items, ShouldResemble, collection())
		})
	})
}

func TestParseQuery(t *testing.T) {
	Convey("Given query parameters", t, func() {
		Convey("When none are set", func() {
			q, err := board.ParseQuery(url.Values{})
			So(err, ShouldBeNil)
			So(q, ShouldResemble, board.DefaultQuery())
		})

		Convey("When all are set", func() {
			q, err := board.ParseQuery(url.Values{
				"q":          {"wedding"},
				"category":   {"Singer"},
				"location":   {"Pune"},
				"min_budget": {"10000"},
				"sort":       {"budget-high"},
			})
			So(err, ShouldBeNil)
			So(q.Search, ShouldEqual, "wedding")
			So(q.Category, ShouldEqual, model.CategorySinger)
			So(q.Location, ShouldEqual, "Pune")
			So(*q.MinBudget, ShouldEqual, 10000)
			So(q.Sort, ShouldEqual, board.SortBudgetHigh)
		})

		Convey("When min_budget is any", func() {
			q, err := board.ParseQuery(url.Values{"min_budget": {"any"}})
			So(err, ShouldBeNil)
			So(q.MinBudget, ShouldBeNil)
		})

		Convey("When values are not recognized", func() {
			_, err := board.ParseQuery(url.Values{"colour": {"x"}})
			So(errors.Is(err, board.ErrUnknownCriterion), ShouldBeTrue)

			_, err = board.ParseQuery(url.Values{"sort": {"alphabetical"}})
			So(errors.Is(err, board.ErrUnknownSort), ShouldBeTrue)

			_, err = board.ParseQuery(url.Values{"min_budget": {"lots"}})
			So(errors.Is(err, board.ErrInvalidCriterion), ShouldBeTrue)
		})
	})
}

func TestLocations(t *testing.T) {
	Convey("Given a collection", t, func() {
		Convey("Then locations are distinct in first-appearance order", func() {
			So(board.Locations(collection()), ShouldResemble, []string{"Delhi", "Mumbai", "delhi", "Pune"})
		})

		Convey("Then empty collections yield no locations", func() {
			So(board.Locations(nil), ShouldBeEmpty)
		})
	})
}

func TestTimeAgo(t *testing.T) {
	Convey("Given a creation time", t, func() {
		now := base.Add(10 * 24 * time.Hour)
		So(board.TimeAgo(now.Add(-30*time.Second), now), ShouldEqual, "30s ago")
		So(board.TimeAgo(now.Add(-5*time.Minute), now), ShouldEqual, "5m ago")
		So(board.TimeAgo(now.Add(-3*time.Hour), now), ShouldEqual, "3h ago")
		So(board.TimeAgo(now.Add(-49*time.Hour), now), ShouldEqual, "2d ago")
		So(board.TimeAgo(now.Add(time.Minute), now), ShouldEqual, "0s ago")
	})
}
