package seeder

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/stagebook/internal/adapters/http/api"
	service "github.com/okian/stagebook/internal/app"
	"github.com/okian/stagebook/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newTestServer(opts ...api.Option) (*httptest.Server, func()) {
	svc := service.New(service.WithWorkerCount(1))
	So(svc.Start(context.Background()), ShouldBeNil)
	srv := httptest.NewServer(api.NewServer(svc, svc, opts...).Router(context.Background()))
	return srv, func() {
		srv.Close()
		svc.Stop()
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		ctx := context.Background()
		now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
		cfg := &Config{Count: 50, Seed: 42}

		Convey("When no invalid share is requested", func() {
			reqs, err := Generate(ctx, cfg, now)
			So(err, ShouldBeNil)

			Convey("Then every request is complete and keyed", func() {
				So(reqs, ShouldHaveLength, 50)
				keys := map[string]struct{}{}
				for _, r := range reqs {
					So(r.Valid, ShouldBeTrue)
					So(r.Input.Title, ShouldNotBeEmpty)
					So(r.Input.Contact, ShouldNotBeEmpty)
					date, err := time.Parse(time.DateOnly, r.Input.Date)
					So(err, ShouldBeNil)
					So(date.After(now), ShouldBeTrue)
					keys[r.Key] = struct{}{}
				}
				So(keys, ShouldHaveLength, 50)
			})

			Convey("Then the same seed yields the same inputs", func() {
				again, err := Generate(ctx, cfg, now)
				So(err, ShouldBeNil)
				for i := range reqs {
					So(again[i].Input, ShouldResemble, reqs[i].Input)
				}
			})
		})

		Convey("When every request should be invalid", func() {
			cfg.InvalidRatio = 1
			reqs, err := Generate(ctx, cfg, now)
			So(err, ShouldBeNil)

			Convey("Then each has a required field blanked", func() {
				for _, r := range reqs {
					So(r.Valid, ShouldBeFalse)
					in := r.Input
					blanked := in.Title == "" || in.Category == "" || in.Date == "" ||
						in.Location == "" || in.Budget == "" || in.Contact == ""
					So(blanked, ShouldBeTrue)
				}
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := Generate(cctx, cfg, now)

			Convey("Then generation stops with an error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running StageBook API", t, func() {
		srv, stop := newTestServer(api.WithRateLimit(0, 0))
		defer stop()

		out := filepath.Join(t.TempDir(), "seed", "requests.json")
		cfg := &Config{
			BaseURL:      srv.URL,
			Count:        40,
			InvalidRatio: 0.25,
			ReplayCount:  5,
			Workers:      4,
			Timeout:      5 * time.Second,
			MaxRetries:   1,
			Seed:         7,
			OutputFile:   out,
		}

		Convey("When seeding the board", func() {
			stats, err := Run(context.Background(), cfg)

			Convey("Then every valid post is created and listed", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 40)
				So(stats.Created+stats.Rejected, ShouldEqual, 40)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Listed, ShouldEqual, stats.Created)
				So(stats.Replayed, ShouldEqual, 5)
			})

			Convey("Then the generated requests are saved", func() {
				data, err := os.ReadFile(out)
				So(err, ShouldBeNil)
				var saved []Request
				So(json.Unmarshal(data, &saved), ShouldBeNil)
				So(saved, ShouldHaveLength, 40)
			})
		})
	})

	Convey("Given an address nothing listens on", t, func() {
		srv := httptest.NewServer(nil)
		url := srv.URL
		srv.Close()

		_, err := Run(context.Background(), &Config{BaseURL: url, Count: 1, Timeout: time.Second})

		Convey("Then the health check fails", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSubmitThrottled(t *testing.T) {
	Convey("Given an API allowing two requests per minute", t, func() {
		srv, stop := newTestServer(api.WithRateLimit(2, time.Minute))
		defer stop()

		ctx := context.Background()
		cfg := &Config{Count: 4, Seed: 3, Workers: 1, Timeout: 5 * time.Second, MaxRetries: 1}
		reqs, err := Generate(ctx, cfg, time.Now())
		So(err, ShouldBeNil)

		Convey("When posting more than the limit", func() {
			stats := &Stats{}
			results := submit(ctx, cfg, NewHTTPClient(srv.URL, cfg.Timeout), reqs, stats)

			Convey("Then the overflow is reported as throttled", func() {
				So(results, ShouldHaveLength, 4)
				So(stats.Created, ShouldEqual, 2)
				So(stats.Throttled, ShouldEqual, 2)
			})
		})
	})
}

func TestChecks(t *testing.T) {
	Convey("Given listed items", t, func() {
		t0 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		items := []Item{
			{ID: "a", Budget: 300, CreatedAt: t0.Add(2 * time.Hour)},
			{ID: "b", Budget: 200, CreatedAt: t0.Add(time.Hour)},
			{ID: "c", Budget: 200, CreatedAt: t0},
		}

		Convey("Then ordered views pass", func() {
			So(checkBudgetHigh(items), ShouldBeNil)
			So(checkRecent(items), ShouldBeNil)
			So(checkContains(items, []string{"a", "c"}), ShouldBeNil)
		})

		Convey("Then reversed views fail", func() {
			reversed := []Item{items[2], items[1], items[0]}
			So(errors.Is(checkBudgetHigh(reversed), ErrVerification), ShouldBeTrue)
			So(errors.Is(checkRecent(reversed), ErrVerification), ShouldBeTrue)
			So(errors.Is(checkContains(items, []string{"z"}), ErrVerification), ShouldBeTrue)
		})
	})
}
