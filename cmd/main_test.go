package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/stagebook/internal/config"
	"github.com/okian/stagebook/pkg/logger"
	"github.com/okian/stagebook/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)
		ctx := context.Background()

		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("STAGEBOOK_ADDR", ":8080")
			_ = os.Setenv("STAGEBOOK_NOTIFY_QUEUE_SIZE", "1000")
			_ = os.Setenv("STAGEBOOK_NOTIFY_WORKERS", "4")
			defer func() {
				_ = os.Unsetenv("STAGEBOOK_ADDR")
				_ = os.Unsetenv("STAGEBOOK_NOTIFY_QUEUE_SIZE")
				_ = os.Unsetenv("STAGEBOOK_NOTIFY_WORKERS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.NotifyQueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.NotifyWorkers, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When building the service from defaults", func() {
			svc, err := newService(config.New(), logger.Get())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then the service should report itself started", func() {
				stats := svc.GetStats()
				convey.So(stats["started"], convey.ShouldEqual, true)
				convey.So(stats["store"], convey.ShouldEqual, config.StoreMemory)
			})
		})

		convey.Convey("When the catalog path does not exist", func() {
			cfg := config.New()
			cfg.CatalogPath = "/non/existent/catalog.yaml"

			_, err := newService(cfg, logger.Get())

			convey.Convey("Then building the service should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When routing through the assembled router", func() {
			cfg := config.New()
			svc, err := newService(cfg, logger.Get())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			router := newRouter(ctx, cfg, svc)

			for _, path := range []string{"/healthz", "/charts/", "/discover/", "/requirements/", "/api-docs", "/openapi.yaml", "/"} {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a configuration on an ephemeral port", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)
		cfg := config.New()
		cfg.Addr = "127.0.0.1:0"
		cfg.NotifyWorkers = 1

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				time.Sleep(200 * time.Millisecond)
				cancel()
			}()

			err := run(ctx, cfg, logger.Get())

			convey.Convey("Then run should return cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the store driver is unknown", func() {
			cfg.StoreDriver = "redis"

			err := run(context.Background(), cfg, logger.Get())

			convey.Convey("Then run should fail before serving", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should not panic", func() {
				convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}
