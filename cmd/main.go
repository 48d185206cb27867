package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okian/stagebook/internal/adapters/http/api"
	"github.com/okian/stagebook/internal/adapters/http/site"
	"github.com/okian/stagebook/internal/adapters/http/swagger"
	"github.com/okian/stagebook/internal/adapters/repository"
	app "github.com/okian/stagebook/internal/app"
	"github.com/okian/stagebook/internal/catalog"
	"github.com/okian/stagebook/internal/config"
	"github.com/okian/stagebook/internal/domain/board"
	"github.com/okian/stagebook/internal/supervisor"
	"github.com/okian/stagebook/pkg/logger"
	"github.com/okian/stagebook/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Process metrics are replaced by the system gauges below.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWith(os.Stdout, logger.Format(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "stagebook exited with error", logger.Error(err))
		os.Exit(1)
	}
}

// run starts the service and supervises it until ctx is done.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	tree := supervisor.NewTree(logger.Slog(), supervisor.DefaultTreeConfig())
	tree.AddWorker(svc.Workers())
	tree.AddWorker(supervisor.NewTicker("system-metrics", systemMetricsInterval, func(context.Context) {
		updateSystemMetrics()
	}))
	tree.AddWorker(supervisor.NewTicker("service-metrics", serviceMetricsInterval, func(context.Context) {
		updateServiceMetrics(svc)
	}))
	tree.AddAPI(supervisor.NewHTTPServer(srv, shutdownTimeout, log.Named("http")))

	log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
	err = tree.Serve(ctx)
	log.Info(context.Background(), "server stopped")

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newService builds the application service from configuration.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	opts := []app.Option{
		app.WithLogger(log.Named("service")),
		app.WithStore(cfg.StoreDriver,
			repository.WithPath(cfg.StorePath),
			repository.WithMongo(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection),
		),
		app.WithBudgetPolicy(board.BudgetPolicy(cfg.BudgetPolicy)),
		app.WithPublicBaseURL(cfg.PublicBaseURL),
		app.WithWorkerCount(cfg.NotifyWorkers),
		app.WithQueueSize(cfg.NotifyQueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithRecentSize(cfg.NotifyRecentSize),
	}

	if cfg.CatalogPath != "" {
		c, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithCatalog(c))
	}

	return app.New(opts...), nil
}

// newRouter mounts the docs, the site and the API on one chi router.
func newRouter(ctx context.Context, cfg *config.Config, svc *app.Service) chi.Router {
	r := chi.NewRouter()

	// The API installs the middleware stack, so it registers first.
	apiServer := api.NewServer(svc, svc,
		api.WithLocale(cfg.Locale),
		api.WithCORSOrigins(cfg.CORSAllowedOrigins),
		api.WithRateLimit(cfg.RateLimitRequests, time.Duration(cfg.RateLimitWindowS)*time.Second),
	)
	apiServer.Register(ctx, r)

	swagger.Register(ctx, r)
	site.Register(ctx, r)

	return r
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics refreshes the queue and board gauges.
func updateServiceMetrics(svc *app.Service) {
	// GetStats refreshes the queue and requirement gauges itself.
	stats := svc.GetStats()

	if workerCount, ok := stats["workerCount"].(int); ok {
		metrics.UpdateWorkerCount(workerCount)
	}
}
