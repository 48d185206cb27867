// Command seed posts generated requirements to a running StageBook service
// and verifies the board serves them back in order.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/stagebook/internal/seeder"
	"github.com/okian/stagebook/pkg/logger"
)

// Default configuration constants.
const (
	defaultCount       = 200
	defaultReplays     = 10
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRetries     = 5
	defaultInvalid     = 0.1
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		count      = flag.Int("count", defaultCount, "Number of requirements to generate and post")
		invalid    = flag.Float64("invalid", defaultInvalid, "Share of requirements posted with a missing field")
		replays    = flag.Int("replays", defaultReplays, "Number of accepted posts re-sent with the same Idempotency-Key")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		retries    = flag.Int("retries", defaultRetries, "Attempts per request while rate limited")
		seed       = flag.Uint64("seed", 0, "Generator seed (default: from the clock)")
		outputFile = flag.String("output", "", "Write the generated requests to this JSON file")
		verbose    = flag.Bool("verbose", false, "Log every request")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	cfg := &seeder.Config{
		BaseURL:      *baseURL,
		Count:        *count,
		InvalidRatio: *invalid,
		ReplayCount:  *replays,
		Workers:      *workers,
		Timeout:      *timeout,
		MaxRetries:   *retries,
		Seed:         *seed,
		OutputFile:   *outputFile,
		Verbose:      *verbose,
	}

	if _, err := seeder.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
