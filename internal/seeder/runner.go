package seeder

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/stagebook/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run executes a complete seeding run against cfg.BaseURL.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("seeder")

	log.Info(ctx, "starting stagebook seeder",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("count", cfg.Count),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
		logger.Int("replays", cfg.ReplayCount))

	client := NewHTTPClient(cfg.BaseURL, cfg.Timeout)

	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	requests, err := Generate(ctx, cfg, time.Now())
	if err != nil {
		return stats, fmt.Errorf("generation failed: %w", err)
	}
	stats.Generated = len(requests)

	results := submit(ctx, cfg, client, requests, stats)

	if err := replay(ctx, cfg, client, results, stats); err != nil {
		return stats, err
	}

	if err := verify(ctx, client, stats); err != nil {
		return stats, fmt.Errorf("result verification failed: %w", err)
	}

	if cfg.OutputFile != "" {
		if err := saveRequests(cfg.OutputFile, requests); err != nil {
			log.Warn(ctx, "failed to save requests to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

// replay re-sends the first accepted requests with their original keys.
// Every one of them must come back as a replay of the same requirement.
func replay(ctx context.Context, cfg *Config, client *HTTPClient, results []result, stats *Stats) error {
	var again []Request
	ids := make(map[string]string)
	for _, r := range results {
		if len(again) >= cfg.ReplayCount {
			break
		}
		if r.outcome == OutcomeCreated {
			again = append(again, r.request)
			ids[r.request.Key] = r.id
		}
	}
	if len(again) == 0 {
		return nil
	}

	replayStats := &Stats{}
	for _, r := range submit(ctx, cfg, client, again, replayStats) {
		if r.outcome != OutcomeReplayed || r.id != ids[r.request.Key] {
			return fmt.Errorf("%w: key %s came back %s", ErrVerification, r.request.Key, r.outcome)
		}
	}
	stats.Replayed += replayStats.Replayed
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}

// saveRequests writes the generated requests as a JSON array.
func saveRequests(filename string, requests []Request) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(requests, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal requests: %w", err)
	}
	return os.WriteFile(filename, data, filePermission)
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.Generated) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("created", stats.Created),
		logger.Int("replayed", stats.Replayed),
		logger.Int("rejected", stats.Rejected),
		logger.Int("throttled", stats.Throttled),
		logger.Int("failed", stats.Failed),
		logger.Int("listed", stats.Listed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("requestsPerSecond", perSecond))
}
