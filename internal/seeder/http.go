package seeder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/stagebook/pkg/logger"
)

// Header names understood by POST /requirements.
const (
	idempotencyKeyHeader = "Idempotency-Key"
	idempotentReplay     = "Idempotent-Replay"
	defaultRetryAfter    = time.Second
)

// HTTPClient wraps http.Client with JSON helpers.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Get performs a GET request on path.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// GetJSON performs a GET request on path and decodes a 200 body into v.
func (c *HTTPClient) GetJSON(ctx context.Context, path string, v any) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.Unmarshal(body, v)
}

// Post performs a POST request with a JSON body and optional idempotency key.
func (c *HTTPClient) Post(ctx context.Context, path, key string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}
	return c.client.Do(req)
}

func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

type result struct {
	request Request
	outcome Outcome
	id      string
}

// submit posts requests with cfg.Workers concurrent workers and tallies
// the outcomes into stats.
func submit(ctx context.Context, cfg *Config, client *HTTPClient, requests []Request, stats *Stats) []result {
	log := logger.Get().Named("seeder")
	log.Info(ctx, "submitting requirements",
		logger.Int("count", len(requests)),
		logger.Int("workers", cfg.Workers))

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan Request, workers*2)
	results := make(chan result, len(requests))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				outcome, id := submitOne(ctx, cfg, client, r)
				if cfg.Verbose {
					log.Info(ctx, "posted requirement",
						logger.String("key", r.Key),
						logger.String("outcome", string(outcome)))
				}
				results <- result{request: r, outcome: outcome, id: id}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, r := range requests {
			select {
			case <-ctx.Done():
				return
			case jobs <- r:
			}
		}
	}()

	wg.Wait()
	close(results)

	out := make([]result, 0, len(requests))
	for r := range results {
		switch r.outcome {
		case OutcomeCreated:
			stats.Created++
			stats.CreatedIDs = append(stats.CreatedIDs, r.id)
		case OutcomeReplayed:
			stats.Replayed++
		case OutcomeRejected:
			stats.Rejected++
		case OutcomeThrottled:
			stats.Throttled++
		default:
			stats.Failed++
		}
		out = append(out, r)
	}
	return out
}

// submitOne posts a single request, retrying while rate limited.
func submitOne(ctx context.Context, cfg *Config, client *HTTPClient, r Request) (Outcome, string) {
	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := client.Post(ctx, "/requirements/", r.Key, r.Input)
		if err != nil {
			return OutcomeFailed, ""
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return OutcomeFailed, ""
		}

		switch resp.StatusCode {
		case http.StatusCreated:
			var created createResponse
			if err := json.Unmarshal(body, &created); err != nil {
				return OutcomeFailed, ""
			}
			if resp.Header.Get(idempotentReplay) == "true" {
				return OutcomeReplayed, created.Data.ID
			}
			return OutcomeCreated, created.Data.ID
		case http.StatusBadRequest:
			return OutcomeRejected, ""
		case http.StatusTooManyRequests:
			if attempt == attempts-1 {
				return OutcomeThrottled, ""
			}
			if !sleep(ctx, retryAfter(resp)) {
				return OutcomeFailed, ""
			}
		default:
			return OutcomeFailed, ""
		}
	}
	return OutcomeThrottled, ""
}

func retryAfter(resp *http.Response) time.Duration {
	if s, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && s > 0 {
		return time.Duration(s) * time.Second
	}
	return defaultRetryAfter
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
