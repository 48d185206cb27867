// Package seeder fills a running StageBook service with generated
// requirements and checks that the board serves them back in order.
package seeder

import (
	"time"

	"github.com/okian/stagebook/internal/domain/board"
)

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Count        int           // Number of requirements to generate
	InvalidRatio float64       // Share of requests posted with a blank required field
	ReplayCount  int           // Number of accepted requests re-sent with the same key
	Workers      int           // Number of concurrent workers
	Timeout      time.Duration // HTTP request timeout
	MaxRetries   int           // Attempts per request when rate limited
	Seed         uint64        // Generator seed, zero picks one from the clock
	OutputFile   string        // Output file for generated requests
	Verbose      bool          // Log every request
}

// Request is one generated post with its idempotency key.
type Request struct {
	Key   string      `json:"key"`
	Input board.Input `json:"input"`
	Valid bool        `json:"valid"`
}

// Item is the part of a requirement the seeder verifies.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Location  string    `json:"location"`
	Budget    float64   `json:"budget"`
	CreatedAt time.Time `json:"createdAt"`
}

type listResponse struct {
	Count int    `json:"count"`
	Items []Item `json:"items"`
}

type createResponse struct {
	Data Item `json:"data"`
}

// Outcome of a single post.
type Outcome string

// Outcomes.
const (
	OutcomeCreated   Outcome = "created"
	OutcomeReplayed  Outcome = "replayed"
	OutcomeRejected  Outcome = "rejected"
	OutcomeThrottled Outcome = "throttled"
	OutcomeFailed    Outcome = "failed"
)

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Created    int
	Replayed   int
	Rejected   int
	Throttled  int
	Failed     int
	Listed     int
	CreatedIDs []string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
