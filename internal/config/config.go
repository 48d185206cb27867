// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load(ctx) layers defaults, an optional YAML file and STAGEBOOK_ env vars.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"runtime"
)

// Store drivers understood by the repository factory.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

// Budget policies for requirement posts.
const (
	BudgetCoerce = "coerce"
	BudgetReject = "reject"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// StoreDriver selects the key-value backend: memory, badger, sqlite, mongo.
	StoreDriver string `koanf:"store_driver"`

	// StorePath is the badger directory or the sqlite database file.
	StorePath string `koanf:"store_path"`

	MongoURI        string `koanf:"mongo_uri"`
	MongoDatabase   string `koanf:"mongo_database"`
	MongoCollection string `koanf:"mongo_collection"`

	// CatalogPath points at a YAML performer catalog. Empty uses the built-in one.
	CatalogPath string `koanf:"catalog_path"`

	// PublicBaseURL turns relative profile references into absolute share links.
	PublicBaseURL string `koanf:"public_base_url"`

	// Locale drives compact number formatting in chart responses.
	Locale string `koanf:"locale"`

	// BudgetPolicy decides what happens to non-numeric budgets: coerce or reject.
	BudgetPolicy string `koanf:"budget_policy"`

	// DedupeSize bounds the idempotency key cache.
	DedupeSize int `koanf:"dedupe_size"`

	// NotifyQueueSize bounds the notification queue.
	NotifyQueueSize int `koanf:"notify_queue_size"`

	// NotifyWorkers sets the number of notification delivery workers.
	NotifyWorkers int `koanf:"notify_workers"`

	// NotifyRecentSize bounds the in-memory list served by GET /notifications.
	NotifyRecentSize int `koanf:"notify_recent_size"`

	// RateLimitRequests per RateLimitWindowS seconds and client IP. Zero disables.
	RateLimitRequests int `koanf:"rate_limit_requests"`
	RateLimitWindowS  int `koanf:"rate_limit_window_s"`

	// CORSAllowedOrigins lists origins allowed to call the API from a browser.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		StoreDriver:        StoreMemory,
		StorePath:          "data/stagebook",
		MongoURI:           "mongodb://localhost:27017",
		MongoDatabase:      "stagebook",
		MongoCollection:    "kv",
		PublicBaseURL:      "http://localhost:9080",
		Locale:             "en",
		BudgetPolicy:       BudgetCoerce,
		DedupeSize:         10_000,
		NotifyQueueSize:    1_000,
		NotifyWorkers:      runtime.NumCPU(),
		NotifyRecentSize:   50,
		RateLimitRequests:  100,
		RateLimitWindowS:   60,
		CORSAllowedOrigins: []string{},
	}
}
