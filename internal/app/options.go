package service

import (
	"github.com/okian/stagebook/internal/adapters/repository"
	"github.com/okian/stagebook/internal/catalog"
	"github.com/okian/stagebook/internal/domain/board"
	"github.com/okian/stagebook/internal/domain/share"
	"github.com/okian/stagebook/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of notification workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the notification queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the idempotency key cache. Zero or less means
// unbounded.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		s.dedupeSize = size
	}
}

// WithRecentSize sets how many delivered notices are kept for reads.
func WithRecentSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.recentSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog sets the performer catalog. The built-in one is used otherwise.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithStore selects the key-value backend opened on Start.
func WithStore(driver string, opts ...repository.Option) Option {
	return func(s *Service) {
		s.storeDriver = driver
		s.storeOpts = opts
	}
}

// WithKV injects an already opened backend. The service closes it on Stop.
func WithKV(kv repository.KV) Option {
	return func(s *Service) {
		s.kv = kv
	}
}

// WithBudgetPolicy sets how non-numeric budgets are handled.
func WithBudgetPolicy(p board.BudgetPolicy) Option {
	return func(s *Service) {
		if p.Valid() {
			s.budgetPolicy = p
		}
	}
}

// WithPublicBaseURL makes relative profile links absolute in share payloads.
func WithPublicBaseURL(base string) Option {
	return func(s *Service) {
		s.publicBaseURL = base
	}
}

// WithShareCapabilities sets the native share and clipboard used by
// ShareChart. Either may be nil.
func WithShareCapabilities(sharer share.Sharer, clipboard share.Clipboard) Option {
	return func(s *Service) {
		s.sharer = sharer
		s.clipboard = clipboard
	}
}
