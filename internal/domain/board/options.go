package board

import (
	"time"

	"github.com/okian/stagebook/pkg/logger"
)

// Option applies a configuration option to the Board.
type Option func(*Board)

// WithBudgetPolicy sets how non-numeric budgets are handled. Unknown policies
// are ignored.
func WithBudgetPolicy(p BudgetPolicy) Option {
	return func(b *Board) {
		if p.Valid() {
			b.policy = p
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIDGenerator replaces the UUIDv7 generator.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(b *Board) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// WithLogger sets the logger used to report degraded loads.
func WithLogger(l logger.Logger) Option {
	return func(b *Board) {
		b.log = l
	}
}
