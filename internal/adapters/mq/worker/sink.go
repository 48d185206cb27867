package worker

import (
	"context"
	"sync"

	"github.com/okian/stagebook/pkg/logger"
)

// LogSink writes every notice to the log.
type LogSink struct {
	log logger.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(l logger.Logger) *LogSink {
	return &LogSink{log: l}
}

// Deliver logs e.
func (s *LogSink) Deliver(ctx context.Context, e Event) error {
	s.log.Info(ctx, "notice",
		logger.String("level", string(e.Level)),
		logger.String("title", e.Title),
		logger.String("description", e.Description),
	)
	return nil
}

// Recent keeps the last N delivered notices, newest first.
type Recent struct {
	mu    sync.RWMutex
	buf   []Event
	start int
	size  int
}

// NewRecent creates a buffer of the given capacity (at least one).
func NewRecent(capacity int) *Recent {
	if capacity < 1 {
		capacity = 1
	}
	return &Recent{buf: make([]Event, capacity)}
}

// Deliver stores e, evicting the oldest notice when full.
func (r *Recent) Deliver(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := (r.start + r.size) % len(r.buf)
	if r.size < len(r.buf) {
		r.size++
	} else {
		r.start = (r.start + 1) % len(r.buf)
	}
	r.buf[idx] = e
	return nil
}

// List returns the stored notices, newest first.
func (r *Recent) List() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, 0, r.size)
	for i := r.size - 1; i >= 0; i-- {
		out = append(out, r.buf[(r.start+i)%len(r.buf)])
	}
	return out
}
