// Package dedupe tracks idempotency keys so a retried POST replays its first
// result instead of creating a duplicate.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen keys and the result attached to each.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Remember attaches a result to a recorded key. Unknown keys are ignored.
	Remember(ctx context.Context, key, result string)

	// Lookup returns the result attached to key. ok is false while the first
	// request is still in flight or when the key is unknown.
	Lookup(ctx context.Context, key string) (result string, ok bool)

	// Unrecord forgets key so the request can be retried, e.g. after the
	// first attempt failed.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

type entry struct {
	result string
	done   bool
	gen    uint64
}

// slot is one ring position. gen ties it to the entry that claimed it, so a
// key recorded again after Unrecord is not evicted through its stale slot.
type slot struct {
	key string
	gen uint64
}

// inMemoryDeduper keeps keys in a map. In bounded mode a ring of keys in
// insertion order drives FIFO eviction of the oldest key.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*entry
	ring    []slot // bounded mode only
	next    int
	gen     uint64
	maxSize int // 0 or negative = unbounded
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 10000,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]*entry)
	if d.maxSize > 0 {
		d.ring = make([]slot, 0, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}

	d.gen++
	if d.maxSize > 0 {
		s := slot{key: key, gen: d.gen}
		if len(d.ring) < d.maxSize {
			d.ring = append(d.ring, s)
		} else {
			// Slot d.next is the oldest; its key may be unrecorded or
			// recorded again under a newer slot.
			old := d.ring[d.next]
			if e, ok := d.seen[old.key]; ok && e.gen == old.gen {
				delete(d.seen, old.key)
				d.size.Add(-1)
			}
			d.ring[d.next] = s
			d.next = (d.next + 1) % d.maxSize
		}
	}

	d.seen[key] = &entry{gen: d.gen}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Remember(_ context.Context, key, result string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.seen[key]; ok {
		e.result = result
		e.done = true
	}
}

func (d *inMemoryDeduper) Lookup(_ context.Context, key string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.seen[key]
	if !ok || !e.done {
		return "", false
	}
	return e.result, true
}

// Unrecord leaves the key's ring slot in place; eviction skips slots whose
// generation no longer matches the live entry.
func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[key]; ok {
		delete(d.seen, key)
		d.size.Add(-1)
	}
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
