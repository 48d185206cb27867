// Package board implements the community requirement board: a persisted,
// newest-first list of booking requests with filter and sort views.
//
// The persisted collection is the source of truth. The Board keeps a cached
// copy that is rehydrated by Load and replaced wholesale after every write.
// Writes are serialised inside one process only; there is no version stamp,
// so two processes sharing a store can overwrite each other.
package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/pkg/logger"
)

// Repository loads and saves the whole requirement collection.
type Repository interface {
	Load(ctx context.Context) ([]model.Requirement, error)
	Save(ctx context.Context, items []model.Requirement) error
}

// State of the cached collection.
type State int

// Board states.
const (
	StateEmpty State = iota
	StateLoaded
	StateMutated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateMutated:
		return "mutated"
	}
	return "unknown"
}

// Board owns the cached requirement collection.
type Board struct {
	mu     sync.RWMutex
	repo   Repository
	items  []model.Requirement
	state  State
	loaded bool

	policy BudgetPolicy
	now    func() time.Time
	newID  func() (string, error)
	log    logger.Logger
}

// New creates a Board backed by repo. Call Load before serving reads.
func New(repo Repository, opts ...Option) *Board {
	b := &Board{
		repo:   repo,
		items:  []model.Requirement{},
		policy: BudgetCoerce,
		now:    time.Now,
		newID:  newUUIDv7,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Load rehydrates the cache from the repository and returns a copy of it.
// Any repository error, including a corrupt stored value, yields an empty
// collection; the error is logged and never returned.
func (b *Board) Load(ctx context.Context) []model.Requirement {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loadLocked(ctx)
	return b.snapshotLocked()
}

func (b *Board) loadLocked(ctx context.Context) {
	items, err := b.repo.Load(ctx)
	if err != nil {
		if b.log != nil {
			b.log.Warn(ctx, "requirements unreadable, starting empty", logger.Error(err))
		}
		items = nil
	}
	if items == nil {
		items = []model.Requirement{}
	}
	b.items = items
	b.loaded = true
	if len(items) == 0 {
		b.state = StateEmpty
	} else {
		b.state = StateLoaded
	}
}

// State reports the cache state.
func (b *Board) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// All returns a copy of the cached collection, newest first.
func (b *Board) All() []model.Requirement {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// Len returns the number of cached requirements.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

func (b *Board) snapshotLocked() []model.Requirement {
	out := make([]model.Requirement, len(b.items))
	copy(out, b.items)
	return out
}

// Create validates in, prepends the new requirement and persists the full
// collection. On a validation or persistence error nothing changes.
func (b *Board) Create(ctx context.Context, in Input) (model.Requirement, error) {
	clean, err := Validate(in)
	if err != nil {
		return model.Requirement{}, err
	}
	budget, err := ParseBudget(clean.Budget, b.policy)
	if err != nil {
		return model.Requirement{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.loaded {
		b.loadLocked(ctx)
	}

	id, err := b.newID()
	if err != nil {
		return model.Requirement{}, fmt.Errorf("generate id: %w", err)
	}

	rec := model.Requirement{
		ID:          id,
		Title:       clean.Title,
		Description: clean.Description,
		Category:    model.Category(clean.Category),
		Date:        clean.Date,
		Location:    clean.Location,
		Budget:      budget,
		Contact:     clean.Contact,
		CreatedAt:   b.createdAtLocked(),
	}

	next := make([]model.Requirement, 0, len(b.items)+1)
	next = append(next, rec)
	next = append(next, b.items...)

	if err := b.repo.Save(ctx, next); err != nil {
		return model.Requirement{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	b.items = next
	b.state = StateMutated
	return rec, nil
}

// createdAtLocked keeps createdAt non-decreasing even if the clock steps back.
func (b *Board) createdAtLocked() time.Time {
	now := b.now().UTC()
	for _, r := range b.items {
		if r.CreatedAt.After(now) {
			now = r.CreatedAt
		}
	}
	return now
}

// Query applies q to the cached collection.
func (b *Board) Query(q Query) []model.Requirement {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Apply(b.items, q)
}

// Locations lists the distinct locations of the cached collection.
func (b *Board) Locations() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Locations(b.items)
}
