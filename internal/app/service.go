// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	eventqueue "github.com/okian/stagebook/internal/adapters/mq/queue"
	workerpool "github.com/okian/stagebook/internal/adapters/mq/worker"
	"github.com/okian/stagebook/internal/adapters/repository"
	"github.com/okian/stagebook/internal/catalog"
	"github.com/okian/stagebook/internal/domain/account"
	"github.com/okian/stagebook/internal/domain/board"
	"github.com/okian/stagebook/internal/domain/dedupe"
	"github.com/okian/stagebook/internal/domain/discovery"
	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/internal/domain/notify"
	"github.com/okian/stagebook/internal/domain/scoring"
	"github.com/okian/stagebook/internal/domain/share"
	"github.com/okian/stagebook/internal/domain/types"
	"github.com/okian/stagebook/pkg/logger"
	"github.com/okian/stagebook/pkg/metrics"
)

// ErrNotStarted is returned by writes made before Start or after Stop.
// Reads return empty results instead.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for StageBook.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog  *catalog.Catalog
	ranked   []scoring.Ranked
	kv       repository.KV
	board    *board.Board
	accounts *account.Service
	deduper  dedupe.Deduper
	queue    *eventqueue.InMemoryQueue
	notifier notify.Notifier
	recent   *workerpool.Recent
	pool     *workerpool.Pool

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	recentSize    int
	storeDriver   string
	storeOpts     []repository.Option
	budgetPolicy  board.BudgetPolicy
	publicBaseURL string
	sharer        share.Sharer
	clipboard     share.Clipboard

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU(),
		queueSize:    1_000,
		dedupeSize:   10_000,
		recentSize:   50,
		storeDriver:  repository.DriverMemory,
		budgetPolicy: board.BudgetCoerce,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start opens the store, loads the catalog and the board, and builds the
// notification pipeline. Workers run once Workers() is served.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting stagebook service...")

	if s.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		s.catalog = c
	}
	s.ranked = scoring.Rank(s.catalog.TopCharts)

	if s.kv == nil {
		kv, err := repository.Open(ctx, s.storeDriver, s.storeOpts...)
		if err != nil {
			return fmt.Errorf("open %s store: %w", s.storeDriver, err)
		}
		s.kv = kv
	}

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.notifier = eventqueue.NewNotifier(s.queue, s.logger.Named("notifier"))
	s.recent = workerpool.NewRecent(s.recentSize)
	s.pool = workerpool.NewPool(s.workerCount, s.queue, []workerpool.Sink{
		workerpool.NewLogSink(s.logger.Named("notices")),
		s.recent,
	})

	s.board = board.New(
		repository.NewRequirementRepository(s.kv),
		board.WithBudgetPolicy(s.budgetPolicy),
		board.WithLogger(s.logger.Named("board")),
	)
	items := s.board.Load(ctx)
	metrics.UpdateRequirementsTotal(len(items))

	s.accounts = account.New(repository.NewAccountRepository(s.kv))

	s.started = true
	s.logger.Info(ctx, "stagebook service started",
		logger.Int("performers", len(s.catalog.TopCharts)),
		logger.Int("listings", len(s.catalog.Discover)),
		logger.Int("requirements", len(items)),
		logger.String("store", s.storeDriver),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)

	return nil
}

// Workers returns the notification worker pool for supervision. It is nil
// before Start.
func (s *Service) Workers() *workerpool.Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pool
}

// Stop releases the store. Queued notices are drained by the pool when its
// supervisor stops it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping stagebook service...")

	if s.queue != nil && !s.queue.IsClosed() {
		_ = s.queue.Close()
	}
	if s.kv != nil {
		if err := s.kv.Close(); err != nil {
			s.logger.Warn(ctx, "closing store failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "stagebook service stopped")
}

// running reports whether Start completed and Stop has not been called.
func (s *Service) running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// Chart returns the Top Charts rendered for locale. It is empty before Start.
func (s *Service) Chart(_ context.Context, locale string) []types.ChartEntry {
	if !s.running() {
		return []types.ChartEntry{}
	}
	metrics.RecordChartRequest()
	return types.NewChart(s.ranked, locale)
}

// SharePayload builds the share payload of a charted performer.
func (s *Service) SharePayload(_ context.Context, id string) (share.Payload, bool) {
	if !s.running() {
		return share.Payload{}, false
	}
	r, ok := scoring.Find(s.ranked, id)
	if !ok {
		return share.Payload{}, false
	}
	return share.PayloadFor(r.Performer, s.publicBaseURL), true
}

// ShareChart runs the share chain for a charted performer with the
// configured capabilities. ok is false for unknown performers.
func (s *Service) ShareChart(ctx context.Context, id string) (outcome share.Outcome, ok bool) {
	p, ok := s.SharePayload(ctx, id)
	if !ok {
		return "", false
	}
	chain := share.Chain{Clipboard: s.clipboard, Notifier: s}
	if s.sharer != nil {
		chain.Sharer = s.sharer
	}
	outcome = chain.Share(ctx, p)
	metrics.RecordShareOutcome(string(outcome))
	return outcome, true
}

// Discover filters and sorts the Discover catalog.
func (s *Service) Discover(_ context.Context, c discovery.Criteria) []model.PerformerListing {
	if !s.running() {
		return []model.PerformerListing{}
	}
	out := discovery.Apply(s.catalog.Discover, c)
	metrics.RecordDiscoverQuery(len(out))
	return out
}

// DiscoverFacets lists the genres and locations present in the catalog.
func (s *Service) DiscoverFacets(context.Context) (genres, locations []string) {
	if !s.running() {
		return []string{}, []string{}
	}
	return discovery.Genres(s.catalog.Discover), discovery.Locations(s.catalog.Discover)
}

// PostRequirement creates a requirement on the board.
func (s *Service) PostRequirement(ctx context.Context, in board.Input) (model.Requirement, error) {
	if !s.running() {
		return model.Requirement{}, ErrNotStarted
	}
	rec, err := s.board.Create(ctx, in)
	if err != nil {
		reason := "persist"
		switch {
		case errors.Is(err, board.ErrMissingFields):
			reason = "missing_fields"
		case errors.Is(err, board.ErrInvalidBudget):
			reason = "invalid_budget"
		default:
			s.logger.Error(ctx, "posting requirement failed", logger.Error(err))
		}
		metrics.RecordRequirementRejected(reason)
		return model.Requirement{}, err
	}
	metrics.RecordRequirementCreated()
	metrics.UpdateRequirementsTotal(s.board.Len())
	s.logger.Debug(ctx, "requirement posted",
		logger.String("id", rec.ID),
		logger.String("category", string(rec.Category)),
		logger.String("location", rec.Location),
	)
	return rec, nil
}

// Requirements applies the artist view query.
func (s *Service) Requirements(_ context.Context, q board.Query) []model.Requirement {
	if !s.running() {
		return []model.Requirement{}
	}
	return s.board.Query(q)
}

// AllRequirements returns the organizer view: everything, newest first.
func (s *Service) AllRequirements(context.Context) []model.Requirement {
	if !s.running() {
		return []model.Requirement{}
	}
	return s.board.All()
}

// RequirementLocations lists the distinct requirement locations.
func (s *Service) RequirementLocations(context.Context) []string {
	if !s.running() {
		return []string{}
	}
	return s.board.Locations()
}

// Notify publishes a notice to the delivery queue.
func (s *Service) Notify(ctx context.Context, n notify.Notice) {
	if !s.running() || s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, n)
}

// RecentNotices returns delivered notices, newest first.
func (s *Service) RecentNotices(context.Context) []notify.Notice {
	if s.recent == nil {
		return nil
	}
	return s.recent.List()
}

// Login remembers u as the current user.
func (s *Service) Login(ctx context.Context, u model.User) (model.User, error) {
	if !s.running() {
		return model.User{}, ErrNotStarted
	}
	return s.accounts.Login(ctx, u)
}

// Logout forgets the current user.
func (s *Service) Logout(ctx context.Context) error {
	if !s.running() {
		return ErrNotStarted
	}
	return s.accounts.Logout(ctx)
}

// Current returns the remembered user.
func (s *Service) Current(ctx context.Context) (model.User, bool) {
	if !s.running() {
		return model.User{}, false
	}
	return s.accounts.Current(ctx)
}

// Profile returns the saved artist profile.
func (s *Service) Profile(ctx context.Context) model.ArtistProfile {
	if !s.running() {
		return model.ArtistProfile{}
	}
	return s.accounts.Profile(ctx)
}

// SaveProfile stores the artist profile of the current user.
func (s *Service) SaveProfile(ctx context.Context, p model.ArtistProfile) (model.ArtistProfile, error) {
	if !s.running() {
		return model.ArtistProfile{}, ErrNotStarted
	}
	return s.accounts.SaveProfile(ctx, p)
}

// SeenAndRecord atomically checks if an idempotency key was seen and records
// it if not.
func (s *Service) SeenAndRecord(ctx context.Context, key string) bool {
	if !s.running() {
		return false
	}
	seen := s.deduper.SeenAndRecord(ctx, key)
	if seen {
		metrics.RecordIdempotentReplay()
	}
	return seen
}

// Remember attaches the first response to key.
func (s *Service) Remember(ctx context.Context, key, result string) {
	if !s.running() {
		return
	}
	s.deduper.Remember(ctx, key, result)
}

// Lookup returns the response remembered for key.
func (s *Service) Lookup(ctx context.Context, key string) (string, bool) {
	if !s.running() {
		return "", false
	}
	return s.deduper.Lookup(ctx, key)
}

// Unrecord forgets key so the request can be retried.
func (s *Service) Unrecord(ctx context.Context, key string) {
	if !s.running() {
		return
	}
	s.deduper.Unrecord(ctx, key)
}

// Size returns the current number of idempotency keys.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"store":       s.storeDriver,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["requirements"] = s.board.Len()
		stats["boardState"] = s.board.State().String()
		stats["performers"] = len(s.catalog.TopCharts)
		stats["listings"] = len(s.catalog.Discover)
		stats["idempotencyKeys"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateRequirementsTotal(s.board.Len())
	}

	return stats
}
