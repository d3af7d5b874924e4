package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/greenhollow/gh-game-core/internal/adapter"
	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/game"
	"github.com/greenhollow/gh-game-core/internal/logger"
	"github.com/greenhollow/gh-game-core/internal/store"
)

const (
	SWEEP_CYCLE_INTERVAL = 15 * time.Minute // Time to sleep between sweep cycles
)

// EconomySweeperConfig holds configuration for the economy sweeper
type EconomySweeperConfig struct {
	BatchSize      int // Assemblies to page per store read
	WorkerPoolSize int // Concurrent leaderboard refreshes
}

// economySweeper implements the Sweeper interface for periodic economy
// maintenance: it recomputes mining power leaderboard entries from the
// current staking state and expires overdue voting proposals.
type economySweeper struct {
	config    *EconomySweeperConfig
	store     store.Store
	svc       game.Service
	pool      pond.Pool
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewEconomySweeper creates a new economy sweeper
func NewEconomySweeper(
	config *EconomySweeperConfig,
	st store.Store,
	svc game.Service,
	clock adapter.Clock,
) Sweeper {
	return &economySweeper{
		config:    config,
		store:     st,
		svc:       svc,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *economySweeper) Name() string {
	return "economy-sweeper"
}

// Start begins the sweeper's main loop
func (s *economySweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting economy sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	// Create worker pool
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Economy sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Economy sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *economySweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *economySweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping economy sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Economy sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Economy sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single sweep cycle
func (s *economySweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()
	logger.InfoCtx(ctx, "Starting sweep cycle")

	owners, err := s.collectStakingOwners(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect staking owners: %w", err)
	}

	var refreshed, failed atomic.Int32

	// Refresh each owner's mining power entry on the worker pool
	for _, owner := range owners {
		s.pool.Submit(func() {
			if err := s.svc.RefreshMiningPower(ctx, owner); err != nil {
				failed.Add(1)
				logger.ErrorCtx(ctx, err, zap.String("owner", owner.String()))
				return
			}
			refreshed.Add(1)
		})
	}

	// Wait for all refreshes to complete
	s.pool.StopAndWait()

	// Recreate pool for next cycle
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	// Expire overdue proposals with retry; a missed expiry would leave a
	// proposal accepting votes past its deadline.
	if err := s.expireProposalsWithRetry(ctx); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("CRITICAL: failed to expire proposals after retries: %w", err))
	}

	duration := s.clock.Since(startTime)
	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", duration),
		zap.Int("owners", len(owners)),
		zap.Int32("refreshed", refreshed.Load()),
		zap.Int32("failed", failed.Load()),
	)

	// Sleep for a while to avoid tight loop
	if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
		return ctx.Err() // Context canceled during sleep
	}

	return nil
}

// collectStakingOwners pages through all staked assemblies and returns the
// distinct owners
func (s *economySweeper) collectStakingOwners(ctx context.Context) ([]domain.OwnerName, error) {
	seen := sync.Map{}
	var owners []domain.OwnerName

	afterID := int64(0)
	for {
		assemblies, err := s.store.ListAllAssemblies(ctx, afterID, s.config.BatchSize)
		if err != nil {
			return nil, err
		}
		if len(assemblies) == 0 {
			return owners, nil
		}

		for _, assembly := range assemblies {
			if _, dup := seen.LoadOrStore(assembly.Owner, struct{}{}); !dup {
				owners = append(owners, domain.OwnerName(assembly.Owner))
			}
			afterID = assembly.ID
		}
	}
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted
func (s *economySweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-s.stopChan:
		return false // Interrupted by stop signal
	}
}

// expireProposalsWithRetry expires overdue proposals with exponential backoff retry
func (s *economySweeper) expireProposalsWithRetry(ctx context.Context) error {
	// Configure exponential backoff
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 15 * time.Second
	b.MaxInterval = 2 * time.Minute
	b.MaxElapsedTime = 10 * time.Minute // Total retry time limit
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5 // Add jitter to prevent thundering herd

	// Wrap with context to respect cancellation
	backoffWithContext := backoff.WithContext(b, ctx)

	var expired int
	operation := func() error {
		count, err := s.svc.ExpireProposals(ctx)
		if err != nil {
			return err
		}
		expired = count
		return nil
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Proposal expiry failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoffWithContext, notifyOnError); err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount, err)
	}

	if expired > 0 {
		logger.InfoCtx(ctx, "Expired overdue proposals", zap.Int("count", expired))
	}

	return nil
}
