// Package worker runs background jobs against the ride store.
package worker

import (
	"context"
	"log/slog"
	"time"

	"ridepool/internal/observability"
	"ridepool/internal/repository"
)

const sweeperLockName = "sweeper"

// Locker serializes sweeps across instances. Acquire returns "" when the
// lock is held elsewhere.
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (string, error)
	Release(ctx context.Context, name, token string) error
}

// Invalidator drops completed rides from the ride cache.
type Invalidator interface {
	InvalidateRides(ctx context.Context, rideIDs []string) error
}

// SweeperConfig configures a Sweeper. Lock and Cache are optional.
type SweeperConfig struct {
	Rides    repository.RideRepository
	Lock     Locker
	Cache    Invalidator
	Logger   *slog.Logger
	Interval time.Duration
	LockTTL  time.Duration
}

// Sweeper completes rides whose departure time has passed.
type Sweeper struct {
	rides    repository.RideRepository
	lock     Locker
	cache    Invalidator
	logger   *slog.Logger
	interval time.Duration
	lockTTL  time.Duration
	now      func() time.Time
}

// NewSweeper creates a new Sweeper.
func NewSweeper(cfg SweeperConfig) *Sweeper {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = time.Minute
	}
	return &Sweeper{
		rides:    cfg.Rides,
		lock:     cfg.Lock,
		cache:    cfg.Cache,
		logger:   logger.With("component", "sweeper"),
		interval: interval,
		lockTTL:  lockTTL,
		now:      time.Now,
	}
}

// Start sweeps once immediately and then on every tick until ctx is done.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("sweeper started", "interval", s.interval.String())

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
		}
		s.sweep(ctx)
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("sweep failed", "error", err)
	}
}

// RunOnce marks every open or full ride scheduled before now as completed
// and returns the IDs it changed. Running it again right away changes nothing.
// When another instance holds the sweep lock it returns nil without sweeping.
func (s *Sweeper) RunOnce(ctx context.Context) ([]string, error) {
	if s.lock != nil {
		token, err := s.lock.Acquire(ctx, sweeperLockName, s.lockTTL)
		if err != nil {
			observability.SweepRunsTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		if token == "" {
			observability.SweepRunsTotal.WithLabelValues("skipped").Inc()
			s.logger.Debug("sweep skipped, lock held elsewhere")
			return nil, nil
		}
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx), sweeperLockName, token); err != nil {
				s.logger.Warn("failed to release sweeper lock", "error", err)
			}
		}()
	}

	start := time.Now()
	ids, err := s.rides.CompleteDeparted(ctx, s.now())
	observability.SweepDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.SweepRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	observability.SweepRunsTotal.WithLabelValues("ok").Inc()

	if len(ids) == 0 {
		return ids, nil
	}
	observability.RidesCompletedTotal.Add(float64(len(ids)))
	s.logger.Info("rides completed", "count", len(ids))

	if s.cache != nil {
		if err := s.cache.InvalidateRides(ctx, ids); err != nil {
			s.logger.Warn("failed to invalidate completed rides", "error", err)
		}
	}
	return ids, nil
}
