// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package lifecycle runs periodic maintenance over the credential stores.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/oops"
)

// Store names used in logs and metrics.
const (
	RefreshTokens = "refresh_tokens"
	ResetTokens   = "reset_tokens"
)

// Config defines how often each store is swept.
type Config struct {
	RefreshInterval time.Duration // How often expired refresh tokens are purged
	ResetInterval   time.Duration // How often expired reset tokens are purged
	Timeout         time.Duration // Upper bound on a single sweep; 0 means none
}

// DefaultConfig returns the default sweep schedule.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 24 * time.Hour,
		ResetInterval:   6 * time.Hour,
		Timeout:         time.Minute,
	}
}

// Purger deletes records that expired at or before now and returns how many
// it removed. auth.RefreshTokenStore and auth.ResetTokenFlow implement it.
type Purger interface {
	Sweep(ctx context.Context, now time.Time) (int64, error)
}

// Recorder observes sweep outcomes.
type Recorder interface {
	SweepCompleted(store string, deleted int64, err error)
}

type noopRecorder struct{}

func (noopRecorder) SweepCompleted(string, int64, error) {}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		s.logger = logger
	}
}

// WithClock sets the time source used as the expiry cutoff.
func WithClock(clock func() time.Time) Option {
	return func(s *Sweeper) {
		s.clock = clock
	}
}

// WithRecorder sets the sweep outcome recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Sweeper) {
		s.recorder = r
	}
}

// Sweeper purges expired refresh and reset tokens on independent schedules.
// A failed sweep is logged and retried on the next tick.
type Sweeper struct {
	cfg      Config
	refresh  Purger
	reset    Purger
	logger   *slog.Logger
	clock    func() time.Time
	recorder Recorder

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSweeper creates a new sweeper.
func NewSweeper(cfg Config, refresh, reset Purger, opts ...Option) *Sweeper {
	s := &Sweeper{
		cfg:      cfg,
		refresh:  refresh,
		reset:    reset,
		logger:   slog.Default(),
		clock:    time.Now,
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SweepRefreshTokens purges expired refresh tokens once.
func (s *Sweeper) SweepRefreshTokens(ctx context.Context) (int64, error) {
	return s.sweep(ctx, RefreshTokens, s.refresh)
}

// SweepResetTokens purges expired reset tokens once.
func (s *Sweeper) SweepResetTokens(ctx context.Context) (int64, error) {
	return s.sweep(ctx, ResetTokens, s.reset)
}

// RunOnce sweeps both stores. Both are attempted even if the first fails;
// errors are combined.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	var errs []error
	if _, err := s.SweepRefreshTokens(ctx); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.SweepResetTokens(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Start begins periodic sweeping. Each store is swept once immediately and
// then on its own interval until ctx is cancelled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.cfg.RefreshInterval <= 0 || s.cfg.ResetInterval <= 0 {
		return oops.Code("SWEEP_INVALID_INTERVAL").
			With("refresh_interval", s.cfg.RefreshInterval).
			With("reset_interval", s.cfg.ResetInterval).
			Errorf("sweep intervals must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return oops.Code("SWEEP_ALREADY_RUNNING").Errorf("sweeper already started")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(2)
	go s.run(ctx, s.cfg.RefreshInterval, s.SweepRefreshTokens)
	go s.run(ctx, s.cfg.ResetInterval, s.SweepResetTokens)

	s.logger.Info("sweeper started",
		"refresh_interval", s.cfg.RefreshInterval,
		"reset_interval", s.cfg.ResetInterval)
	return nil
}

// Stop stops the sweeper and waits for in-flight sweeps to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Sweeper) run(ctx context.Context, interval time.Duration, sweep func(context.Context) (int64, error)) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run once immediately
	_, _ = sweep(ctx) //nolint:errcheck // logged by sweep

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = sweep(ctx) //nolint:errcheck // logged by sweep
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context, store string, purger Purger) (int64, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := s.clock()
	deleted, err := purger.Sweep(ctx, start)
	s.recorder.SweepCompleted(store, deleted, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "sweep failed", "store", store, "error", err)
		return 0, oops.Code("SWEEP_FAILED").With("store", store).Wrap(err)
	}

	if deleted > 0 {
		s.logger.InfoContext(ctx, "purged expired tokens", "store", store, "count", deleted)
	} else {
		s.logger.DebugContext(ctx, "sweep found nothing to purge", "store", store)
	}
	return deleted, nil
}
