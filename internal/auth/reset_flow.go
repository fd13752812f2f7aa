// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
)

// ResetFlowOption configures a ResetTokenFlow.
type ResetFlowOption func(*ResetTokenFlow)

// WithResetTTL sets the lifetime of reset tokens.
func WithResetTTL(ttl time.Duration) ResetFlowOption {
	return func(f *ResetTokenFlow) {
		f.ttl = ttl
	}
}

// WithResetClock sets the time source.
func WithResetClock(clock func() time.Time) ResetFlowOption {
	return func(f *ResetTokenFlow) {
		f.clock = clock
	}
}

// WithResetLogger sets the logger.
func WithResetLogger(logger *slog.Logger) ResetFlowOption {
	return func(f *ResetTokenFlow) {
		f.logger = logger
	}
}

// ResetTokenFlow issues and redeems one-time reset tokens.
type ResetTokenFlow struct {
	repo   ResetTokenRepository
	ttl    time.Duration
	clock  func() time.Time
	logger *slog.Logger
}

// NewResetTokenFlow creates a ResetTokenFlow.
func NewResetTokenFlow(repo ResetTokenRepository, opts ...ResetFlowOption) (*ResetTokenFlow, error) {
	if repo == nil {
		return nil, oops.Code("RESET_FLOW_INVALID").Errorf("reset token repository is required")
	}
	f := &ResetTokenFlow{
		repo:   repo,
		ttl:    DefaultResetTTL,
		clock:  time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.ttl <= 0 {
		return nil, oops.Code("RESET_FLOW_INVALID").Errorf("reset token TTL must be positive, got %s", f.ttl)
	}
	return f, nil
}

// Initiate invalidates all unused tokens of principalID and issues a new
// one. The principal must already be resolved by the caller.
// Returns the plaintext token for out-of-band delivery.
func (f *ResetTokenFlow) Initiate(ctx context.Context, principalID string) (string, error) {
	token, hash, err := GenerateOpaqueToken()
	if err != nil {
		return "", oops.Code("RESET_INITIATE_FAILED").
			With("operation", "GenerateOpaqueToken").
			Wrap(err)
	}

	now := f.clock()
	rt, err := NewResetToken(principalID, hash, now, now.Add(f.ttl))
	if err != nil {
		return "", oops.With("operation", "NewResetToken").Wrap(err)
	}

	invalidated, err := f.repo.ReplaceUnused(ctx, rt)
	if err != nil {
		return "", oops.
			With("operation", "ReplaceUnused").
			With("principal_id", principalID).
			Wrap(err)
	}

	f.logger.DebugContext(ctx, "reset token issued",
		"principal_id", principalID,
		"token_id", rt.ID.String(),
		"invalidated_prior", invalidated)
	return token, nil
}

// Redeem consumes token and returns its principal. Fails with
// ErrTokenNotFound, ErrTokenAlreadyUsed or ErrTokenExpired.
func (f *ResetTokenFlow) Redeem(ctx context.Context, token string) (string, error) {
	if !wellFormedOpaqueToken(token) {
		return "", oops.Code("RESET_TOKEN_NOT_FOUND").Wrap(ErrTokenNotFound)
	}

	principalID, err := f.repo.Consume(ctx, HashOpaqueToken(token), f.clock())
	if err != nil {
		return "", oops.With("operation", "redeem reset token").Wrap(err)
	}
	return principalID, nil
}

// Sweep deletes reset tokens that expired at or before now, used or not.
func (f *ResetTokenFlow) Sweep(ctx context.Context, now time.Time) (int64, error) {
	n, err := f.repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, oops.With("operation", "sweep reset tokens").Wrap(err)
	}
	return n, nil
}

// InvalidateAll invalidates every unused token of principalID.
func (f *ResetTokenFlow) InvalidateAll(ctx context.Context, principalID string) (int64, error) {
	n, err := f.repo.InvalidateAll(ctx, principalID, f.clock())
	if err != nil {
		return 0, oops.
			With("operation", "invalidate reset tokens").
			With("principal_id", principalID).
			Wrap(err)
	}
	return n, nil
}
