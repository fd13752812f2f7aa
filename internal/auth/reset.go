// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// DefaultResetTTL is the reset token lifetime when none is configured.
const DefaultResetTTL = time.Hour

// ResetToken is a persisted single-use credential authorizing a credential change.
type ResetToken struct {
	ID          ulid.ULID
	TokenHash   string
	PrincipalID string
	ExpiresAt   time.Time
	Used        bool
	UsedAt      *time.Time
	CreatedAt   time.Time
}

// NewResetToken creates a validated ResetToken instance.
func NewResetToken(principalID, tokenHash string, createdAt, expiresAt time.Time) (*ResetToken, error) {
	if strings.TrimSpace(principalID) == "" {
		return nil, oops.Code("RESET_INVALID_PRINCIPAL").Errorf("principal ID cannot be empty")
	}
	if tokenHash == "" {
		return nil, oops.Code("RESET_INVALID_HASH").Errorf("token hash cannot be empty")
	}
	if !expiresAt.After(createdAt) {
		return nil, oops.Code("RESET_INVALID_EXPIRY").Errorf("expiry must be after creation time")
	}
	return &ResetToken{
		ID:          ulid.Make(),
		TokenHash:   tokenHash,
		PrincipalID: principalID,
		ExpiresAt:   expiresAt,
		CreatedAt:   createdAt,
	}, nil
}

// IsExpiredAt returns true if the token is expired at the given time.
func (r *ResetToken) IsExpiredAt(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// RedeemError returns the error a redemption attempt at now would fail
// with, or nil if the token can be consumed. Used before expiry is checked,
// so a consumed token reports ErrTokenAlreadyUsed even once it has expired.
func (r *ResetToken) RedeemError(now time.Time) error {
	switch {
	case r.Used:
		return ErrTokenAlreadyUsed
	case r.IsExpiredAt(now):
		return ErrTokenExpired
	default:
		return nil
	}
}

// ResetTokenRepository manages reset token persistence.
type ResetTokenRepository interface {
	// ReplaceUnused invalidates every unused token of next.PrincipalID and
	// inserts next, as one unit. Returns the number of tokens invalidated.
	ReplaceUnused(ctx context.Context, next *ResetToken) (int64, error)

	// Consume atomically marks the token used if it is unused and unexpired
	// at now, returning its principal. Fails with ErrTokenNotFound,
	// ErrTokenAlreadyUsed or ErrTokenExpired. Of any number of concurrent
	// calls for one token, at most one succeeds.
	Consume(ctx context.Context, tokenHash string, now time.Time) (string, error)

	// InvalidateAll marks every unused token of the principal used.
	InvalidateAll(ctx context.Context, principalID string, at time.Time) (int64, error)

	// DeleteExpired removes all tokens with expires_at <= now regardless of state.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
