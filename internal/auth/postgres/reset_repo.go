// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/holomush/tokenkeeper/internal/auth"
)

// ResetTokenRepository implements auth.ResetTokenRepository using PostgreSQL.
type ResetTokenRepository struct {
	pool poolIface
}

// NewResetTokenRepository creates a new ResetTokenRepository.
func NewResetTokenRepository(pool poolIface) *ResetTokenRepository {
	return &ResetTokenRepository{pool: pool}
}

const invalidateUnusedResetSQL = `
	UPDATE reset_tokens SET used = TRUE, used_at = $2
	WHERE principal_id = $1 AND NOT used
`

// ReplaceUnused invalidates all unused tokens of the principal and inserts next.
func (r *ResetTokenRepository) ReplaceUnused(ctx context.Context, next *auth.ResetToken) (int64, error) {
	var invalidated int64
	err := withPrincipalLock(ctx, r.pool, resetLockSeed, next.PrincipalID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, invalidateUnusedResetSQL, next.PrincipalID, next.CreatedAt)
		if err != nil {
			return storeErr("RESET_INVALIDATE_FAILED", "invalidate unused reset tokens", err)
		}
		invalidated = tag.RowsAffected()

		if _, err := tx.Exec(ctx, `
			INSERT INTO reset_tokens (id, token_hash, principal_id, expires_at, used, created_at)
			VALUES ($1, $2, $3, $4, FALSE, $5)
		`, next.ID.String(), next.TokenHash, next.PrincipalID, next.ExpiresAt, next.CreatedAt); err != nil {
			return storeErr("RESET_CREATE_FAILED", "insert reset token", err)
		}
		return nil
	})
	if err != nil {
		return 0, oops.With("principal_id", next.PrincipalID).Wrap(err)
	}
	return invalidated, nil
}

// Consume marks the token used in a single conditional UPDATE, so of two
// concurrent redemptions only one can match the row.
func (r *ResetTokenRepository) Consume(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	var principalID string
	err := r.pool.QueryRow(ctx, `
		UPDATE reset_tokens SET used = TRUE, used_at = $2
		WHERE token_hash = $1 AND NOT used AND expires_at > $2
		RETURNING principal_id
	`, tokenHash, now).Scan(&principalID)
	if err == nil {
		return principalID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", storeErr("RESET_CONSUME_FAILED", "consume reset token", err)
	}

	return "", r.classifyUnconsumable(ctx, tokenHash, now)
}

// classifyUnconsumable explains why Consume matched no row.
func (r *ResetTokenRepository) classifyUnconsumable(ctx context.Context, tokenHash string, now time.Time) error {
	var (
		used      bool
		expiresAt time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT used, expires_at FROM reset_tokens WHERE token_hash = $1
	`, tokenHash).Scan(&used, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return oops.Code("RESET_TOKEN_NOT_FOUND").Wrap(auth.ErrTokenNotFound)
	}
	if err != nil {
		return storeErr("RESET_CONSUME_FAILED", "classify reset token", err)
	}

	rt := auth.ResetToken{Used: used, ExpiresAt: expiresAt}
	switch cause := rt.RedeemError(now); {
	case errors.Is(cause, auth.ErrTokenAlreadyUsed):
		return oops.Code("RESET_TOKEN_USED").Wrap(cause)
	case errors.Is(cause, auth.ErrTokenExpired):
		return oops.Code("RESET_TOKEN_EXPIRED").Wrap(cause)
	default:
		// Row became consumable between the two statements; report it as used
		// rather than retrying, since another caller is racing on it.
		return oops.Code("RESET_TOKEN_USED").Wrap(auth.ErrTokenAlreadyUsed)
	}
}

// InvalidateAll marks every unused token of the principal used.
func (r *ResetTokenRepository) InvalidateAll(ctx context.Context, principalID string, at time.Time) (int64, error) {
	var invalidated int64
	err := withPrincipalLock(ctx, r.pool, resetLockSeed, principalID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, invalidateUnusedResetSQL, principalID, at)
		if err != nil {
			return storeErr("RESET_INVALIDATE_FAILED", "invalidate unused reset tokens", err)
		}
		invalidated = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, oops.With("principal_id", principalID).Wrap(err)
	}
	return invalidated, nil
}

// DeleteExpired removes all tokens with expires_at <= now and returns the count.
func (r *ResetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM reset_tokens WHERE expires_at <= $1
	`, now)
	if err != nil {
		return 0, storeErr("RESET_DELETE_EXPIRED_FAILED", "delete expired reset tokens", err)
	}
	return result.RowsAffected(), nil
}

// Compile-time interface check.
var _ auth.ResetTokenRepository = (*ResetTokenRepository)(nil)
