// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/holomush/tokenkeeper/internal/auth"
)

// RefreshTokenRepository implements auth.RefreshTokenRepository using PostgreSQL.
type RefreshTokenRepository struct {
	pool poolIface
}

// NewRefreshTokenRepository creates a new RefreshTokenRepository.
func NewRefreshTokenRepository(pool poolIface) *RefreshTokenRepository {
	return &RefreshTokenRepository{pool: pool}
}

const revokeActiveRefreshSQL = `
	UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2
	WHERE principal_id = $1 AND NOT revoked
`

const insertRefreshSQL = `
	INSERT INTO refresh_tokens (id, token_hash, principal_id, expires_at, revoked, created_at)
	VALUES ($1, $2, $3, $4, FALSE, $5)
`

// ReplaceActive revokes all active tokens of the principal and inserts next.
func (r *RefreshTokenRepository) ReplaceActive(ctx context.Context, next *auth.RefreshToken) (int64, error) {
	var revoked int64
	err := withPrincipalLock(ctx, r.pool, refreshLockSeed, next.PrincipalID, func(tx pgx.Tx) error {
		n, err := replaceActive(ctx, tx, next)
		revoked = n
		return err
	})
	if err != nil {
		return 0, oops.With("principal_id", next.PrincipalID).Wrap(err)
	}
	return revoked, nil
}

func replaceActive(ctx context.Context, tx pgx.Tx, next *auth.RefreshToken) (int64, error) {
	tag, err := tx.Exec(ctx, revokeActiveRefreshSQL, next.PrincipalID, next.CreatedAt)
	if err != nil {
		return 0, storeErr("REFRESH_REVOKE_FAILED", "revoke active refresh tokens", err)
	}

	if _, err := tx.Exec(ctx, insertRefreshSQL,
		next.ID.String(), next.TokenHash, next.PrincipalID, next.ExpiresAt, next.CreatedAt,
	); err != nil {
		return 0, storeErr("REFRESH_CREATE_FAILED", "insert refresh token", err)
	}
	return tag.RowsAffected(), nil
}

// GetByTokenHash retrieves a refresh token by its hash.
func (r *RefreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*auth.RefreshToken, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, token_hash, principal_id, expires_at, revoked, revoked_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`, tokenHash)

	rt, err := scanRefreshToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("REFRESH_TOKEN_NOT_FOUND").Wrap(auth.ErrTokenNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// Rotate revokes the token identified by oldHash and installs next.
// The old row is locked after the principal lock, so two concurrent
// rotations of the same token serialize and the second sees it revoked.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldHash string, next *auth.RefreshToken) error {
	err := withPrincipalLock(ctx, r.pool, refreshLockSeed, next.PrincipalID, func(tx pgx.Tx) error {
		var (
			principalID string
			expiresAt   time.Time
			revoked     bool
		)
		err := tx.QueryRow(ctx, `
			SELECT principal_id, expires_at, revoked
			FROM refresh_tokens
			WHERE token_hash = $1
			FOR UPDATE
		`, oldHash).Scan(&principalID, &expiresAt, &revoked)
		if errors.Is(err, pgx.ErrNoRows) {
			return oops.Code("REFRESH_TOKEN_NOT_FOUND").Wrap(auth.ErrTokenNotFound)
		}
		if err != nil {
			return storeErr("REFRESH_ROTATE_FAILED", "lock refresh token", err)
		}

		if principalID != next.PrincipalID {
			return oops.Code("REFRESH_TOKEN_NOT_FOUND").
				With("reason", "principal mismatch").
				Wrap(auth.ErrTokenNotFound)
		}
		if revoked {
			return oops.Code("REFRESH_TOKEN_REVOKED").Wrap(auth.ErrTokenRevoked)
		}

		if !next.CreatedAt.Before(expiresAt) {
			if _, err := tx.Exec(ctx, `
				UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2
				WHERE token_hash = $1
			`, oldHash, next.CreatedAt); err != nil {
				return storeErr("REFRESH_ROTATE_FAILED", "revoke expired refresh token", err)
			}
			return commitThen(ctx, tx, oops.Code("REFRESH_TOKEN_EXPIRED").Wrap(auth.ErrTokenExpired))
		}

		_, err = replaceActive(ctx, tx, next)
		return err
	})
	if err != nil {
		return oops.With("principal_id", next.PrincipalID).Wrap(err)
	}
	return nil
}

// Revoke marks a single token revoked. Unknown or already revoked tokens are a no-op.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenHash string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2
		WHERE token_hash = $1 AND NOT revoked
	`, tokenHash, at)
	if err != nil {
		return storeErr("REFRESH_REVOKE_FAILED", "revoke refresh token", err)
	}
	return nil
}

// RevokeAll marks every active token of the principal revoked.
func (r *RefreshTokenRepository) RevokeAll(ctx context.Context, principalID string, at time.Time) (int64, error) {
	var revoked int64
	err := withPrincipalLock(ctx, r.pool, refreshLockSeed, principalID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, revokeActiveRefreshSQL, principalID, at)
		if err != nil {
			return storeErr("REFRESH_REVOKE_ALL_FAILED", "revoke all refresh tokens", err)
		}
		revoked = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, oops.With("principal_id", principalID).Wrap(err)
	}
	return revoked, nil
}

// DeleteExpired removes all tokens with expires_at <= now and returns the count.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM refresh_tokens WHERE expires_at <= $1
	`, now)
	if err != nil {
		return 0, storeErr("REFRESH_DELETE_EXPIRED_FAILED", "delete expired refresh tokens", err)
	}
	return result.RowsAffected(), nil
}

// scanRefreshToken scans a single row into a RefreshToken.
// Callers are responsible for handling pgx.ErrNoRows.
func scanRefreshToken(row pgx.Row) (*auth.RefreshToken, error) {
	var (
		idStr       string
		tokenHash   string
		principalID string
		expiresAt   time.Time
		revoked     bool
		revokedAt   *time.Time
		createdAt   time.Time
	)

	err := row.Scan(&idStr, &tokenHash, &principalID, &expiresAt, &revoked, &revokedAt, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, storeErr("REFRESH_SCAN_FAILED", "scan refresh token", err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("REFRESH_INVALID_ID").
			With("operation", "parse refresh token id").
			With("id", idStr).
			Wrap(err)
	}

	return &auth.RefreshToken{
		ID:          id,
		TokenHash:   tokenHash,
		PrincipalID: principalID,
		ExpiresAt:   expiresAt,
		Revoked:     revoked,
		RevokedAt:   revokedAt,
		CreatedAt:   createdAt,
	}, nil
}

// Compile-time interface check.
var _ auth.RefreshTokenRepository = (*RefreshTokenRepository)(nil)
