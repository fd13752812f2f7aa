// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package postgres provides PostgreSQL implementations of auth repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/holomush/tokenkeeper/internal/auth"
)

// poolIface is the subset of *pgxpool.Pool used by the repositories.
// pgxmock.PgxPoolIface satisfies it in unit tests.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Advisory lock namespaces; the principal id is hashed into the lock key
// with one of these as the seed.
const (
	refreshLockSeed = 0
	resetLockSeed   = 1
)

// Transaction retry policy for serialization failures and unique violations.
const (
	txMaxRetries = 3
	txRetryBase  = 10 * time.Millisecond
)

// withPrincipalLock runs fn in a transaction holding a transaction-scoped
// advisory lock on principalID. All writes that revoke or install tokens
// for a principal go through here, which serializes them per principal
// while leaving different principals independent.
func withPrincipalLock(ctx context.Context, pool poolIface, seed int64, principalID string, fn func(tx pgx.Tx) error) error {
	backoff := retry.WithMaxRetries(txMaxRetries, retry.NewExponential(txRetryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error { //nolint:wrapcheck // errors from fn are already wrapped
		err := runLocked(ctx, pool, seed, principalID, fn)
		if isRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func runLocked(ctx context.Context, pool poolIface, seed int64, principalID string, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return storeErr("TX_BEGIN_FAILED", "begin transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, $2))`, principalID, seed); err != nil {
		return storeErr("TX_LOCK_FAILED", "acquire principal lock", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("TX_COMMIT_FAILED", "commit transaction", err)
	}
	return nil
}

// commitThen commits tx and returns result. Used by paths that must persist
// a state change and still report a token error to the caller.
func commitThen(ctx context.Context, tx pgx.Tx, result error) error {
	if err := tx.Commit(ctx); err != nil {
		return storeErr("TX_COMMIT_FAILED", "commit transaction", err)
	}
	return result
}

// isRetryable reports whether err is a transient conflict worth retrying.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation, pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return true
	default:
		return false
	}
}

// storeErr wraps an infrastructure failure so it matches auth.ErrStoreUnavailable
// while keeping the driver error in the chain.
func storeErr(code, operation string, err error) error {
	return oops.Code(code).
		With("operation", operation).
		Wrap(fmt.Errorf("%w: %w", auth.ErrStoreUnavailable, err))
}
