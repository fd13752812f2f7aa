// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package redis provides a Redis implementation of the reset token repository.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/holomush/tokenkeeper/internal/auth"
)

// DefaultKeyPrefix namespaces all keys written by the repository.
const DefaultKeyPrefix = "tokenkeeper:reset"

// Optimistic transaction retry policy for WATCH conflicts. Every failed
// attempt means another writer committed, so the retry count bounds the
// number of concurrent writers on one principal that always succeed.
const (
	txMaxRetries    = 32
	txRetryBase     = 2 * time.Millisecond
	txRetryCap      = 50 * time.Millisecond
	txJitterPercent = 50
)

// Hash fields of a token record.
const (
	fieldID          = "id"
	fieldPrincipalID = "principal_id"
	fieldExpiresAt   = "expires_at"
	fieldUsed        = "used"
	fieldUsedAt      = "used_at"
	fieldCreatedAt   = "created_at"
)

// ResetTokenRepository implements auth.ResetTokenRepository on Redis.
//
// Layout under the prefix:
//
//	{prefix}:token:{hash}      hash with the token record
//	{prefix}:principal:{id}    set of unused token hashes of a principal
//	{prefix}:expiry            sorted set of token hashes scored by expiry
//
// Writes run as WATCH/MULTI transactions and are retried on conflict.
type ResetTokenRepository struct {
	client goredis.UniversalClient
	prefix string
}

// Option configures a ResetTokenRepository.
type Option func(*ResetTokenRepository)

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(r *ResetTokenRepository) {
		r.prefix = prefix
	}
}

// NewResetTokenRepository creates a new ResetTokenRepository.
func NewResetTokenRepository(client goredis.UniversalClient, opts ...Option) *ResetTokenRepository {
	r := &ResetTokenRepository{client: client, prefix: DefaultKeyPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ResetTokenRepository) tokenKey(hash string) string {
	return r.prefix + ":token:" + hash
}

func (r *ResetTokenRepository) principalKey(principalID string) string {
	return r.prefix + ":principal:" + principalID
}

func (r *ResetTokenRepository) expiryKey() string {
	return r.prefix + ":expiry"
}

// ReplaceUnused marks every unused token of the principal used and stores next.
func (r *ResetTokenRepository) ReplaceUnused(ctx context.Context, next *auth.ResetToken) (int64, error) {
	principalKey := r.principalKey(next.PrincipalID)

	var invalidated int64
	err := r.watch(ctx, func(tx *goredis.Tx) error {
		hashes, err := tx.SMembers(ctx, principalKey).Result()
		if err != nil {
			return storeErr("RESET_INVALIDATE_FAILED", "read unused reset tokens", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			r.markUsed(ctx, pipe, hashes, next.CreatedAt)
			pipe.Del(ctx, principalKey)
			pipe.HSet(ctx, r.tokenKey(next.TokenHash), map[string]any{
				fieldID:          next.ID.String(),
				fieldPrincipalID: next.PrincipalID,
				fieldExpiresAt:   next.ExpiresAt.UnixNano(),
				fieldUsed:        "0",
				fieldCreatedAt:   next.CreatedAt.UnixNano(),
			})
			pipe.SAdd(ctx, principalKey, next.TokenHash)
			pipe.ZAdd(ctx, r.expiryKey(), goredis.Z{Score: float64(next.ExpiresAt.Unix()), Member: next.TokenHash})
			return nil
		})
		if err != nil {
			return err //nolint:wrapcheck // classified by watch
		}
		invalidated = int64(len(hashes))
		return nil
	}, principalKey)
	if err != nil {
		return 0, oops.With("principal_id", next.PrincipalID).Wrap(
			classify(err, "RESET_CREATE_FAILED", "replace unused reset tokens"))
	}
	return invalidated, nil
}

// Consume marks the token used if it is unused and unexpired. The token key
// is watched, so of two concurrent redemptions only one transaction commits;
// the other retries and observes the token as used.
func (r *ResetTokenRepository) Consume(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	key := r.tokenKey(tokenHash)

	var principalID string
	err := r.watch(ctx, func(tx *goredis.Tx) error {
		fields, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return storeErr("RESET_CONSUME_FAILED", "read reset token", err)
		}
		if len(fields) == 0 {
			return oops.Code("RESET_TOKEN_NOT_FOUND").Wrap(auth.ErrTokenNotFound)
		}

		rt, err := decodeToken(tokenHash, fields)
		if err != nil {
			return err
		}
		switch cause := rt.RedeemError(now); {
		case errors.Is(cause, auth.ErrTokenAlreadyUsed):
			return oops.Code("RESET_TOKEN_USED").Wrap(cause)
		case errors.Is(cause, auth.ErrTokenExpired):
			return oops.Code("RESET_TOKEN_EXPIRED").Wrap(cause)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			r.markUsed(ctx, pipe, []string{tokenHash}, now)
			pipe.SRem(ctx, r.principalKey(rt.PrincipalID), tokenHash)
			return nil
		})
		if err != nil {
			return err //nolint:wrapcheck // classified by watch
		}
		principalID = rt.PrincipalID
		return nil
	}, key)
	if err != nil {
		return "", classify(err, "RESET_CONSUME_FAILED", "consume reset token")
	}
	return principalID, nil
}

// InvalidateAll marks every unused token of the principal used.
func (r *ResetTokenRepository) InvalidateAll(ctx context.Context, principalID string, at time.Time) (int64, error) {
	principalKey := r.principalKey(principalID)

	var invalidated int64
	err := r.watch(ctx, func(tx *goredis.Tx) error {
		hashes, err := tx.SMembers(ctx, principalKey).Result()
		if err != nil {
			return storeErr("RESET_INVALIDATE_FAILED", "read unused reset tokens", err)
		}
		if len(hashes) == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			r.markUsed(ctx, pipe, hashes, at)
			pipe.Del(ctx, principalKey)
			return nil
		})
		if err != nil {
			return err //nolint:wrapcheck // classified by watch
		}
		invalidated = int64(len(hashes))
		return nil
	}, principalKey)
	if err != nil {
		return 0, oops.With("principal_id", principalID).Wrap(
			classify(err, "RESET_INVALIDATE_FAILED", "invalidate unused reset tokens"))
	}
	return invalidated, nil
}

// DeleteExpired removes all tokens with expires_at <= now and returns the count.
func (r *ResetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	hashes, err := r.client.ZRangeByScore(ctx, r.expiryKey(), &goredis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
	if err != nil {
		return 0, storeErr("RESET_DELETE_EXPIRED_FAILED", "list expired reset tokens", err)
	}

	var deleted int64
	for _, hash := range hashes {
		key := r.tokenKey(hash)
		fields, err := r.client.HMGet(ctx, key, fieldPrincipalID, fieldExpiresAt).Result()
		if err != nil {
			return deleted, storeErr("RESET_DELETE_EXPIRED_FAILED", "read expired reset token", err)
		}

		// Scores have second precision; the record carries the exact expiry.
		if expiresAt, ok := parseNanos(fields[1]); ok && expiresAt.After(now) {
			continue
		}

		_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Del(ctx, key)
			if principalID, ok := fields[0].(string); ok {
				pipe.SRem(ctx, r.principalKey(principalID), hash)
			}
			pipe.ZRem(ctx, r.expiryKey(), hash)
			return nil
		})
		if err != nil {
			return deleted, storeErr("RESET_DELETE_EXPIRED_FAILED", "delete expired reset token", err)
		}
		deleted++
	}
	return deleted, nil
}

func (r *ResetTokenRepository) markUsed(ctx context.Context, pipe goredis.Pipeliner, hashes []string, at time.Time) {
	for _, hash := range hashes {
		pipe.HSet(ctx, r.tokenKey(hash), fieldUsed, "1", fieldUsedAt, at.UnixNano())
	}
}

// watch runs fn as an optimistic transaction over keys, retrying when
// another client modified a watched key first.
func (r *ResetTokenRepository) watch(ctx context.Context, fn func(tx *goredis.Tx) error, keys ...string) error {
	backoff := retry.NewExponential(txRetryBase)
	backoff = retry.WithJitterPercent(txJitterPercent, backoff)
	backoff = retry.WithCappedDuration(txRetryCap, backoff)
	backoff = retry.WithMaxRetries(txMaxRetries, backoff)
	return retry.Do(ctx, backoff, func(ctx context.Context) error { //nolint:wrapcheck // errors from fn are already wrapped
		err := r.client.Watch(ctx, fn, keys...)
		if errors.Is(err, goredis.TxFailedErr) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func decodeToken(hash string, fields map[string]string) (*auth.ResetToken, error) {
	id, err := ulid.Parse(fields[fieldID])
	if err != nil {
		return nil, oops.Code("RESET_INVALID_ID").With("token_id", fields[fieldID]).Wrap(err)
	}
	expiresAt, ok := parseNanos(fields[fieldExpiresAt])
	if !ok {
		return nil, oops.Code("RESET_DECODE_FAILED").With("field", fieldExpiresAt).Errorf("invalid timestamp")
	}
	createdAt, _ := parseNanos(fields[fieldCreatedAt])

	rt := &auth.ResetToken{
		ID:          id,
		TokenHash:   hash,
		PrincipalID: fields[fieldPrincipalID],
		ExpiresAt:   expiresAt,
		Used:        fields[fieldUsed] == "1",
		CreatedAt:   createdAt,
	}
	if usedAt, ok := parseNanos(fields[fieldUsedAt]); ok {
		rt.UsedAt = &usedAt
	}
	return rt, nil
}

// parseNanos decodes a unix-nanosecond timestamp from a string or HMGET value.
func parseNanos(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(0, n).UTC(), true
}

// classify passes through errors already in the auth taxonomy and wraps
// anything else as a store failure.
func classify(err error, code, operation string) error {
	if auth.KindOf(err) != auth.KindUnknown {
		return err
	}
	if _, ok := oops.AsOops(err); ok {
		return err
	}
	return storeErr(code, operation, err)
}

// storeErr wraps a Redis failure so it matches auth.ErrStoreUnavailable.
func storeErr(code, operation string, err error) error {
	return oops.Code(code).
		With("operation", operation).
		Wrap(fmt.Errorf("%w: %w", auth.ErrStoreUnavailable, err))
}

// Compile-time interface check.
var _ auth.ResetTokenRepository = (*ResetTokenRepository)(nil)
