// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/tokenkeeper/internal/auth"
	"github.com/holomush/tokenkeeper/internal/auth/postgres"
)

// uniquePrincipal returns a principal id no other test uses.
func uniquePrincipal(t *testing.T) string {
	t.Helper()
	id := "principal-" + ulid.Make().String()
	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = testPool.Exec(ctx, `DELETE FROM refresh_tokens WHERE principal_id = $1`, id)
		_, _ = testPool.Exec(ctx, `DELETE FROM reset_tokens WHERE principal_id = $1`, id)
	})
	return id
}

func activeRefreshCount(ctx context.Context, t *testing.T, principalID string) int {
	t.Helper()
	var n int
	err := testPool.QueryRow(ctx, `
		SELECT count(*) FROM refresh_tokens
		WHERE principal_id = $1 AND NOT revoked AND expires_at > NOW()
	`, principalID).Scan(&n)
	require.NoError(t, err)
	return n
}

func newRefreshStore(t *testing.T) *auth.RefreshTokenStore {
	t.Helper()
	s, err := auth.NewRefreshTokenStore(postgres.NewRefreshTokenRepository(testPool), auth.WithRefreshTTL(time.Hour))
	require.NoError(t, err)
	return s
}

func newResetFlow(t *testing.T) *auth.ResetTokenFlow {
	t.Helper()
	f, err := auth.NewResetTokenFlow(postgres.NewResetTokenRepository(testPool))
	require.NoError(t, err)
	return f
}

func TestRefreshTokens_LoginRefreshReplay(t *testing.T) {
	ctx := context.Background()
	s := newRefreshStore(t)
	principal := uniquePrincipal(t)

	r1, err := s.Create(ctx, principal)
	require.NoError(t, err)

	r2, err := s.Rotate(ctx, r1.Token)
	require.NoError(t, err)

	validity, err := s.Validate(ctx, r1.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.Revoked, validity)

	_, err = s.Rotate(ctx, r1.Token)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)

	validity, err = s.Validate(ctx, r2.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.Valid, validity)
	assert.Equal(t, 1, activeRefreshCount(ctx, t, principal))
}

func TestRefreshTokens_ConcurrentCreateLeavesOneActive(t *testing.T) {
	ctx := context.Background()
	s := newRefreshStore(t)
	principal := uniquePrincipal(t)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, principal)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, activeRefreshCount(ctx, t, principal))
}

func TestRefreshTokens_ConcurrentRotateSucceedsOnce(t *testing.T) {
	ctx := context.Background()
	s := newRefreshStore(t)
	principal := uniquePrincipal(t)

	r1, err := s.Create(ctx, principal)
	require.NoError(t, err)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		revoked   int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Rotate(ctx, r1.Token)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case auth.KindOf(err) == auth.KindTokenRevoked:
				revoked++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, revoked)
	assert.Equal(t, 1, activeRefreshCount(ctx, t, principal))
}

func TestRefreshTokens_RevokeAll(t *testing.T) {
	ctx := context.Background()
	s := newRefreshStore(t)
	principal := uniquePrincipal(t)

	r1, err := s.Create(ctx, principal)
	require.NoError(t, err)

	n, err := s.RevokeAll(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rt, err := s.Find(ctx, r1.Token)
	require.NoError(t, err)
	assert.True(t, rt.Revoked)
	assert.NotNil(t, rt.RevokedAt)
	assert.Zero(t, activeRefreshCount(ctx, t, principal))
}

func TestRefreshTokens_SweepKeepsUnexpired(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewRefreshTokenRepository(testPool)
	principal := uniquePrincipal(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	expired, err := auth.NewRefreshToken(principal, "sweep-expired-"+principal, now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = repo.ReplaceActive(ctx, expired)
	require.NoError(t, err)

	live, err := auth.NewRefreshToken(principal, "sweep-live-"+principal, now, now.Add(time.Hour))
	require.NoError(t, err)
	_, err = repo.ReplaceActive(ctx, live)
	require.NoError(t, err)
	require.NoError(t, repo.Revoke(ctx, live.TokenHash, now))

	_, err = repo.DeleteExpired(ctx, now)
	require.NoError(t, err)

	_, err = repo.GetByTokenHash(ctx, expired.TokenHash)
	assert.ErrorIs(t, err, auth.ErrTokenNotFound)

	kept, err := repo.GetByTokenHash(ctx, live.TokenHash)
	require.NoError(t, err, "revoked but unexpired tokens survive the sweep")
	assert.True(t, kept.Revoked)
}

func TestResetTokens_NewTokenInvalidatesPrior(t *testing.T) {
	ctx := context.Background()
	f := newResetFlow(t)
	principal := uniquePrincipal(t)

	t1, err := f.Initiate(ctx, principal)
	require.NoError(t, err)
	t2, err := f.Initiate(ctx, principal)
	require.NoError(t, err)

	_, err = f.Redeem(ctx, t1)
	assert.ErrorIs(t, err, auth.ErrTokenAlreadyUsed)

	got, err := f.Redeem(ctx, t2)
	require.NoError(t, err)
	assert.Equal(t, principal, got)

	_, err = f.Redeem(ctx, t2)
	assert.ErrorIs(t, err, auth.ErrTokenAlreadyUsed)
}

func TestResetTokens_ConcurrentRedeemSucceedsOnce(t *testing.T) {
	ctx := context.Background()
	f := newResetFlow(t)
	principal := uniquePrincipal(t)

	token, err := f.Initiate(ctx, principal)
	require.NoError(t, err)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		used      int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.Redeem(ctx, token)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case auth.KindOf(err) == auth.KindTokenAlreadyUsed:
				used++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, used)
}

func TestResetTokens_ExpiredAndUnknown(t *testing.T) {
	ctx := context.Background()
	principal := uniquePrincipal(t)
	past := time.Now().Add(-2 * time.Hour)

	f, err := auth.NewResetTokenFlow(postgres.NewResetTokenRepository(testPool),
		auth.WithResetClock(func() time.Time { return past }))
	require.NoError(t, err)

	token, err := f.Initiate(ctx, principal)
	require.NoError(t, err)

	_, err = newResetFlow(t).Redeem(ctx, token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)

	unknown, _, err := auth.GenerateOpaqueToken()
	require.NoError(t, err)
	_, err = newResetFlow(t).Redeem(ctx, unknown)
	assert.ErrorIs(t, err, auth.ErrTokenNotFound)
}
