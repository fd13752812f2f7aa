// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/tokenkeeper/internal/auth"
)

var refreshColumns = []string{"id", "token_hash", "principal_id", "expires_at", "revoked", "revoked_at", "created_at"}

func newTestRefreshToken(t *testing.T, principalID string, now time.Time) *auth.RefreshToken {
	t.Helper()
	_, hash, err := auth.GenerateOpaqueToken()
	require.NoError(t, err)
	rt, err := auth.NewRefreshToken(principalID, hash, now, now.Add(time.Hour))
	require.NoError(t, err)
	return rt
}

func expectLock(mock pgxmock.PgxPoolIface, principalID string, seed int64) {
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs(principalID, seed).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
}

func TestRefreshTokenRepository_ReplaceActive(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	tests := []struct {
		name        string
		setupMock   func(mock pgxmock.PgxPoolIface, next *auth.RefreshToken)
		wantRevoked int64
		wantErr     error
	}{
		{
			name: "revokes prior tokens then inserts",
			setupMock: func(mock pgxmock.PgxPoolIface, next *auth.RefreshToken) {
				expectLock(mock, "p1", refreshLockSeed)
				mock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE`).
					WithArgs("p1", next.CreatedAt).
					WillReturnResult(pgxmock.NewResult("UPDATE", 2))
				mock.ExpectExec(`INSERT INTO refresh_tokens`).
					WithArgs(next.ID.String(), next.TokenHash, "p1", next.ExpiresAt, next.CreatedAt).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
			wantRevoked: 2,
		},
		{
			name: "retries on unique violation",
			setupMock: func(mock pgxmock.PgxPoolIface, next *auth.RefreshToken) {
				expectLock(mock, "p1", refreshLockSeed)
				mock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE`).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
				mock.ExpectExec(`INSERT INTO refresh_tokens`).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
				mock.ExpectRollback()

				expectLock(mock, "p1", refreshLockSeed)
				mock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE`).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectExec(`INSERT INTO refresh_tokens`).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
			wantRevoked: 1,
		},
		{
			name: "insert failure fails closed",
			setupMock: func(mock pgxmock.PgxPoolIface, _ *auth.RefreshToken) {
				expectLock(mock, "p1", refreshLockSeed)
				mock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE`).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectExec(`INSERT INTO refresh_tokens`).
					WillReturnError(errors.New("connection reset"))
				mock.ExpectRollback()
			},
			wantErr: auth.ErrStoreUnavailable,
		},
		{
			name: "begin failure",
			setupMock: func(mock pgxmock.PgxPoolIface, _ *auth.RefreshToken) {
				mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))
			},
			wantErr: auth.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			next := newTestRefreshToken(t, "p1", now)
			tt.setupMock(mock, next)

			repo := NewRefreshTokenRepository(mock)
			revoked, err := repo.ReplaceActive(ctx, next)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantRevoked, revoked)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRefreshTokenRepository_GetByTokenHash(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("returns token", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rt := newTestRefreshToken(t, "p1", now)
		revokedAt := now
		mock.ExpectQuery(`SELECT id, token_hash, principal_id`).
			WithArgs(rt.TokenHash).
			WillReturnRows(pgxmock.NewRows(refreshColumns).
				AddRow(rt.ID.String(), rt.TokenHash, "p1", rt.ExpiresAt, true, &revokedAt, rt.CreatedAt))

		got, err := NewRefreshTokenRepository(mock).GetByTokenHash(ctx, rt.TokenHash)
		require.NoError(t, err)
		assert.Equal(t, rt.ID, got.ID)
		assert.Equal(t, "p1", got.PrincipalID)
		assert.True(t, got.Revoked)
		require.NotNil(t, got.RevokedAt)
		assert.Equal(t, now, *got.RevokedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, token_hash, principal_id`).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		_, err = NewRefreshTokenRepository(mock).GetByTokenHash(ctx, "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrTokenNotFound)
	})

	t.Run("query failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, token_hash, principal_id`).
			WillReturnError(errors.New("connection refused"))

		_, err = NewRefreshTokenRepository(mock).GetByTokenHash(ctx, "h")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestRefreshTokenRepository_Rotate(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	lockQuery := `SELECT principal_id, expires_at, revoked`
	lockColumns := []string{"principal_id", "expires_at", "revoked"}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface, next *auth.RefreshToken)
		wantErr   error
	}{
		{
			name: "revokes old and installs new",
			setupMock: func(mock pgxmock.PgxPoolIface, next *auth.RefreshToken) {
				expectLock(mock, "p1", refreshLockSeed)
				mock.ExpectQuery(lockQuery).
					WithArgs("oldhash").
					WillReturnRows(pgxmock.NewRows(lockColumns).AddRow("p1", now.Add(time.Hour), false))
				mock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE`).
					WithArgs("p1", next.CreatedAt).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectExec(`INSERT INTO refresh_tokens`).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "already revoked is replay",
			setupMock: func(mock pgxmock.PgxPoolIface, _ *auth.RefreshToken) {
				expectLock(mock, "p1", refreshLockSeed)
				mock.ExpectQuery(lockQuery).
					WithArgs("oldhash").
					WillReturnRows(pgxmock.NewRows(lockColumns).AddRow("p1", now.Add(time.Hour), true))
				mock.ExpectRollback()
			},
			wantErr: auth.ErrTokenRevoked,
		},
		{
			name: "expired token is revoked and reported",
			setupMock: func(mock pgxmock.PgxPoolIface, next *auth.RefreshToken) {
				expectLock(mock, "p1", refreshLockSeed)
				mock.ExpectQuery(lockQuery).
					WithArgs("oldhash").
					WillReturnRows(pgxmock.NewRows(lockColumns).AddRow("p1", now.Add(-time.Minute), false))
				mock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE`).
					WithArgs("oldhash", next.CreatedAt).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
			wantErr: auth.ErrTokenExpired,
		},
		{
			name: "unknown token",
			setupMock: func(mock pgxmock.PgxPoolIface, _ *auth.RefreshToken) {
				expectLock(mock, "p1", refreshLockSeed)
				mock.ExpectQuery(lockQuery).
					WithArgs("oldhash").
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: auth.ErrTokenNotFound,
		},
		{
			name: "token of another principal",
			setupMock: func(mock pgxmock.PgxPoolIface, _ *auth.RefreshToken) {
				expectLock(mock, "p1", refreshLockSeed)
				mock.ExpectQuery(lockQuery).
					WithArgs("oldhash").
					WillReturnRows(pgxmock.NewRows(lockColumns).AddRow("p2", now.Add(time.Hour), false))
				mock.ExpectRollback()
			},
			wantErr: auth.ErrTokenNotFound,
		},
		{
			name: "commit failure fails closed",
			setupMock: func(mock pgxmock.PgxPoolIface, _ *auth.RefreshToken) {
				expectLock(mock, "p1", refreshLockSeed)
				mock.ExpectQuery(lockQuery).
					WithArgs("oldhash").
					WillReturnRows(pgxmock.NewRows(lockColumns).AddRow("p1", now.Add(time.Hour), false))
				mock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE`).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectExec(`INSERT INTO refresh_tokens`).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit().WillReturnError(errors.New("connection lost"))
				mock.ExpectRollback()
			},
			wantErr: auth.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			next := newTestRefreshToken(t, "p1", now)
			tt.setupMock(mock, next)

			err = NewRefreshTokenRepository(mock).Rotate(ctx, "oldhash", next)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRefreshTokenRepository_Revoke(t *testing.T) {
	ctx := context.Background()
	at := time.Now().UTC()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE`).
		WithArgs("h1", at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, NewRefreshTokenRepository(mock).Revoke(ctx, "h1", at), "revoking an unknown token is a no-op")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_RevokeAll(t *testing.T) {
	ctx := context.Background()
	at := time.Now().UTC()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	expectLock(mock, "p1", refreshLockSeed)
	mock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE`).
		WithArgs("p1", at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectCommit()

	n, err := NewRefreshTokenRepository(mock).RevokeAll(ctx, "p1", at)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("returns deleted count", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM refresh_tokens`).
			WithArgs(now).
			WillReturnResult(pgxmock.NewResult("DELETE", 7))

		n, err := NewRefreshTokenRepository(mock).DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM refresh_tokens`).
			WillReturnError(errors.New("disk full"))

		_, err = NewRefreshTokenRepository(mock).DeleteExpired(ctx, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrStoreUnavailable)
	})
}
