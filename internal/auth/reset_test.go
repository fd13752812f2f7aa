// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/tokenkeeper/internal/auth"
	"github.com/holomush/tokenkeeper/pkg/errutil"
)

func TestNewResetToken(t *testing.T) {
	now := time.Now()

	rt, err := auth.NewResetToken("p1", "h1", now, now.Add(auth.DefaultResetTTL))
	require.NoError(t, err)
	assert.Equal(t, "p1", rt.PrincipalID)
	assert.False(t, rt.Used)
	assert.Nil(t, rt.UsedAt)

	_, err = auth.NewResetToken("", "h1", now, now.Add(time.Hour))
	errutil.AssertErrorCode(t, err, "RESET_INVALID_PRINCIPAL")

	_, err = auth.NewResetToken("p1", "", now, now.Add(time.Hour))
	errutil.AssertErrorCode(t, err, "RESET_INVALID_HASH")

	_, err = auth.NewResetToken("p1", "h1", now, now.Add(-time.Second))
	errutil.AssertErrorCode(t, err, "RESET_INVALID_EXPIRY")
}

func TestResetToken_RedeemError(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token auth.ResetToken
		want  error
	}{
		{"unused and live", auth.ResetToken{ExpiresAt: now.Add(time.Minute)}, nil},
		{"used", auth.ResetToken{ExpiresAt: now.Add(time.Minute), Used: true}, auth.ErrTokenAlreadyUsed},
		{"expired", auth.ResetToken{ExpiresAt: now}, auth.ErrTokenExpired},
		{"used takes precedence over expired", auth.ResetToken{ExpiresAt: now.Add(-time.Hour), Used: true}, auth.ErrTokenAlreadyUsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.token.RedeemError(now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
