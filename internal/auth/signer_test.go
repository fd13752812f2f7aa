// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/tokenkeeper/internal/auth"
	"github.com/holomush/tokenkeeper/pkg/errutil"
)

var (
	keyA = bytes.Repeat([]byte{'a'}, auth.MinSigningKeyBytes)
	keyB = bytes.Repeat([]byte{'b'}, auth.MinSigningKeyBytes)
	keyC = bytes.Repeat([]byte{'c'}, auth.MinSigningKeyBytes)
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestSigner(t *testing.T, cfg auth.SignerConfig) *auth.Signer {
	t.Helper()
	if cfg.Material.Current == nil {
		cfg.Material.Current = keyA
	}
	s, err := auth.NewSigner(cfg)
	require.NoError(t, err)
	return s
}

func TestNewSigner_Validation(t *testing.T) {
	tests := []struct {
		name     string
		cfg      auth.SignerConfig
		wantCode string
		material bool
	}{
		{
			name:     "missing key",
			cfg:      auth.SignerConfig{},
			wantCode: "SIGNER_INVALID_KEY",
			material: true,
		},
		{
			name:     "short current key",
			cfg:      auth.SignerConfig{Material: auth.SigningMaterial{Current: keyA[:32]}},
			wantCode: "SIGNER_INVALID_KEY",
			material: true,
		},
		{
			name:     "short previous key",
			cfg:      auth.SignerConfig{Material: auth.SigningMaterial{Current: keyA, Previous: keyB[:10]}},
			wantCode: "SIGNER_INVALID_KEY",
			material: true,
		},
		{
			name:     "negative ttl",
			cfg:      auth.SignerConfig{Material: auth.SigningMaterial{Current: keyA}, TTL: -time.Minute},
			wantCode: "SIGNER_INVALID_TTL",
		},
		{
			name:     "excessive leeway",
			cfg:      auth.SignerConfig{Material: auth.SigningMaterial{Current: keyA}, Leeway: time.Hour},
			wantCode: "SIGNER_INVALID_LEEWAY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := auth.NewSigner(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, s)
			errutil.AssertErrorCode(t, err, tt.wantCode)
			if tt.material {
				assert.ErrorIs(t, err, auth.ErrInvalidCredentialMaterial)
			}
		})
	}
}

func TestNewSigner_DefaultTTL(t *testing.T) {
	s := newTestSigner(t, auth.SignerConfig{})
	assert.Equal(t, auth.DefaultAccessTTL, s.TTL())
}

func TestSigner_IssueAndVerify(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestSigner(t, auth.SignerConfig{TTL: 10 * time.Minute, Clock: fixedClock(now)})

	token, err := s.Issue("principal-1")
	require.NoError(t, err)
	assert.Equal(t, "principal-1", token.Subject)
	assert.NotEmpty(t, token.ID)
	assert.Equal(t, now, token.IssuedAt)
	assert.Equal(t, now.Add(10*time.Minute), token.ExpiresAt)

	subject, err := s.Verify(token.Token)
	require.NoError(t, err)
	assert.Equal(t, "principal-1", subject)
}

func TestSigner_IssueHeaders(t *testing.T) {
	s := newTestSigner(t, auth.SignerConfig{})

	token, err := s.Issue("principal-1")
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token.Token, &auth.AccessClaims{})
	require.NoError(t, err)
	assert.Equal(t, "HS512", parsed.Header["alg"])
	assert.NotEmpty(t, parsed.Header["kid"])
}

func TestSigner_IssueUniqueIDs(t *testing.T) {
	s := newTestSigner(t, auth.SignerConfig{})

	first, err := s.Issue("principal-1")
	require.NoError(t, err)
	second, err := s.Issue("principal-1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSigner_IssueEmptySubject(t *testing.T) {
	s := newTestSigner(t, auth.SignerConfig{})

	_, err := s.Issue("  ")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "ACCESS_TOKEN_INVALID_SUBJECT")
}

func TestSigner_VerifyExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestSigner(t, auth.SignerConfig{Clock: fixedClock(now)})
	verifier := newTestSigner(t, auth.SignerConfig{Clock: fixedClock(now.Add(auth.DefaultAccessTTL + time.Second))})

	token, err := issuer.Issue("principal-1")
	require.NoError(t, err)

	_, err = verifier.Verify(token.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)

	_, failure := verifier.Inspect(token.Token)
	assert.Equal(t, auth.VerifyExpired, failure)
}

func TestSigner_VerifyWithinLeeway(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestSigner(t, auth.SignerConfig{Clock: fixedClock(now)})
	verifier := newTestSigner(t, auth.SignerConfig{
		Clock:  fixedClock(now.Add(auth.DefaultAccessTTL + 30*time.Second)),
		Leeway: time.Minute,
	})

	token, err := issuer.Issue("principal-1")
	require.NoError(t, err)

	subject, err := verifier.Verify(token.Token)
	require.NoError(t, err)
	assert.Equal(t, "principal-1", subject)
}

func TestSigner_KeyRotation(t *testing.T) {
	before := newTestSigner(t, auth.SignerConfig{Material: auth.SigningMaterial{Current: keyA}})
	token, err := before.Issue("principal-1")
	require.NoError(t, err)

	t.Run("previous key still verifies after rotation", func(t *testing.T) {
		rotated := newTestSigner(t, auth.SignerConfig{Material: auth.SigningMaterial{Current: keyB, Previous: keyA}})
		subject, err := rotated.Verify(token.Token)
		require.NoError(t, err)
		assert.Equal(t, "principal-1", subject)
	})

	t.Run("new tokens are signed with the current key", func(t *testing.T) {
		rotated := newTestSigner(t, auth.SignerConfig{Material: auth.SigningMaterial{Current: keyB, Previous: keyA}})
		fresh, err := rotated.Issue("principal-1")
		require.NoError(t, err)

		currentOnly := newTestSigner(t, auth.SignerConfig{Material: auth.SigningMaterial{Current: keyB}})
		_, err = currentOnly.Verify(fresh.Token)
		require.NoError(t, err)
	})

	t.Run("removing the previous key invalidates old tokens", func(t *testing.T) {
		retired := newTestSigner(t, auth.SignerConfig{Material: auth.SigningMaterial{Current: keyB}})
		_, err := retired.Verify(token.Token)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)

		_, failure := retired.Inspect(token.Token)
		assert.Equal(t, auth.VerifyBadSignature, failure)
	})

	t.Run("unrelated previous key does not help", func(t *testing.T) {
		other := newTestSigner(t, auth.SignerConfig{Material: auth.SigningMaterial{Current: keyB, Previous: keyC}})
		_, err := other.Verify(token.Token)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
	})
}

func TestSigner_KeySelectionByKID(t *testing.T) {
	now := time.Now()
	rotated := newTestSigner(t, auth.SignerConfig{Material: auth.SigningMaterial{Current: keyB, Previous: keyA}})

	claims := auth.AccessClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "principal-1",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}}
	sign := func(t *testing.T, kid any, key []byte) string {
		t.Helper()
		tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
		if kid != nil {
			tok.Header["kid"] = kid
		}
		signed, err := tok.SignedString(key)
		require.NoError(t, err)
		return signed
	}
	kidOf := func(t *testing.T, key []byte) string {
		t.Helper()
		issued, err := newTestSigner(t, auth.SignerConfig{Material: auth.SigningMaterial{Current: key}}).Issue("principal-1")
		require.NoError(t, err)
		parsed, _, err := jwt.NewParser().ParseUnverified(issued.Token, &jwt.RegisteredClaims{})
		require.NoError(t, err)
		kid, ok := parsed.Header["kid"].(string)
		require.True(t, ok)
		return kid
	}

	tests := []struct {
		name        string
		token       string
		wantFailure auth.VerifyFailure
	}{
		{"current kid and key", sign(t, kidOf(t, keyB), keyB), auth.VerifyOK},
		{"previous kid and key", sign(t, kidOf(t, keyA), keyA), auth.VerifyOK},
		{"previous kid signed with current key", sign(t, kidOf(t, keyA), keyB), auth.VerifyBadSignature},
		{"current kid signed with previous key", sign(t, kidOf(t, keyB), keyA), auth.VerifyBadSignature},
		{"unknown kid", sign(t, "retired", keyB), auth.VerifyBadSignature},
		{"non-string kid", sign(t, 42, keyB), auth.VerifyBadSignature},
		{"no kid falls back to previous key", sign(t, nil, keyA), auth.VerifyOK},
		{"no kid with unrelated key", sign(t, nil, keyC), auth.VerifyBadSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, failure := rotated.Inspect(tt.token)
			assert.Equal(t, tt.wantFailure, failure)
		})
	}
}

func TestSigner_VerifyRejects(t *testing.T) {
	now := time.Now()
	s := newTestSigner(t, auth.SignerConfig{})

	claims := auth.AccessClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "principal-1",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs256Token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(keyA)
	require.NoError(t, err)

	noExpiry := auth.AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "principal-1"}}
	noExpiryToken, err := jwt.NewWithClaims(jwt.SigningMethodHS512, noExpiry).SignedString(keyA)
	require.NoError(t, err)

	noSubject := auth.AccessClaims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute))}}
	noSubjectToken, err := jwt.NewWithClaims(jwt.SigningMethodHS512, noSubject).SignedString(keyA)
	require.NoError(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(keyC)
	require.NoError(t, err)

	tests := []struct {
		name        string
		token       string
		wantFailure auth.VerifyFailure
	}{
		{"empty", "", auth.VerifyMalformed},
		{"garbage", "not.a.jwt", auth.VerifyMalformed},
		{"alg none", noneToken, auth.VerifyUnsupported},
		{"hs256", hs256Token, auth.VerifyUnsupported},
		{"missing expiry", noExpiryToken, auth.VerifyMalformed},
		{"missing subject", noSubjectToken, auth.VerifyMalformed},
		{"wrong key", forged, auth.VerifyBadSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, failure := s.Inspect(tt.token)
			assert.Equal(t, tt.wantFailure, failure)

			subject, err := s.Verify(tt.token)
			require.Error(t, err)
			assert.Empty(t, subject)
			assert.ErrorIs(t, err, auth.ErrTokenMalformed)
			errutil.AssertErrorCode(t, err, "ACCESS_TOKEN_INVALID")
			errutil.AssertErrorContext(t, err, "reason", tt.wantFailure.String())
		})
	}
}

func TestSigner_IssuerAndAudience(t *testing.T) {
	s := newTestSigner(t, auth.SignerConfig{Issuer: "tokenkeeper", Audience: "api"})
	token, err := s.Issue("principal-1")
	require.NoError(t, err)

	_, err = s.Verify(token.Token)
	require.NoError(t, err)

	otherAudience := newTestSigner(t, auth.SignerConfig{Issuer: "tokenkeeper", Audience: "admin"})
	_, err = otherAudience.Verify(token.Token)
	assert.ErrorIs(t, err, auth.ErrTokenMalformed)

	otherIssuer := newTestSigner(t, auth.SignerConfig{Issuer: "elsewhere", Audience: "api"})
	_, err = otherIssuer.Verify(token.Token)
	assert.ErrorIs(t, err, auth.ErrTokenMalformed)
}

func TestSigner_LogsForgeryAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s := newTestSigner(t, auth.SignerConfig{Logger: logger})

	forger := newTestSigner(t, auth.SignerConfig{Material: auth.SigningMaterial{Current: keyC}})
	forged, err := forger.Issue("principal-1")
	require.NoError(t, err)

	_, err = s.Verify(forged.Token)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "access_token_forgery_suspected")
	assert.Contains(t, buf.String(), `"reason":"bad_signature"`)

	buf.Reset()
	_, err = s.Verify("garbage")
	require.Error(t, err)
	assert.Empty(t, buf.String(), "malformed tokens are logged below warn")
}

func TestVerifyFailure_Err(t *testing.T) {
	require.NoError(t, auth.VerifyOK.Err())
	assert.ErrorIs(t, auth.VerifyExpired.Err(), auth.ErrTokenExpired)
	assert.ErrorIs(t, auth.VerifyMalformed.Err(), auth.ErrTokenMalformed)
	assert.ErrorIs(t, auth.VerifyBadSignature.Err(), auth.ErrTokenMalformed)
	assert.ErrorIs(t, auth.VerifyUnsupported.Err(), auth.ErrTokenMalformed)
}
