// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
)

// RefreshStoreOption configures a RefreshTokenStore.
type RefreshStoreOption func(*RefreshTokenStore)

// WithRefreshTTL sets the lifetime of created refresh tokens.
func WithRefreshTTL(ttl time.Duration) RefreshStoreOption {
	return func(s *RefreshTokenStore) {
		s.ttl = ttl
	}
}

// WithRefreshClock sets the time source.
func WithRefreshClock(clock func() time.Time) RefreshStoreOption {
	return func(s *RefreshTokenStore) {
		s.clock = clock
	}
}

// WithRefreshLogger sets the logger.
func WithRefreshLogger(logger *slog.Logger) RefreshStoreOption {
	return func(s *RefreshTokenStore) {
		s.logger = logger
	}
}

// RefreshTokenStore creates, validates, rotates and revokes refresh tokens
// on top of a RefreshTokenRepository. Every check consults the repository;
// nothing about revocation is cached in memory.
type RefreshTokenStore struct {
	repo   RefreshTokenRepository
	ttl    time.Duration
	clock  func() time.Time
	logger *slog.Logger
}

// NewRefreshTokenStore creates a RefreshTokenStore.
func NewRefreshTokenStore(repo RefreshTokenRepository, opts ...RefreshStoreOption) (*RefreshTokenStore, error) {
	if repo == nil {
		return nil, oops.Code("REFRESH_STORE_INVALID").Errorf("refresh token repository is required")
	}
	s := &RefreshTokenStore{
		repo:   repo,
		ttl:    DefaultRefreshTTL,
		clock:  time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ttl <= 0 {
		return nil, oops.Code("REFRESH_STORE_INVALID").Errorf("refresh token TTL must be positive, got %s", s.ttl)
	}
	return s, nil
}

// TTL returns the configured refresh token lifetime.
func (s *RefreshTokenStore) TTL() time.Duration {
	return s.ttl
}

// Create revokes all active tokens of principalID and issues a new one.
func (s *RefreshTokenStore) Create(ctx context.Context, principalID string) (IssuedRefreshToken, error) {
	issued, err := s.newToken(principalID)
	if err != nil {
		return IssuedRefreshToken{}, oops.With("operation", "create refresh token").Wrap(err)
	}

	revoked, err := s.repo.ReplaceActive(ctx, issued.Record)
	if err != nil {
		return IssuedRefreshToken{}, oops.
			With("operation", "create refresh token").
			With("principal_id", principalID).
			Wrap(err)
	}

	s.logger.DebugContext(ctx, "refresh token created",
		"principal_id", principalID,
		"token_id", issued.Record.ID.String(),
		"revoked_prior", revoked)
	return issued, nil
}

// Find looks up a refresh token by its plaintext value.
func (s *RefreshTokenStore) Find(ctx context.Context, token string) (*RefreshToken, error) {
	if !wellFormedOpaqueToken(token) {
		return nil, oops.Code("REFRESH_TOKEN_NOT_FOUND").Wrap(ErrTokenNotFound)
	}
	rt, err := s.repo.GetByTokenHash(ctx, HashOpaqueToken(token))
	if err != nil {
		return nil, oops.With("operation", "find refresh token").Wrap(err)
	}
	if !VerifyOpaqueToken(token, rt.TokenHash) {
		s.logger.Warn("refresh token record hash mismatch", "token_id", rt.ID.String())
		return nil, oops.Code("REFRESH_TOKEN_NOT_FOUND").Wrap(ErrTokenNotFound)
	}
	return rt, nil
}

// Validate reports the validity of a refresh token. Unknown tokens yield
// ErrTokenNotFound. It fails closed: a store error is returned, never Valid.
func (s *RefreshTokenStore) Validate(ctx context.Context, token string) (Validity, error) {
	rt, err := s.Find(ctx, token)
	if err != nil {
		return Revoked, err
	}
	return rt.ValidityAt(s.clock()), nil
}

// Rotate revokes token and issues a replacement for the same principal.
// A revoked token fails with ErrTokenRevoked and creates nothing; this is
// how replay of a stolen, already-rotated token surfaces. An expired token
// is revoked and fails with ErrTokenExpired.
func (s *RefreshTokenStore) Rotate(ctx context.Context, token string) (IssuedRefreshToken, error) {
	current, err := s.Find(ctx, token)
	if err != nil {
		return IssuedRefreshToken{}, err
	}
	if current.Revoked {
		return IssuedRefreshToken{}, oops.Code("REFRESH_TOKEN_REVOKED").
			With("principal_id", current.PrincipalID).
			With("token_id", current.ID.String()).
			Wrap(ErrTokenRevoked)
	}

	issued, err := s.newToken(current.PrincipalID)
	if err != nil {
		return IssuedRefreshToken{}, oops.With("operation", "rotate refresh token").Wrap(err)
	}

	if err := s.repo.Rotate(ctx, current.TokenHash, issued.Record); err != nil {
		return IssuedRefreshToken{}, oops.
			With("operation", "rotate refresh token").
			With("principal_id", current.PrincipalID).
			With("token_id", current.ID.String()).
			Wrap(err)
	}

	s.logger.DebugContext(ctx, "refresh token rotated",
		"principal_id", current.PrincipalID,
		"old_token_id", current.ID.String(),
		"token_id", issued.Record.ID.String())
	return issued, nil
}

// Revoke marks token revoked. Unknown and already revoked tokens are a no-op.
func (s *RefreshTokenStore) Revoke(ctx context.Context, token string) error {
	if !wellFormedOpaqueToken(token) {
		return nil
	}
	if err := s.repo.Revoke(ctx, HashOpaqueToken(token), s.clock()); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil
		}
		return oops.With("operation", "revoke refresh token").Wrap(err)
	}
	return nil
}

// RevokeAll revokes every active token of principalID and returns how many were revoked.
func (s *RefreshTokenStore) RevokeAll(ctx context.Context, principalID string) (int64, error) {
	n, err := s.repo.RevokeAll(ctx, principalID, s.clock())
	if err != nil {
		return 0, oops.
			With("operation", "revoke all refresh tokens").
			With("principal_id", principalID).
			Wrap(err)
	}
	return n, nil
}

// Sweep deletes refresh tokens that expired at or before now.
func (s *RefreshTokenStore) Sweep(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, oops.With("operation", "sweep refresh tokens").Wrap(err)
	}
	return n, nil
}

func (s *RefreshTokenStore) newToken(principalID string) (IssuedRefreshToken, error) {
	token, hash, err := GenerateOpaqueToken()
	if err != nil {
		return IssuedRefreshToken{}, err
	}
	now := s.clock()
	rt, err := NewRefreshToken(principalID, hash, now, now.Add(s.ttl))
	if err != nil {
		return IssuedRefreshToken{}, err
	}
	return IssuedRefreshToken{Token: token, Record: rt}, nil
}
