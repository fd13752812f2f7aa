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

// DefaultRefreshTTL is the refresh token lifetime when none is configured.
const DefaultRefreshTTL = 30 * 24 * time.Hour

// Validity is the outcome of checking a refresh token.
type Validity int

// Refresh token validity states.
const (
	Valid Validity = iota
	Revoked
	Expired
)

// String returns the label used in logs and metrics.
func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Revoked:
		return "revoked"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Err maps the state onto the error taxonomy. Valid maps to nil.
func (v Validity) Err() error {
	switch v {
	case Valid:
		return nil
	case Revoked:
		return ErrTokenRevoked
	default:
		return ErrTokenExpired
	}
}

// RefreshToken is a persisted long-lived opaque credential.
// Only the SHA256 hash of the token string is stored.
type RefreshToken struct {
	ID          ulid.ULID
	TokenHash   string
	PrincipalID string
	ExpiresAt   time.Time
	Revoked     bool
	RevokedAt   *time.Time
	CreatedAt   time.Time
}

// NewRefreshToken creates a validated RefreshToken instance.
func NewRefreshToken(principalID, tokenHash string, createdAt, expiresAt time.Time) (*RefreshToken, error) {
	if strings.TrimSpace(principalID) == "" {
		return nil, oops.Code("REFRESH_INVALID_PRINCIPAL").Errorf("principal ID cannot be empty")
	}
	if tokenHash == "" {
		return nil, oops.Code("REFRESH_INVALID_HASH").Errorf("token hash cannot be empty")
	}
	if !expiresAt.After(createdAt) {
		return nil, oops.Code("REFRESH_INVALID_EXPIRY").Errorf("expiry must be after creation time")
	}
	return &RefreshToken{
		ID:          ulid.Make(),
		TokenHash:   tokenHash,
		PrincipalID: principalID,
		ExpiresAt:   expiresAt,
		CreatedAt:   createdAt,
	}, nil
}

// ValidityAt reports whether the token is usable at now. Revocation is
// checked before expiry; either makes the token unusable.
func (t *RefreshToken) ValidityAt(now time.Time) Validity {
	if t.Revoked {
		return Revoked
	}
	if t.IsExpiredAt(now) {
		return Expired
	}
	return Valid
}

// IsExpiredAt returns true if the token is expired at the given time.
func (t *RefreshToken) IsExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IssuedRefreshToken pairs a freshly created record with its plaintext token.
// The plaintext is only available at creation time.
type IssuedRefreshToken struct {
	Token  string
	Record *RefreshToken
}

// RefreshTokenRepository manages refresh token persistence. Implementations
// must serialize the revoke-then-insert steps per principal.
type RefreshTokenRepository interface {
	// ReplaceActive revokes every non-revoked token of next.PrincipalID and
	// inserts next, as one unit. Returns the number of tokens revoked.
	ReplaceActive(ctx context.Context, next *RefreshToken) (int64, error)

	// GetByTokenHash retrieves a token by hash. Returns ErrTokenNotFound if absent.
	GetByTokenHash(ctx context.Context, tokenHash string) (*RefreshToken, error)

	// Rotate revokes the token identified by oldHash and installs next for
	// the same principal, as one unit. Fails with ErrTokenNotFound,
	// ErrTokenRevoked (replay; nothing is created) or ErrTokenExpired
	// (the old token is revoked; nothing is created).
	Rotate(ctx context.Context, oldHash string, next *RefreshToken) error

	// Revoke marks one token revoked. Unknown or already revoked tokens are a no-op.
	Revoke(ctx context.Context, tokenHash string, at time.Time) error

	// RevokeAll marks every non-revoked token of the principal revoked.
	RevokeAll(ctx context.Context, principalID string, at time.Time) (int64, error)

	// DeleteExpired removes all tokens with expires_at <= now regardless of state.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
