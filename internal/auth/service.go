// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/holomush/tokenkeeper/pkg/errutil"
)

// Security event names.
const (
	EventRefreshReplay = "refresh_token_replay"
	EventResetReplay   = "reset_token_replay"
)

// Session is the credential pair handed to a client after login or refresh.
type Session struct {
	PrincipalID      string
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// SessionOption configures a SessionService.
type SessionOption func(*SessionService)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *SessionService) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) SessionOption {
	return func(s *SessionService) {
		s.metrics = m
	}
}

// SessionService is the entry point for the request-handling layer. It
// composes the Signer, the refresh token store and the reset flow.
type SessionService struct {
	signer     *Signer
	refresh    *RefreshTokenStore
	reset      *ResetTokenFlow
	principals PrincipalResolver
	logger     *slog.Logger
	metrics    Metrics
}

// NewSessionService creates a SessionService.
func NewSessionService(
	signer *Signer,
	refresh *RefreshTokenStore,
	reset *ResetTokenFlow,
	principals PrincipalResolver,
	opts ...SessionOption,
) (*SessionService, error) {
	if signer == nil {
		return nil, oops.Code("SESSION_SERVICE_INVALID").Errorf("signer is required")
	}
	if refresh == nil {
		return nil, oops.Code("SESSION_SERVICE_INVALID").Errorf("refresh token store is required")
	}
	if reset == nil {
		return nil, oops.Code("SESSION_SERVICE_INVALID").Errorf("reset token flow is required")
	}
	if principals == nil {
		return nil, oops.Code("SESSION_SERVICE_INVALID").Errorf("principal resolver is required")
	}

	s := &SessionService{
		signer:     signer,
		refresh:    refresh,
		reset:      reset,
		principals: principals,
		logger:     slog.Default(),
		metrics:    NoopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IssueSession mints an access token and a refresh token for principalID.
// Any previously active refresh token of the principal is revoked.
func (s *SessionService) IssueSession(ctx context.Context, principalID string) (Session, error) {
	return s.issue(ctx, principalID, "login")
}

func (s *SessionService) issue(ctx context.Context, principalID, reason string) (Session, error) {
	access, err := s.signer.Issue(principalID)
	if err != nil {
		return Session{}, oops.With("operation", "issue session").Wrap(err)
	}

	refresh, err := s.refresh.Create(ctx, principalID)
	if err != nil {
		return Session{}, oops.With("operation", "issue session").Wrap(err)
	}

	s.metrics.SessionIssued(reason)
	return Session{
		PrincipalID:      principalID,
		AccessToken:      access.Token,
		AccessExpiresAt:  access.ExpiresAt,
		RefreshToken:     refresh.Token,
		RefreshExpiresAt: refresh.Record.ExpiresAt,
	}, nil
}

// VerifyAccess returns the principal of a valid access token.
func (s *SessionService) VerifyAccess(_ context.Context, token string) (string, error) {
	principalID, err := s.signer.Verify(token)
	if err != nil {
		s.metrics.TokenRejected("access", KindOf(err).String())
		return "", err
	}
	return principalID, nil
}

// RefreshSession rotates refreshToken and returns a new credential pair.
// Reuse of an already rotated token is logged as a security event and
// answered with ErrTokenRevoked.
func (s *SessionService) RefreshSession(ctx context.Context, refreshToken string) (Session, error) {
	issued, err := s.refresh.Rotate(ctx, refreshToken)
	if err != nil {
		kind := KindOf(err)
		if kind == KindTokenRevoked {
			s.metrics.ReplayDetected("refresh")
			errutil.LogSecurityEvent(ctx, s.logger, EventRefreshReplay, err)
		}
		if IsCallerRecoverable(err) {
			s.metrics.TokenRejected("refresh", kind.String())
		}
		return Session{}, err
	}

	principalID := issued.Record.PrincipalID
	access, err := s.signer.Issue(principalID)
	if err != nil {
		return Session{}, oops.With("operation", "refresh session").Wrap(err)
	}

	s.metrics.SessionIssued("refresh")
	return Session{
		PrincipalID:      principalID,
		AccessToken:      access.Token,
		AccessExpiresAt:  access.ExpiresAt,
		RefreshToken:     issued.Token,
		RefreshExpiresAt: issued.Record.ExpiresAt,
	}, nil
}

// EndSession revokes one refresh token. Unknown tokens are ignored.
func (s *SessionService) EndSession(ctx context.Context, refreshToken string) error {
	if err := s.refresh.Revoke(ctx, refreshToken); err != nil {
		return err
	}
	s.metrics.SessionsRevoked("logout", 1)
	return nil
}

// EndAllSessions revokes every refresh token of principalID.
func (s *SessionService) EndAllSessions(ctx context.Context, principalID string) (int64, error) {
	return s.endAll(ctx, principalID, "logout_all")
}

func (s *SessionService) endAll(ctx context.Context, principalID, reason string) (int64, error) {
	n, err := s.refresh.RevokeAll(ctx, principalID)
	if err != nil {
		return 0, err
	}
	s.metrics.SessionsRevoked(reason, n)
	s.logger.InfoContext(ctx, "sessions revoked",
		"principal_id", principalID,
		"reason", reason,
		"count", n)
	return n, nil
}

// BeginPasswordReset issues a reset token for an already resolved principal.
func (s *SessionService) BeginPasswordReset(ctx context.Context, principalID string) (string, error) {
	token, err := s.reset.Initiate(ctx, principalID)
	if err != nil {
		return "", err
	}
	s.metrics.ResetInitiated()
	return token, nil
}

// RequestPasswordReset resolves a principal by email and issues a reset token.
// For an unknown email it returns ("", nil), which the caller must present
// exactly like success.
func (s *SessionService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	principalID, err := s.principals.ResolveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return "", nil
		}
		return "", oops.Code("RESET_REQUEST_FAILED").
			With("operation", "ResolveByEmail").
			Wrap(err)
	}
	return s.BeginPasswordReset(ctx, principalID)
}

// CompletePasswordReset redeems token, applies the new credential through
// setter and then revokes all refresh tokens of the principal. The token is
// consumed even if setter fails.
func (s *SessionService) CompletePasswordReset(ctx context.Context, token string, setter CredentialSetter) (string, error) {
	if setter == nil {
		return "", oops.Code("RESET_SETTER_REQUIRED").Errorf("credential setter is required")
	}

	principalID, err := s.reset.Redeem(ctx, token)
	if err != nil {
		kind := KindOf(err)
		if kind == KindTokenAlreadyUsed {
			errutil.LogSecurityEvent(ctx, s.logger, EventResetReplay, err)
		}
		if IsCallerRecoverable(err) {
			s.metrics.TokenRejected("reset", kind.String())
		}
		return "", err
	}

	if err := setter.SetCredential(ctx, principalID); err != nil {
		return "", oops.Code("RESET_SET_CREDENTIAL_FAILED").
			With("principal_id", principalID).
			Wrap(err)
	}

	if _, err := s.endAll(ctx, principalID, "password_reset"); err != nil {
		return "", oops.With("operation", "complete password reset").Wrap(err)
	}

	s.metrics.ResetCompleted()
	return principalID, nil
}

// ChangeCredential applies a new credential for an authenticated principal,
// then revokes all its refresh tokens and outstanding reset tokens. The
// principal is resolved first; an unknown principal fails with
// ErrPrincipalNotFound and nothing is changed.
func (s *SessionService) ChangeCredential(ctx context.Context, principalID string, setter CredentialSetter) (int64, error) {
	if setter == nil {
		return 0, oops.Code("CHANGE_SETTER_REQUIRED").Errorf("credential setter is required")
	}

	principalID, err := s.principals.ResolveByID(ctx, principalID)
	if err != nil {
		return 0, oops.Code("CHANGE_PRINCIPAL_UNRESOLVED").
			With("operation", "ResolveByID").
			Wrap(err)
	}

	if err := setter.SetCredential(ctx, principalID); err != nil {
		return 0, oops.Code("CHANGE_SET_CREDENTIAL_FAILED").
			With("principal_id", principalID).
			Wrap(err)
	}

	n, err := s.endAll(ctx, principalID, "credential_change")
	if err != nil {
		return 0, oops.With("operation", "change credential").Wrap(err)
	}

	if _, err := s.reset.InvalidateAll(ctx, principalID); err != nil {
		return n, oops.With("operation", "change credential").Wrap(err)
	}
	return n, nil
}

// Login resolves username, checks the credential through verifier and
// issues a session. Unknown users and rejected credentials both yield
// ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, username string, verifier CredentialVerifier) (Session, error) {
	if verifier == nil {
		return Session{}, oops.Code("LOGIN_VERIFIER_REQUIRED").Errorf("credential verifier is required")
	}

	principalID, lookupErr := s.principals.ResolveByUsername(ctx, username)
	if lookupErr != nil && !errors.Is(lookupErr, ErrPrincipalNotFound) {
		return Session{}, oops.Code("LOGIN_FAILED").
			With("operation", "ResolveByUsername").
			Wrap(lookupErr)
	}
	exists := lookupErr == nil
	if !exists {
		principalID = ""
	}

	// Verify even for unknown principals so response time does not reveal existence.
	ok, err := verifier.VerifyCredential(ctx, principalID)
	if err != nil && exists {
		return Session{}, oops.Code("LOGIN_FAILED").
			With("operation", "VerifyCredential").
			Wrap(err)
	}
	if !exists || !ok {
		return Session{}, oops.Code("LOGIN_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	return s.issue(ctx, principalID, "login")
}
