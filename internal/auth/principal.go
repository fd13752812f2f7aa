// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import "context"

// PrincipalResolver looks up principal identifiers in the external account
// store. Implementations return ErrPrincipalNotFound for unknown principals.
// No account field other than the identifier is ever read.
type PrincipalResolver interface {
	ResolveByUsername(ctx context.Context, username string) (string, error)
	ResolveByEmail(ctx context.Context, email string) (string, error)
	ResolveByID(ctx context.Context, id string) (string, error)
}

// CredentialSetter replaces the credential of a principal. The credential
// value itself (and its hashing) is owned by the implementation.
type CredentialSetter interface {
	SetCredential(ctx context.Context, principalID string) error
}

// CredentialSetterFunc adapts a function to CredentialSetter.
type CredentialSetterFunc func(ctx context.Context, principalID string) error

// SetCredential calls f.
func (f CredentialSetterFunc) SetCredential(ctx context.Context, principalID string) error {
	return f(ctx, principalID)
}

// CredentialVerifier checks a presented credential against a principal.
// Login calls it with an empty principalID when the principal does not
// exist, so implementations can spend comparable time on a dummy hash.
type CredentialVerifier interface {
	VerifyCredential(ctx context.Context, principalID string) (bool, error)
}

// CredentialVerifierFunc adapts a function to CredentialVerifier.
type CredentialVerifierFunc func(ctx context.Context, principalID string) (bool, error)

// VerifyCredential calls f.
func (f CredentialVerifierFunc) VerifyCredential(ctx context.Context, principalID string) (bool, error) {
	return f(ctx, principalID)
}

// Metrics receives credential lifecycle events. The observability package
// provides the Prometheus implementation.
type Metrics interface {
	SessionIssued(reason string)
	TokenRejected(tokenType, reason string)
	ReplayDetected(tokenType string)
	SessionsRevoked(reason string, n int64)
	ResetInitiated()
	ResetCompleted()
}

// NoopMetrics discards all events.
type NoopMetrics struct{}

// SessionIssued implements Metrics.
func (NoopMetrics) SessionIssued(string) {}

// TokenRejected implements Metrics.
func (NoopMetrics) TokenRejected(string, string) {}

// ReplayDetected implements Metrics.
func (NoopMetrics) ReplayDetected(string) {}

// SessionsRevoked implements Metrics.
func (NoopMetrics) SessionsRevoked(string, int64) {}

// ResetInitiated implements Metrics.
func (NoopMetrics) ResetInitiated() {}

// ResetCompleted implements Metrics.
func (NoopMetrics) ResetCompleted() {}
