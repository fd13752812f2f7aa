// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package auth implements the credential lifecycle: signed access tokens,
// rotating refresh tokens and one-time reset tokens.
//
// # Domain Types
//
// Persisted records should be created using their constructors:
//   - NewRefreshToken - a refresh token record for a principal and expiry
//   - NewResetToken - a reset token record for a principal and expiry
//
// Only the SHA256 hash of an opaque token is ever stored. The plaintext is
// returned once, at creation.
//
// # Components
//
//   - Signer - issues and verifies HS512 access tokens against the current
//     key and, during key rotation, the previous key
//   - ValidateKeyMaterial - startup gate rejecting missing or short keys
//   - RefreshTokenStore - create, find, validate, rotate and revoke refresh
//     tokens, with at most one active token per principal
//   - ResetTokenFlow - initiate and redeem single-use reset tokens
//   - SessionService - the facade used by the request-handling layer
//
// # Errors
//
// Expected outcomes are returned as errors wrapping the sentinels in
// errors.go (ErrTokenExpired, ErrTokenRevoked, ...). KindOf maps any error
// onto the Kind enum for exhaustive handling. Infrastructure failures wrap
// ErrStoreUnavailable; writes that change revocation state fail closed.
package auth
