// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import "errors"

// Sentinel errors for credential lifecycle outcomes. Repositories and
// services wrap these with oops codes; match them with errors.Is.
var (
	// ErrInvalidCredentialMaterial means the signing keys are missing or too weak.
	// It is fatal at startup.
	ErrInvalidCredentialMaterial = errors.New("invalid credential material")

	// ErrTokenMalformed means a token could not be parsed or its signature did not verify.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenExpired means a token is past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked means a refresh token was revoked before use.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrTokenAlreadyUsed means a one-time token was already consumed.
	ErrTokenAlreadyUsed = errors.New("token already used")

	// ErrTokenNotFound means no record exists for the presented token.
	ErrTokenNotFound = errors.New("token not found")

	// ErrStoreUnavailable means the durable store could not complete the operation.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrPrincipalNotFound is returned by PrincipalResolver implementations.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrInvalidCredentials is returned by Login for an unknown principal or a
	// rejected credential alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Kind classifies an error into the credential error taxonomy.
type Kind int

// Error kinds.
const (
	KindNone Kind = iota
	KindUnknown
	KindInvalidCredentialMaterial
	KindTokenMalformed
	KindTokenExpired
	KindTokenRevoked
	KindTokenAlreadyUsed
	KindTokenNotFound
	KindStoreUnavailable
)

var kindSentinels = []struct {
	kind Kind
	err  error
}{
	{KindInvalidCredentialMaterial, ErrInvalidCredentialMaterial},
	{KindTokenMalformed, ErrTokenMalformed},
	{KindTokenExpired, ErrTokenExpired},
	{KindTokenRevoked, ErrTokenRevoked},
	{KindTokenAlreadyUsed, ErrTokenAlreadyUsed},
	{KindTokenNotFound, ErrTokenNotFound},
	{KindStoreUnavailable, ErrStoreUnavailable},
}

// KindOf returns the taxonomy kind of err. A nil error is KindNone and an
// error outside the taxonomy is KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, s := range kindSentinels {
		if errors.Is(err, s.err) {
			return s.kind
		}
	}
	return KindUnknown
}

// String returns the snake_case name used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidCredentialMaterial:
		return "invalid_credential_material"
	case KindTokenMalformed:
		return "token_malformed"
	case KindTokenExpired:
		return "token_expired"
	case KindTokenRevoked:
		return "token_revoked"
	case KindTokenAlreadyUsed:
		return "token_already_used"
	case KindTokenNotFound:
		return "token_not_found"
	case KindStoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}

// IsCallerRecoverable reports whether err is an expected token outcome the
// caller answers with "re-authenticate" rather than an infrastructure fault.
func IsCallerRecoverable(err error) bool {
	switch KindOf(err) {
	case KindTokenMalformed, KindTokenExpired, KindTokenRevoked, KindTokenAlreadyUsed, KindTokenNotFound:
		return true
	default:
		return false
	}
}
