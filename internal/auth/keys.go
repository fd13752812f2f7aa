// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/samber/oops"
)

// MinSigningKeyBytes is the minimum decoded length of a signing key (512 bits).
const MinSigningKeyBytes = 64

// keyHint is appended to key validation errors.
const keyHint = "generate one with `tokenkeeper keygen` or `openssl rand -base64 64`"

// SigningMaterial is the HMAC key set used by the Signer.
// Current is never empty. Previous, when set, is accepted for verification only.
type SigningMaterial struct {
	Current  []byte
	Previous []byte
}

// HasPrevious reports whether a previous key is configured.
func (m SigningMaterial) HasPrevious() bool {
	return len(m.Previous) > 0
}

// DecodeSigningKey decodes a base64 key. Standard and URL alphabets are
// accepted, with or without padding.
func DecodeSigningKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if key, err := enc.DecodeString(encoded); err == nil {
			return key, nil
		}
	}
	return nil, oops.Code("SIGNING_KEY_NOT_BASE64").
		Hint(keyHint).
		Wrapf(ErrInvalidCredentialMaterial, "signing key is not valid base64")
}

// ValidateKeyMaterial decodes and checks the configured signing keys.
// It fails with ErrInvalidCredentialMaterial when current is absent, not
// base64, or shorter than MinSigningKeyBytes once decoded. Previous is
// optional but held to the same rules when present.
func ValidateKeyMaterial(current, previous string) (SigningMaterial, error) {
	cur, err := validateKey("current", current)
	if err != nil {
		return SigningMaterial{}, err
	}

	material := SigningMaterial{Current: cur}
	if strings.TrimSpace(previous) == "" {
		return material, nil
	}

	prev, err := validateKey("previous", previous)
	if err != nil {
		return SigningMaterial{}, err
	}
	material.Previous = prev
	return material, nil
}

func validateKey(slot, encoded string) ([]byte, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, oops.Code("SIGNING_KEY_MISSING").
			With("slot", slot).
			Hint(keyHint).
			Wrapf(ErrInvalidCredentialMaterial, "%s signing key is not configured", slot)
	}

	key, err := DecodeSigningKey(encoded)
	if err != nil {
		return nil, oops.With("slot", slot).Wrap(err)
	}

	if len(key) < MinSigningKeyBytes {
		return nil, oops.Code("SIGNING_KEY_TOO_SHORT").
			With("slot", slot).
			With("bytes", len(key)).
			With("min_bytes", MinSigningKeyBytes).
			Hint(keyHint).
			Wrapf(ErrInvalidCredentialMaterial, "%s signing key is %d bytes, need at least %d", slot, len(key), MinSigningKeyBytes)
	}
	return key, nil
}

// GenerateSigningKey returns a fresh random key of MinSigningKeyBytes, base64 encoded.
func GenerateSigningKey() (string, error) {
	key := make([]byte, MinSigningKeyBytes)
	if _, err := rand.Read(key); err != nil {
		return "", oops.Code("SIGNING_KEY_GENERATE_FAILED").Wrap(err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
