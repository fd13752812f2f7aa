// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/samber/oops"
)

// OpaqueTokenBytes is the entropy of refresh and reset tokens.
const OpaqueTokenBytes = 32 // 32 bytes = 64 hex chars

// GenerateOpaqueToken creates a secure random token and its hash.
// Returns (plaintext_token, sha256_hash, error).
// The plaintext token is handed to the client; only the hash is stored.
func GenerateOpaqueToken() (token, hash string, err error) {
	tokenBytes := make([]byte, OpaqueTokenBytes)
	if _, err = rand.Read(tokenBytes); err != nil {
		return "", "", oops.Code("TOKEN_GENERATE_FAILED").Wrap(err)
	}

	token = hex.EncodeToString(tokenBytes)
	return token, HashOpaqueToken(token), nil
}

// HashOpaqueToken computes the SHA256 hash of a token as lowercase hex.
func HashOpaqueToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// VerifyOpaqueToken checks if the plaintext token matches the stored hash.
// Uses constant-time comparison.
func VerifyOpaqueToken(token, hash string) bool {
	if token == "" || hash == "" {
		return false
	}
	computed := HashOpaqueToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

// wellFormedOpaqueToken reports whether token has the shape GenerateOpaqueToken produces.
// Anything else cannot exist in a store and is rejected without a lookup.
func wellFormedOpaqueToken(token string) bool {
	if len(token) != OpaqueTokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}
