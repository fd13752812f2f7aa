// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/samber/oops"
)

// DefaultAccessTTL is the access token lifetime when none is configured.
const DefaultAccessTTL = 15 * time.Minute

// maxLeeway bounds clock skew tolerance on verification.
const maxLeeway = 2 * time.Minute

var (
	errUnsupportedAlg = errors.New("unsupported signing algorithm")
	errMissingKeyID   = errors.New("missing kid header")
	errUnknownKeyID   = errors.New("unknown kid")
)

// VerifyFailure distinguishes why an access token was rejected.
// Callers only see ErrTokenMalformed or ErrTokenExpired; the finer
// classification is for logs and metrics.
type VerifyFailure int

// Verification failure classes.
const (
	VerifyOK VerifyFailure = iota
	VerifyMalformed
	VerifyExpired
	VerifyBadSignature
	VerifyUnsupported
)

// String returns the label used in logs and metrics.
func (f VerifyFailure) String() string {
	switch f {
	case VerifyOK:
		return "ok"
	case VerifyMalformed:
		return "malformed"
	case VerifyExpired:
		return "expired"
	case VerifyBadSignature:
		return "bad_signature"
	case VerifyUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Err maps the failure onto the public error taxonomy.
func (f VerifyFailure) Err() error {
	switch f {
	case VerifyOK:
		return nil
	case VerifyExpired:
		return ErrTokenExpired
	default:
		return ErrTokenMalformed
	}
}

// AccessClaims are the claims carried by an access token.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// AccessToken is a signed bearer token. It is never persisted.
type AccessToken struct {
	Token     string
	Subject   string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SignerConfig configures a Signer.
type SignerConfig struct {
	Material SigningMaterial
	TTL      time.Duration
	Issuer   string
	Audience string
	Leeway   time.Duration
	Clock    func() time.Time
	Logger   *slog.Logger
}

// Signer issues and verifies HS512 access tokens. It holds no mutable state
// and is safe for concurrent use.
type Signer struct {
	current     []byte
	previous    []byte
	currentKID  string
	previousKID string
	ttl         time.Duration
	issuer      string
	audience    string
	leeway      time.Duration
	clock       func() time.Time
	logger      *slog.Logger
}

// NewSigner validates cfg and returns a Signer.
func NewSigner(cfg SignerConfig) (*Signer, error) {
	if len(cfg.Material.Current) < MinSigningKeyBytes {
		return nil, oops.Code("SIGNER_INVALID_KEY").
			With("slot", "current").
			Wrapf(ErrInvalidCredentialMaterial, "current signing key must be at least %d bytes", MinSigningKeyBytes)
	}
	if cfg.Material.HasPrevious() && len(cfg.Material.Previous) < MinSigningKeyBytes {
		return nil, oops.Code("SIGNER_INVALID_KEY").
			With("slot", "previous").
			Wrapf(ErrInvalidCredentialMaterial, "previous signing key must be at least %d bytes", MinSigningKeyBytes)
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultAccessTTL
	}
	if cfg.TTL < 0 {
		return nil, oops.Code("SIGNER_INVALID_TTL").Errorf("access token TTL must be positive, got %s", cfg.TTL)
	}
	if cfg.Leeway < 0 || cfg.Leeway > maxLeeway {
		return nil, oops.Code("SIGNER_INVALID_LEEWAY").Errorf("leeway must be between 0 and %s, got %s", maxLeeway, cfg.Leeway)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Signer{
		current:    cfg.Material.Current,
		currentKID: keyID(cfg.Material.Current),
		ttl:        cfg.TTL,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		leeway:     cfg.Leeway,
		clock:      cfg.Clock,
		logger:     cfg.Logger,
	}
	if cfg.Material.HasPrevious() {
		s.previous = cfg.Material.Previous
		s.previousKID = keyID(cfg.Material.Previous)
	}
	return s, nil
}

// TTL returns the configured access token lifetime.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Issue signs a new access token for subject with the current key.
func (s *Signer) Issue(subject string) (AccessToken, error) {
	if strings.TrimSpace(subject) == "" {
		return AccessToken{}, oops.Code("ACCESS_TOKEN_INVALID_SUBJECT").Errorf("subject cannot be empty")
	}

	now := s.clock()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    s.issuer,
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	token.Header["kid"] = s.currentKID

	signed, err := token.SignedString(s.current)
	if err != nil {
		return AccessToken{}, oops.Code("ACCESS_TOKEN_SIGN_FAILED").Wrap(err)
	}

	return AccessToken{
		Token:     signed,
		Subject:   subject,
		ID:        claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify checks token against the key its kid header names.
// It returns the subject, or ErrTokenMalformed / ErrTokenExpired.
// Verification is pure: no store is consulted, so an access token stays
// valid until it expires even if its session was revoked.
func (s *Signer) Verify(token string) (string, error) {
	claims, failure := s.Inspect(token)
	if failure != VerifyOK {
		s.logFailure(failure)
		return "", oops.Code("ACCESS_TOKEN_INVALID").
			With("reason", failure.String()).
			Wrap(failure.Err())
	}
	return claims.Subject, nil
}

// Inspect parses and verifies token, returning its claims or the reason it
// was rejected. The kid header selects the current or previous key; a kid
// naming neither is a bad signature. Tokens without a kid are tried against
// the current key and then the previous key.
func (s *Signer) Inspect(token string) (*AccessClaims, VerifyFailure) {
	if strings.TrimSpace(token) == "" {
		return nil, VerifyMalformed
	}

	var usedKID string
	claims, err := s.parse(token, func(t *jwt.Token) ([]byte, error) {
		key, kid, err := s.keyFor(t)
		usedKID = kid
		return key, err
	})
	if errors.Is(err, errMissingKeyID) {
		usedKID = s.currentKID
		claims, err = s.parse(token, fixedKey(s.current))
		if err != nil && s.previous != nil && classify(err) == VerifyBadSignature {
			usedKID = s.previousKID
			claims, err = s.parse(token, fixedKey(s.previous))
		}
	}
	if err != nil {
		return nil, classify(err)
	}
	if claims.Subject == "" {
		return nil, VerifyMalformed
	}
	if usedKID == s.previousKID && s.previous != nil {
		s.logger.Debug("access token verified with previous signing key", "kid", s.previousKID)
	}
	return claims, VerifyOK
}

// keyFor resolves the verification key named by the kid header.
func (s *Signer) keyFor(t *jwt.Token) ([]byte, string, error) {
	raw, ok := t.Header["kid"]
	if !ok {
		return nil, "", errMissingKeyID
	}
	kid, _ := raw.(string)
	switch {
	case kid != "" && kid == s.currentKID:
		return s.current, kid, nil
	case kid != "" && s.previous != nil && kid == s.previousKID:
		return s.previous, kid, nil
	default:
		return nil, kid, errUnknownKeyID
	}
}

func fixedKey(key []byte) func(*jwt.Token) ([]byte, error) {
	return func(*jwt.Token) ([]byte, error) { return key, nil }
}

func (s *Signer) parse(token string, resolve func(*jwt.Token) ([]byte, error)) (*AccessClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.clock),
	}
	if s.leeway > 0 {
		options = append(options, jwt.WithLeeway(s.leeway))
	}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		options = append(options, jwt.WithAudience(s.audience))
	}

	claims := &AccessClaims{}
	_, err := jwt.NewParser(options...).ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS512 {
			return nil, errUnsupportedAlg
		}
		return resolve(t)
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // classified by caller
	}
	return claims, nil
}

// classify maps jwt parse errors onto VerifyFailure.
func classify(err error) VerifyFailure {
	switch {
	case err == nil:
		return VerifyOK
	case errors.Is(err, errUnknownKeyID):
		return VerifyBadSignature
	case errors.Is(err, errUnsupportedAlg), errors.Is(err, jwt.ErrTokenUnverifiable):
		return VerifyUnsupported
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return VerifyBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return VerifyExpired
	default:
		return VerifyMalformed
	}
}

func (s *Signer) logFailure(failure VerifyFailure) {
	switch failure {
	case VerifyBadSignature, VerifyUnsupported:
		s.logger.Warn("access token rejected",
			"reason", failure.String(),
			"security_event", "access_token_forgery_suspected")
	default:
		s.logger.Debug("access token rejected", "reason", failure.String())
	}
}

// keyID derives a short, non-secret identifier for a key for the kid header.
func keyID(key []byte) string {
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:8])
}
