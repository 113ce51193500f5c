// Package jwttoken mints and verifies the org-scoped bearer tokens accepted
// by the HTTP API.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"mandate/internal/platform/config"
	"mandate/internal/platform/middleware"
	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
)

type orgClaims struct {
	OrgID string `json:"org_id"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 tokens carrying an org_id claim.
type Tokens struct {
	key      []byte
	issuer   string
	audience string
	leeway   time.Duration
	now      func() time.Time
}

type Option func(*Tokens)

// WithLeeway tolerates clock skew when checking exp and iat.
func WithLeeway(d time.Duration) Option {
	return func(t *Tokens) { t.leeway = d }
}

func WithClock(now func() time.Time) Option {
	return func(t *Tokens) {
		if now != nil {
			t.now = now
		}
	}
}

func New(cfg config.AuthConfig, opts ...Option) *Tokens {
	t := &Tokens{
		key:      []byte(cfg.SigningKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mint issues a token for subject acting on behalf of org.
func (t *Tokens) Mint(subject string, org id.OrgID, ttl time.Duration) (string, error) {
	if org.IsNil() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "org is required")
	}
	if ttl <= 0 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "ttl must be positive")
	}
	issuedAt := t.now()
	claims := orgClaims{
		OrgID: org.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// ValidateToken satisfies middleware.JWTValidator.
func (t *Tokens) ValidateToken(raw string) (*middleware.JWTClaims, error) {
	var claims orgClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return t.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(t.leeway),
		jwt.WithTimeFunc(t.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
	}
	if _, err := id.ParseOrgID(claims.OrgID); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has no organization")
	}
	return &middleware.JWTClaims{
		Subject: claims.Subject,
		OrgID:   claims.OrgID,
		JTI:     claims.ID,
	}, nil
}
