package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

// DefaultTokenTTL is the session token lifetime when none is configured.
const DefaultTokenTTL = 8 * time.Hour

// sessionClaims is the signed wire form of a domain.Identity.
type sessionClaims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsAdmin   bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// identity validates that the required claim fields are present before
// handing back a typed value. A structurally valid JWT with missing
// identity claims is rejected rather than trusted.
func (c *sessionClaims) identity() (*domain.Identity, error) {
	if c.AccountID == "" || c.Email == "" || c.Role == "" {
		return nil, domain.ErrInvalidToken
	}
	return &domain.Identity{
		AccountID: c.AccountID,
		Email:     c.Email,
		Role:      c.Role,
		IsAdmin:   c.IsAdmin,
	}, nil
}

// TokenService issues and verifies HS256 session tokens. The signing key
// is process-wide configuration; rotating it invalidates all outstanding
// tokens (accepted tradeoff, no key versioning).
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a fresh token carrying the identity claims plus issued-at
// and expiry timestamps.
func (s *TokenService) Issue(identity domain.Identity) (string, error) {
	now := s.now().UTC()
	claims := sessionClaims{
		AccountID: identity.AccountID,
		Email:     identity.Email,
		Role:      identity.Role,
		IsAdmin:   identity.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
func (s *TokenService) Verify(token string) (*domain.Identity, error) {
	claims, err := s.parse(token, false)
	if err != nil {
		return nil, err
	}
	return claims.identity()
}

// Refresh reissues a token with the same identity claims and a fresh
// expiry. Expiry is deliberately not validated, so a recently expired
// token can still be renewed; a tampered signature fails regardless.
func (s *TokenService) Refresh(token string) (string, error) {
	claims, err := s.parse(token, true)
	if err != nil {
		return "", err
	}
	identity, err := claims.identity()
	if err != nil {
		return "", err
	}
	return s.Issue(*identity)
}

func (s *TokenService) parse(token string, ignoreExpiry bool) (*sessionClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if ignoreExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
