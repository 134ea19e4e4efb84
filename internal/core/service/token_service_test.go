package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

var testIdentity = domain.Identity{
	AccountID: "acc_1",
	Email:     "alice@example.com",
	Role:      domain.RoleEmployee,
	IsAdmin:   false,
}

func TestTokenService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testIdentity)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if *got != testIdentity {
		t.Fatalf("claims mismatch: got %+v want %+v", *got, testIdentity)
	}
}

func TestTokenService_VerifyAdminClaim(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	admin := domain.Identity{AccountID: "acc_2", Email: "boss@example.com", Role: domain.RoleAdmin, IsAdmin: true}
	token, err := svc.Issue(admin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !got.IsAdmin || got.Role != domain.RoleAdmin {
		t.Fatalf("expected admin claims, got %+v", got)
	}
}

func TestTokenService_VerifyExpired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Issue(testIdentity)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_RefreshExpiredToken(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	old, err := svc.Issue(testIdentity)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// The expired token still refreshes; the fresh one carries the same
	// identity and a strictly later expiry.
	svc.now = time.Now
	fresh, err := svc.Refresh(old)
	if err != nil {
		t.Fatalf("refresh of expired token: %v", err)
	}

	got, err := svc.Verify(fresh)
	if err != nil {
		t.Fatalf("verify refreshed: %v", err)
	}
	if *got != testIdentity {
		t.Fatalf("identity changed across refresh: %+v", got)
	}

	oldExp := tokenExpiry(t, old)
	newExp := tokenExpiry(t, fresh)
	if !newExp.After(oldExp) {
		t.Fatalf("expected later expiry: old=%v new=%v", oldExp, newExp)
	}
}

func TestTokenService_CorruptedSignature(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testIdentity)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tampered := flipSignatureByte(t, token)

	if _, err := svc.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("verify accepted tampered token: %v", err)
	}
	if _, err := svc.Refresh(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("refresh accepted tampered token: %v", err)
	}
}

func TestTokenService_WrongKey(t *testing.T) {
	issuer := NewTokenService("secret", time.Hour)
	verifier := NewTokenService("rotated", time.Hour)

	token, err := issuer.Issue(testIdentity)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after key rotation, got %v", err)
	}
}

func TestTokenService_MissingIdentityClaims(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	// Structurally valid token without identity claims must be rejected.
	bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := bare.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func tokenExpiry(t *testing.T, token string) time.Time {
	t.Helper()
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("token has no expiry")
	}
	return claims.ExpiresAt.Time
}

// flipSignatureByte swaps one character of the signature segment for a
// different base64url character.
func flipSignatureByte(t *testing.T, token string) string {
	t.Helper()
	idx := strings.LastIndex(token, ".")
	if idx < 0 || idx == len(token)-1 {
		t.Fatalf("malformed token: %s", token)
	}
	sig := []byte(token[idx+1:])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	return token[:idx+1] + string(sig)
}
