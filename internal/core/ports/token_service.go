package ports

import "github.com/evento-nomina/payroll-system/internal/core/domain"

// TokenService issues, verifies, and refreshes signed session tokens.
// Verify is the only trusted source of identity and role for server-side
// authorization decisions.
type TokenService interface {
	Issue(identity domain.Identity) (string, error)
	Verify(token string) (*domain.Identity, error)
	// Refresh reissues a token with the same identity claims and a fresh
	// expiry. The signature must be valid; expiry is deliberately ignored
	// so a recently expired token can still be renewed.
	Refresh(token string) (string, error)
}
