package ports

import (
	"context"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

// AuthResult bundles everything a successful sign-up or sign-in returns.
type AuthResult struct {
	Account *domain.Account
	Profile *domain.Profile
	Token   string
}

type AuthService interface {
	SignUp(ctx context.Context, email, password, fullName string) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	// Verify validates the token and resolves the account behind it.
	// Fails with domain.ErrUserNotFound when the account vanished after
	// the token was issued.
	Verify(ctx context.Context, token string) (*domain.Account, *domain.Profile, error)
	Refresh(ctx context.Context, token string) (string, error)
}
