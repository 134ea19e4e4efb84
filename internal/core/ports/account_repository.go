package ports

import (
	"context"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

// AccountRepository persists accounts and their embedded profiles.
// Create stores both atomically and fails with domain.ErrUserExists when
// the email is already registered (exact, case-sensitive match).
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account, profile *domain.Profile) (*domain.Account, *domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, *domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Account, *domain.Profile, error)
}
