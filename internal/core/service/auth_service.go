package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
	"github.com/evento-nomina/payroll-system/internal/core/ports"
)

// SignInLimiter throttles repeated failed credential checks per email.
type SignInLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements sign-up, sign-in, and the token verify/refresh
// paths over the credential store.
type AuthService struct {
	accounts ports.AccountRepository
	tokens   ports.TokenService
	limiter  SignInLimiter
	log      zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, tokens ports.TokenService, limiter SignInLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens, limiter: limiter, log: log}
}

// SignUp registers a new account with an employee profile and issues the
// first session token.
func (s *AuthService) SignUp(ctx context.Context, email, password, fullName string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: string(hash),
	}
	profile := &domain.Profile{
		Role:     domain.RoleEmployee,
		FullName: fullName,
	}

	account, profile, err = s.accounts.Create(ctx, account, profile)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(domain.IdentityOf(account, profile))
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", account.ID).Msg("account created")
	return &ports.AuthResult{Account: account, Profile: profile, Token: token}, nil
}

// SignIn verifies credentials and issues a session token. Unknown email
// and wrong password collapse into the same error so responses carry no
// account-enumeration signal.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("rate limit check failed, allowing sign-in")
	} else if !allowed {
		return nil, domain.ErrTooManyAttempts
	}

	account, profile, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("rate limit reset failed")
	}

	token, err := s.tokens.Issue(domain.IdentityOf(account, profile))
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Account: account, Profile: profile, Token: token}, nil
}

// Verify validates the token and resolves the account and profile behind
// it. The account lookup catches identities deleted after issuance.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.Account, *domain.Profile, error) {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		return nil, nil, err
	}
	return s.accounts.FindByID(ctx, identity.AccountID)
}

// Refresh exchanges a correctly signed token for a fresh one.
func (s *AuthService) Refresh(ctx context.Context, token string) (string, error) {
	return s.tokens.Refresh(token)
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record sign-in failure")
	}
}
