package client

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

const (
	defaultCheckInterval    = 5 * time.Minute
	defaultRefreshThreshold = 15 * time.Minute
)

// Session owns the client-side authentication state: the current token,
// the identity snapshot behind it, and a background loop that refreshes
// the token before it expires.
//
// All state changes go through install and clear, which bump an epoch
// counter. An in-flight refresh captures the epoch before releasing the
// lock and compares it before applying its result, so a refresh that
// raced with a sign-out or a new sign-in is discarded instead of
// resurrecting the old session.
type Session struct {
	api   *Client
	store TokenStore
	log   zerolog.Logger

	mu         sync.Mutex
	token      string
	identity   *domain.Identity
	epoch      uint64
	refreshing bool

	checkInterval    time.Duration
	refreshThreshold time.Duration

	done chan struct{}
	wg   sync.WaitGroup
}

// NewSession wires a session manager. It starts signed out; call
// Restore to resume a persisted session or SignIn to start one.
func NewSession(api *Client, store TokenStore, log zerolog.Logger) *Session {
	return &Session{
		api:              api,
		store:            store,
		log:              log,
		checkInterval:    defaultCheckInterval,
		refreshThreshold: defaultRefreshThreshold,
		done:             make(chan struct{}),
	}
}

// SetRefreshPolicy overrides the background check cadence. Must be
// called before Start.
func (s *Session) SetRefreshPolicy(checkInterval, refreshThreshold time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkInterval = checkInterval
	s.refreshThreshold = refreshThreshold
}

// Restore loads a persisted token and verifies it with the server. The
// stored token is only a hint: identity always comes from the verify
// endpoint. An unusable token is cleared from the store.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	token, err := s.store.Load()
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	payload, err := s.api.Verify(ctx, token)
	if err != nil {
		s.log.Debug().Err(err).Msg("stored token rejected, clearing")
		if clearErr := s.store.Clear(); clearErr != nil {
			return false, clearErr
		}
		return false, nil
	}

	identity := domain.IdentityOf(payload.User, payload.Profile)
	s.install(token, &identity)
	return true, nil
}

// SignUp registers a new account and signs the session in.
func (s *Session) SignUp(ctx context.Context, email, password, fullName string) (*domain.Identity, error) {
	payload, err := s.api.SignUp(ctx, email, password, fullName)
	if err != nil {
		return nil, err
	}
	identity := domain.IdentityOf(payload.User, payload.Profile)
	s.install(payload.Token, &identity)
	return &identity, nil
}

// SignIn exchanges credentials for a session.
func (s *Session) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	payload, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	identity := domain.IdentityOf(payload.User, payload.Profile)
	s.install(payload.Token, &identity)
	return &identity, nil
}

// SignOut clears the session and the persisted token. Calling it while
// already signed out is a no-op. The store write happens under the same
// lock as the state change, so a concurrent refresh cannot persist its
// token after sign-out cleared the store.
func (s *Session) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasSignedIn := s.token != ""
	s.token = ""
	s.identity = nil
	s.epoch++

	if !wasSignedIn {
		return nil
	}
	return s.store.Clear()
}

// Current returns the identity snapshot, if signed in. The snapshot
// reflects the last server verification; role changes made after token
// issuance are not visible until the token is reissued.
func (s *Session) Current() (*domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil, false
	}
	identity := *s.identity
	return &identity, true
}

// Token returns the current bearer token, or empty when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Can reports whether the signed-in identity holds a capability. This
// gates UI affordances only; the server enforces authorization on every
// request regardless.
func (s *Session) Can(capability domain.Capability) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return false
	}
	return domain.Authorize(s.identity.Role, capability)
}

// Start launches the background refresh loop. Close stops it.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	interval := s.checkInterval
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.maybeRefresh(ctx)
			}
		}
	}()
}

// Close stops the refresh loop and waits for it to exit.
func (s *Session) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.wg.Wait()
}

// maybeRefresh refreshes the token when it is close to expiry. Only one
// refresh runs at a time; the network call happens outside the lock.
func (s *Session) maybeRefresh(ctx context.Context) {
	s.mu.Lock()
	if s.token == "" || s.refreshing || !s.nearExpiry(s.token) {
		s.mu.Unlock()
		return
	}
	s.refreshing = true
	token := s.token
	epoch := s.epoch
	s.mu.Unlock()

	fresh, err := s.api.Refresh(ctx, token)

	s.mu.Lock()
	s.refreshing = false
	if s.epoch != epoch {
		// Signed out or signed in again while the refresh was in
		// flight; the result belongs to a dead session.
		s.mu.Unlock()
		return
	}
	if err != nil {
		// A token this close to expiry that cannot be renewed is a dead
		// session: degrade to signed out instead of failing later calls.
		s.token = ""
		s.identity = nil
		s.epoch++
		if clearErr := s.store.Clear(); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("clear persisted token failed")
		}
		s.mu.Unlock()
		s.log.Warn().Err(err).Msg("token refresh failed, signing out")
		return
	}
	s.token = fresh
	if saveErr := s.store.Save(fresh); saveErr != nil {
		s.log.Warn().Err(saveErr).Msg("persist refreshed token failed")
	}
	s.mu.Unlock()
	s.log.Debug().Msg("session token refreshed")
}

// nearExpiry decodes the token without verifying the signature, purely
// to read the expiry claim. A token that cannot be decoded is treated
// as near expiry so the next cycle attempts a refresh.
func (s *Session) nearExpiry(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return time.Until(claims.ExpiresAt.Time) < s.refreshThreshold
}

// install swaps in a new token and identity and persists the token, all
// under one critical section: a reader never observes a token from one
// session and an identity from another, and store writes serialize with
// SignOut in epoch order so the last state change is also the last store
// write.
func (s *Session) install(token string, identity *domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.identity = identity
	s.epoch++

	if err := s.store.Save(token); err != nil {
		s.log.Warn().Err(err).Msg("persist token failed")
	}
}
