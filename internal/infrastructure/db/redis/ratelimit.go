package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	attemptWindow = 15 * time.Minute
	maxAttempts   = 10
)

// SignInLimiter throttles failed sign-in attempts per email using a
// Redis counter with a rolling expiry window.
// Key format: signin_attempts:<email>
type SignInLimiter struct {
	client *redis.Client
}

// NewSignInLimiter creates a SignInLimiter wrapping the given Redis client.
func NewSignInLimiter(client *redis.Client) *SignInLimiter {
	return &SignInLimiter{client: client}
}

// Allow reports whether the email is still under the failure threshold.
func (l *SignInLimiter) Allow(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}
	return n < maxAttempts, nil
}

// RecordFailure bumps the failure counter and restarts the window.
func (l *SignInLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, attemptWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record sign-in failure: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful sign-in.
func (l *SignInLimiter) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("reset sign-in failures: %w", err)
	}
	return nil
}

func (l *SignInLimiter) key(email string) string {
	return "signin_attempts:" + email
}
