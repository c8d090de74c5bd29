package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// ErrTooManyAttempts is returned when attempts come faster than allowed.
var ErrTooManyAttempts = errors.New("too many login attempts")

// Throttled rate-limits an Authenticator.
type Throttled struct {
	next    Authenticator
	limiter *rate.Limiter
}

// NewThrottled allows burst immediate attempts, then one per interval.
func NewThrottled(next Authenticator, interval time.Duration, burst int) *Throttled {
	return &Throttled{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(interval), burst),
	}
}

// Authenticate implements Authenticator. It fails with ErrTooManyAttempts
// instead of blocking.
func (t *Throttled) Authenticate(username, password string) (User, error) {
	if !t.limiter.Allow() {
		return User{}, ErrTooManyAttempts
	}
	return t.next.Authenticate(username, password)
}

// AuthenticateContext waits for the next allowed attempt, then
// authenticates. It returns ctx's error if the wait cannot finish in time.
func (t *Throttled) AuthenticateContext(ctx context.Context, username, password string) (User, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return User{}, err
	}
	return t.next.Authenticate(username, password)
}
