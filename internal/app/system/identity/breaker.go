// internal/app/system/identity/breaker.go
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Breaker wraps a Provider with a circuit breaker. Refusals such as a wrong
// password count as successful calls; only infrastructure failures trip it.
// While open, every call fails fast with CodeUnavailable.
type Breaker struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

var _ Provider = (*Breaker)(nil)

// NewBreaker opens after 3 consecutive failures and probes again after timeout.
func NewBreaker(next Provider, timeout time.Duration, logger *zap.Logger) *Breaker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "identity-provider",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || apperr.ProviderCode(err) != ""
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &Breaker{next: next, cb: cb}
}

// State reports the breaker state for health checks.
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

func (b *Breaker) Create(ctx context.Context, email, password, displayName string) (string, error) {
	return execute(b, func() (string, error) { return b.next.Create(ctx, email, password, displayName) })
}

func (b *Breaker) Verify(ctx context.Context, email, password string) (string, error) {
	return execute(b, func() (string, error) { return b.next.Verify(ctx, email, password) })
}

func (b *Breaker) Delete(ctx context.Context, id string) error {
	_, err := execute(b, func() (string, error) { return "", b.next.Delete(ctx, id) })
	return err
}

func (b *Breaker) ResetToken(ctx context.Context, email string) (string, error) {
	return execute(b, func() (string, error) { return b.next.ResetToken(ctx, email) })
}

func (b *Breaker) ResetPassword(ctx context.Context, token, newPassword string) error {
	_, err := execute(b, func() (string, error) { return "", b.next.ResetPassword(ctx, token, newPassword) })
	return err
}

func execute(b *Breaker, fn func() (string, error)) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) { return fn() })
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", apperr.Provider(apperr.CodeUnavailable, err)
		}
		return "", err
	}
	s, _ := out.(string)
	return s, nil
}
