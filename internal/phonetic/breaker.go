package phonetic

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// Breaker stops calling a failing provider for a while after consecutive
// failures. Missing API keys do not count as failures.
type Breaker struct {
	next Fetcher
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next in a circuit breaker named name.
func NewBreaker(name string, next Fetcher) *Breaker {
	return &Breaker{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNoAPIKey) || errors.Is(err, context.Canceled)
			},
		}),
	}
}

// Fetch implements Fetcher.
func (b *Breaker) Fetch(ctx context.Context, word string) (string, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Fetch(ctx, word)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// State reports the breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
