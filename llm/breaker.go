package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/zenapp/council/core"
)

// BreakerConfig configures the circuit breaker around a generator.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that trips the
	// circuit. Default: 3.
	MaxFailures uint32

	// Timeout is how long the circuit stays open before allowing test
	// requests. Default: 30s.
	Timeout time.Duration

	// HalfOpenMaxSuccesses is the number of successes required in
	// half-open state to close the circuit. Default: 2.
	HalfOpenMaxSuccesses uint32
}

// Breaker wraps a Generator with a circuit breaker so that a failing
// generation backend fails fast instead of holding every user's turn open
// for the full timeout.
type Breaker struct {
	inner   Generator
	breaker *gobreaker.CircuitBreaker
}

// NewBreaker wraps inner with circuit-breaker protection.
func NewBreaker(inner Generator, cfg BreakerConfig) *Breaker {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HalfOpenMaxSuccesses == 0 {
		cfg.HalfOpenMaxSuccesses = 2
	}

	settings := gobreaker.Settings{
		Name:        "generation",
		MaxRequests: cfg.HalfOpenMaxSuccesses,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
	}

	return &Breaker{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Generate runs the wrapped generator through the circuit breaker. An open
// circuit surfaces as a generation error without calling the backend.
func (b *Breaker) Generate(ctx context.Context, system string, history []core.Message, opts Options) (string, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return b.inner.Generate(ctx, system, history, opts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: circuit breaker open", core.ErrGeneration)
		}
		if errors.Is(err, core.ErrGeneration) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", core.ErrGeneration, err)
	}
	return result.(string), nil
}
