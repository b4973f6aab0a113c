package audio

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// BreakerProvider stops calling a provider after a run of consecutive
// failures and fails fast until the cooldown elapses. Short-circuited calls
// still surface as *SynthesisError.
type BreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps provider with a circuit breaker that opens after
// failures consecutive errors.
func NewBreakerProvider(provider Provider, failures uint32, cooldown time.Duration) *BreakerProvider {
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        provider.Name(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"provider": name,
				"from":     from.String(),
				"to":       to.String(),
			}).Warn("circuit breaker state changed")
		},
	}

	return &BreakerProvider{
		provider: provider,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// Synthesize calls the wrapped provider through the breaker.
func (p *BreakerProvider) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	result, err := p.cb.Execute(func() (interface{}, error) {
		return p.provider.Synthesize(ctx, text, language)
	})
	if err != nil {
		return nil, synthesisError(p.provider.Name(), text, err)
	}
	return result.([]byte), nil
}

// Name returns the wrapped provider's name
func (p *BreakerProvider) Name() string {
	return p.provider.Name()
}

// IsAvailable delegates to the wrapped provider.
func (p *BreakerProvider) IsAvailable(ctx context.Context) error {
	return p.provider.IsAvailable(ctx)
}

// State reports the breaker state, e.g. "closed" or "open".
func (p *BreakerProvider) State() string {
	return p.cb.State().String()
}
