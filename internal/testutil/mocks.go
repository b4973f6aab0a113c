package testutil

import (
	"context"
	"fmt"
	"sync"
)

// StubSynthesizer returns "audio:<text>" for every text unless an error is
// configured for it. It records every call.
type StubSynthesizer struct {
	mu sync.Mutex

	// Errors maps a text to the error returned for it
	Errors map[string]error
	// Err, when set, is returned for every text
	Err error
	// OnCall runs before each synthesize call returns
	OnCall func(text string)

	Calls []string
}

// Synthesize records the call and returns fake audio.
func (s *StubSynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, text)
	onCall := s.OnCall
	s.mu.Unlock()

	if onCall != nil {
		onCall(text)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if err, ok := s.Errors[text]; ok {
		return nil, err
	}
	return []byte(fmt.Sprintf("audio:%s", text)), nil
}

// CallCount returns the number of synthesize calls so far.
func (s *StubSynthesizer) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// StubProvider is a StubSynthesizer with a name and a configurable
// reachability result.
type StubProvider struct {
	StubSynthesizer

	ProviderName string
	AvailableErr error
	ProbeCalls   int
}

// Name returns the provider name
func (p *StubProvider) Name() string {
	if p.ProviderName == "" {
		return "stub"
	}
	return p.ProviderName
}

// IsAvailable returns AvailableErr.
func (p *StubProvider) IsAvailable(ctx context.Context) error {
	p.ProbeCalls++
	return p.AvailableErr
}

// RecordingThrottle counts waits and never sleeps.
type RecordingThrottle struct {
	Waits int
	Err   error
}

// Wait records the call.
func (r *RecordingThrottle) Wait(ctx context.Context) error {
	r.Waits++
	if r.Err != nil {
		return r.Err
	}
	return ctx.Err()
}
