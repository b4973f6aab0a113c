package audio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Synthesizer turns text into encoded audio.
type Synthesizer interface {
	// Synthesize returns the audio for text spoken in language. Failures
	// are reported as *SynthesisError.
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// Provider is a named synthesizer that can check whether its service is
// reachable before a batch starts.
type Provider interface {
	Synthesizer

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is configured and its service
	// reachable
	IsAvailable(ctx context.Context) error
}

// SynthesisError is a provider-side failure for one text.
type SynthesisError struct {
	Provider string
	Text     string
	Err      error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("%s: synthesis of %q failed: %v", e.Provider, e.Text, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

func synthesisError(provider, text string, err error) error {
	var se *SynthesisError
	if errors.As(err, &se) {
		return err
	}
	return &SynthesisError{Provider: provider, Text: text, Err: err}
}

// Config holds common configuration for audio providers
type Config struct {
	Provider         string // "gtts", "google", "openai", "gemini" or "espeak"
	FallbackProvider string // optional secondary provider
	OutputFormat     string // "mp3" or "wav"
	ProbeURL         string // overrides the provider's reachability URL

	// Consecutive failures before the circuit breaker opens, 0 disables it
	BreakerFailures uint32
	BreakerCooldown time.Duration

	// gTTS settings
	GTTSBinary string
	GTTSSlow   bool

	// Google Cloud Text-to-Speech settings
	GoogleVoice        string  // e.g. "cmn-TW-Wavenet-A", empty lets the service pick
	GoogleSpeakingRate float64 // 0.25 to 4.0

	// OpenAI settings
	OpenAIKey         string
	OpenAIBaseURL     string  // overrides https://api.openai.com/v1
	OpenAIModel       string  // "tts-1", "tts-1-hd" or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "nova", ...
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // voice instructions for gpt-4o-mini-tts

	// Gemini settings
	GeminiKey         string
	GeminiModel       string
	GeminiVoice       string
	GeminiInstruction string

	// espeak-ng settings
	ESpeakVoice string
	ESpeakSpeed int
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:           "gtts",
		OutputFormat:       "mp3",
		BreakerCooldown:    30 * time.Second,
		GTTSBinary:         "gtts-cli",
		GoogleSpeakingRate: 1.0,
		OpenAIModel:        "gpt-4o-mini-tts",
		OpenAIVoice:        "alloy",
		OpenAISpeed:        1.0,
		OpenAIInstruction:  "Speak Mandarin Chinese with a standard Taiwanese accent. Pronounce Zhuyin symbols as a tutor would when introducing them, slowly and clearly for language learners.",
		GeminiModel:        "gemini-2.5-flash-preview-tts",
		GeminiVoice:        "Kore",
		GeminiInstruction:  "Read the following Mandarin Chinese text aloud, slowly and clearly, with a Taiwanese accent:",
		ESpeakVoice:        "cmn",
		ESpeakSpeed:        130,
	}
}

// NewProvider creates the provider selected by config, with the optional
// fallback and circuit breaker applied.
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	provider, err := newBaseProvider(ctx, config.Provider, config)
	if err != nil {
		return nil, err
	}

	if config.FallbackProvider != "" && config.FallbackProvider != config.Provider {
		fallback, err := newBaseProvider(ctx, config.FallbackProvider, config)
		if err != nil {
			return nil, fmt.Errorf("fallback provider: %w", err)
		}
		provider = NewProviderWithFallback(provider, fallback)
	}

	if config.BreakerFailures > 0 {
		provider = NewBreakerProvider(provider, config.BreakerFailures, config.BreakerCooldown)
	}

	return provider, nil
}

func newBaseProvider(ctx context.Context, name string, config *Config) (Provider, error) {
	switch name {
	case "gtts", "":
		return NewGTTSProvider(config), nil

	case "google":
		return NewGoogleProvider(ctx, config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiProvider(ctx, config)

	case "espeak":
		return NewESpeakProvider(config), nil

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", name)
	}
}

// Providers lists the provider names NewProvider understands.
func Providers() []string {
	return []string{"gtts", "google", "openai", "gemini", "espeak"}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Synthesize tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	data, err := p.primary.Synthesize(ctx, text, language)
	if err == nil {
		return data, nil
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"primary":  p.primary.Name(),
		"fallback": p.fallback.Name(),
	}).Warn("primary provider failed, falling back")

	return p.fallback.Synthesize(ctx, text, language)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable(ctx context.Context) error {
	primaryErr := p.primary.IsAvailable(ctx)
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable(ctx)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
