package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/zhuyinaudio/internal/audio"
)

// OpenAIVoices are the built-in OpenAI TTS voices.
var OpenAIVoices = []string{
	"alloy", "ash", "ballad", "coral", "echo", "fable",
	"nova", "onyx", "sage", "shimmer", "verse",
}

type modelClient interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// Lister handles listing voices and models of the audio providers
type Lister struct {
	config *audio.Config
	client modelClient
}

// NewLister creates a new lister for the given provider configuration
func NewLister(config *audio.Config) *Lister {
	l := &Lister{config: config}
	if config.OpenAIKey != "" {
		clientConfig := openai.DefaultConfig(config.OpenAIKey)
		if config.OpenAIBaseURL != "" {
			clientConfig.BaseURL = config.OpenAIBaseURL
		}
		l.client = openai.NewClientWithConfig(clientConfig)
	}
	return l
}

// Voices returns the voice names (and for OpenAI the TTS models) usable
// with provider for language.
func (l *Lister) Voices(ctx context.Context, provider, language string) ([]string, error) {
	switch provider {
	case "gtts", "":
		return []string{fmt.Sprintf("%s (gTTS has one voice per language)", language)}, nil

	case "openai":
		voices := append([]string{}, OpenAIVoices...)
		models, err := l.TTSModels(ctx)
		if err != nil {
			return nil, err
		}
		for _, m := range models {
			voices = append(voices, "model: "+m)
		}
		return voices, nil

	case "google":
		p, err := audio.NewGoogleProvider(ctx, l.config)
		if err != nil {
			return nil, err
		}
		defer p.Close()
		voices, err := p.Voices(ctx, language)
		if err != nil {
			return nil, fmt.Errorf("failed to list voices: %w", err)
		}
		sort.Strings(voices)
		return voices, nil

	case "gemini":
		return audio.GeminiVoices(), nil

	case "espeak":
		return audio.ESpeakVoices(), nil

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", provider)
	}
}

// TTSModels lists the OpenAI models usable for speech synthesis.
func (l *Lister) TTSModels(ctx context.Context) ([]string, error) {
	if l.client == nil {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .zhuyinaudio.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	ttsModels := []string{}
	for _, model := range models.Models {
		if strings.Contains(model.ID, "tts") || strings.Contains(model.ID, "audio") {
			ttsModels = append(ttsModels, model.ID)
		}
	}
	sort.Strings(ttsModels)
	return ttsModels, nil
}
