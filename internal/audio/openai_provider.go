package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// OpenAIProbeURL is the endpoint checked before a batch starts.
const OpenAIProbeURL = "https://api.openai.com"

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Synthesize generates audio using OpenAI TTS
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, synthesisError(p.Name(), text, err)
	}

	input := strings.TrimSpace(text)

	logrus.WithFields(logrus.Fields{
		"provider": p.Name(),
		"model":    p.config.OpenAIModel,
		"voice":    p.config.OpenAIVoice,
		"speed":    p.config.OpenAISpeed,
	}).Debugf("OpenAI TTS input %q", input)

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          input,
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: responseFormat(outputFormat(p.config)),
	}

	if p.config.OpenAIInstruction != "" && supportsInstructions(p.config.OpenAIModel) {
		req.Instructions = p.config.OpenAIInstruction
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "does not have access to model") && supportsInstructions(p.config.OpenAIModel) {
			return nil, synthesisError(p.Name(), text, fmt.Errorf("OpenAI TTS API error: %w (the %s model requires access, try --openai-model tts-1-hd)", err, p.config.OpenAIModel))
		}
		return nil, synthesisError(p.Name(), text, fmt.Errorf("OpenAI TTS API error: %w", err))
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, synthesisError(p.Name(), text, fmt.Errorf("failed to read audio data: %w", err))
	}
	if len(data) == 0 {
		return nil, synthesisError(p.Name(), text, fmt.Errorf("no audio data received from OpenAI"))
	}

	return data, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks that a key is configured and the API host answers.
// No request is made against the TTS endpoint itself since that costs credits.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	url := OpenAIProbeURL
	if p.config.OpenAIBaseURL != "" {
		url = p.config.OpenAIBaseURL
	}
	return Probe(ctx, probeURL(p.config, url))
}

func supportsInstructions(model string) bool {
	return model == "gpt-4o-mini-tts" || model == "gpt-4o-mini-audio-preview"
}

func responseFormat(format string) openai.SpeechResponseFormat {
	switch format {
	case "wav":
		return openai.SpeechResponseFormatWav
	case "opus":
		return openai.SpeechResponseFormatOpus
	case "aac":
		return openai.SpeechResponseFormatAac
	case "flac":
		return openai.SpeechResponseFormatFlac
	default:
		return openai.SpeechResponseFormatMp3
	}
}
