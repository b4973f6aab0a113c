package audio

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiProbeURL is the endpoint checked before a batch starts.
const GeminiProbeURL = "https://generativelanguage.googleapis.com"

// geminiSampleRate is the PCM rate Gemini TTS answers with unless the MIME
// type says otherwise.
const geminiSampleRate = 24000

type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider synthesizes with the Gemini TTS models. Audio comes back
// as raw PCM and is wrapped into WAV, then transcoded if needed.
type GeminiProvider struct {
	models geminiModels
	config *Config
}

// NewGeminiProvider creates a new Gemini TTS provider
func NewGeminiProvider(ctx context.Context, config *Config) (*GeminiProvider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{models: client.Models, config: config}, nil
}

// Synthesize generates speech for text.
func (p *GeminiProvider) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, synthesisError(p.Name(), text, err)
	}

	prompt := text
	if p.config.GeminiInstruction != "" {
		prompt = p.config.GeminiInstruction + " " + text
	}

	logrus.WithFields(logrus.Fields{
		"provider": p.Name(),
		"model":    p.config.GeminiModel,
		"voice":    p.config.GeminiVoice,
	}).Debugf("Gemini TTS prompt %q", prompt)

	resp, err := p.models.GenerateContent(ctx, p.config.GeminiModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: p.config.GeminiVoice,
				},
			},
		},
	})
	if err != nil {
		return nil, synthesisError(p.Name(), text, fmt.Errorf("Gemini TTS API error: %w", err))
	}

	blob := firstAudioBlob(resp)
	if blob == nil || len(blob.Data) == 0 {
		return nil, synthesisError(p.Name(), text, fmt.Errorf("no audio data received from Gemini"))
	}

	wav := wrapPCM(blob.Data, sampleRate(blob.MIMEType), 1)
	data, err := transcode(ctx, wav, "wav", outputFormat(p.config))
	if err != nil {
		return nil, synthesisError(p.Name(), text, err)
	}
	return data, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks the key and that the API host answers.
func (p *GeminiProvider) IsAvailable(ctx context.Context) error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return Probe(ctx, probeURL(p.config, GeminiProbeURL))
}

// GeminiVoices returns a selection of the prebuilt Gemini voices.
func GeminiVoices() []string {
	return []string{
		"Kore", "Puck", "Charon", "Fenrir", "Aoede",
		"Leda", "Orus", "Zephyr", "Callirrhoe", "Sulafat",
	}
}

func firstAudioBlob(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil {
		return nil
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil {
				return part.InlineData
			}
		}
	}
	return nil
}

// sampleRate extracts rate=N from a MIME type such as
// "audio/L16;codec=pcm;rate=24000".
func sampleRate(mimeType string) int {
	for _, param := range strings.Split(mimeType, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || key != "rate" {
			continue
		}
		if rate, err := strconv.Atoi(value); err == nil && rate > 0 {
			return rate
		}
	}
	return geminiSampleRate
}
