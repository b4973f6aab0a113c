package audio

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	gax "github.com/googleapis/gax-go/v2"
	"github.com/sirupsen/logrus"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// googleClient is the subset of the Cloud Text-to-Speech client in use.
type googleClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest, opts ...gax.CallOption) (*texttospeechpb.ListVoicesResponse, error)
	Close() error
}

// GoogleProvider uses Google Cloud Text-to-Speech. Credentials come from
// the usual application default credentials chain.
type GoogleProvider struct {
	client googleClient
	config *Config
}

// NewGoogleProvider creates a Cloud Text-to-Speech provider.
func NewGoogleProvider(ctx context.Context, config *Config) (*GoogleProvider, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}
	return &GoogleProvider{client: client, config: config}, nil
}

// Synthesize requests audio for text in the configured encoding.
func (p *GoogleProvider) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, synthesisError(p.Name(), text, err)
	}

	audioCfg := &texttospeechpb.AudioConfig{
		AudioEncoding: googleEncoding(outputFormat(p.config)),
	}
	// Chirp voices reject speakingRate
	if p.config.GoogleSpeakingRate > 0 && !strings.Contains(strings.ToLower(p.config.GoogleVoice), "chirp") {
		audioCfg.SpeakingRate = p.config.GoogleSpeakingRate
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: GoogleLanguageCode(language),
			Name:         p.config.GoogleVoice,
		},
		AudioConfig: audioCfg,
	}

	logrus.WithFields(logrus.Fields{
		"provider": p.Name(),
		"language": req.Voice.LanguageCode,
		"voice":    p.config.GoogleVoice,
	}).Debugf("Cloud TTS input %q", text)

	resp, err := p.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, synthesisError(p.Name(), text, fmt.Errorf("failed to synthesize: %w", err))
	}
	if len(resp.AudioContent) == 0 {
		return nil, synthesisError(p.Name(), text, fmt.Errorf("no audio data received from Cloud TTS"))
	}

	return resp.AudioContent, nil
}

// Voices lists the voice names offered for language.
func (p *GoogleProvider) Voices(ctx context.Context, language string) ([]string, error) {
	resp, err := p.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{
		LanguageCode: GoogleLanguageCode(language),
	})
	if err != nil {
		return nil, err
	}
	voices := []string{}
	for _, v := range resp.Voices {
		voices = append(voices, v.Name)
	}
	return voices, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable lists voices, which exercises credentials and connectivity
// without synthesizing anything.
func (p *GoogleProvider) IsAvailable(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()
	if _, err := p.Voices(ctx, "zh"); err != nil {
		return fmt.Errorf("Cloud Text-to-Speech is not reachable: %w", err)
	}
	return nil
}

// Close releases the underlying gRPC connection.
func (p *GoogleProvider) Close() error {
	return p.client.Close()
}

// GoogleLanguageCode maps a generation language onto a BCP-47 code Cloud TTS
// has voices for. Bare "zh" means Taiwanese Mandarin.
func GoogleLanguageCode(language string) string {
	switch language {
	case "", "zh", "zh-TW":
		return "cmn-TW"
	case "zh-CN":
		return "cmn-CN"
	default:
		return language
	}
}

func googleEncoding(format string) texttospeechpb.AudioEncoding {
	switch format {
	case "wav":
		return texttospeechpb.AudioEncoding_LINEAR16
	case "ogg", "opus":
		return texttospeechpb.AudioEncoding_OGG_OPUS
	default:
		return texttospeechpb.AudioEncoding_MP3
	}
}
