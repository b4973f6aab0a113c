package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// GTTSProbeURL is the service gtts-cli talks to.
const GTTSProbeURL = "https://translate.google.com"

// GTTSProvider synthesizes through gtts-cli (Google Translate TTS). It needs
// no API key but the service is rate limited.
type GTTSProvider struct {
	config *Config
}

// NewGTTSProvider creates a gTTS provider.
func NewGTTSProvider(config *Config) *GTTSProvider {
	if config.GTTSBinary == "" {
		config.GTTSBinary = "gtts-cli"
	}
	return &GTTSProvider{config: config}
}

// Synthesize runs gtts-cli and returns MP3 audio, transcoded when another
// output format is configured.
func (p *GTTSProvider) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, synthesisError(p.Name(), text, err)
	}

	args := []string{text, "-l", language}
	if p.config.GTTSSlow {
		args = append(args, "--slow")
	}
	args = append(args, "-o", "-")

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{"provider": p.Name(), "lang": language}).Debugf("gtts-cli input %q", text)

	cmd := exec.CommandContext(ctx, p.config.GTTSBinary, args...)
	cmd.Stdin = strings.NewReader("")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, synthesisError(p.Name(), text, fmt.Errorf("gtts-cli timeout: %w", ctx.Err()))
		}
		return nil, synthesisError(p.Name(), text, fmt.Errorf("gtts-cli failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String())))
	}

	if stdout.Len() == 0 {
		return nil, synthesisError(p.Name(), text, fmt.Errorf("gtts-cli produced no audio, stderr: %s", stderr.String()))
	}

	data, err := transcode(ctx, stdout.Bytes(), "mp3", outputFormat(p.config))
	if err != nil {
		return nil, synthesisError(p.Name(), text, err)
	}
	return data, nil
}

// Name returns the provider name
func (p *GTTSProvider) Name() string {
	return "gtts"
}

// IsAvailable checks that gtts-cli is installed and Google Translate is
// reachable.
func (p *GTTSProvider) IsAvailable(ctx context.Context) error {
	if _, err := exec.LookPath(p.config.GTTSBinary); err != nil {
		return fmt.Errorf("%s not found in PATH: %w (install with: pip install gTTS)", p.config.GTTSBinary, err)
	}
	return Probe(ctx, probeURL(p.config, GTTSProbeURL))
}

func outputFormat(config *Config) string {
	if config.OutputFormat == "" {
		return "mp3"
	}
	return strings.ToLower(config.OutputFormat)
}
