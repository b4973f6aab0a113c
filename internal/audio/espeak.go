package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// ESpeakProvider is the offline provider built on espeak-ng. Its Mandarin
// voice is robotic but it needs neither network nor credentials.
type ESpeakProvider struct {
	config *Config
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *Config) *ESpeakProvider {
	if config.ESpeakVoice == "" {
		config.ESpeakVoice = "cmn"
	}
	config.ESpeakSpeed = clampSpeed(config.ESpeakSpeed)
	return &ESpeakProvider{config: config}
}

// Synthesize renders text to WAV on stdout and transcodes it when the output
// format is not wav.
func (p *ESpeakProvider) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, synthesisError(p.Name(), text, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	args := []string{
		"-v", p.voice(language),
		"-s", strconv.Itoa(p.config.ESpeakSpeed),
		"--stdout",
		text,
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "espeak-ng", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, synthesisError(p.Name(), text, fmt.Errorf("espeak-ng failed: %w, output: %s", err, stderr.String()))
	}

	data, err := transcode(ctx, stdout.Bytes(), "wav", outputFormat(p.config))
	if err != nil {
		return nil, synthesisError(p.Name(), text, err)
	}
	return data, nil
}

// voice maps the generation language onto an espeak-ng voice unless one is
// configured explicitly.
func (p *ESpeakProvider) voice(language string) string {
	if p.config.ESpeakVoice != "" {
		return p.config.ESpeakVoice
	}
	switch language {
	case "zh", "zh-TW", "zh-CN", "":
		return "cmn"
	default:
		return language
	}
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable(ctx context.Context) error {
	if err := exec.CommandContext(ctx, "espeak-ng", "--version").Run(); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// ESpeakVoices returns the espeak-ng voice variants usable for Mandarin.
func ESpeakVoices() []string {
	return []string{
		"cmn",    // Mandarin
		"cmn+m1", // male voice 1
		"cmn+m3", // male voice 3
		"cmn+f1", // female voice 1
		"cmn+f3", // female voice 3
		"yue",    // Cantonese
	}
}

func clampSpeed(speed int) int {
	switch {
	case speed == 0:
		return 130
	case speed < 80:
		return 80
	case speed > 450:
		return 450
	}
	return speed
}
