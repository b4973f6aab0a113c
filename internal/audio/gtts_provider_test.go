package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeGTTS writes a script that echoes its arguments as the "audio".
func fakeGTTS(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "gtts-cli")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("Failed to write fake gtts-cli: %v", err)
	}
	return path
}

func TestGTTSProviderSynthesize(t *testing.T) {
	binary := fakeGTTS(t, `printf '%s|' "$@"`)
	config := DefaultProviderConfig()
	config.GTTSBinary = binary
	config.GTTSSlow = true

	p := NewGTTSProvider(config)
	data, err := p.Synthesize(context.Background(), "ㄅㄚ", "zh")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	got := string(data)
	want := "ㄅㄚ|-l|zh|--slow|-o|-|"
	if got != want {
		t.Errorf("gtts-cli args = %q, want %q", got, want)
	}
}

func TestGTTSProviderFailure(t *testing.T) {
	binary := fakeGTTS(t, `echo "429 Too Many Requests" >&2; exit 1`)
	config := DefaultProviderConfig()
	config.GTTSBinary = binary

	_, err := NewGTTSProvider(config).Synthesize(context.Background(), "你好", "zh")
	var se *SynthesisError
	if !errors.As(err, &se) {
		t.Fatalf("Expected *SynthesisError, got %v", err)
	}
	if !strings.Contains(err.Error(), "429 Too Many Requests") {
		t.Errorf("Expected stderr in error, got %v", err)
	}
}

func TestGTTSProviderEmptyOutput(t *testing.T) {
	binary := fakeGTTS(t, `exit 0`)
	config := DefaultProviderConfig()
	config.GTTSBinary = binary

	if _, err := NewGTTSProvider(config).Synthesize(context.Background(), "你好", "zh"); err == nil {
		t.Error("Expected error for empty audio")
	}
}

func TestGTTSProviderIsAvailableMissingBinary(t *testing.T) {
	config := DefaultProviderConfig()
	config.GTTSBinary = filepath.Join(t.TempDir(), "does-not-exist")

	err := NewGTTSProvider(config).IsAvailable(context.Background())
	if err == nil {
		t.Fatal("Expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "not found in PATH") {
		t.Errorf("Unexpected error %v", err)
	}
}
