package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// transcode converts encoded audio between container formats with ffmpeg,
// e.g. "wav" to "mp3". Same-format input is returned unchanged.
func transcode(ctx context.Context, data []byte, from, to string) ([]byte, error) {
	if from == to {
		return data, nil
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-f", from, "-i", "pipe:0",
		"-f", to, "pipe:1",
	)
	cmd.Stdin = bytes.NewReader(data)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ffmpeg conversion timeout: %w", ctx.Err())
		}
		return nil, fmt.Errorf("ffmpeg conversion failed: %w, stderr: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output, stderr: %s", stderr.String())
	}
	return stdout.Bytes(), nil
}
