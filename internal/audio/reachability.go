package audio

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ProbeTimeout bounds a single reachability probe.
const ProbeTimeout = 5 * time.Second

// Probe checks that url answers an HTTP request. Any HTTP response counts
// as reachable; only transport failures do not.
func Probe(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("invalid probe URL %s: %w", url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s is not reachable: %w", url, err)
	}
	resp.Body.Close()
	return nil
}

func probeURL(config *Config, fallback string) string {
	if config.ProbeURL != "" {
		return config.ProbeURL
	}
	return fallback
}
