// Package osm talks to the OpenStreetMap services the map client relies on:
// Nominatim for place search and OSRM for routing.
package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"saferoute/pkg/e"
)

const maxErrorBody = 512

// getJSON issues a GET and decodes a 200 response into out. Transport
// failures and non-200 statuses are reported as e.ErrUpstream.
func getJSON(ctx context.Context, hc *http.Client, fullURL, userAgent string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%v: %w", err, e.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("status %d: %s: %w", resp.StatusCode, body, e.ErrUpstream)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %v: %w", err, e.ErrUpstream)
	}
	return nil
}
