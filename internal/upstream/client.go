// Package upstream holds the HTTP clients and wire types for the two
// catalog providers: the Open Library subjects API and the Google Books
// volumes API.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUpstream marks any provider-side failure: transport errors, non-2xx
// statuses and undecodable bodies. Callers match it with errors.Is to tell a
// gateway fault apart from a valid empty answer.
var ErrUpstream = errors.New("upstream request failed")

// StatusError reports a non-2xx response from a provider.
type StatusError struct {
	Provider string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Provider, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstream
}

// NewHTTPClient returns the client both providers share. Timeouts live here,
// not in the fetch logic.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func getJSON(ctx context.Context, client *http.Client, provider, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", provider, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpstream, provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Provider: provider, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %v", ErrUpstream, provider, err)
	}
	return nil
}
