package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"task-middleware/errors"
	"task-middleware/tasks/effects"
)

const maxBodySize = 10 * 1024 * 1024 // 10 MB

var _ effects.Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher is the production "fetch" capability.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher builds a fetcher whose requests give up after timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// NewHTTPFetcherWithClient uses client as is, e.g. an httptest server client.
func NewHTTPFetcherWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch issues a GET and returns the body of a 2xx response.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewValidationError("invalid fetch request", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewEffectError("fetch failed", err, map[string]any{"url": url})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewEffectError(fmt.Sprintf("unexpected status %d", resp.StatusCode), nil, map[string]any{
			"url":         url,
			"http_status": resp.StatusCode,
		})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, errors.NewEffectError("failed to read response body", err, map[string]any{"url": url})
	}
	if len(body) > maxBodySize {
		return nil, errors.NewEffectError("response body too large", nil, map[string]any{
			"url":            url,
			"max_size_bytes": maxBodySize,
		})
	}
	return body, nil
}
