package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// client is an HTTP client with retry logic for fetching calendar dumps
// from a remote store.
type client struct {
	httpClient *http.Client
}

// apiError represents a non-2xx HTTP response.
type apiError struct {
	StatusCode int
	Body       string // first 512 bytes
	retryAfter string // internal: Retry-After header value for 429s
}

func (e *apiError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

func newClient(timeout time.Duration) *client {
	return &client{httpClient: &http.Client{Timeout: timeout}}
}

const maxRetries = 3

// getJSON fetches url and unmarshals the JSON response into dest.
func (c *client) getJSON(ctx context.Context, url string, dest any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}

// getText fetches url and returns the body as a string.
func (c *client) getText(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// get sends a GET request. Returns *apiError for non-2xx responses. Retries
// on 429 (honoring Retry-After) and 5xx with exponential backoff: 1s, 2s,
// 4s. Max 3 retries.
func (c *client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr *apiError
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoffDelay(attempt, lastErr)
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}

		bodyStr := string(body)
		if len(bodyStr) > 512 {
			bodyStr = bodyStr[:512]
		}
		apiErr := &apiError{StatusCode: resp.StatusCode, Body: bodyStr}

		if resp.StatusCode == 429 {
			apiErr.retryAfter = resp.Header.Get("Retry-After")
			lastErr = apiErr
			continue
		}
		if resp.StatusCode >= 500 {
			lastErr = apiErr
			continue
		}

		return nil, apiErr
	}
	return nil, lastErr
}

// backoffDelay computes the wait before the given retry attempt. A
// Retry-After header on a 429 takes precedence over the exponential default.
func backoffDelay(attempt int, lastErr *apiError) time.Duration {
	if lastErr != nil && lastErr.retryAfter != "" {
		if secs, err := strconv.Atoi(lastErr.retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(1<<(attempt-1)) * time.Second
}
