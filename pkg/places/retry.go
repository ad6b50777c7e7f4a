package places

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// retryingClient wraps http.Client with the retry policy the upstream geo
// services tolerate: bounded attempts, linear-ish backoff, and honoring
// Retry-After on 429 responses. Collaborator calls must return or fail
// within bounded time so the dispatcher never hangs on them.
type retryingClient struct {
	client  *http.Client
	retries int
	backoff time.Duration
}

func newRetryingClient(timeout time.Duration, retries int, backoff time.Duration) *retryingClient {
	return &retryingClient{
		client:  &http.Client{Timeout: timeout},
		retries: retries,
		backoff: backoff,
	}
}

func (r *retryingClient) Get(ctx context.Context, url, userAgent string) ([]byte, error) {
	return r.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		return req, nil
	})
}

func (r *retryingClient) PostForm(ctx context.Context, url, userAgent, form string) ([]byte, error) {
	return r.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("User-Agent", userAgent)
		return req, nil
	})
}

func (r *retryingClient) do(ctx context.Context, build func() (*http.Request, error)) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= r.retries; attempt++ {
		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = err
			if attempt == r.retries {
				break
			}
			if err := sleepCtx(ctx, r.backoff*time.Duration(attempt+1)); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := r.backoff * time.Duration(attempt+1)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					wait = time.Duration(secs) * time.Second
				}
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("rate limited by %s", req.URL.Host)
			if err := sleepCtx(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d %s", resp.StatusCode, resp.Status)
			if attempt == r.retries {
				break
			}
			if err := sleepCtx(ctx, r.backoff*time.Duration(attempt+1)); err != nil {
				return nil, err
			}
			continue
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return data, nil
	}

	return nil, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
