package mapir

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"time"

	"travel-facilities-api/internal/adapters/cache"
)

// Client talks to the Map.ir routing and places APIs.
//
// It holds the shared HTTP plumbing: credential header, fixed request
// timeout, status handling, and the retry/backoff loop used by the
// places endpoints. An empty API key is a valid state meaning external
// enrichment is disabled; every lookup then returns ports.ErrNotConfigured.
//
// The client is safe for concurrent use.
type Client struct {
	session    *http.Client
	apiKey     string
	baseURL    string
	routeCache *cache.RedisRouteCache
}

const requestTimeout = 10 * time.Second

// NewClient builds a Map.ir client. routeCache may be nil, which disables
// caching of route lookups.
func NewClient(apiKey string, routeCache *cache.RedisRouteCache) *Client {
	return &Client{
		session:    &http.Client{Timeout: requestTimeout},
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    "https://map.ir",
		routeCache: routeCache,
	}
}

// Configured reports whether an API credential is set.
func (c *Client) Configured() bool { return c.apiKey != "" }

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx responses)
// using exponential backoff with random jitter while respecting context
// cancellation. The route/ETA path never goes through here: route lookups
// are latency sensitive and single-shot.
func (c *Client) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		jitter := time.Duration(rand.Int63n(int64(100 * time.Millisecond)))
		timer := time.NewTimer(backoff + jitter)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
