// Package httpds reads raw retail extracts over HTTP. A Source maps a table
// name to <base>/<table>.csv and fetches it with a Client that retries
// transient failures with exponential backoff.
package httpds

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Config configures the HTTP client.
//
// Zero values are given defaults: Timeout 30s, InitialBackoff 200ms,
// MaxBackoff 5s. MaxRetries=0 means only the initial attempt.
type Config struct {
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// Headers are added to every request, e.g. an Authorization token.
	Headers http.Header

	// Transport replaces the default transport; TLS settings are then not
	// applied.
	Transport http.RoundTripper

	Log logrus.FieldLogger
}

// Client wraps an http.Client with retry and backoff behavior.
type Client struct {
	httpClient     *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	headers        http.Header
	log            logrus.FieldLogger
}

// NewClient constructs a Client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	if cfg.Log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		cfg.Log = l
	}

	transport := cfg.Transport
	if transport == nil {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // explicitly configurable
			},
		}
	}

	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout, Transport: transport},
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		headers:        cfg.Headers.Clone(),
		log:            cfg.Log,
	}
}

// Get fetches url, retrying network errors, 429 and 5xx responses. The
// caller must close the body of the returned response, whose status may be
// any non-retryable code.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	if url == "" {
		return nil, fmt.Errorf("httpds: url must not be empty")
	}

	attempts := c.maxRetries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("httpds: build request: %w", err)
		}
		for k, vs := range c.headers {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		resp, err := c.httpClient.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case !isRetryableStatus(resp.StatusCode):
			return resp, nil
		default:
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("httpds: retryable status %d from %s", resp.StatusCode, url)
		}

		if attempt+1 >= attempts {
			break
		}
		backoff := backoffDuration(c.initialBackoff, attempt, c.maxBackoff)
		c.log.WithFields(logrus.Fields{
			"url":     url,
			"attempt": attempt + 1,
			"backoff": backoff,
		}).WithError(lastErr).Warn("fetch failed, retrying")
		if err := sleepWithContext(ctx, backoff); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// isRetryableStatus treats 429 and 5xx as transient.
func isRetryableStatus(code int) bool {
	if code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}

// backoffDuration returns initial * 2^attempt clamped to max.
func backoffDuration(initial time.Duration, attempt int, max time.Duration) time.Duration {
	if attempt <= 0 {
		return min(initial, max)
	}
	d := initial << attempt
	if d > max || d <= 0 {
		return max
	}
	return d
}

// sleepWithContext waits for d but returns early if ctx is canceled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
