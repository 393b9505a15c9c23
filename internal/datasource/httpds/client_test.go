package httpds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

// TestNewClient_Defaults verifies that NewClient applies defaults and sets
// TLS behavior when no custom Transport is supplied.
func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{InsecureSkipVerify: true})

	if c.httpClient.Timeout != 30*time.Second {
		t.Fatalf("timeout = %v, want 30s", c.httpClient.Timeout)
	}
	if c.maxRetries != 0 || c.initialBackoff <= 0 || c.maxBackoff <= 0 {
		t.Fatalf("unexpected defaults: retries=%d initial=%v max=%v", c.maxRetries, c.initialBackoff, c.maxBackoff)
	}
	tp, ok := c.httpClient.Transport.(*http.Transport)
	if !ok || tp.TLSClientConfig == nil || !tp.TLSClientConfig.InsecureSkipVerify {
		t.Fatalf("expected transport with InsecureSkipVerify=true, got %#v", c.httpClient.Transport)
	}
}

/*
TestGet_RetryOn5xxThenSuccess serves two 500s and then a 200. The client must
retry, log each retry and return the successful response.
*/
func TestGet_RetryOn5xxThenSuccess(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer x" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if atomic.AddInt32(&hits, 1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	log, hook := logtest.NewNullLogger()
	c := NewClient(Config{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		Headers:        http.Header{"Authorization": []string{"Bearer x"}},
		Log:            log,
	})

	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
	if got := len(hook.AllEntries()); got != 2 {
		t.Fatalf("retry log entries = %d, want 2", got)
	}
}

// TestGet_StopsAfterMaxRetries checks that all-503 responses give up after
// 1 + MaxRetries attempts.
func TestGet_StopsAfterMaxRetries(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Config{MaxRetries: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond})

	if resp, err := c.Get(context.Background(), srv.URL); err == nil {
		resp.Body.Close()
		t.Fatalf("expected error after exhausting retries")
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
}

func TestGet_NonRetryableStatus(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{MaxRetries: 5})
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound || atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("status=%d hits=%d, want 404 and 1", resp.StatusCode, hits)
	}
}

func TestGet_EmptyURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{}).Get(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestBackoffDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		initial time.Duration
		attempt int
		max     time.Duration
		want    time.Duration
	}{
		{100 * time.Millisecond, 0, time.Second, 100 * time.Millisecond},
		{100 * time.Millisecond, 1, time.Second, 200 * time.Millisecond},
		{100 * time.Millisecond, 2, time.Second, 400 * time.Millisecond},
		{600 * time.Millisecond, 1, time.Second, time.Second},
		{2 * time.Second, 0, time.Second, time.Second},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%v/attempt=%d", tt.initial, tt.attempt), func(t *testing.T) {
			t.Parallel()
			if got := backoffDuration(tt.initial, tt.attempt, tt.max); got != tt.want {
				t.Fatalf("backoffDuration(%v, %d, %v) = %v, want %v", tt.initial, tt.attempt, tt.max, got, tt.want)
			}
		})
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	for _, code := range []int{429, 500, 503} {
		if !isRetryableStatus(code) {
			t.Fatalf("status %d should be retryable", code)
		}
	}
	for _, code := range []int{200, 400, 404} {
		if isRetryableStatus(code) {
			t.Fatalf("status %d should not be retryable", code)
		}
	}
}

// TestSleepWithContextCancellation verifies that sleepWithContext returns
// early when the context is canceled.
func TestSleepWithContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sleepWithContext(ctx, 100*time.Millisecond); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
