package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// rateLimitedThenOK returns a handler failing the first n calls with a
// rate-limit envelope carrying the given retry_after hint (in seconds),
// then succeeding.
func rateLimitedThenOK(n int, retryAfter float64, calls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attempt := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if int(attempt) <= n {
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"ok": false, "error": "rate_limited", "retry_after": retryAfter,
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func newTestClient(t *testing.T, url string, rc RetryConfig) *Client {
	t.Helper()
	return New("xoxb-test", WithBaseURL(url), WithRetryConfig(rc))
}

func TestRetrySucceedsAfterRateLimits(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(rateLimitedThenOK(2, 0.05, &calls))
	defer srv.Close()

	c := newTestClient(t, srv.URL, RetryConfig{MaxAttempts: 3})

	start := time.Now()
	env, err := c.Call(context.Background(), "auth.test", nil)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Call() error: %v", err)
	}
	if !env.OK {
		t.Error("OK = false, want true")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
	// Two waits of at least the hinted 50ms each.
	if elapsed < 100*time.Millisecond {
		t.Errorf("elapsed = %v, want >= 100ms of hinted waiting", elapsed)
	}
}

func TestRetryExhaustsAttemptBudget(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(rateLimitedThenOK(2, 0.01, &calls))
	defer srv.Close()

	c := newTestClient(t, srv.URL, RetryConfig{MaxAttempts: 2})

	_, err := c.Call(context.Background(), "auth.test", nil)
	if err == nil {
		t.Fatal("expected an error after exhausting attempts")
	}

	var exhausted *RetryExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *RetryExhaustedError, got %T: %v", err, err)
	}
	if exhausted.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", exhausted.Attempts)
	}
	if !IsRateLimit(err) {
		t.Error("exhausted error should still classify as a rate limit")
	}
	// No third call was issued.
	if got := calls.Load(); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestNonTransientFailureNeverRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid_arguments"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, RetryConfig{MaxAttempts: 3})

	_, err := c.Call(context.Background(), "chat.postMessage", map[string]any{"channel": ""})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != "invalid_arguments" {
		t.Errorf("Code = %q, want invalid_arguments", apiErr.Code)
	}
	var exhausted *RetryExhaustedError
	if errors.As(err, &exhausted) {
		t.Error("a permanent failure must not be wrapped as retries-exhausted")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("attempts = %d, want exactly 1", got)
	}
}

func TestServerErrorIsRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempt := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if attempt == 1 {
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "service_unavailable"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, RetryConfig{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
	})

	env, err := c.Call(context.Background(), "auth.test", nil)
	if err != nil {
		t.Fatalf("Call() error: %v", err)
	}
	if !env.OK {
		t.Error("OK = false, want true")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestRetryWaitIsCancellable(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(rateLimitedThenOK(10, 10, &calls)) // 10 s hint
	defer srv.Close()

	c := newTestClient(t, srv.URL, RetryConfig{MaxAttempts: 3})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := c.Call(ctx, "auth.test", nil)
	elapsed := time.Since(start)

	// The cancellation aborts the wait and surfaces as such, not as a
	// retry or timeout failure.
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if elapsed > 5*time.Second {
		t.Errorf("cancellation took %v; the backoff wait was not interrupted", elapsed)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestTransportFailureSurfacesAfterRetries(t *testing.T) {
	t.Parallel()

	// A server that is immediately closed guarantees connection failures.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, RetryConfig{
		MaxAttempts:     2,
		InitialInterval: time.Millisecond,
	})

	_, err := c.Call(context.Background(), "auth.test", nil)
	var exhausted *RetryExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *RetryExhaustedError, got %T: %v", err, err)
	}
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Errorf("expected the wrapped failure to be a *TransportError, got %v", exhausted.Err)
	}
}
