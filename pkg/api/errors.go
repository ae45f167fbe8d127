package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sentinel errors for call classification.
var (
	// ErrRateLimited indicates the platform rejected the call for rate
	// limiting. The wrapping *APIError carries the retry-after hint.
	ErrRateLimited = errors.New("chatter: rate limited")

	// ErrServiceUnavailable indicates a transient server-side failure.
	ErrServiceUnavailable = errors.New("chatter: service unavailable")
)

// APIError is a failure reported by the platform: either an ok:false
// envelope or a non-2xx status without a decodable envelope.
type APIError struct {
	// Code is the machine-readable error code, e.g. "invalid_auth".
	Code string

	// Message is the optional human-readable detail.
	Message string

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// RetryAfter is the rate-limit hint, zero when absent.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("chatter: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("chatter: %s", e.Code)
}

// Unwrap maps the error onto the transient sentinels so callers can
// classify with errors.Is without inspecting codes.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusTooManyRequests || e.Code == "rate_limited" {
		return ErrRateLimited
	}
	if e.StatusCode >= http.StatusInternalServerError {
		return ErrServiceUnavailable
	}
	switch e.Code {
	case "internal_error", "service_unavailable", "request_timeout":
		return ErrServiceUnavailable
	}
	return nil
}

// TransportError wraps a network-level failure performing a request.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("chatter: %s request failed: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RetryExhaustedError wraps the last observed failure after the retry
// policy has used up its attempt budget.
type RetryExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("chatter: retries exhausted after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Err }

// IsRetryable reports whether the failure is transient: a rate limit, a
// server-side failure, or a network error. Context cancellation is never
// retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServiceUnavailable) {
		return true
	}
	var terr *TransportError
	return errors.As(err, &terr)
}

// IsRateLimit reports whether err is or wraps ErrRateLimited.
func IsRateLimit(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
