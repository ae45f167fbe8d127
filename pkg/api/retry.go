package api

import "time"

// RetryConfig bounds the retry/backoff policy applied to each logical
// call. Transient failures (rate limits, server errors, network errors)
// are retried up to MaxAttempts total attempts; the wait between attempts
// follows an exponential schedule between InitialInterval and MaxInterval
// unless the platform supplies an explicit retry-after hint, which always
// takes precedence. Non-transient failures are never retried.
type RetryConfig struct {
	// MaxAttempts is the total attempt budget, including the first call.
	MaxAttempts int

	// InitialInterval seeds the exponential backoff schedule.
	InitialInterval time.Duration

	// MaxInterval caps the computed backoff wait.
	MaxInterval time.Duration
}

// DefaultRetryConfig is the policy applied when none is configured.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:     3,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     30 * time.Second,
}

// withDefaults fills zero fields from DefaultRetryConfig.
func (rc RetryConfig) withDefaults() RetryConfig {
	if rc.MaxAttempts <= 0 {
		rc.MaxAttempts = DefaultRetryConfig.MaxAttempts
	}
	if rc.InitialInterval <= 0 {
		rc.InitialInterval = DefaultRetryConfig.InitialInterval
	}
	if rc.MaxInterval <= 0 {
		rc.MaxInterval = DefaultRetryConfig.MaxInterval
	}
	return rc
}
