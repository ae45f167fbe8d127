package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// DefaultBaseURL is the production Chatter API endpoint.
	DefaultBaseURL = "https://api.chatter.dev"

	defaultTimeout   = 60 * time.Second
	maxResponseBytes = 10 << 20 // prevent unbounded reads from API responses
)

// nopHandler is a slog.Handler that discards all log records.
// Enabled returns false so slog skips formatting entirely (zero cost).
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Client issues authenticated calls against the Chatter API, applying the
// retry policy and wrapping every response in an Envelope. A Client is
// safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	retry      RetryConfig
	metrics    *Metrics
	tracer     trace.Tracer
	userAgent  string
}

// Option configures optional Client behavior.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. to point at a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient injects the HTTP transport performing the requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger injects a structured logger. When nil or omitted, all log
// output is silently discarded (zero cost).
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRetryConfig overrides the retry/backoff policy.
func WithRetryConfig(rc RetryConfig) Option {
	return func(c *Client) { c.retry = rc }
}

// WithMetrics attaches request metrics collectors.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTracerProvider enables tracing of API calls. Without it, spans are
// no-ops.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer("github.com/chatterhq/chatter-go/pkg/api") }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a Client authenticating with the given bearer token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		token:     token,
		retry:     DefaultRetryConfig,
		userAgent: "chatter-go/" + Version,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.logger == nil {
		c.logger = slog.New(nopHandler{})
	}
	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer("")
	}
	c.retry = c.retry.withDefaults()

	return c
}

// Call POSTs a JSON payload to the given API method, applying the retry
// policy. It returns the decoded envelope on success; an ok:false
// envelope is converted into an *APIError.
func (c *Client) Call(ctx context.Context, method string, payload any) (*Envelope, error) {
	ctx, span := c.tracer.Start(ctx, "chatter.api.call",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("chatter.method", method)),
	)
	defer span.End()

	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return nil, fmt.Errorf("chatter: marshal %s request: %w", method, err)
		}
	}

	start := time.Now()
	env, attempts, err := c.callWithRetry(ctx, method, body)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int("chatter.attempts", attempts))
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("api call failed",
			"method", method,
			"attempts", attempts,
			"error", err,
		)
	} else {
		c.logger.Debug("api call completed",
			"method", method,
			"attempts", attempts,
			"elapsed", elapsed,
		)
	}
	c.metrics.observeRequest(method, outcome, elapsed)

	return env, err
}

// callWithRetry wraps a single logical call with the retry policy. It
// reports the number of attempts actually performed.
func (c *Client) callWithRetry(ctx context.Context, method string, body []byte) (*Envelope, int, error) {
	var attempts int
	var lastErr error

	op := func() (*Envelope, error) {
		attempts++
		env, err := c.once(ctx, method, body)
		if err == nil {
			return env, nil
		}
		lastErr = err

		switch {
		case IsRateLimit(err):
			c.metrics.observeRateLimited(method)
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
				// The explicit hint overrides the exponential schedule.
				return nil, &backoff.RetryAfterError{Duration: apiErr.RetryAfter}
			}
			return nil, err
		case IsRetryable(err):
			return nil, err
		default:
			return nil, backoff.Permanent(err)
		}
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.retry.InitialInterval
	expo.MaxInterval = c.retry.MaxInterval

	env, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(uint(c.retry.MaxAttempts)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.metrics.observeRetry(method)
			c.logger.Info("transient failure, backing off",
				"method", method,
				"wait", wait,
				"error", err,
			)
		}),
	)
	if err == nil {
		return env, attempts, nil
	}

	// A cancelled wait surfaces the cancellation, not a retry failure.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, attempts, err
	}
	if lastErr != nil && IsRetryable(lastErr) && attempts >= c.retry.MaxAttempts {
		return nil, attempts, &RetryExhaustedError{Attempts: attempts, Err: lastErr}
	}
	if lastErr != nil {
		return nil, attempts, lastErr
	}
	return nil, attempts, err
}

// once performs a single request/response exchange.
func (c *Client) once(ctx context.Context, method string, body []byte) (*Envelope, error) {
	url := c.baseURL + "/api/" + method

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("chatter: create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}

	headerHint := parseRetryAfter(resp.Header)

	env, perr := ParseEnvelope(respBody)
	if perr != nil {
		// No decodable envelope: classify by status alone.
		return nil, &APIError{
			Code:       "http_" + strconv.Itoa(resp.StatusCode),
			Message:    http.StatusText(resp.StatusCode),
			StatusCode: resp.StatusCode,
			RetryAfter: headerHint,
		}
	}
	env.StatusCode = resp.StatusCode
	if headerHint > env.RetryAfter {
		env.RetryAfter = headerHint
	}

	if !env.OK {
		return nil, &APIError{
			Code:       env.Error,
			StatusCode: resp.StatusCode,
			RetryAfter: env.RetryAfter,
		}
	}
	return env, nil
}

// parseRetryAfter reads the rate-limit hint from the Retry-After header,
// given as a whole number of seconds.
func parseRetryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
