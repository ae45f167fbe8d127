package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// ResponseMetadata carries pagination and diagnostic metadata.
type ResponseMetadata struct {
	NextCursor string   `json:"next_cursor"`
	Warnings   []string `json:"warnings,omitempty"`
}

// Envelope wraps one decoded API response. It extracts the common fields
// every method shares (ok, error, warnings, pagination cursor, rate-limit
// hint) and keeps the untouched raw payload for callers needing fields not
// modeled here.
//
// An ok:false envelope is data, not a Go error; Call converts it into an
// *APIError for its caller, but ParseEnvelope never does.
type Envelope struct {
	// OK is the platform's success flag.
	OK bool

	// Error is the machine-readable error code when OK is false.
	Error string

	// Warning is an optional non-fatal diagnostic.
	Warning string

	// Metadata holds the pagination cursor and warning list.
	Metadata ResponseMetadata

	// RetryAfter is the rate-limit hint, zero when absent.
	RetryAfter time.Duration

	// StatusCode is the HTTP status the envelope arrived with.
	StatusCode int

	raw json.RawMessage
}

// envelopeWire is the JSON shape of the common envelope fields.
type envelopeWire struct {
	OK         bool             `json:"ok"`
	Error      string           `json:"error,omitempty"`
	Warning    string           `json:"warning,omitempty"`
	Metadata   ResponseMetadata `json:"response_metadata,omitempty"`
	RetryAfter float64          `json:"retry_after,omitempty"`
}

// ParseEnvelope decodes the common envelope fields from a raw response
// body, keeping the body itself available through Raw.
func ParseEnvelope(body []byte) (*Envelope, error) {
	var wire envelopeWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("chatter: decode envelope: %w", err)
	}

	raw := make(json.RawMessage, len(body))
	copy(raw, body)

	return &Envelope{
		OK:         wire.OK,
		Error:      wire.Error,
		Warning:    wire.Warning,
		Metadata:   wire.Metadata,
		RetryAfter: time.Duration(wire.RetryAfter * float64(time.Second)),
		raw:        raw,
	}, nil
}

// HasNextCursor reports whether the response carries a non-empty
// pagination cursor.
func (e *Envelope) HasNextCursor() bool {
	return e.Metadata.NextCursor != ""
}

// NextCursor returns the pagination cursor, empty when the result set is
// exhausted.
func (e *Envelope) NextCursor() string {
	return e.Metadata.NextCursor
}

// Decode attempts to decode the raw payload into dst. It is best-effort:
// a shape mismatch returns false rather than an error, and the raw form
// stays authoritative.
func (e *Envelope) Decode(dst any) bool {
	return json.Unmarshal(e.raw, dst) == nil
}

// Raw returns the untouched response body. The caller must not modify it.
func (e *Envelope) Raw() json.RawMessage {
	return e.raw
}
