// Package socketmode maintains a socket-mode connection to the Chatter
// gateway and delivers inbound event envelopes on a channel.
//
// A Client obtains a fresh WebSocket URL through apps.connections.open,
// dials it, and reads envelope frames until the gateway asks it to
// reconnect or the context is cancelled. Event frames are acknowledged
// automatically after delivery.
package socketmode

import (
	"encoding/json"
	"time"
)

// EnvelopeType discriminates gateway frames.
type EnvelopeType string

// Gateway frame types.
const (
	TypeHello       EnvelopeType = "hello"
	TypeDisconnect  EnvelopeType = "disconnect"
	TypeEventsAPI   EnvelopeType = "events_api"
	TypeInteractive EnvelopeType = "interactive"
)

// envelope is the wire frame exchanged with the gateway.
type envelope struct {
	Type         EnvelopeType    `json:"type"`
	EnvelopeID   string          `json:"envelope_id,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Reason       string          `json:"reason,omitempty"`
	RetryAttempt int             `json:"retry_attempt,omitempty"`
}

// ack is the frame sent back for every event envelope.
type ack struct {
	EnvelopeID string          `json:"envelope_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Event is an inbound event delivered to the consumer. Payload holds the
// event body verbatim; decode it according to Type.
type Event struct {
	Type       EnvelopeType
	EnvelopeID string
	Payload    json.RawMessage
	ReceivedAt time.Time
}
