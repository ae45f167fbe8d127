package socketmode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/coder/websocket"
)

const defaultEventBuffer = 64

// ConnectionOpener requests socket-mode WebSocket URLs. *api.Client
// satisfies it.
type ConnectionOpener interface {
	AppsConnectionsOpen(ctx context.Context) (string, error)
}

// nopHandler discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Client is a socket-mode connection manager. Create one with New, then
// call Run; events arrive on Events until Run returns.
type Client struct {
	opener ConnectionOpener
	logger *slog.Logger
	events chan Event
}

// Option configures optional Client behavior.
type Option func(*Client)

// WithLogger injects a structured logger. When nil or omitted, all log
// output is silently discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEventBuffer sets the capacity of the Events channel.
func WithEventBuffer(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.events = make(chan Event, n)
		}
	}
}

// New creates a socket-mode client on top of an API client.
func New(opener ConnectionOpener, opts ...Option) *Client {
	c := &Client{
		opener: opener,
		logger: slog.New(nopHandler{}),
		events: make(chan Event, defaultEventBuffer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Events returns the channel on which inbound events are delivered. The
// channel is closed when Run returns.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Run connects to the gateway and keeps the connection alive, dialing a
// fresh URL with exponential backoff whenever the link drops or the
// gateway asks for a reconnect. It blocks until ctx is cancelled and
// always returns the cancellation cause.
func (c *Client) Run(ctx context.Context) error {
	defer close(c.events)

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = time.Second
	expo.MaxInterval = time.Minute

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.runConn(ctx)
		if err != nil && ctx.Err() == nil {
			wait := expo.NextBackOff()
			c.logger.Warn("socket connection lost, reconnecting",
				"error", err,
				"wait", wait,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// A clean gateway-initiated reconnect: dial again immediately.
		expo.Reset()
	}
}

// runConn opens one connection and services it until it ends. A nil
// return means the gateway asked for an orderly reconnect.
func (c *Client) runConn(ctx context.Context) error {
	url, err := c.opener.AppsConnectionsOpen(ctx)
	if err != nil {
		return fmt.Errorf("socketmode: open connection: %w", err)
	}

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("socketmode: dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("socketmode: read: %w", err)
		}
		if typ != websocket.MessageText {
			continue
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.logger.Debug("skipping undecodable frame", "error", err)
			continue
		}

		switch env.Type {
		case TypeHello:
			c.logger.Info("socket connection established")
		case TypeDisconnect:
			c.logger.Info("gateway requested reconnect", "reason", env.Reason)
			return nil
		case TypeEventsAPI, TypeInteractive:
			if err := c.deliver(ctx, conn, env); err != nil {
				return err
			}
		default:
			c.logger.Debug("ignoring unknown frame type", "type", env.Type)
		}
	}
}

// deliver hands the event to the consumer and acknowledges it. Events are
// acknowledged only after delivery, so an event the consumer never saw is
// redelivered by the gateway on the next connection.
func (c *Client) deliver(ctx context.Context, conn *websocket.Conn, env envelope) error {
	ev := Event{
		Type:       env.Type,
		EnvelopeID: env.EnvelopeID,
		Payload:    env.Payload,
		ReceivedAt: time.Now(),
	}
	select {
	case c.events <- ev:
	case <-ctx.Done():
		return ctx.Err()
	}

	data, err := json.Marshal(ack{EnvelopeID: env.EnvelopeID})
	if err != nil {
		return fmt.Errorf("socketmode: marshal ack: %w", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("socketmode: ack %s: %w", env.EnvelopeID, err)
	}
	return nil
}

// IsClosed reports whether err is a normal WebSocket closure.
func IsClosed(err error) bool {
	var closeErr websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code == websocket.StatusNormalClosure ||
			closeErr.Code == websocket.StatusGoingAway
	}
	return false
}
