// Package socket implements the bidirectional event channel to the backend.
// Frames are JSON envelopes of the form {"event": ..., "data": ...} over a
// websocket connection. The first frame after dialing identifies the user.
package socket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"magnecruit-client/utils"
)

// ErrNotConnected is returned by emit methods while the channel is down.
var ErrNotConnected = errors.New("socket: not connected")

// AuthPayload identifies the logged-in user to the event channel.
type AuthPayload struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
}

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client is a reconnectable event channel client. Handlers registered with
// the On* methods run on the read loop goroutine, one frame at a time.
type Client struct {
	url    string
	logger *utils.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	auth      *AuthPayload
	closing   bool
	handlers  map[string][]func(json.RawMessage)
	onConnect []func()
	onDrop    []func(error)

	writeMu sync.Mutex
}

// NewClient creates a client for the given websocket URL. It does not dial.
func NewClient(url string, logger *utils.Logger) *Client {
	return &Client{
		url:      url,
		logger:   logger,
		handlers: make(map[string][]func(json.RawMessage)),
	}
}

// SetAuth sets the identity sent on the next Connect.
func (c *Client) SetAuth(auth *AuthPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = auth
}

// Connected reports whether the channel is currently up.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Connect dials the backend, sends the authenticate frame, and starts the
// read loop. Calling Connect while connected is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	auth := c.auth
	c.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}

	if auth != nil {
		if err := writeEnvelope(conn, "authenticate", auth); err != nil {
			conn.Close()
			return fmt.Errorf("authenticate: %w", err)
		}
	}

	c.mu.Lock()
	c.conn = conn
	c.closing = false
	connectFns := make([]func(), len(c.onConnect))
	copy(connectFns, c.onConnect)
	c.mu.Unlock()

	c.logger.Info("Socket connected to %s", c.url)
	for _, fn := range connectFns {
		fn()
	}

	utils.SafeGo(c.logger, "socket read loop", func() {
		c.readLoop(conn)
	})
	return nil
}

// Disconnect closes the channel deliberately; no drop handlers fire.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.closing = true
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		c.logger.Info("Socket disconnected")
	}
}

// Emit sends one event frame. Returns ErrNotConnected while the channel is
// down; the caller decides whether that is a user-visible failure.
func (c *Client) Emit(event string, payload any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := writeEnvelope(conn, event, payload); err != nil {
		return fmt.Errorf("emit %s: %w", event, err)
	}
	return nil
}

// On registers a raw handler for an inbound event.
func (c *Client) On(event string, fn func(json.RawMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], fn)
}

// OnConnect registers a handler invoked after each successful Connect.
func (c *Client) OnConnect(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onConnect = append(c.onConnect, fn)
}

// OnDisconnect registers a handler invoked when the connection drops
// unexpectedly. Deliberate Disconnect calls do not trigger it.
func (c *Client) OnDisconnect(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDrop = append(c.onDrop, fn)
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.handleReadError(conn, err)
			return
		}

		var frame envelope
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.logger.Warn("Socket frame is not a valid envelope: %v", err)
			continue
		}

		c.mu.Lock()
		fns := make([]func(json.RawMessage), len(c.handlers[frame.Event]))
		copy(fns, c.handlers[frame.Event])
		c.mu.Unlock()

		if len(fns) == 0 {
			c.logger.Debug("Socket event %q has no handler", frame.Event)
			continue
		}
		for _, fn := range fns {
			fn(frame.Data)
		}
	}
}

func (c *Client) handleReadError(conn *websocket.Conn, err error) {
	c.mu.Lock()
	deliberate := c.closing || c.conn != conn
	if c.conn == conn {
		c.conn = nil
	}
	dropFns := make([]func(error), len(c.onDrop))
	copy(dropFns, c.onDrop)
	c.mu.Unlock()

	conn.Close()
	if deliberate {
		return
	}

	c.logger.Warn("Socket connection dropped: %v", err)
	for _, fn := range dropFns {
		fn(err)
	}
}

func writeEnvelope(conn *websocket.Conn, event string, payload any) error {
	frame := envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		frame.Data = data
	}
	return conn.WriteJSON(frame)
}
