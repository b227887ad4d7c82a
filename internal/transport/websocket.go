package transport

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"ephemera/internal/domain"
)

// ErrNotConnected reports a send before Connect or after the link dropped.
var ErrNotConnected = errors.New("transport: not connected")

// WS is a websocket link to one relay room.
type WS struct {
	host string
	room domain.RoomID

	mu     sync.Mutex
	conn   *websocket.Conn
	frames chan []byte
	closed bool
}

var _ domain.Transport = (*WS)(nil)

// NewWS prepares a transport for room on host ("relay.example:1999").
func NewWS(host string, room domain.RoomID) *WS {
	return &WS{
		host:   host,
		room:   room,
		frames: make(chan []byte, 64),
	}
}

// Connect dials the relay and starts the read loop.
func (t *WS) Connect(ctx context.Context) error {
	u := url.URL{
		Scheme:   "ws",
		Host:     t.host,
		Path:     "/ws",
		RawQuery: url.Values{"room": {t.room.String()}}.Encode(),
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("transport: dial %s: %w", u.String(), err)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		conn.Close()
		return ErrNotConnected
	}
	t.conn = conn
	t.mu.Unlock()

	go t.readLoop(conn)
	return nil
}

// Send writes one opaque frame. Fire-and-forget: no acknowledgement is
// awaited and failures are not retried.
func (t *WS) Send(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil || t.closed {
		return ErrNotConnected
	}
	if err := t.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("transport: send: %w", err)
	}
	return nil
}

// Frames yields inbound frames; the channel closes when the link dies.
func (t *WS) Frames() <-chan []byte { return t.frames }

// Close tears the link down. Idempotent.
func (t *WS) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	conn := t.conn
	t.mu.Unlock()

	if conn != nil {
		return conn.Close()
	}
	return nil
}

func (t *WS) readLoop(conn *websocket.Conn) {
	defer close(t.frames)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		select {
		case t.frames <- raw:
		default:
			// Receiver stalled; shedding is preferable to unbounded
			// buffering of ciphertext.
		}
	}
}
