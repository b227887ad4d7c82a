package domain

import "context"

// Transport carries opaque frames between this client and one room on the
// relay. Delivery is at-most-once and best-effort: sends are fire-and-forget
// and there is no retry or acknowledgement at this layer.
type Transport interface {
	// Connect opens the connection. It must be called before Send and
	// returns once the socket is established or ctx is done.
	Connect(ctx context.Context) error

	// Send writes one frame. The frame is opaque to the relay.
	Send(frame []byte) error

	// Frames yields inbound frames in relay-broadcast order. The channel
	// closes when the connection is lost or Close is called.
	Frames() <-chan []byte

	// Close tears the connection down. Safe to call more than once.
	Close() error
}
