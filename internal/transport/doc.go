// Package transport connects a client to one room on the relay over a
// websocket. It implements domain.Transport: opaque frames out, opaque
// frames in, at-most-once and best-effort. Reconnection is deliberately
// absent: a dropped connection surfaces as the frame channel closing and
// the shell decides what to do.
package transport
