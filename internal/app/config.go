package app

import (
	"ephemera/internal/lifecycle"
	"ephemera/internal/session"
)

// Config holds runtime wiring options for building the client.
type Config struct {
	// RelayHost is the relay's host:port, e.g. 127.0.0.1:1999.
	RelayHost string

	// URL is the room URL to bind. Missing pieces (room token, key
	// fragment) are minted, making this client the room originator.
	URL string

	// Hooks observe the session; nil hooks are skipped.
	Hooks session.Hooks

	// OnLifecycle observes message transitions (fade, expiry).
	OnLifecycle func(lifecycle.Event)
}
