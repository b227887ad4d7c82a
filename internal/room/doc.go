// Package room binds a session to a room and its secret from a URL.
//
// The URL is the only shareable state: the room identifier rides in the
// "room" query parameter (visible to the relay) and the exported key rides
// in the fragment (never transmitted; fragments do not leave the client).
// Bind runs exactly once per session, before the transport opens. A URL
// with no room mints one; a URL with no fragment marks this client as the
// room originator and generates a fresh key.
package room
