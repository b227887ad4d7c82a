// Package relay implements the blind relay.
//
// Each room is a single-goroutine actor owning its connection set and a
// 20-entry ring buffer of the most recent raw frames. A frame arriving from
// one connection is broadcast verbatim to every other connection in the
// room; the relay never parses, validates, or decrypts payloads. It holds
// no keys, so compromising the relay yields ciphertext, connection counts,
// and timing, never plaintext.
//
// Presence is the one frame kind the relay originates itself: whenever a
// connection joins or leaves, every member (including a newcomer) receives
// the updated count. Delivery everywhere is at-most-once and best-effort; a
// receiver that cannot keep up is dropped from the room rather than
// buffered without bound.
//
// The ring buffer smooths client reloads in principle but is delivered to
// no one: nothing replays it, and clients must not rely on it.
package relay
