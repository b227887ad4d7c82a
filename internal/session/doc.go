// Package session is the client core: it owns the room key for the life of
// the page, turns outbound content into sealed wire packets, and turns
// inbound frames into displayed messages.
//
// The receive loop branches on the presence discriminator before touching
// any ciphertext. Packets that fail authentication are counted and dropped
// silently; a stale client on a different key simply contributes nothing
// to the list. Everything downstream of this
// package sees only validated envelopes, so nothing re-checks them.
package session
