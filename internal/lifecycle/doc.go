// Package lifecycle drives every displayed message from Fresh through
// Fading to Expired, and gates image content behind hold-to-reveal.
//
// A List owns the live messages. Each message registers its own fade and
// expiry timers on creation, anchored to wall-clock creation time so late
// delivery of a buffered packet cannot stretch its life: a message older
// than TTL minus the fade lead starts fading immediately and still expires
// on schedule. Expiry is unconditional (no interaction, scroll, or focus
// state defers it) and removes the message, cancelling anything pending.
//
// Image messages additionally carry a reveal Gate: content is Visible only
// while a hold gesture is active and the focus signal reports safe, both
// continuously. The full-screen Preview shares the gate semantics and also
// closes outright when focus is lost.
//
// Timing uses the Clock interface so tests can compress five minutes into
// microseconds.
package lifecycle
