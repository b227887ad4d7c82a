// Package packet is the wire codec between clients and the relay.
//
// A frame is one JSON text message. Two shapes exist: relay-minted presence
// broadcasts, which carry a "type" discriminator, and encrypted wire
// packets, which do not. Receivers branch on the discriminator before any
// decryption is attempted; a frame lacking it is ciphertext by definition.
//
// ParseEnvelope interprets decrypted plaintext, falling back to a bare text
// body for payloads produced by clients that predate the structured shape.
package packet
