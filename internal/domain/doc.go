// Package domain defines the shared vocabulary of ephemera.
//
// Contents
//
//   - Room and participant identifiers (RoomID, Identity)
//   - The wire-level shapes exchanged through the relay (WirePacket,
//     Presence) and the decrypted payload shape (Envelope)
//   - The Transport interface the client core speaks to reach a room
//
// The relay never interprets a WirePacket; only clients holding the room
// secret can open one. Presence frames are the single exception: they are
// minted by the relay itself and carry no ciphertext.
package domain
