package domain

// RoomID is the relay-side room token. It travels in the URL query string
// and is visible to the relay; knowing it never yields plaintext.
type RoomID string

// String returns the string form of the room identifier.
func (r RoomID) String() string { return string(r) }

// Identity is a participant's display label, minted fresh per session.
// It is self-reported and unauthenticated; collisions are accepted.
type Identity string

// String returns the string form of the identity.
func (i Identity) String() string { return string(i) }

// ContentKind discriminates the payload carried by an Envelope.
type ContentKind string

const (
	ContentText  ContentKind = "text"
	ContentImage ContentKind = "image"
)

// TypePresence is the frame discriminator reserved for relay-originated
// presence broadcasts. Wire packets never carry a type field; its absence
// is what marks a frame as ciphertext.
const TypePresence = "presence"

// WirePacket is the encrypted unit broadcast between clients via the relay.
// Nonce and Ciphertext are base64; Sender is the self-reported label left
// in the clear so receivers can attribute messages without decrypting twice.
type WirePacket struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
	Sender     string `json:"sender"`
}

// Envelope is the plaintext recovered from a WirePacket. Content holds raw
// text or a base64 data URL for images.
type Envelope struct {
	Kind    ContentKind `json:"type"`
	Content string      `json:"content"`
}

// Presence is the relay's unencrypted connection-count broadcast.
type Presence struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}
