package packet

import (
	"encoding/json"
	"fmt"

	"ephemera/internal/domain"
)

// Inbound is one decoded relay frame. Exactly one field is set.
type Inbound struct {
	Presence *domain.Presence
	Packet   *domain.WirePacket
}

// EncodePacket serializes a wire packet for transport.
func EncodePacket(p domain.WirePacket) ([]byte, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("packet: encode: %w", err)
	}
	return b, nil
}

// EncodePresence serializes a relay presence broadcast.
func EncodePresence(count int) ([]byte, error) {
	b, err := json.Marshal(domain.Presence{Type: domain.TypePresence, Count: count})
	if err != nil {
		return nil, fmt.Errorf("packet: encode presence: %w", err)
	}
	return b, nil
}

// Decode classifies and parses one inbound frame. The type discriminator is
// checked first; only frames without one are treated as encrypted packets.
// Frames carrying an unknown discriminator are rejected so future relay
// message kinds are never mistaken for ciphertext.
func Decode(frame []byte) (Inbound, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(frame, &probe); err != nil {
		return Inbound{}, fmt.Errorf("packet: decode frame: %w", err)
	}

	switch probe.Type {
	case domain.TypePresence:
		var p domain.Presence
		if err := json.Unmarshal(frame, &p); err != nil {
			return Inbound{}, fmt.Errorf("packet: decode presence: %w", err)
		}
		return Inbound{Presence: &p}, nil
	case "":
		var wp domain.WirePacket
		if err := json.Unmarshal(frame, &wp); err != nil {
			return Inbound{}, fmt.Errorf("packet: decode packet: %w", err)
		}
		if wp.Nonce == "" || wp.Ciphertext == "" {
			return Inbound{}, fmt.Errorf("packet: frame missing nonce or ciphertext")
		}
		return Inbound{Packet: &wp}, nil
	default:
		return Inbound{}, fmt.Errorf("packet: unknown frame type %q", probe.Type)
	}
}

// ParseEnvelope interprets decrypted plaintext. Plaintext that is not the
// structured {type, content} shape is an older client's bare text message;
// the whole plaintext becomes the body.
func ParseEnvelope(plaintext string) domain.Envelope {
	var env domain.Envelope
	if err := json.Unmarshal([]byte(plaintext), &env); err == nil {
		if env.Kind == domain.ContentText || env.Kind == domain.ContentImage {
			return env
		}
	}
	return domain.Envelope{Kind: domain.ContentText, Content: plaintext}
}
