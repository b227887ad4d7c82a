package room

import (
	"crypto/rand"
	"fmt"
	"net/url"

	"ephemera/internal/crypto"
	"ephemera/internal/domain"
)

// RoomIDLength is the length of a minted room token.
const RoomIDLength = 8

const roomIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Binding is the result of resolving a URL into a joinable room.
type Binding struct {
	Room       domain.RoomID
	Key        crypto.Key
	Originator bool   // true when this client generated the key
	URL        string // canonical shareable URL, query and fragment filled in
}

// Bind resolves rawURL into a room identifier and key. Missing pieces are
// minted: no room parameter gets a fresh token, no fragment makes this
// client the originator of a fresh key. An unusable fragment fails with
// crypto.ErrInvalidKey and the caller must not open a connection.
func Bind(rawURL string) (Binding, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Binding{}, fmt.Errorf("room: parse url: %w", err)
	}

	q := u.Query()
	id := q.Get("room")
	if id == "" {
		id = MintRoomID()
		q.Set("room", id)
	}

	b := Binding{Room: domain.RoomID(id)}
	if u.Fragment == "" {
		key, err := crypto.GenerateKey()
		if err != nil {
			return Binding{}, err
		}
		b.Key = key
		b.Originator = true
		u.Fragment = crypto.ExportKey(key)
	} else {
		key, err := crypto.ImportKey(u.Fragment)
		if err != nil {
			return Binding{}, err
		}
		b.Key = key
	}

	u.RawQuery = q.Encode()
	b.URL = u.String()
	return b, nil
}

// MintRoomID returns a fresh short alphanumeric room token.
func MintRoomID() string {
	buf := make([]byte, RoomIDLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is unrecoverable for this process anyway.
		panic(fmt.Sprintf("room: mint id: %v", err))
	}
	for i, c := range buf {
		buf[i] = roomIDAlphabet[int(c)%len(roomIDAlphabet)]
	}
	return string(buf)
}
