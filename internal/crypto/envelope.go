package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	KeyBytes   = 32
	NonceBytes = 12
)

// DecryptFailed is the sentinel Decrypt returns for any packet it cannot
// authenticate. It is never displayed; callers drop the packet.
const DecryptFailed = "[Decryption Error]"

// ErrInvalidKey reports a fragment that is not a usable room secret.
var ErrInvalidKey = errors.New("crypto: invalid room key")

// Key is the shared room secret. It is derived from the URL fragment, lives
// only in process memory, and is never sent to the relay.
type Key struct {
	aead cipher.AEAD
	raw  []byte
}

func newKey(raw []byte) (Key, error) {
	block, err := aes.NewCipher(raw)
	if err != nil {
		return Key{}, fmt.Errorf("crypto: new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return Key{}, fmt.Errorf("crypto: new gcm: %w", err)
	}
	return Key{aead: aead, raw: raw}, nil
}

// GenerateKey returns a fresh random 256-bit room key.
func GenerateKey() (Key, error) {
	raw := make([]byte, KeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return Key{}, fmt.Errorf("crypto: generate key: %w", err)
	}
	return newKey(raw)
}

// ExportKey serializes the key for the URL fragment. Reversible via ImportKey.
func ExportKey(k Key) string {
	return base64.StdEncoding.EncodeToString(k.raw)
}

// ImportKey reconstructs a key from its exported form. It fails with
// ErrInvalidKey when the input is not base64 or is not exactly 32 bytes;
// the caller surfaces this as an unreadable chat rather than crashing.
func ImportKey(s string) (Key, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil || len(raw) != KeyBytes {
		return Key{}, ErrInvalidKey
	}
	k, err := newKey(raw)
	if err != nil {
		return Key{}, ErrInvalidKey
	}
	return k, nil
}

// Destroy wipes the raw key material. Best effort: copies held by the AEAD
// key schedule are out of reach.
func (k *Key) Destroy() {
	for i := range k.raw {
		k.raw[i] = 0
	}
	k.aead = nil
}

// SealedBox is the output of one Encrypt call, both fields base64.
type SealedBox struct {
	Nonce      string
	Ciphertext string
}

// Encrypt seals plaintext under k with a fresh random nonce. Nonce reuse
// under a fixed key breaks GCM confidentiality, so the nonce is drawn from
// crypto/rand on every call without exception.
func Encrypt(plaintext string, k Key) (SealedBox, error) {
	if k.aead == nil {
		return SealedBox{}, ErrInvalidKey
	}
	nonce := make([]byte, NonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return SealedBox{}, fmt.Errorf("crypto: nonce: %w", err)
	}
	ct := k.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return SealedBox{
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ct),
	}, nil
}

// Decrypt opens a sealed packet. Any failure (bad encoding, wrong key,
// flipped bits) yields DecryptFailed, never a panic and never a
// plausible-looking plaintext.
func Decrypt(nonce, ciphertext string, k Key) string {
	if k.aead == nil {
		return DecryptFailed
	}
	nb, err := base64.StdEncoding.DecodeString(nonce)
	if err != nil || len(nb) != k.aead.NonceSize() {
		return DecryptFailed
	}
	cb, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return DecryptFailed
	}
	pt, err := k.aead.Open(nil, nb, cb, nil)
	if err != nil {
		return DecryptFailed
	}
	return string(pt)
}
