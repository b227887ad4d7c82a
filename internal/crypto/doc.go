// Package crypto implements the symmetric envelope protecting all room
// traffic.
//
// Contents
//
//   - Room key generation plus the base64 export/import used to move the
//     key through a URL fragment (GenerateKey, ExportKey, ImportKey)
//   - AES-256-GCM seal/open with a fresh random 96-bit nonce per message
//     (Encrypt, Decrypt)
//   - Best-effort wiping of key material (Key.Destroy)
//
// # Notes
//
// Decrypt never returns an error. Any packet that fails authentication
// (wrong key, tampering, a malformed frame) comes back as the
// DecryptFailed sentinel so a single bad packet cannot take down the
// receiving session. Callers check for the sentinel and drop the packet.
package crypto
