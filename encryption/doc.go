// Package encryption seals sensitive values, primarily the session
// credentials persisted to disk, with an authenticated cipher.
//
// Keys are derived from a passphrase via SHA-256, producing a 256-bit key
// for either AES-256-GCM (default) or ChaCha20-Poly1305.
//
// # Usage
//
//	sealer, err := encryption.New(passphrase)
//	ciphertext, err := sealer.Encrypt(plaintext)
//	plaintext, err := sealer.Decrypt(ciphertext)
package encryption
