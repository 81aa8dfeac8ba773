// Package secrets provides authenticated encryption for credential material
// persisted by the SDK.
//
// A Cipher binds a 32-byte master key to an instance salt (typically the
// session storage namespace) and derives the actual encryption key with
// HKDF-SHA256, so separate client instances sharing one master key never
// share derived keys. Payloads are sealed with AES-256-GCM; the nonce is
// prepended to the ciphertext.
//
// # Usage
//
//	key, _ := secrets.GenerateKey()
//	c, err := secrets.NewCipher(key, []byte("default"))
//	if err != nil { ... }
//	sealed, err := c.Encrypt(plaintext)
package secrets
