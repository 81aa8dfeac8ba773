package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required size for the master key
	KeySize = 32 // 256 bits for AES-256

	// saltInfo provides HKDF domain separation for session-at-rest encryption
	saltInfo = "askelio-client-secrets-v1"
)

// ValidateKey checks that the master key is the correct length.
func ValidateKey(key []byte) error {
	if len(key) != KeySize {
		return ErrInvalidKey
	}
	return nil
}

// deriveKey derives a per-instance encryption key from the master key and an
// instance salt using HKDF-SHA256. Two managers sharing a master key but
// using different namespaces end up with independent encryption keys.
// The caller is responsible for clearing the returned key via clearBytes()
// when it is no longer needed.
func deriveKey(masterKey, instanceSalt []byte) ([]byte, error) {
	hkdfReader := hkdf.New(sha256.New, masterKey, instanceSalt, []byte(saltInfo))

	derivedKey := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdfReader, derivedKey); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return derivedKey, nil
}

// clearBytes zeros a byte slice to shorten the lifetime of key material in memory.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GenerateKey creates a new random 32-byte key suitable for encryption
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
