package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

// Cipher encrypts and decrypts byte payloads with a key derived from a
// master key and an instance salt. The session FileStore uses it to keep
// persisted credentials unreadable at rest.
type Cipher struct {
	masterKey []byte
	salt      []byte
}

// NewCipher validates the master key and returns a Cipher bound to the
// given instance salt. The salt need not be secret; the session layer uses
// the storage namespace so that instances never share derived keys.
func NewCipher(masterKey, instanceSalt []byte) (*Cipher, error) {
	if err := ValidateKey(masterKey); err != nil {
		return nil, err
	}
	key := make([]byte, len(masterKey))
	copy(key, masterKey)
	salt := make([]byte, len(instanceSalt))
	copy(salt, instanceSalt)
	return &Cipher{masterKey: key, salt: salt}, nil
}

// Encrypt encrypts raw bytes with AES-256-GCM.
// Returns ciphertext in format: nonce + encrypted data + tag.
func (c *Cipher) Encrypt(data []byte) ([]byte, error) {
	key, err := deriveKey(c.masterKey, c.salt)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	// Prepend nonce to ciphertext for storage
	return aesGCM.Seal(nonce, nonce, data, nil), nil
}

// Decrypt decrypts ciphertext produced by Encrypt.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	key, err := deriveKey(c.masterKey, c.salt)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrInvalidCiphertext
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	return plaintext, nil
}
