package secrets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobby152/askelio-sub003/pkg/secrets"
)

func TestCipherRoundTrip(t *testing.T) {
	key, err := secrets.GenerateKey()
	require.NoError(t, err)

	c, err := secrets.NewCipher(key, []byte("default"))
	require.NoError(t, err)

	plaintext := []byte(`{"access_token":"abc","refresh_token":"def","expires_at":1756100000}`)

	sealed, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, sealed)

	opened, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestCipherSaltSeparation(t *testing.T) {
	key, err := secrets.GenerateKey()
	require.NoError(t, err)

	a, err := secrets.NewCipher(key, []byte("instance-a"))
	require.NoError(t, err)
	b, err := secrets.NewCipher(key, []byte("instance-b"))
	require.NoError(t, err)

	sealed, err := a.Encrypt([]byte("payload"))
	require.NoError(t, err)

	// Same master key, different salt: ciphertext must not open.
	_, err = b.Decrypt(sealed)
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
}

func TestNewCipherValidatesKey(t *testing.T) {
	_, err := secrets.NewCipher([]byte("short"), nil)
	assert.ErrorIs(t, err, secrets.ErrInvalidKey)
}

func TestCipherDecryptErrors(t *testing.T) {
	key, err := secrets.GenerateKey()
	require.NoError(t, err)

	c, err := secrets.NewCipher(key, []byte("default"))
	require.NoError(t, err)

	t.Run("truncated ciphertext", func(t *testing.T) {
		_, err := c.Decrypt([]byte{0x01, 0x02})
		assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		sealed, err := c.Encrypt([]byte("payload"))
		require.NoError(t, err)

		sealed[len(sealed)-1] ^= 0xFF
		_, err = c.Decrypt(sealed)
		assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
	})
}
