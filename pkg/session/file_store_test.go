package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobby152/askelio-sub003/pkg/secrets"
	"github.com/dobby152/askelio-sub003/pkg/session"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())

		require.NoError(t, store.Set(ctx, "askelio.session.default", []byte(`{"a":1}`)))
		got, err := store.Get(ctx, "askelio.session.default")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), got)
	})

	t.Run("get missing key", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())

		_, err := store.Get(ctx, "askelio.session.default")
		assert.ErrorIs(t, err, session.ErrKeyNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())

		require.NoError(t, store.Set(ctx, "k", []byte("v")))
		require.NoError(t, store.Delete(ctx, "k"))
		require.NoError(t, store.Delete(ctx, "k"))
	})

	t.Run("file permissions are owner-only", func(t *testing.T) {
		dir := t.TempDir()
		store := session.NewFileStore(dir)

		require.NoError(t, store.Set(ctx, "k", []byte("v")))

		info, err := os.Stat(filepath.Join(dir, "k"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("rejects path traversal keys", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())

		assert.ErrorIs(t, store.Set(ctx, "../escape", []byte("v")), session.ErrInvalidKey)
		_, err := store.Get(ctx, "a/b")
		assert.ErrorIs(t, err, session.ErrInvalidKey)
	})

	t.Run("creates base dir lazily", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "askelio")
		store := session.NewFileStore(dir)

		require.NoError(t, store.Set(ctx, "k", []byte("v")))
		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)
	})
}

func TestFileStoreEncryption(t *testing.T) {
	ctx := context.Background()

	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	cipher, err := secrets.NewCipher(key, []byte("default"))
	require.NoError(t, err)

	dir := t.TempDir()
	store := session.NewFileStore(dir, session.WithCipher(cipher))

	payload := []byte(`{"access_token":"secret-token"}`)
	require.NoError(t, store.Set(ctx, "askelio.session.default", payload))

	// On-disk bytes must not contain the plaintext token.
	raw, err := os.ReadFile(filepath.Join(dir, "askelio.session.default"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-token")

	got, err := store.Get(ctx, "askelio.session.default")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
