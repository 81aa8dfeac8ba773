package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dobby152/askelio-sub003/pkg/secrets"
)

// FileStore implements Store with one file per key under a base directory.
// It is the durable backend: contents survive process restarts. Writes go
// through a temp file and rename so a crash mid-write never leaves a
// half-written session behind.
type FileStore struct {
	dir    string
	cipher *secrets.Cipher
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithCipher enables at-rest encryption of stored values.
func WithCipher(c *secrets.Cipher) FileStoreOption {
	return func(fs *FileStore) {
		fs.cipher = c
	}
}

// NewFileStore creates a file-backed store rooted at dir. An empty dir
// defaults to an "askelio" directory under the user config dir. The
// directory is created lazily on first write, so construction never fails
// on read-only filesystems; DetectMode surfaces unusable directories
// instead.
func NewFileStore(dir string, opts ...FileStoreOption) *FileStore {
	if dir == "" {
		if base, err := os.UserConfigDir(); err == nil {
			dir = filepath.Join(base, "askelio")
		} else {
			dir = filepath.Join(os.TempDir(), "askelio")
		}
	}

	fs := &FileStore{dir: dir}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Dir returns the base directory.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// Set creates or replaces the value under key.
func (fs *FileStore) Set(ctx context.Context, key string, data []byte) error {
	path, err := fs.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(fs.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	payload := data
	if fs.cipher != nil {
		payload, err = fs.cipher.Encrypt(data)
		if err != nil {
			return fmt.Errorf("failed to encrypt session payload: %w", err)
		}
	}

	// Temp file + rename keeps readers from ever seeing a partial write.
	tmp, err := os.CreateTemp(fs.dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to persist session file: %w", err)
	}
	return nil
}

// Get retrieves the value under key.
func (fs *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := fs.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if fs.cipher != nil {
		data, err = fs.cipher.Decrypt(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt session payload: %w", err)
		}
	}
	return data, nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (fs *FileStore) Delete(ctx context.Context, key string) error {
	path, err := fs.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// path maps a storage key to a file path, rejecting keys that would escape
// the base directory.
func (fs *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return filepath.Join(fs.dir, key), nil
}
