// Package store provides the key-value document store used by the pipeline.
// Keys are file paths; the backing filesystem is injected so runs can be
// executed against the real disk or an in-memory tree.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNotFound is returned when a key has no document.
var ErrNotFound = errors.New("document not found")

// Store reads and writes whole documents by key.
type Store interface {
	// Exists reports whether a document is stored under key.
	Exists(key string) (bool, error)
	// Read returns the document stored under key.
	Read(key string) ([]byte, error)
	// Write replaces the document stored under key.
	Write(key string, data []byte) error
	// Size returns the stored size of the document in bytes.
	Size(key string) (int64, error)
}

// FS is a Store backed by an afero filesystem.
type FS struct {
	fs afero.Fs
}

// New creates a store over the given filesystem.
func New(fsys afero.Fs) *FS {
	return &FS{fs: fsys}
}

// NewOS creates a store over the host filesystem.
func NewOS() *FS {
	return New(afero.NewOsFs())
}

// NewMemory creates a store backed by an in-memory filesystem.
func NewMemory() *FS {
	return New(afero.NewMemMapFs())
}

// Exists implements Store. Directories are not documents.
func (s *FS) Exists(key string) (bool, error) {
	info, err := s.fs.Stat(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	return !info.IsDir(), nil
}

// Read implements Store.
func (s *FS) Read(key string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Write implements Store, creating parent directories as needed.
func (s *FS) Write(key string, data []byte) error {
	if dir := filepath.Dir(key); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", key, err)
		}
	}
	if err := afero.WriteFile(s.fs, key, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Size implements Store.
func (s *FS) Size(key string) (int64, error) {
	info, err := s.fs.Stat(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return 0, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	return info.Size(), nil
}
