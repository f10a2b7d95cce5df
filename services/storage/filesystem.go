package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemBackend implements Backend on the local filesystem, rooted
// at a run-scoped directory. Used under the debug configuration flag.
type FilesystemBackend struct {
	root string
}

// NewFilesystemBackend creates a new filesystem backend rooted at root
func NewFilesystemBackend(root string) *FilesystemBackend {
	return &FilesystemBackend{root: root}
}

// Put writes body to {root}/{key}, creating parent directories
func (b *FilesystemBackend) Put(_ context.Context, key string, _ string, body []byte) error {
	path := filepath.Join(b.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Name returns the backend name
func (b *FilesystemBackend) Name() string {
	return "filesystem"
}
