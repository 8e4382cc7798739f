// Package storage persists uploaded document files on the local filesystem.
// Callers only ever see the opaque stored path; the document table records
// that path and nothing else about the file.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	fileNameLength   = 21
	fileNameAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// LocalStore writes files under a single upload directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a store
// rooted at it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: upload dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes data to a new file with a random name and returns the stored
// path. The extension is normalized to a single leading dot; an empty ext
// produces a file with no extension.
func (s *LocalStore) Save(ctx context.Context, data []byte, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := gonanoid.Generate(fileNameAlphabet, fileNameLength)
	if err != nil {
		return "", fmt.Errorf("storage: generate file name: %w", err)
	}
	if ext = strings.TrimPrefix(ext, "."); ext != "" {
		name += "." + ext
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", path, err)
	}
	return path, nil
}

// Delete removes a stored file. Deleting a path that is already gone is not
// an error: the record pointing at it is what matters.
func (s *LocalStore) Delete(path string) error {
	if !strings.HasPrefix(filepath.Clean(path), filepath.Clean(s.dir)) {
		return fmt.Errorf("storage: path %s is outside the upload dir", path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove %s: %w", path, err)
	}
	return nil
}
