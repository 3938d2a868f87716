// Package uploads stores request file uploads on disk. Every upload gets its
// own directory and files keep their original base names, so transcript
// lookups for paired output files and associated images keep working.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Store writes uploads below a single root directory.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root: %w", err)
	}

	return &Store{root: root}, nil
}

// NewUpload allocates a fresh upload directory and returns its id.
func (s *Store) NewUpload() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	if err := os.Mkdir(filepath.Join(s.root, id), 0o755); err != nil {
		return "", err
	}

	return id, nil
}

// Save writes one file into the upload directory under its base name and
// returns the stored path and size.
func (s *Store) Save(id, name string, r io.Reader) (string, int64, error) {
	path, err := s.filePath(id, name)
	if err != nil {
		return "", 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return "", 0, err
	}

	return path, n, nil
}

// Path resolves a stored file, erroring when it does not exist.
func (s *Store) Path(id, name string) (string, error) {
	path, err := s.filePath(id, name)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err != nil {
		return "", err
	}

	return path, nil
}

func (s *Store) filePath(id, name string) (string, error) {
	if id == "" || id == "." || id == ".." || id != filepath.Base(id) {
		return "", fmt.Errorf("invalid upload id: %q", id)
	}

	base := filepath.Base(name)
	if base == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name: %q", name)
	}

	return filepath.Join(s.root, id, base), nil
}
