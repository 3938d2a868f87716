package loader

import (
	"context"
	"path/filepath"
	"strings"
)

// InputFile identifies one on-disk input handed to a parser. The extension
// decides which format branch a parser takes.
type InputFile struct {
	Path string // Location on disk
	Name string // Base name as uploaded
	Ext  string // Lowercased extension including the dot, e.g. ".json"
}

// NewInputFile builds an InputFile from a path.
func NewInputFile(path string) InputFile {
	return InputFile{
		Path: path,
		Name: filepath.Base(path),
		Ext:  strings.ToLower(filepath.Ext(path)),
	}
}

// FileLoader defines the interface for reading the contents of an InputFile.
// Implementations may read from disk, object storage, or other sources.
type FileLoader interface {
	Load(ctx context.Context, file InputFile) ([]byte, error)
}

// CacheKey identifies a file's content in loader caches.
func CacheKey(file InputFile) string {
	return file.Name + ":" + file.Path
}
