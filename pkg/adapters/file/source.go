// Package file provides a ports.TreeSource backed by a file on disk, the
// form the tree editor persists.
package file

import (
	"context"
	"fmt"
	"os"
)

// Source loads a tree definition document from a path.
type Source struct {
	path string
}

// NewSource creates a file-backed source.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load reads the document from disk.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree definition %q: %w", s.path, err)
	}
	return data, nil
}
