package memory

import "context"

// Source implements ports.TreeSource over a byte slice, handy for tests and
// embedded tree definitions.
type Source struct {
	data []byte
}

// NewSource creates a source from a raw document.
func NewSource(data []byte) *Source {
	return &Source{data: data}
}

// Load returns the raw document.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	return s.data, nil
}
