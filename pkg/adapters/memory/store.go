// Package memory provides in-memory adapters, primarily for tests and
// single-process deployments.
package memory

import (
	"context"
	"sync"

	"github.com/arborlab/arbor/pkg/domain"
)

// Store implements ports.TrailStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Trail
	mu   sync.RWMutex
}

// NewStore creates a new in-memory trail store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Trail),
	}
}

// Save persists the trail in memory.
func (s *Store) Save(ctx context.Context, trail *domain.Trail) error {
	copied := cloneTrail(trail)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[trail.ID] = copied
	return nil
}

// Load retrieves a trail from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Trail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trail, ok := s.data[id]
	if !ok {
		return nil, domain.ErrTrailNotFound
	}
	// Copy on read so callers can't mutate stored trails through the pointer.
	return cloneTrail(trail), nil
}

// Delete removes a trail.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns all stored trail ids.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

// cloneTrail deep-copies a trail, isolating stored data from callers the way
// serialization would.
func cloneTrail(t *domain.Trail) *domain.Trail {
	copied := *t
	copied.Steps = make([]domain.Step, len(t.Steps))
	copy(copied.Steps, t.Steps)
	return &copied
}
