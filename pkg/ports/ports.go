// Package ports defines the driven-side interfaces of the engine, decoupling
// the core from storage and document sources.
package ports

import (
	"context"

	"github.com/arborlab/arbor/pkg/domain"
)

// TreeSource supplies the raw tree definition document (JSON or YAML bytes).
// Implementations include plain files and in-memory fixtures.
type TreeSource interface {
	// Load returns the raw document for the codec to parse.
	Load(ctx context.Context) ([]byte, error)
}

// TrailStore persists walk trails by id, enabling the transcript pipeline to
// keep an audit record of every traversal.
type TrailStore interface {
	// Save persists the trail under its id.
	Save(ctx context.Context, trail *domain.Trail) error

	// Load retrieves a trail by id.
	// Returns domain.ErrTrailNotFound if the trail does not exist.
	Load(ctx context.Context, id string) (*domain.Trail, error)

	// Delete removes a trail by id.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored trails.
	List(ctx context.Context) ([]string, error)
}
