package arbor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arborlab/arbor/internal/codec"
	"github.com/arborlab/arbor/internal/logging"
	"github.com/arborlab/arbor/internal/runtime"
	"github.com/arborlab/arbor/pkg/adapters/file"
	"github.com/arborlab/arbor/pkg/domain"
	"github.com/arborlab/arbor/pkg/ports"
)

// Version is the release version, overridable at build time via ldflags.
var Version = "0.3.0"

// Engine is the high-level entry point for the Arbor library.
// It wraps the internal runtime and provides a simplified API for consumers:
// the tree editor (validate before persisting) and the transcript pipeline
// (start node + resolve loop).
type Engine struct {
	runtime *runtime.Engine
	source  ports.TreeSource
	trails  ports.TrailStore
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSource injects a TreeSource consulted by Reload.
func WithSource(src ports.TreeSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithTrailStore injects a store for persisting walk trails.
func WithTrailStore(store ports.TrailStore) Option {
	return func(e *Engine) {
		e.trails = store
	}
}

// New initializes an Arbor Engine. treePath may be empty when a custom
// source is injected or trees are loaded directly via Load/LoadBytes.
func New(treePath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.source == nil && treePath != "" {
		eng.source = file.NewSource(treePath)
	}

	eng.runtime = runtime.NewEngine(runtime.WithLogger(eng.logger))

	if eng.source != nil {
		if err := eng.Reload(context.Background()); err != nil {
			return nil, err
		}
	}
	return eng, nil
}

// Reload fetches the document from the configured source, validates it, and
// publishes it as the active tree. A failed reload leaves the previously
// active tree in effect.
func (e *Engine) Reload(ctx context.Context) error {
	if e.source == nil {
		return fmt.Errorf("no tree source configured")
	}
	data, err := e.source.Load(ctx)
	if err != nil {
		return err
	}
	return e.LoadBytes(data)
}

// LoadBytes parses a raw JSON or YAML tree document, validates it, and
// publishes it.
func (e *Engine) LoadBytes(data []byte) error {
	tree, err := codec.Decode(data)
	if err != nil {
		return err
	}
	return e.runtime.Load(tree)
}

// Load validates an already-decoded tree and publishes it.
func (e *Engine) Load(tree *domain.Tree) error {
	return e.runtime.Load(tree)
}

// Tree returns the active tree, or domain.ErrNoActiveTree before the first
// successful load. Callers must treat the result as read-only.
func (e *Engine) Tree() (*domain.Tree, error) {
	return e.runtime.Tree()
}

// StartNode returns the entry node of the active tree.
func (e *Engine) StartNode() (domain.Node, error) {
	return e.runtime.StartNode()
}

// Node looks up a node by id in the active tree.
func (e *Engine) Node(id string) (domain.Node, bool) {
	return e.runtime.Node(id)
}

// ListNodes returns the sorted ids of the active tree's nodes.
func (e *Engine) ListNodes() ([]string, error) {
	return e.runtime.ListNodes()
}

// Resolve returns the next node id for a node and a free-text response, or
// "" when the walk cannot proceed. Pure and safe for unbounded concurrency.
func (e *Engine) Resolve(node domain.Node, response string) string {
	return runtime.Resolve(node, response)
}

// Next resolves against the node with the given id and returns the next
// node. ok is false on terminal nodes and defaultless fallthrough.
func (e *Engine) Next(nodeID, response string) (domain.Node, bool) {
	return e.runtime.Next(nodeID, response)
}

// Trails returns the configured trail store, or nil.
func (e *Engine) Trails() ports.TrailStore {
	return e.trails
}
