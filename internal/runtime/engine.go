// Package runtime holds the engine core: the atomically published active
// tree and the pure next-node resolution logic.
package runtime

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/arborlab/arbor/internal/logging"
	"github.com/arborlab/arbor/internal/validator"
	"github.com/arborlab/arbor/pkg/domain"
)

// Engine owns the active decision tree. Loading validates a candidate off to
// the side and publishes it atomically; a failed load leaves the previous
// tree untouched. Lookups and Resolve read the published snapshot without
// locking, so any number of walks may run concurrently.
type Engine struct {
	loadMu sync.Mutex
	active atomic.Pointer[domain.Tree]
	logger *slog.Logger
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine with no active tree.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load validates the candidate tree and, on success, publishes it as the
// active tree. Loads are mutually exclusive; concurrent readers keep seeing
// the previous tree until the swap.
func (e *Engine) Load(tree *domain.Tree) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	if err := validator.ValidateTree(tree); err != nil {
		e.logger.Warn("tree rejected", "tree_id", tree.ID, "err", err)
		return err
	}

	e.active.Store(tree)
	e.logger.Info("tree published",
		"tree_id", tree.ID,
		"version", tree.Version,
		"nodes", len(tree.Nodes))
	return nil
}

// Tree returns the active tree, or ErrNoActiveTree before the first
// successful Load.
func (e *Engine) Tree() (*domain.Tree, error) {
	t := e.active.Load()
	if t == nil {
		return nil, domain.ErrNoActiveTree
	}
	return t, nil
}

// StartNode returns the tree's entry node.
func (e *Engine) StartNode() (domain.Node, error) {
	t, err := e.Tree()
	if err != nil {
		return domain.Node{}, err
	}
	// Existence is guaranteed by validation.
	return t.Nodes[t.StartNodeID], nil
}

// Node looks up a node by id in the active tree.
func (e *Engine) Node(id string) (domain.Node, bool) {
	t := e.active.Load()
	if t == nil {
		return domain.Node{}, false
	}
	n, ok := t.Nodes[id]
	return n, ok
}

// ListNodes returns every node id in the active tree in sorted order.
func (e *Engine) ListNodes() ([]string, error) {
	t, err := e.Tree()
	if err != nil {
		return nil, err
	}
	ids := t.NodeIDs()
	sort.Strings(ids)
	return ids, nil
}

// Next resolves the response against the node with the given id and returns
// the next node. ok is false when the walk cannot proceed: unknown id,
// terminal node, or fallthrough with no default.
func (e *Engine) Next(nodeID, response string) (domain.Node, bool) {
	node, ok := e.Node(nodeID)
	if !ok {
		return domain.Node{}, false
	}
	nextID := Resolve(node, response)
	if nextID == "" {
		return domain.Node{}, false
	}
	return e.Node(nextID)
}
