package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTrailNotFound is returned when a trail ID cannot be found in a store.
var ErrTrailNotFound = errors.New("trail not found")

// ErrNoActiveTree is returned when the engine is asked for nodes before any
// tree has been loaded.
var ErrNoActiveTree = errors.New("no active tree loaded")

// ParseError indicates the raw input is not a well-formed tree document.
type ParseError struct {
	Format string // "json", "yaml" or "map"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse tree definition as %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StructuralError indicates a missing start node or a dangling reference.
// Field locates the defect within the node (e.g. "choices[1].nextNodeId").
type StructuralError struct {
	NodeID string
	Field  string
	Ref    string
	Reason string
}

func (e *StructuralError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("structural error: %s: %s", e.Field, e.Reason)
	}
	if e.Ref != "" {
		return fmt.Sprintf("structural error: node %q: %s references unknown node %q", e.NodeID, e.Field, e.Ref)
	}
	return fmt.Sprintf("structural error: node %q: %s: %s", e.NodeID, e.Field, e.Reason)
}

// CycleError indicates a cycle reachable from the start node.
// Path holds the walk that closed the cycle, ending at the repeated id.
type CycleError struct {
	NodeID string
	Path   []string
}

func (e *CycleError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("cycle detected at node %q (path: %s)", e.NodeID, strings.Join(e.Path, " -> "))
	}
	return fmt.Sprintf("cycle detected at node %q", e.NodeID)
}

// UnreachableNodesError lists every node that cannot be reached from the
// start node.
type UnreachableNodesError struct {
	NodeIDs []string
}

func (e *UnreachableNodesError) Error() string {
	return fmt.Sprintf("%d unreachable node(s): %s", len(e.NodeIDs), strings.Join(e.NodeIDs, ", "))
}
