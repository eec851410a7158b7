// Package validator performs the static soundness checks a tree must pass
// before the engine will publish it: reference integrity, cycle detection,
// and reachability. Validation is fail-fast; the first defect found aborts
// the load and is reported with enough detail to locate it.
package validator

import (
	"fmt"
	"sort"

	"github.com/arborlab/arbor/pkg/domain"
)

// ValidateTree checks a decoded tree for structural soundness.
// Check order: start node presence, dangling references, cycles reachable
// from start (DFS with visited/on-path sets), then reachability of every
// node (BFS from start, reporting all strays at once).
func ValidateTree(tree *domain.Tree) error {
	if tree.StartNodeID == "" {
		return &domain.StructuralError{Field: "startNodeId", Reason: "must not be empty"}
	}
	if _, ok := tree.Nodes[tree.StartNodeID]; !ok {
		return &domain.StructuralError{Field: "startNodeId", Ref: tree.StartNodeID,
			Reason: fmt.Sprintf("start node %q does not exist", tree.StartNodeID)}
	}

	if err := checkReferences(tree); err != nil {
		return err
	}
	if err := checkCycles(tree); err != nil {
		return err
	}
	return checkReachability(tree)
}

// checkReferences verifies every edge points at an existing node.
// Nodes are visited in sorted id order so the first reported defect is
// deterministic.
func checkReferences(tree *domain.Tree) error {
	ids := tree.NodeIDs()
	sort.Strings(ids)

	for _, id := range ids {
		node := tree.Nodes[id]
		for i, c := range node.Choices {
			if c.NextNodeID == "" {
				continue
			}
			if _, ok := tree.Nodes[c.NextNodeID]; !ok {
				return &domain.StructuralError{
					NodeID: id,
					Field:  fmt.Sprintf("choices[%d].nextNodeId", i),
					Ref:    c.NextNodeID,
				}
			}
		}
		for i, r := range node.Rules {
			if r.NextNodeID == "" {
				continue
			}
			if _, ok := tree.Nodes[r.NextNodeID]; !ok {
				return &domain.StructuralError{
					NodeID: id,
					Field:  fmt.Sprintf("rules[%d].nextNodeId", i),
					Ref:    r.NextNodeID,
				}
			}
		}
		if d := node.DefaultNextNodeID; d != "" {
			if _, ok := tree.Nodes[d]; !ok {
				return &domain.StructuralError{
					NodeID: id,
					Field:  "defaultNextNodeId",
					Ref:    d,
				}
			}
		}
	}
	return nil
}

// checkCycles runs a depth-first search from the start node with two sets:
// visited (ever seen) and onPath (on the current descent). Revisiting a node
// already on the current path means a cycle. End nodes contribute no edges,
// so a cycle can never pass through one.
func checkCycles(tree *domain.Tree) error {
	visited := make(map[string]bool)
	onPath := make(map[string]bool)

	var walk func(id string, path []string) error
	walk = func(id string, path []string) error {
		if onPath[id] {
			return &domain.CycleError{NodeID: id, Path: append(path, id)}
		}
		if visited[id] {
			return nil
		}
		visited[id] = true
		onPath[id] = true
		path = append(path, id)

		node := tree.Nodes[id]
		for _, next := range node.Edges() {
			if err := walk(next, path); err != nil {
				return err
			}
		}

		onPath[id] = false
		return nil
	}

	return walk(tree.StartNodeID, nil)
}

// checkReachability crawls breadth-first from the start node and reports
// every node the crawl never touched. Unlike the other checks it collects
// all offenders before failing.
func checkReachability(tree *domain.Tree) error {
	visited := make(map[string]bool)
	queue := []string{tree.StartNodeID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		for _, next := range tree.Nodes[id].Edges() {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	var strays []string
	for id := range tree.Nodes {
		if !visited[id] {
			strays = append(strays, id)
		}
	}
	if len(strays) > 0 {
		sort.Strings(strays)
		return &domain.UnreachableNodesError{NodeIDs: strays}
	}
	return nil
}
