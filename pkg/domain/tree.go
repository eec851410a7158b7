package domain

import "strings"

// Node type constants define the resolution behavior.
const (
	// NodeTypeEnd is a terminal node. It has no outgoing edges; traversal stops here.
	NodeTypeEnd = "end"
	// NodeTypeSingleChoice matches the response against an ordered list of choices.
	NodeTypeSingleChoice = "singlechoice"
	// NodeTypeNumber extracts a numeric value from the response and evaluates rules in order.
	NodeTypeNumber = "number"
	// NodeTypeText ignores the response and follows the default edge.
	NodeTypeText = "text"
)

// Rule operator constants. Rules are evaluated in declaration order; first match wins.
const (
	OpLessThan       = "lt"
	OpLessThanOrEq   = "lte"
	OpGreaterThan    = "gt"
	OpGreaterOrEqual = "gte"
	OpEqual          = "eq"
)

// Tree is a directed graph of decision nodes keyed by id.
// It is immutable after load; edges are id strings resolved via Nodes at
// traversal time, never direct pointers.
type Tree struct {
	ID          string          `json:"id" yaml:"id"`
	Version     string          `json:"version" yaml:"version"`
	StartNodeID string          `json:"startNodeId" yaml:"startNodeId"`
	Nodes       map[string]Node `json:"nodes" yaml:"nodes"`
}

// Node represents a single decision point in the tree.
type Node struct {
	ID     string `json:"id" yaml:"id"`
	Prompt string `json:"prompt" yaml:"prompt"`
	Type   string `json:"type" yaml:"type"`

	// Choices is consulted by singlechoice nodes, in declaration order.
	Choices []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`

	// Rules is consulted by number nodes, in declaration order.
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`

	// DefaultNextNodeID is the fallback edge when no choice or rule matches.
	// Empty means "no next node".
	DefaultNextNodeID string `json:"defaultNextNodeId,omitempty" yaml:"defaultNextNodeId,omitempty"`
}

// Choice is a labeled outgoing edge on a singlechoice node, matched against
// free-text input by key or label.
type Choice struct {
	Key        string `json:"key" yaml:"key"`
	Label      string `json:"label" yaml:"label"`
	NextNodeID string `json:"nextNodeId" yaml:"nextNodeId"`
}

// Rule is a threshold-comparison edge on a number node.
type Rule struct {
	Operator   string `json:"operator" yaml:"operator"`
	Value      string `json:"value" yaml:"value"`
	NextNodeID string `json:"nextNodeId" yaml:"nextNodeId"`
}

// IsTerminal reports whether the node ends a traversal.
func (n Node) IsTerminal() bool {
	return n.Type == NodeTypeEnd
}

// Edges returns every outgoing node id in enumeration order:
// choices, then rules, then the default. End nodes have no edges regardless
// of any fields present.
func (n Node) Edges() []string {
	if n.IsTerminal() {
		return nil
	}
	var out []string
	for _, c := range n.Choices {
		if c.NextNodeID != "" {
			out = append(out, c.NextNodeID)
		}
	}
	for _, r := range n.Rules {
		if r.NextNodeID != "" {
			out = append(out, r.NextNodeID)
		}
	}
	if n.DefaultNextNodeID != "" {
		out = append(out, n.DefaultNextNodeID)
	}
	return out
}

// NormalizeType canonicalizes a node type string from the wire
// ("SingleChoice", "single_choice", "END", ...). Unknown values are returned
// lowercased; resolution treats them as default-fallthrough.
func NormalizeType(t string) string {
	s := strings.ToLower(strings.TrimSpace(t))
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// NormalizeOperator canonicalizes a rule operator from the wire.
// Accepts symbolic ("<", ">=") and verbose ("LessThan", "GreaterOrEqual")
// forms. Unknown values are returned lowercased and will never match.
func NormalizeOperator(op string) string {
	switch NormalizeType(op) {
	case "lt", "<", "lessthan":
		return OpLessThan
	case "lte", "<=", "lessthanorequal":
		return OpLessThanOrEq
	case "gt", ">", "greaterthan":
		return OpGreaterThan
	case "gte", ">=", "greaterorequal", "greaterthanorequal":
		return OpGreaterOrEqual
	case "eq", "=", "==", "equal", "equals":
		return OpEqual
	default:
		return strings.ToLower(strings.TrimSpace(op))
	}
}

// NodeIDs returns the ids of all nodes, in map iteration order.
// Callers that need determinism should sort the result.
func (t *Tree) NodeIDs() []string {
	ids := make([]string, 0, len(t.Nodes))
	for id := range t.Nodes {
		ids = append(ids, id)
	}
	return ids
}
