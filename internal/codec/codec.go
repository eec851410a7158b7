// Package codec converts raw tree documents (JSON, YAML, or pre-parsed
// generic maps) into domain.Tree values and back.
//
// Decoding is lossy only in representation: node types and rule operators are
// canonicalized, and each node's ID field is overwritten with its map key so
// the key/field invariant holds by construction. Semantics survive a
// decode/encode/decode round-trip.
package codec

import (
	"bytes"
	"encoding/json"

	"github.com/arborlab/arbor/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Decode sniffs the document format (JSON object vs YAML) and decodes it.
func Decode(data []byte) (*domain.Tree, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}

// DecodeJSON parses a JSON tree document. Field names are matched
// case-insensitively (encoding/json semantics).
func DecodeJSON(data []byte) (*domain.Tree, error) {
	var tree domain.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, &domain.ParseError{Format: "json", Err: err}
	}
	normalize(&tree)
	return &tree, nil
}

// DecodeYAML parses a YAML tree document.
func DecodeYAML(data []byte) (*domain.Tree, error) {
	var tree domain.Tree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, &domain.ParseError{Format: "yaml", Err: err}
	}
	normalize(&tree)
	return &tree, nil
}

// DecodeMap builds a Tree from an already-parsed generic map, the shape an
// editor frontend posts after its own deserialization. Keys are matched
// case-insensitively via mapstructure.
func DecodeMap(raw map[string]any) (*domain.Tree, error) {
	var tree domain.Tree
	if err := mapstructure.Decode(raw, &tree); err != nil {
		return nil, &domain.ParseError{Format: "map", Err: err}
	}
	normalize(&tree)
	return &tree, nil
}

// EncodeJSON serializes a tree back to its wire form.
func EncodeJSON(tree *domain.Tree) ([]byte, error) {
	return json.MarshalIndent(tree, "", "  ")
}

// EncodeYAML serializes a tree to YAML.
func EncodeYAML(tree *domain.Tree) ([]byte, error) {
	return yaml.Marshal(tree)
}

// normalize enforces the id/key invariant and canonicalizes enums.
func normalize(tree *domain.Tree) {
	if tree.Nodes == nil {
		return
	}
	for id, node := range tree.Nodes {
		node.ID = id
		node.Type = domain.NormalizeType(node.Type)
		for i, r := range node.Rules {
			node.Rules[i].Operator = domain.NormalizeOperator(r.Operator)
		}
		tree.Nodes[id] = node
	}
}
