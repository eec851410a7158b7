package codec_test

import (
	"testing"

	"github.com/arborlab/arbor/internal/codec"
	"github.com/arborlab/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triageJSON = `{
  "id": "triage",
  "version": "1.0",
  "startNodeId": "q1",
  "nodes": {
    "q1": {
      "prompt": "Is this a billing issue?",
      "type": "SingleChoice",
      "choices": [
        {"key": "yes", "label": "Yes", "nextNodeId": "q_amount"},
        {"key": "no", "label": "No", "nextNodeId": "end_other"}
      ]
    },
    "q_amount": {
      "prompt": "What is the disputed amount?",
      "type": "Number",
      "rules": [
        {"operator": "LessThan", "value": "100", "nextNodeId": "end_auto"},
        {"operator": "GreaterOrEqual", "value": "100", "nextNodeId": "end_review"}
      ],
      "defaultNextNodeId": "end_review"
    },
    "end_auto": {"prompt": "Auto-refunded", "type": "End"},
    "end_review": {"prompt": "Escalated to review", "type": "End"},
    "end_other": {"prompt": "Routed to general support", "type": "End"}
  }
}`

func TestDecodeJSON(t *testing.T) {
	tree, err := codec.DecodeJSON([]byte(triageJSON))
	require.NoError(t, err)

	assert.Equal(t, "triage", tree.ID)
	assert.Equal(t, "q1", tree.StartNodeID)
	require.Len(t, tree.Nodes, 5)

	// Wire types are canonicalized and node IDs are backfilled from map keys.
	q1 := tree.Nodes["q1"]
	assert.Equal(t, "q1", q1.ID)
	assert.Equal(t, domain.NodeTypeSingleChoice, q1.Type)

	amount := tree.Nodes["q_amount"]
	require.Len(t, amount.Rules, 2)
	assert.Equal(t, domain.OpLessThan, amount.Rules[0].Operator)
	assert.Equal(t, domain.OpGreaterOrEqual, amount.Rules[1].Operator)
}

func TestDecodeJSON_CaseInsensitiveFields(t *testing.T) {
	doc := `{"ID": "t", "STARTNODEID": "a", "Nodes": {"a": {"Type": "end", "PROMPT": "done"}}}`
	tree, err := codec.DecodeJSON([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "a", tree.StartNodeID)
	assert.Equal(t, "done", tree.Nodes["a"].Prompt)
}

func TestDecodeYAML(t *testing.T) {
	doc := `
id: triage
startNodeId: q1
nodes:
  q1:
    prompt: "Continue?"
    type: single_choice
    choices:
      - key: "yes"
        label: "Yes"
        nextNodeId: done
    defaultNextNodeId: done
  done:
    prompt: Finished
    type: End
`
	tree, err := codec.DecodeYAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, domain.NodeTypeSingleChoice, tree.Nodes["q1"].Type)
	assert.Equal(t, domain.NodeTypeEnd, tree.Nodes["done"].Type)
}

func TestDecode_SniffsFormat(t *testing.T) {
	fromJSON, err := codec.Decode([]byte(triageJSON))
	require.NoError(t, err)
	assert.Equal(t, "triage", fromJSON.ID)

	fromYAML, err := codec.Decode([]byte("id: t\nstartNodeId: a\nnodes:\n  a: {type: end}\n"))
	require.NoError(t, err)
	assert.Equal(t, "t", fromYAML.ID)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := codec.DecodeJSON([]byte(`{"id": `))
	require.Error(t, err)
	var parseErr *domain.ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "json", parseErr.Format)
}

func TestDecodeMap(t *testing.T) {
	raw := map[string]any{
		"id":          "t",
		"startNodeId": "a",
		"nodes": map[string]any{
			"a": map[string]any{
				"type":              "text",
				"prompt":            "hello",
				"defaultNextNodeId": "b",
			},
			"b": map[string]any{"type": "End", "prompt": "bye"},
		},
	}
	tree, err := codec.DecodeMap(raw)
	require.NoError(t, err)
	assert.Equal(t, "a", tree.StartNodeID)
	assert.Equal(t, "b", tree.Nodes["a"].DefaultNextNodeID)
	assert.Equal(t, domain.NodeTypeEnd, tree.Nodes["b"].Type)
}

// Decoding, re-encoding, and decoding again must preserve semantics.
func TestRoundTrip(t *testing.T) {
	first, err := codec.DecodeJSON([]byte(triageJSON))
	require.NoError(t, err)

	encoded, err := codec.EncodeJSON(first)
	require.NoError(t, err)

	second, err := codec.DecodeJSON(encoded)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	yamlBytes, err := codec.EncodeYAML(first)
	require.NoError(t, err)
	third, err := codec.DecodeYAML(yamlBytes)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}
