package dsl_test

import (
	"testing"

	"github.com/arborlab/arbor/pkg/domain"
	"github.com/arborlab/arbor/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_ValidTree(t *testing.T) {
	tree, err := dsl.New("triage").
		Version("1").
		Start("q1").
		Choice("q1", "Billing issue?").
		Option("yes", "Yes", "q_amount").
		Option("no", "No", "end_other").
		Done().
		Number("q_amount", "Disputed amount?").
		Rule("<", "100", "end_refund").
		Otherwise("end_review").
		Done().
		End("end_refund", "Refunded").
		End("end_review", "Under review").
		End("end_other", "Routed elsewhere").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "triage", tree.ID)
	assert.Equal(t, "q1", tree.StartNodeID)
	assert.Len(t, tree.Nodes, 5)
	assert.Equal(t, domain.OpLessThan, tree.Nodes["q_amount"].Rules[0].Operator)
}

func TestBuilder_BuildValidates(t *testing.T) {
	_, err := dsl.New("broken").
		Start("q1").
		Choice("q1", "Go where?").
		Option("x", "X", "missing").
		Done().
		Build()
	require.Error(t, err)
	var structErr *domain.StructuralError
	assert.ErrorAs(t, err, &structErr)
	assert.Equal(t, "missing", structErr.Ref)
}

func TestBuilder_TextChain(t *testing.T) {
	tree, err := dsl.New("chain").
		Start("a").
		Text("a", "first", "b").
		Text("b", "second", "done").
		End("done", "fin").
		Build()
	require.NoError(t, err)
	assert.Equal(t, "b", tree.Nodes["a"].DefaultNextNodeID)
}
