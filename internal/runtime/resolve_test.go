package runtime_test

import (
	"testing"

	"github.com/arborlab/arbor/internal/runtime"
	"github.com/arborlab/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolve_End(t *testing.T) {
	node := domain.Node{
		ID:                "end",
		Type:              domain.NodeTypeEnd,
		DefaultNextNodeID: "somewhere", // ignored on terminal nodes
	}
	assert.Empty(t, runtime.Resolve(node, ""))
	assert.Empty(t, runtime.Resolve(node, "yes"))
	assert.Empty(t, runtime.Resolve(node, "42"))
}

func TestResolve_Text(t *testing.T) {
	node := domain.Node{ID: "info", Type: domain.NodeTypeText, DefaultNextNodeID: "next"}
	// The response content is irrelevant.
	assert.Equal(t, "next", runtime.Resolve(node, ""))
	assert.Equal(t, "next", runtime.Resolve(node, "whatever was said"))

	node.DefaultNextNodeID = ""
	assert.Empty(t, runtime.Resolve(node, "anything"))
}

func TestResolve_SingleChoice(t *testing.T) {
	node := domain.Node{
		ID:   "q",
		Type: domain.NodeTypeSingleChoice,
		Choices: []domain.Choice{
			{Key: "billing", Label: "Billing Issue", NextNodeID: "q_billing"},
			{Key: "tech", Label: "Technical Problem", NextNodeID: "q_tech"},
		},
		DefaultNextNodeID: "q_other",
	}

	t.Run("ExactKey", func(t *testing.T) {
		assert.Equal(t, "q_billing", runtime.Resolve(node, "billing"))
	})
	t.Run("CaseInsensitive", func(t *testing.T) {
		assert.Equal(t, "q_billing", runtime.Resolve(node, "Billing"))
		assert.Equal(t, "q_tech", runtime.Resolve(node, "TECH"))
	})
	t.Run("ExactLabel", func(t *testing.T) {
		assert.Equal(t, "q_billing", runtime.Resolve(node, "Billing Issue"))
	})
	t.Run("SubstringInVerboseAnswer", func(t *testing.T) {
		assert.Equal(t, "q_billing", runtime.Resolve(node, "it's a BILLING issue"))
		assert.Equal(t, "q_tech", runtime.Resolve(node, "sounds like a technical problem to me"))
	})
	t.Run("WhitespaceTolerant", func(t *testing.T) {
		assert.Equal(t, "q_billing", runtime.Resolve(node, "  billing \n"))
	})
	t.Run("FirstMatchWins", func(t *testing.T) {
		// Mentions both; the first declared choice takes it.
		assert.Equal(t, "q_billing", runtime.Resolve(node, "billing and tech"))
	})
	t.Run("NoMatchFallsThrough", func(t *testing.T) {
		assert.Equal(t, "q_other", runtime.Resolve(node, "something unrelated"))
	})
	t.Run("NoMatchNoDefault", func(t *testing.T) {
		stripped := node
		stripped.DefaultNextNodeID = ""
		assert.Empty(t, runtime.Resolve(stripped, "something unrelated"))
	})
}

func TestResolve_Number(t *testing.T) {
	node := domain.Node{
		ID:   "amount",
		Type: domain.NodeTypeNumber,
		Rules: []domain.Rule{
			{Operator: domain.OpLessThan, Value: "100", NextNodeID: "A"},
			{Operator: domain.OpGreaterOrEqual, Value: "100", NextNodeID: "B"},
		},
		DefaultNextNodeID: "fallback",
	}

	t.Run("PlainNumber", func(t *testing.T) {
		assert.Equal(t, "A", runtime.Resolve(node, "42"))
		assert.Equal(t, "B", runtime.Resolve(node, "100"))
		assert.Equal(t, "B", runtime.Resolve(node, " 250.5 "))
	})
	t.Run("TokenExtractedFromFreeText", func(t *testing.T) {
		assert.Equal(t, "B", runtime.Resolve(node, "I think around 150 dollars"))
		assert.Equal(t, "A", runtime.Resolve(node, "maybe 30, not sure"))
		assert.Equal(t, "B", runtime.Resolve(node, "about $120."))
	})
	t.Run("FirstRuleWins", func(t *testing.T) {
		overlapping := node
		overlapping.Rules = []domain.Rule{
			{Operator: domain.OpLessThan, Value: "1000", NextNodeID: "first"},
			{Operator: domain.OpLessThan, Value: "100", NextNodeID: "second"},
		}
		assert.Equal(t, "first", runtime.Resolve(overlapping, "5"))
	})
	t.Run("NoNumericTokenFallsThrough", func(t *testing.T) {
		assert.Equal(t, "fallback", runtime.Resolve(node, "no idea honestly"))
	})
	t.Run("NoRuleMatchFallsThrough", func(t *testing.T) {
		narrow := node
		narrow.Rules = []domain.Rule{
			{Operator: domain.OpGreaterThan, Value: "1000", NextNodeID: "big"},
		}
		assert.Equal(t, "fallback", runtime.Resolve(narrow, "5"))
	})
	t.Run("UnparseableRuleValueSkipped", func(t *testing.T) {
		junk := node
		junk.Rules = []domain.Rule{
			{Operator: domain.OpLessThan, Value: "not-a-number", NextNodeID: "bad"},
			{Operator: domain.OpLessThan, Value: "100", NextNodeID: "good"},
		}
		assert.Equal(t, "good", runtime.Resolve(junk, "42"))
	})
}

func TestResolve_NumberOperators(t *testing.T) {
	rule := func(op, value string) domain.Node {
		return domain.Node{
			Type:              domain.NodeTypeNumber,
			Rules:             []domain.Rule{{Operator: op, Value: value, NextNodeID: "hit"}},
			DefaultNextNodeID: "miss",
		}
	}

	cases := []struct {
		name     string
		node     domain.Node
		response string
		want     string
	}{
		{"LessThan hit", rule(domain.OpLessThan, "10"), "9", "hit"},
		{"LessThan boundary", rule(domain.OpLessThan, "10"), "10", "miss"},
		{"LessThanOrEq boundary", rule(domain.OpLessThanOrEq, "10"), "10", "hit"},
		{"GreaterThan boundary", rule(domain.OpGreaterThan, "10"), "10", "miss"},
		{"GreaterThan hit", rule(domain.OpGreaterThan, "10"), "11", "hit"},
		{"GreaterOrEqual boundary", rule(domain.OpGreaterOrEqual, "10"), "10", "hit"},
		{"Equal exact", rule(domain.OpEqual, "100"), "100", "hit"},
		{"Equal within epsilon", rule(domain.OpEqual, "100"), "100.00001", "hit"},
		{"Equal outside epsilon", rule(domain.OpEqual, "100"), "100.1", "miss"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, runtime.Resolve(tc.node, tc.response))
		})
	}
}

func TestResolve_UnknownTypeFallsBack(t *testing.T) {
	node := domain.Node{ID: "odd", Type: "hologram", DefaultNextNodeID: "next"}
	assert.Equal(t, "next", runtime.Resolve(node, "anything"))

	node.DefaultNextNodeID = ""
	assert.Empty(t, runtime.Resolve(node, "anything"))
}
