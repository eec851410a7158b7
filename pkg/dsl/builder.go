package dsl

import (
	"github.com/arborlab/arbor/internal/validator"
	"github.com/arborlab/arbor/pkg/domain"
)

// Builder manages tree construction.
type Builder struct {
	tree domain.Tree
}

// New creates a builder for a tree with the given id.
func New(id string) *Builder {
	return &Builder{
		tree: domain.Tree{
			ID:    id,
			Nodes: make(map[string]domain.Node),
		},
	}
}

// Version sets the tree version string.
func (b *Builder) Version(v string) *Builder {
	b.tree.Version = v
	return b
}

// Start declares the entry node id.
func (b *Builder) Start(nodeID string) *Builder {
	b.tree.StartNodeID = nodeID
	return b
}

// Choice adds a single-choice node.
func (b *Builder) Choice(id, prompt string) *ChoiceBuilder {
	nb := &ChoiceBuilder{builder: b, node: domain.Node{
		ID:     id,
		Prompt: prompt,
		Type:   domain.NodeTypeSingleChoice,
	}}
	return nb
}

// Number adds a number node.
func (b *Builder) Number(id, prompt string) *NumberBuilder {
	nb := &NumberBuilder{builder: b, node: domain.Node{
		ID:     id,
		Prompt: prompt,
		Type:   domain.NodeTypeNumber,
	}}
	return nb
}

// Text adds a text node flowing unconditionally to next.
func (b *Builder) Text(id, prompt, next string) *Builder {
	b.tree.Nodes[id] = domain.Node{
		ID:                id,
		Prompt:            prompt,
		Type:              domain.NodeTypeText,
		DefaultNextNodeID: next,
	}
	return b
}

// End adds a terminal node whose prompt is the recorded outcome.
func (b *Builder) End(id, prompt string) *Builder {
	b.tree.Nodes[id] = domain.Node{
		ID:     id,
		Prompt: prompt,
		Type:   domain.NodeTypeEnd,
	}
	return b
}

// Build validates the assembled tree and returns it.
func (b *Builder) Build() (*domain.Tree, error) {
	tree := b.tree
	if err := validator.ValidateTree(&tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// ChoiceBuilder provides a fluent API for configuring a single-choice node.
type ChoiceBuilder struct {
	builder *Builder
	node    domain.Node
}

// Option adds a choice edge matched by key or label.
func (c *ChoiceBuilder) Option(key, label, next string) *ChoiceBuilder {
	c.node.Choices = append(c.node.Choices, domain.Choice{
		Key:        key,
		Label:      label,
		NextNodeID: next,
	})
	return c
}

// Otherwise sets the fallback edge for unmatched answers.
func (c *ChoiceBuilder) Otherwise(next string) *ChoiceBuilder {
	c.node.DefaultNextNodeID = next
	return c
}

// Done registers the node and returns to the tree builder.
func (c *ChoiceBuilder) Done() *Builder {
	c.builder.tree.Nodes[c.node.ID] = c.node
	return c.builder
}

// NumberBuilder provides a fluent API for configuring a number node.
type NumberBuilder struct {
	builder *Builder
	node    domain.Node
}

// Rule adds a threshold rule; rules match in the order added.
func (n *NumberBuilder) Rule(operator, value, next string) *NumberBuilder {
	n.node.Rules = append(n.node.Rules, domain.Rule{
		Operator:   domain.NormalizeOperator(operator),
		Value:      value,
		NextNodeID: next,
	})
	return n
}

// Otherwise sets the fallback edge for answers with no matching rule or no
// numeric token.
func (n *NumberBuilder) Otherwise(next string) *NumberBuilder {
	n.node.DefaultNextNodeID = next
	return n
}

// Done registers the node and returns to the tree builder.
func (n *NumberBuilder) Done() *Builder {
	n.builder.tree.Nodes[n.node.ID] = n.node
	return n.builder
}
