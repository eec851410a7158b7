package arbor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arborlab/arbor/pkg/domain"
)

// Oracle answers a node's prompt with free text. Implementations range from
// a human at a terminal to an LLM fed a transcript.
type Oracle func(ctx context.Context, prompt Prompt) (string, error)

// Prompt is what the walker presents to an oracle for one step.
type Prompt struct {
	Node domain.Node

	// Question is the node's prompt plus, for choice nodes, a rendering of
	// the available options, and for number nodes, a numeric answer request.
	Question string
}

// Walker drives a complete traversal of the active tree against an Oracle,
// recording every step. The walker owns the loop and the audit trail; the
// engine only answers "what is next".
type Walker struct {
	engine *Engine
}

// NewWalker creates a walker bound to an engine.
func NewWalker(engine *Engine) *Walker {
	return &Walker{engine: engine}
}

// Walk traverses the active tree from the start node until an End node is
// reached or resolution yields no next node. The step count is bounded by
// the node count (validation rules out cycles). If the engine has a trail
// store, the finished trail is persisted under trailID.
func (w *Walker) Walk(ctx context.Context, trailID string, oracle Oracle) (*domain.Trail, error) {
	tree, err := w.engine.Tree()
	if err != nil {
		return nil, err
	}

	trail := &domain.Trail{
		ID:        trailID,
		TreeID:    tree.ID,
		StartedAt: time.Now().UTC(),
	}

	node, err := w.engine.StartNode()
	if err != nil {
		return nil, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if node.IsTerminal() {
			trail.Outcome = node.Prompt
			trail.EndNodeID = node.ID
			trail.Completed = true
			break
		}

		answer, err := oracle(ctx, Prompt{Node: node, Question: RenderQuestion(node)})
		if err != nil {
			return nil, fmt.Errorf("oracle failed at node %q: %w", node.ID, err)
		}

		trail.Steps = append(trail.Steps, domain.Step{
			NodeID:   node.ID,
			Prompt:   node.Prompt,
			Response: answer,
		})

		nextID := w.engine.Resolve(node, answer)
		if nextID == "" {
			// Anomalous on a non-End node, but by contract non-fatal.
			w.engine.logger.Debug("walk stopped with no next node",
				"node", node.ID, "response", answer)
			trail.EndNodeID = node.ID
			break
		}

		next, ok := w.engine.Node(nextID)
		if !ok {
			// Unreachable given validation; guard against a racing reload.
			trail.EndNodeID = node.ID
			break
		}
		node = next
	}

	trail.EndedAt = time.Now().UTC()

	if w.engine.trails != nil {
		if err := w.engine.trails.Save(ctx, trail); err != nil {
			return trail, fmt.Errorf("failed to persist trail %q: %w", trailID, err)
		}
	}
	return trail, nil
}

// RenderQuestion builds the natural-language question for a node: the prompt
// plus choice labels or a numeric answer request where the type calls for it.
func RenderQuestion(node domain.Node) string {
	var sb strings.Builder
	sb.WriteString(node.Prompt)

	switch node.Type {
	case domain.NodeTypeSingleChoice:
		if len(node.Choices) > 0 {
			sb.WriteString("\n\nOptions:")
			for _, c := range node.Choices {
				label := c.Label
				if label == "" {
					label = c.Key
				}
				sb.WriteString(fmt.Sprintf("\n- %s", label))
			}
		}
	case domain.NodeTypeNumber:
		sb.WriteString("\n\nPlease answer with a number.")
	}
	return sb.String()
}
