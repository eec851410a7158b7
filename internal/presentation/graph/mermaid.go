// Package graph renders a decision tree as a Mermaid flowchart for
// visualization in editors and docs.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arborlab/arbor/pkg/domain"
)

// GenerateMermaid produces Mermaid flowchart syntax (graph TD) for a tree.
// Semantic shapes:
//   - Start node: ((Circle))
//   - End: ([Stadium])
//   - SingleChoice / Number (input): [/Parallelogram/]
//   - Text / other: [Rectangle]
//
// Choice edges are labeled with the choice key, rule edges with the
// operator and threshold, default edges with "default".
func GenerateMermaid(tree *domain.Tree) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := tree.NodeIDs()
	sort.Strings(ids)

	for _, id := range ids {
		node := tree.Nodes[id]
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch {
		case id == tree.StartNodeID:
			opener, closer = "((", "))"
		case node.Type == domain.NodeTypeEnd:
			opener, closer = "([", "])"
		case node.Type == domain.NodeTypeSingleChoice || node.Type == domain.NodeTypeNumber:
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(id), closer))

		if node.IsTerminal() {
			continue
		}

		for _, c := range node.Choices {
			if c.NextNodeID == "" {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
				safeID, escapeLabel(c.Key), sanitizeMermaidID(c.NextNodeID)))
		}
		for _, r := range node.Rules {
			if r.NextNodeID == "" {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%s %s\" --> %s\n",
				safeID, r.Operator, escapeLabel(r.Value), sanitizeMermaidID(r.NextNodeID)))
		}
		if node.DefaultNextNodeID != "" {
			sb.WriteString(fmt.Sprintf("    %s -. \"default\" .-> %s\n",
				safeID, sanitizeMermaidID(node.DefaultNextNodeID)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
