package runtime

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/arborlab/arbor/pkg/domain"
)

// equalEpsilon is the tolerance for eq rules, absorbing floating-point
// representation noise in transcribed answers ("100.00001" matches 100).
const equalEpsilon = 1e-4

// Resolve returns the id of the next node given a node and a free-text
// response, or "" when the walk stops here. It is a pure function: no match
// is never an error, it falls through to the node's default edge.
func Resolve(node domain.Node, response string) string {
	switch node.Type {
	case domain.NodeTypeEnd:
		return ""
	case domain.NodeTypeSingleChoice:
		return resolveChoice(node, response)
	case domain.NodeTypeNumber:
		return resolveNumber(node, response)
	case domain.NodeTypeText:
		return node.DefaultNextNodeID
	default:
		// Unknown types degrade to the default edge rather than failing a
		// walk mid-flight.
		return node.DefaultNextNodeID
	}
}

// resolveChoice matches the normalized response against each choice in
// declaration order: exact match on key or label first, then substring
// containment so a verbose answer still hits a short key.
func resolveChoice(node domain.Node, response string) string {
	resp := normalize(response)
	for _, c := range node.Choices {
		key := normalize(c.Key)
		label := normalize(c.Label)

		if resp != "" && (resp == key || resp == label) {
			return c.NextNodeID
		}
		if key != "" && strings.Contains(resp, key) {
			return c.NextNodeID
		}
		if label != "" && strings.Contains(resp, label) {
			return c.NextNodeID
		}
	}
	return node.DefaultNextNodeID
}

// resolveNumber extracts a numeric value from the response and evaluates the
// node's rules in declaration order; the first passing rule wins. A response
// with no parseable number, or a rule set with no match, falls through to
// the default edge.
func resolveNumber(node domain.Node, response string) string {
	value, ok := extractNumber(response)
	if !ok {
		return node.DefaultNextNodeID
	}

	for _, r := range node.Rules {
		threshold, err := strconv.ParseFloat(strings.TrimSpace(r.Value), 64)
		if err != nil {
			continue
		}
		if ruleMatches(r.Operator, value, threshold) {
			return r.NextNodeID
		}
	}
	return node.DefaultNextNodeID
}

func ruleMatches(op string, value, threshold float64) bool {
	switch op {
	case domain.OpLessThan:
		return value < threshold
	case domain.OpLessThanOrEq:
		return value <= threshold
	case domain.OpGreaterThan:
		return value > threshold
	case domain.OpGreaterOrEqual:
		return value >= threshold
	case domain.OpEqual:
		return math.Abs(value-threshold) < equalEpsilon
	default:
		return false
	}
}

// extractNumber pulls a numeric value out of free text: the whole trimmed
// response first, then token by token ("I think around 150 dollars" -> 150).
func extractNumber(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v, true
	}

	tokens := strings.FieldsFunc(trimmed, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",;:!?()\"'", r)
	})
	for _, tok := range tokens {
		tok = strings.Trim(tok, "$€£%")
		tok = strings.TrimRight(tok, ".")
		if tok == "" {
			continue
		}
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// normalize lowercases and trims a string for tolerant matching.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
