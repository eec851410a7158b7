package domain

import "time"

// Step records a single question/answer exchange during a walk.
type Step struct {
	NodeID   string `json:"node_id"`
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// Trail is the audit record of one complete traversal: every step taken plus
// the terminal outcome. It is built by the walker and persisted by a
// TrailStore; the engine itself never touches it.
type Trail struct {
	ID        string    `json:"id"`
	TreeID    string    `json:"tree_id"`
	Steps     []Step    `json:"steps"`
	Outcome   string    `json:"outcome"`        // prompt of the terminal node, if any
	EndNodeID string    `json:"end_node_id"`    // id of the last node visited
	Completed bool      `json:"completed"`      // true if an End node was reached
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}
