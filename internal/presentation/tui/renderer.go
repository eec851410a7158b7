// Package tui holds terminal presentation helpers for the interactive walk
// command.
package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders node prompts as markdown using
// glamour, auto-detecting light/dark terminal backgrounds.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text if the renderer cannot initialize.
		return func(s string) (string, error) { return s, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
