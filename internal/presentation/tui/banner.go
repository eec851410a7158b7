package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for the interactive walk.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Green gradient, forest theme.
	lines := []struct {
		text  string
		color string
	}{
		{"      _       _                ", "#4ade80"},
		{"  __ _| |_ __ | |__   ___  _ __ ", "#34d399"},
		{" / _` | '__\\ V / '_ \\ / _ \\| '__|", "#2dd4bf"},
		{"| (_| | |   | || |_) | (_) | |   ", "#22d3ee"},
		{" \\__,_|_|   |_||_.__/ \\___/|_|   ", "#38bdf8"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
