package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arborlab/arbor"
	"github.com/arborlab/arbor/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var walkCmd = &cobra.Command{
	Use:   "walk [tree-file]",
	Short: "Walk the tree interactively",
	Long: `Starts an interactive traversal: each node's prompt is rendered and your
free-text answer picks the next node, until an End node is reached.`,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if err := runWalk(cmd, args, plain); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(walkCmd)
	walkCmd.Flags().Bool("plain", false, "Disable markdown rendering and the banner")
}

func runWalk(cmd *cobra.Command, args []string, plain bool) error {
	eng, _, err := newEngine(cmd, args)
	if err != nil {
		return err
	}

	render := func(s string) (string, error) { return s, nil }
	if !plain {
		tui.PrintBanner()
		render = tui.NewRenderer()
	}

	reader := bufio.NewReader(os.Stdin)
	oracle := func(ctx context.Context, prompt arbor.Prompt) (string, error) {
		out, err := render(prompt.Question)
		if err != nil {
			out = prompt.Question
		}
		fmt.Println(strings.TrimSpace(out))
		fmt.Print("> ")

		text, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return "", fmt.Errorf("input closed")
			}
			return "", err
		}
		return strings.TrimSpace(text), nil
	}

	trailID := fmt.Sprintf("walk-%d", time.Now().Unix())
	trail, err := arbor.NewWalker(eng).Walk(cmd.Context(), trailID, oracle)
	if err != nil {
		return err
	}

	if trail.Completed {
		out, rerr := render(trail.Outcome)
		if rerr != nil {
			out = trail.Outcome
		}
		fmt.Println(strings.TrimSpace(out))
	} else {
		fmt.Printf("Walk stopped at node %q with no next step.\n", trail.EndNodeID)
	}
	fmt.Printf("(%d step(s) recorded)\n", len(trail.Steps))
	return nil
}
