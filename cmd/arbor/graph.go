package main

import (
	"fmt"
	"os"

	"github.com/arborlab/arbor/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [tree-file]",
	Short: "Export the tree visualization",
	Long:  `Loads the tree and outputs a Mermaid diagram (graph TD) of its decision flow.`,
	Run: func(cmd *cobra.Command, args []string) {
		eng, _, err := newEngine(cmd, args)
		if err != nil {
			fmt.Printf("Error loading tree: %v\n", err)
			os.Exit(1)
		}

		tree, err := eng.Tree()
		if err != nil {
			fmt.Printf("Error reading tree: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(tree))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
