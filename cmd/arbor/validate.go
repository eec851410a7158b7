package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [tree-file]",
	Short: "Check a tree definition for soundness",
	Long: `Parses the tree definition and runs the full static check sequence:
start node presence, dangling references, cycles reachable from the start
node, and reachability of every node.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, _, err := newEngine(cmd, args)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Tree is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
