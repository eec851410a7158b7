package main

import (
	"fmt"
	"os"

	mcpAdapter "github.com/arborlab/arbor/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [tree-file]",
	Short: "Start the MCP server on stdio",
	Long: `Exposes the engine over the Model Context Protocol so AI agents can fetch
nodes, answer prompts, and resolve next steps directly.`,
	Run: func(cmd *cobra.Command, args []string) {
		eng, logger, err := newEngine(cmd, args)
		if err != nil {
			fmt.Printf("Error initializing arbor: %v\n", err)
			os.Exit(1)
		}

		logger.Info("starting MCP server on stdio")
		if err := mcpAdapter.NewServer(eng).ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
