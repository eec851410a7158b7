package main

import (
	"log/slog"

	"github.com/arborlab/arbor"
	"github.com/arborlab/arbor/internal/logging"
	"github.com/spf13/cobra"
)

// newEngine builds an engine from the shared --tree / --log-level flags.
// A positional argument overrides the --tree flag, mirroring `arbor validate
// triage.yaml`.
func newEngine(cmd *cobra.Command, args []string) (*arbor.Engine, *slog.Logger, error) {
	treePath, _ := cmd.Flags().GetString("tree")
	if !cmd.Flags().Changed("tree") && len(args) > 0 {
		treePath = args[0]
	}
	levelStr, _ := cmd.Flags().GetString("log-level")
	logger := logging.New(logging.ParseLevel(levelStr))

	eng, err := arbor.New(treePath, arbor.WithLogger(logger))
	if err != nil {
		return nil, logger, err
	}
	return eng, logger, nil
}
