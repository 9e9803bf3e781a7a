// Package merge provides the merge command implementation.
package merge

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/blueprint"
	"github.com/agentstation/blueprint/internal/cmd/globals"
)

// AppContext defines the interface that the merge command needs from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	ClientWithOptions(opts ...blueprint.Option) (blueprint.Client, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the merge command using app context.
func NewCommand(app AppContext) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "merge",
		GroupID: "core",
		Short:   "Merge document batches into an aggregate",
		Long: `Merge scans the import directory for timestamp-named batch directories,
classifies every document inside them, and folds the batches in
chronological order into a single merged aggregate:

1. Aim tables    - merged per aim id (first batch wins by default)
2. Hierarchies   - replaced whole (latest batch wins by default)
3. Planners      - collected additively from every batch

Planner references are cross-validated against the merged aim ids and
hierarchy micro ids. The run writes three artifacts into a fresh
timestamped directory under the output root: the merged aggregate, a
structured report, and a human-readable Markdown report.

A run that completes with reference issues exits with status 2 so
automation can tell "merged with warnings" from hard failures.`,
		Example: `  blueprint merge                           # Merge ./imports into ./merged
  blueprint merge -i ./drops -O ./out       # Custom input and output roots
  blueprint merge --dry-run                 # Report without writing artifacts
  blueprint merge --validation scan-order   # Validate references during the fold
  blueprint merge -o json                   # Print the structured report to stdout`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := app.Logger()

			globalFlags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}

			return ExecuteMerge(ctx, app, flags, globalFlags, logger)
		},
	}

	// Add merge-specific flags
	flags = addMergeFlags(cmd)

	return cmd
}
