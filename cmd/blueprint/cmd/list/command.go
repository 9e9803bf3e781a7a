// Package list provides the list command for inspecting the import store.
package list

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/blueprint"
)

// AppContext defines the interface that list commands need from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	Client() (blueprint.Client, error)
	ClientWithOptions(opts ...blueprint.Option) (blueprint.Client, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [resource]",
		GroupID: "core",
		Short:   "List batches and documents from the import store",
		Long: `List displays what the merge would consume, without merging anything.

Available subcommands:
  batches     - Batch directories in merge order with document counts
  documents   - Candidate documents across all batches`,
		Example: `  blueprint list batches                    # Batches in merge order
  blueprint list documents                  # All candidate documents
  blueprint list documents 20250102/aims.json   # Inspect one document
  blueprint list batches -i ./drops         # Use a different import root`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to help if no subcommand
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown resource: %s", args[0])
		},
	}

	// Add subcommands using the app context
	cmd.AddCommand(NewBatchesCommand(app))
	cmd.AddCommand(NewDocumentsCommand(app))

	return cmd
}
