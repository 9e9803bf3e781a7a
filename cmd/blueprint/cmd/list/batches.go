package list

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/blueprint/internal/cmd/globals"
	"github.com/agentstation/blueprint/internal/cmd/output"
)

// batchRow is one batch in list output, in merge order.
type batchRow struct {
	Batch     string `json:"batch"`
	Documents int    `json:"documents"`
}

// NewBatchesCommand creates the list batches subcommand using app context.
func NewBatchesCommand(app AppContext) *cobra.Command {
	var input *string

	cmd := &cobra.Command{
		Use:     "batches",
		Short:   "List batch directories in merge order",
		Aliases: []string{"batch"},
		Args:    cobra.NoArgs,
		Example: `  blueprint list batches                    # List batches under ./imports
  blueprint list batches -i ./drops         # List batches under ./drops
  blueprint list batches -o json            # Machine-readable output`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listBatches(cmd, app, *input)
		},
	}

	input = addInputFlag(cmd)

	return cmd
}

// listBatches lists all batches with their document counts.
func listBatches(cmd *cobra.Command, app AppContext, input string) error {
	cl, err := resolveClient(app, input)
	if err != nil {
		return err
	}

	batches, err := cl.Batches()
	if err != nil {
		return err
	}

	entries, err := cl.Documents()
	if err != nil {
		return err
	}

	// Count candidate documents per batch
	counts := make(map[string]int, len(batches))
	for _, e := range entries {
		counts[e.Batch]++
	}

	rows := make([]batchRow, 0, len(batches))
	for _, b := range batches {
		rows = append(rows, batchRow{Batch: b, Documents: counts[b]})
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	if !globalFlags.Quiet {
		app.Logger().Info().Msgf("Found %d batches", len(rows))
	}

	formatter := output.NewFormatter(output.DetectFormat(globalFlags.Output))
	return formatter.Format(os.Stdout, rows)
}
