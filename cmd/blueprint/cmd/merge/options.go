package merge

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/blueprint"
	"github.com/agentstation/blueprint/pkg/reconciler"
)

// Flags holds the merge command's flags.
type Flags struct {
	Input           string
	Output          string
	DryRun          bool
	Validation      string
	ReadConcurrency int
}

// addMergeFlags registers merge-specific flags on the command.
func addMergeFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().StringVarP(&flags.Input, "input", "i", "",
		"Directory of batch directories to merge (default: imports)")
	cmd.Flags().StringVarP(&flags.Output, "output-dir", "O", "",
		"Directory run artifacts are written under (default: merged)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Compute the merge and report without writing artifacts")
	cmd.Flags().StringVar(&flags.Validation, "validation", "",
		`Reference validation mode: "complete" or "scan-order"`)
	cmd.Flags().IntVar(&flags.ReadConcurrency, "read-concurrency", 0,
		"Number of documents read in parallel (ingestion stays ordered)")

	return flags
}

// BuildMergeOptions creates blueprint options from the given flags.
// Unset flags contribute nothing so app configuration keeps its say.
func BuildMergeOptions(flags *Flags) ([]blueprint.Option, error) {
	var opts []blueprint.Option

	if flags.Input != "" {
		opts = append(opts, blueprint.WithInputRoot(flags.Input))
	}
	if flags.Output != "" {
		opts = append(opts, blueprint.WithOutputRoot(flags.Output))
	}
	if flags.DryRun {
		opts = append(opts, blueprint.WithDryRun(true))
	}
	if flags.Validation != "" {
		mode, err := reconciler.ParseValidationMode(flags.Validation)
		if err != nil {
			return nil, err
		}
		opts = append(opts, blueprint.WithValidationMode(mode))
	}
	if flags.ReadConcurrency > 0 {
		opts = append(opts, blueprint.WithReadConcurrency(flags.ReadConcurrency))
	}

	return opts, nil
}
