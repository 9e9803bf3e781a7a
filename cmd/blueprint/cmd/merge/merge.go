package merge

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/blueprint/internal/cmd/globals"
	"github.com/agentstation/blueprint/internal/cmd/output"
	"github.com/agentstation/blueprint/pkg/errors"
	"github.com/agentstation/blueprint/pkg/logging"
)

// ExecuteMerge orchestrates the complete merge process.
func ExecuteMerge(ctx context.Context, app AppContext, flags *Flags, globalFlags *globals.Flags, logger *zerolog.Logger) error {
	// Build merge options from flags; unset flags defer to app config
	opts, err := BuildMergeOptions(flags)
	if err != nil {
		return err
	}

	client, err := app.ClientWithOptions(opts...)
	if err != nil {
		return err
	}

	if !globalFlags.Quiet {
		fmt.Fprintf(os.Stderr, "🔄 Merging document batches...\n")
	}

	// Run the merge with the app logger on the context
	result, err := client.Merge(logging.WithLogger(ctx, logger))
	if err != nil {
		return err
	}

	// Display the structured report on stdout when a machine format was
	// requested. Dry runs leave no artifacts behind, so they always print
	// the report; JSON unless told otherwise.
	switch {
	case globalFlags.Output == "json" || globalFlags.Output == "yaml":
		formatter := output.NewFormatter(output.Format(globalFlags.Output))
		if err := formatter.Format(os.Stdout, result.Report); err != nil {
			return err
		}
	case result.DryRun:
		formatter := output.NewFormatter(output.FormatJSON)
		if err := formatter.Format(os.Stdout, result.Report); err != nil {
			return err
		}
	}

	if !globalFlags.Quiet {
		displayResultSummary(result)
	}

	// A merge that completed with reference issues reports its own exit code
	if result.Report.HasIssues() {
		return &errors.IssuesError{Count: len(result.Report.ReferenceIssues)}
	}

	return nil
}
