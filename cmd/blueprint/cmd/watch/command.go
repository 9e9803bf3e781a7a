// Package watch provides the watch command implementation.
package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/blueprint"
	"github.com/agentstation/blueprint/internal/cmd/globals"
	"github.com/agentstation/blueprint/internal/watch"
	"github.com/agentstation/blueprint/pkg/logging"
)

// AppContext defines the interface that the watch command needs from the app.
type AppContext interface {
	ClientWithOptions(opts ...blueprint.Option) (blueprint.Client, error)
	Logger() *zerolog.Logger
	InputRoot() string
	Debounce() time.Duration
}

// NewCommand creates the watch command using app context.
func NewCommand(app AppContext) *cobra.Command {
	var (
		input    string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:     "watch",
		GroupID: "core",
		Short:   "Merge continuously as document batches change",
		Long: `Watch runs an initial merge, then observes the import directory and
re-merges whenever documents settle.

Changes are debounced: a burst of writes (a new batch being copied in,
an editor saving) triggers a single merge once the store goes quiet.
Each run writes a fresh timestamped artifact directory, exactly as if
merge had been invoked by hand.

Watch runs until interrupted.`,
		Example: `  blueprint watch                           # Watch ./imports
  blueprint watch -i ./drops                # Watch a different import root
  blueprint watch --debounce 2s             # Wait longer for batches to settle`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := app.Logger()

			globalFlags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}

			return executeWatch(ctx, app, input, debounce, globalFlags, logger)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "",
		"Directory of batch directories to watch (default: imports)")
	cmd.Flags().DurationVar(&debounce, "debounce", 0,
		"How long the store must stay quiet before a merge runs (default: 500ms)")

	return cmd
}

// executeWatch runs merges until the context is canceled.
func executeWatch(ctx context.Context, app AppContext, input string, debounce time.Duration, globalFlags *globals.Flags, logger *zerolog.Logger) error {
	var opts []blueprint.Option
	if input != "" {
		opts = append(opts, blueprint.WithInputRoot(input))
	}
	client, err := app.ClientWithOptions(opts...)
	if err != nil {
		return err
	}

	root := input
	if root == "" {
		root = app.InputRoot()
	}
	if debounce <= 0 {
		debounce = app.Debounce()
	}

	ctx = logging.WithLogger(ctx, logger)

	// Merges run serially on the watcher goroutine; a change burst during a
	// run is debounced into the next one.
	runMerge := func(trigger string) {
		result, err := client.Merge(ctx)
		if err != nil {
			logger.Error().Err(err).Str("trigger", trigger).Msg("Merge failed")
			return
		}

		event := logger.Info()
		if result.Report.HasIssues() {
			event = logger.Warn()
		}
		event.
			Str("trigger", trigger).
			Int("reference_issues", len(result.Report.ReferenceIssues)).
			Msg(result.Summary())
	}

	if !globalFlags.Quiet {
		fmt.Fprintf(os.Stderr, "👀 Watching %s (debounce %s)\n", root, debounce)
	}

	// Initial merge so the aggregate reflects the store as found
	runMerge("startup")

	watcher, err := watch.New(root, func(paths []string) {
		logger.Debug().Strs("paths", paths).Msg("Documents settled")
		runMerge("change")
	}, watch.WithDebounce(debounce))
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	if !globalFlags.Quiet {
		fmt.Fprintf(os.Stderr, "\n👋 Watch stopped\n")
	}
	return nil
}
