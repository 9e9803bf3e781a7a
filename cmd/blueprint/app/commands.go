package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/blueprint/cmd/blueprint/cmd/list"
	"github.com/agentstation/blueprint/cmd/blueprint/cmd/merge"
	"github.com/agentstation/blueprint/cmd/blueprint/cmd/watch"
)

// NewMergeCommand creates the merge command with app dependencies.
func (a *App) NewMergeCommand() *cobra.Command {
	return merge.NewCommand(a)
}

// NewListCommand creates the list command with app dependencies.
func (a *App) NewListCommand() *cobra.Command {
	return list.NewCommand(a)
}

// NewWatchCommand creates the watch command with app dependencies.
func (a *App) NewWatchCommand() *cobra.Command {
	return watch.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for blueprint CLI.`,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("blueprint version %s\n", a.version)
			fmt.Printf("commit: %s\n", a.commit)
			fmt.Printf("built: %s\n", a.date)
			fmt.Printf("built by: %s\n", a.builtBy)
			fmt.Printf("go version: %s\n", runtime.Version())
			fmt.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
