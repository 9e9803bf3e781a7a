package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/blueprint"
)

// addInputFlag registers the shared --input override on a list subcommand.
func addInputFlag(cmd *cobra.Command) *string {
	var input string
	cmd.Flags().StringVarP(&input, "input", "i", "",
		"Directory of batch directories to inspect (default: imports)")
	return &input
}

// resolveClient returns the app's default client, or a fresh one when the
// subcommand overrides the import root.
func resolveClient(app AppContext, input string) (blueprint.Client, error) {
	if input == "" {
		return app.Client()
	}
	return app.ClientWithOptions(blueprint.WithInputRoot(input))
}
