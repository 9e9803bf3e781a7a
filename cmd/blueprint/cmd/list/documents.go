package list

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/blueprint/internal/cmd/globals"
	"github.com/agentstation/blueprint/internal/cmd/output"
	"github.com/agentstation/blueprint/pkg/documents"
	"github.com/agentstation/blueprint/pkg/errors"
	"github.com/agentstation/blueprint/pkg/scanner"
)

// documentDetail describes one parsed document for the detail view.
type documentDetail struct {
	Source  string `json:"source"`
	Batch   string `json:"batch"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

// NewDocumentsCommand creates the list documents subcommand using app context.
func NewDocumentsCommand(app AppContext) *cobra.Command {
	var input *string

	cmd := &cobra.Command{
		Use:     "documents [source]",
		Short:   "List candidate documents across all batches",
		Aliases: []string{"document", "docs"},
		Args:    cobra.MaximumNArgs(1),
		Example: `  blueprint list documents                  # All documents in scan order
  blueprint list documents 20250102/aims.json   # Parse and classify one document
  blueprint list documents -o yaml           # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Single document detail view
			if len(args) == 1 {
				return showDocumentDetails(cmd, app, *input, args[0])
			}

			return listDocuments(cmd, app, *input)
		},
	}

	input = addInputFlag(cmd)

	return cmd
}

// listDocuments lists every candidate document in scan order.
func listDocuments(cmd *cobra.Command, app AppContext, input string) error {
	cl, err := resolveClient(app, input)
	if err != nil {
		return err
	}

	entries, err := cl.Documents()
	if err != nil {
		return err
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	// Transform to output format
	var outputData any
	format := output.DetectFormat(globalFlags.Output)
	if format == output.FormatTable {
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{e.Batch, e.Name, documents.Format(e.Name)})
		}
		outputData = output.Data{
			Headers: []string{"Batch", "Name", "Format"},
			Rows:    rows,
			ColumnAlignment: []output.Align{
				output.AlignLeft,
				output.AlignLeft,
				output.AlignCenter,
			},
		}
	} else {
		outputData = entries
	}

	if !globalFlags.Quiet {
		app.Logger().Info().Msgf("Found %d documents", len(entries))
	}

	formatter := output.NewFormatter(format)
	return formatter.Format(os.Stdout, outputData)
}

// showDocumentDetails parses one document and shows its classification.
func showDocumentDetails(cmd *cobra.Command, app AppContext, input, source string) error {
	cl, err := resolveClient(app, input)
	if err != nil {
		return err
	}

	entries, err := cl.Documents()
	if err != nil {
		return err
	}

	var entry *scanner.Entry
	for i := range entries {
		if entries[i].Source() == source {
			entry = &entries[i]
			break
		}
	}
	if entry == nil {
		cmd.SilenceUsage = true
		return &errors.NotFoundError{
			Resource: "document",
			ID:       source,
		}
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return errors.WrapIO("read", entry.Path, err)
	}

	body, err := documents.Parse(entry.Name, data)
	if err != nil {
		return err
	}
	doc := documents.New(entry.Batch, entry.Name, body)

	detail := documentDetail{
		Source:  doc.Source,
		Batch:   doc.Batch,
		Name:    doc.Name,
		Kind:    string(doc.Kind),
		Version: documents.Version(body),
		Path:    entry.Path,
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(output.DetectFormat(globalFlags.Output))
	return formatter.Format(os.Stdout, detail)
}
