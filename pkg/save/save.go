// Package save writes one merge run's artifacts into a fresh timestamped
// directory under the output root. Every run gets its own directory; nothing
// is ever overwritten across runs, and a timestamp collision simply lands in
// the same directory.
package save

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/agentstation/blueprint/pkg/constants"
	"github.com/agentstation/blueprint/pkg/errors"
	"github.com/agentstation/blueprint/pkg/reconciler"
)

// Run locates the artifacts of one completed save.
type Run struct {
	// Dir is the created run directory.
	Dir string

	// AggregatePath is the merged aggregate artifact.
	AggregatePath string

	// ReportPath is the structured report artifact.
	ReportPath string

	// HumanPath is the human-readable report.
	HumanPath string
}

// Artifacts writes the aggregate, the structured report, and the rendered
// human report under root, inside a new directory named by the current UTC
// instant. Parent directories are created as needed.
func Artifacts(root string, aggregate *reconciler.Aggregate, rep *reconciler.Report, human string, opts ...Option) (*Run, error) {
	options := Defaults().Apply(opts...)

	name := options.DirName()
	if name == "" {
		name = options.Clock()().UTC().Format(constants.TimeFormatRunDir)
	}

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}

	run := &Run{
		Dir:           dir,
		AggregatePath: filepath.Join(dir, constants.AggregateFile),
		ReportPath:    filepath.Join(dir, constants.ReportFile),
		HumanPath:     filepath.Join(dir, constants.HumanReportFile),
	}

	if err := writeJSON(run.AggregatePath, aggregate); err != nil {
		return nil, err
	}
	if err := writeJSON(run.ReportPath, rep); err != nil {
		return nil, err
	}
	if err := os.WriteFile(run.HumanPath, []byte(human), constants.FilePermissions); err != nil {
		return nil, errors.WrapIO("write", run.HumanPath, err)
	}

	return run, nil
}

// writeJSON marshals v with two-space indentation and a trailing newline,
// the layout diff-friendly tooling expects.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WrapIO("encode", path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
