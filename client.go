// Package blueprint provides the main entry point for the blueprint document
// reconciliation engine. It merges timestamped batches of independently
// captured documents into one canonical aggregate and reports the referential
// integrity problems found along the way.
//
// A merge run discovers batch directories under an input root, classifies
// every document (AimTable, Hierarchy, PlannerBundle), applies deterministic
// winner selection across conflicting batches, cross-validates planner
// references against the known aim and micro ids, and writes three artifacts
// into a fresh timestamped output directory: the merged aggregate, a
// structured report, and a human-readable report.
//
// Example usage:
//
//	// Merge with default settings (./imports into ./merged)
//	client, err := blueprint.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Merge(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
//	// Inspect a run without writing artifacts
//	client, err = blueprint.New(
//	    blueprint.WithInputRoot("./imports"),
//	    blueprint.WithDryRun(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err = client.Merge(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, issue := range result.Report.ReferenceIssues {
//	    fmt.Println(report.IssueLine(issue))
//	}
package blueprint

import (
	"context"

	"github.com/agentstation/blueprint/pkg/scanner"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Merger runs full reconciliations over the input root.
type Merger interface {
	// Merge runs one reconciliation over every batch under the input
	// root. It fails when the input root holds no batches at all;
	// reference issues are not failures and surface in the Result.
	Merge(ctx context.Context) (*Result, error)
}

// Lister inspects the input root without merging.
type Lister interface {
	// Batches lists the batch directories in ascending timestamp order.
	Batches() ([]string, error)

	// Documents lists every candidate document in scan order.
	Documents() ([]scanner.Entry, error)
}

// Client is the blueprint engine's entry point.
type Client interface {
	Merger
	Lister
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &client{options: options}, nil
}

// Batches lists the batch directories under the input root.
func (c *client) Batches() ([]string, error) {
	return scanner.Batches(c.options.inputRoot)
}

// Documents lists every candidate document under the input root.
func (c *client) Documents() ([]scanner.Entry, error) {
	return scanner.Scan(c.options.inputRoot)
}
