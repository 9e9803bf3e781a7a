package blueprint

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/blueprint/pkg/documents"
	"github.com/agentstation/blueprint/pkg/errors"
	"github.com/agentstation/blueprint/pkg/logging"
	"github.com/agentstation/blueprint/pkg/reconciler"
	"github.com/agentstation/blueprint/pkg/report"
	"github.com/agentstation/blueprint/pkg/save"
	"github.com/agentstation/blueprint/pkg/scanner"
)

// Result is the outcome of one merge run.
type Result struct {
	// Aggregate is the canonical merged snapshot.
	Aggregate *reconciler.Aggregate

	// Report is the structured account of the run.
	Report *reconciler.Report

	// Human is the rendered Markdown report.
	Human string

	// RunID identifies this run in logs and the report.
	RunID string

	// Output locates the written artifacts. Nil in dry-run mode.
	Output *save.Run

	// DryRun reports whether artifact writes were suppressed.
	DryRun bool

	// Duration is the wall-clock time the run took.
	Duration time.Duration
}

// Summary returns a one-line account of the run for status output.
func (r *Result) Summary() string {
	s := r.Report.Summary()
	if r.DryRun {
		return s + " (dry-run)"
	}
	if r.Output != nil {
		return s + " → " + r.Output.Dir
	}
	return s
}

// Merge runs one full reconciliation over every batch under the input root.
func (c *client) Merge(ctx context.Context) (*Result, error) {
	start := time.Now()

	runID := uuid.NewString()
	ctx = logging.WithRun(ctx, runID)
	logger := logging.FromContext(ctx)

	batches, err := scanner.Batches(c.options.inputRoot)
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, &errors.NotFoundError{
			Resource: "batches under " + c.options.inputRoot,
		}
	}

	entries, err := scanner.Scan(c.options.inputRoot)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("input", c.options.inputRoot).
		Int("batches", len(batches)).
		Int("documents", len(entries)).
		Msg("Scanned input root")

	docs, failures := c.read(entries)

	rec, err := reconciler.New(
		reconciler.WithAimPolicy(c.options.aimPolicy),
		reconciler.WithHierarchyPolicy(c.options.hierarchyPolicy),
		reconciler.WithValidationMode(c.options.validationMode),
	)
	if err != nil {
		return nil, err
	}

	// The fold must see documents in scan order even though reads were
	// concurrent.
	for i, entry := range entries {
		if failures[i] != nil {
			logger.Warn().
				Str("document", entry.Source()).
				Err(failures[i]).
				Msg("Skipping unreadable document")
			rec.RecordError(entry.Source(), failures[i])
			continue
		}
		logger.Debug().
			Str("document", entry.Source()).
			Str("kind", docs[i].Kind.String()).
			Msg("Ingesting document")
		rec.Ingest(docs[i])
	}

	mergedAt := c.options.clock().UTC().Truncate(time.Second)
	aggregate, rep := rec.Finalize(mergedAt)
	rep.RunID = runID

	human, err := report.Render(rep)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Aggregate: aggregate,
		Report:    rep,
		Human:     human,
		RunID:     runID,
		DryRun:    c.options.dryRun,
	}

	logger.Info().
		Int("aims", rep.Counts.Aims).
		Int("micros", rep.Counts.Micros).
		Int("planners", rep.Counts.Planners).
		Int("errors", len(rep.Errors)).
		Int("reference_issues", rep.Counts.ReferenceIssues).
		Msg("Reconciliation complete")

	if c.options.dryRun {
		logger.Info().Msg("Dry-run, skipping artifact writes")
		result.Duration = time.Since(start)
		return result, nil
	}

	run, err := save.Artifacts(c.options.outputRoot, aggregate, rep, human, save.WithClock(c.options.clock))
	if err != nil {
		return nil, err
	}
	result.Output = run
	result.Duration = time.Since(start)

	logger.Info().
		Str("dir", run.Dir).
		Dur("duration", result.Duration).
		Msg("Merge artifacts written")

	return result, nil
}

// read loads and parses every entry with bounded concurrency. Results come
// back positionally: docs[i] or failures[i] is set for entries[i], so the
// caller can replay them in scan order.
func (c *client) read(entries []scanner.Entry) ([]*documents.Document, []error) {
	docs := make([]*documents.Document, len(entries))
	failures := make([]error, len(entries))

	var g errgroup.Group
	g.SetLimit(c.options.readConcurrency)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			data, err := os.ReadFile(entry.Path)
			if err != nil {
				failures[i] = errors.WrapIO("read", entry.Path, err)
				return nil
			}
			body, err := documents.Parse(entry.Name, data)
			if err != nil {
				failures[i] = err
				return nil
			}
			docs[i] = documents.New(entry.Batch, entry.Name, body)
			return nil
		})
	}
	// Workers never return errors; per-file failures ride in the slice.
	_ = g.Wait()

	return docs, failures
}
