package blueprint_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/agentstation/blueprint"
	"github.com/agentstation/blueprint/pkg/errors"
	"github.com/agentstation/blueprint/pkg/logging"
	"github.com/agentstation/blueprint/pkg/reconciler"
)

var fixedTime = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedTime
}

// quietCtx returns a context whose logger discards everything.
func quietCtx() context.Context {
	return logging.WithLogger(context.Background(), logging.NewNopLogger())
}

// writeDoc writes one document into a batch directory under root.
func writeDoc(t *testing.T, root, batch, name, content string) {
	t.Helper()
	dir := filepath.Join(root, batch)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// seedInput lays down the standard two-batch fixture: a duplicated aim id, a
// hierarchy with one micro, and a planner with one dangling micro reference.
func seedInput(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeDoc(t, root, "20250101", "aims.json",
		`{"version": "aimtable.v1", "aims": [{"id": "A1", "title": "original"}]}`)
	writeDoc(t, root, "20250102", "aims.json",
		`{"version": "aimtable.v1", "aims": [{"id": "A1", "title": "updated"}, {"id": "A2", "title": "second"}]}`)
	writeDoc(t, root, "20250102", "hierarchy.json",
		`{"version": "hierarchy.v1", "pillars": [{"id": "P1", "subs": [{"id": "S1", "micros": [{"id": "M1"}]}]}]}`)
	writeDoc(t, root, "20250103", "planners.json",
		`{"version": "planner.v1", "projects": [{"paths": [{"slices": [{"callouts": {"positiveEffects": [{"aimId": "A1"}]}, "dod": {"includesMicros": ["M1", "M2"]}}]}]}]}`)
	return root
}

func TestMerge(t *testing.T) {
	input := seedInput(t)
	output := t.TempDir()

	client, err := blueprint.New(
		blueprint.WithInputRoot(input),
		blueprint.WithOutputRoot(output),
		blueprint.WithClock(fixedClock),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := client.Merge(quietCtx())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	wantCounts := reconciler.Counts{
		Documents:       4,
		Planners:        1,
		Aims:            2,
		Micros:          1,
		ReferenceIssues: 1,
	}
	if diff := cmp.Diff(wantCounts, result.Report.Counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}

	// First batch holds the duplicated aim id.
	if got := result.Aggregate.Aims[0]["title"]; got != "original" {
		t.Errorf("surviving A1 title = %v, want %q", got, "original")
	}

	wantSources := []string{
		"20250101/aims.json",
		"20250102/aims.json",
		"20250102/hierarchy.json",
		"20250103/planners.json",
	}
	if diff := cmp.Diff(wantSources, result.Aggregate.Sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}

	wantIssue := reconciler.ReferenceIssue{
		Type:         reconciler.IssueMicroNotFound,
		ReferencedID: "M2",
		SourceFile:   "20250103/planners.json",
		LocationPath: "projects[0].paths[0].slices[0].dod.includesMicros[1]",
	}
	if diff := cmp.Diff([]reconciler.ReferenceIssue{wantIssue}, result.Report.ReferenceIssues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}

	if result.RunID == "" || result.Report.RunID != result.RunID {
		t.Errorf("run id not threaded: result=%q report=%q", result.RunID, result.Report.RunID)
	}

	// Artifacts landed in the timestamped run directory.
	if result.Output == nil {
		t.Fatal("Output is nil for a non-dry run")
	}
	wantDir := filepath.Join(output, "20250115T120000Z")
	if result.Output.Dir != wantDir {
		t.Errorf("Output.Dir = %q, want %q", result.Output.Dir, wantDir)
	}
	for _, path := range []string{result.Output.AggregatePath, result.Output.ReportPath, result.Output.HumanPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("artifact missing: %v", err)
		}
	}

	data, err := os.ReadFile(result.Output.ReportPath)
	if err != nil {
		t.Fatalf("reading report artifact: %v", err)
	}
	var onDisk reconciler.Report
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("report artifact not valid JSON: %v", err)
	}
	if onDisk.RunID != result.RunID {
		t.Errorf("artifact run id = %q, want %q", onDisk.RunID, result.RunID)
	}
}

func TestMergeDryRun(t *testing.T) {
	input := seedInput(t)
	output := filepath.Join(t.TempDir(), "merged")

	client, err := blueprint.New(
		blueprint.WithInputRoot(input),
		blueprint.WithOutputRoot(output),
		blueprint.WithDryRun(true),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := client.Merge(quietCtx())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if !result.DryRun || result.Output != nil {
		t.Errorf("dry-run result = %+v, want no output", result)
	}
	if result.Report.Counts.ReferenceIssues != 1 {
		t.Errorf("ReferenceIssues = %d, want 1", result.Report.Counts.ReferenceIssues)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("dry-run wrote to %s", output)
	}
}

func TestMergeNoBatches(t *testing.T) {
	client, err := blueprint.New(
		blueprint.WithInputRoot(filepath.Join(t.TempDir(), "empty")),
		blueprint.WithOutputRoot(t.TempDir()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Merge(quietCtx())
	if !errors.IsNotFound(err) {
		t.Errorf("Merge() error = %v, want not-found", err)
	}
}

func TestMergeRecordsParseFailures(t *testing.T) {
	input := t.TempDir()
	writeDoc(t, input, "20250101", "aims.json",
		`{"version": "aimtable.v1", "aims": [{"id": "A1"}]}`)
	writeDoc(t, input, "20250101", "broken.json", `{"version": `)

	client, err := blueprint.New(
		blueprint.WithInputRoot(input),
		blueprint.WithDryRun(true),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := client.Merge(quietCtx())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if result.Report.Counts.Documents != 2 {
		t.Errorf("Counts.Documents = %d, want 2", result.Report.Counts.Documents)
	}
	if len(result.Report.Errors) != 1 {
		t.Fatalf("Errors = %v, want one entry", result.Report.Errors)
	}
	if diff := cmp.Diff([]string{"20250101/aims.json"}, result.Aggregate.Sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeValidationModeOption(t *testing.T) {
	input := t.TempDir()
	// Planner lands before the aim table that defines its reference.
	writeDoc(t, input, "20250101", "planners.json",
		`{"version": "planner.v1", "projects": [{"paths": [{"slices": [{"callouts": {"positiveEffects": [{"aimId": "A1"}]}}]}]}]}`)
	writeDoc(t, input, "20250102", "aims.json",
		`{"version": "aimtable.v1", "aims": [{"id": "A1"}]}`)

	run := func(mode reconciler.ValidationMode) *blueprint.Result {
		client, err := blueprint.New(
			blueprint.WithInputRoot(input),
			blueprint.WithDryRun(true),
			blueprint.WithValidationMode(mode),
		)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		result, err := client.Merge(quietCtx())
		if err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
		return result
	}

	if got := run(reconciler.ValidationComplete).Report.Counts.ReferenceIssues; got != 0 {
		t.Errorf("complete mode issues = %d, want 0", got)
	}
	if got := run(reconciler.ValidationScanOrder).Report.Counts.ReferenceIssues; got != 1 {
		t.Errorf("scan-order mode issues = %d, want 1", got)
	}
}

func TestMergeAggregateIdempotent(t *testing.T) {
	input := seedInput(t)

	readAggregate := func() []byte {
		output := t.TempDir()
		client, err := blueprint.New(
			blueprint.WithInputRoot(input),
			blueprint.WithOutputRoot(output),
			blueprint.WithClock(fixedClock),
		)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		result, err := client.Merge(quietCtx())
		if err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
		data, err := os.ReadFile(result.Output.AggregatePath)
		if err != nil {
			t.Fatalf("reading aggregate: %v", err)
		}
		return data
	}

	first := readAggregate()
	second := readAggregate()
	if string(first) != string(second) {
		t.Error("aggregate artifacts differ across identical runs")
	}
}

func TestNewOptionValidation(t *testing.T) {
	cases := []struct {
		name string
		opt  blueprint.Option
	}{
		{"empty input root", blueprint.WithInputRoot("")},
		{"empty output root", blueprint.WithOutputRoot("")},
		{"bad validation mode", blueprint.WithValidationMode("eventually")},
		{"nil aim policy", blueprint.WithAimPolicy(nil)},
		{"nil hierarchy policy", blueprint.WithHierarchyPolicy(nil)},
		{"zero read concurrency", blueprint.WithReadConcurrency(0)},
		{"excessive read concurrency", blueprint.WithReadConcurrency(1000)},
		{"nil clock", blueprint.WithClock(nil)},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := blueprint.New(tt.opt); !errors.IsValidationError(err) {
				t.Errorf("New() error = %v, want validation error", err)
			}
		})
	}
}

func TestResultSummary(t *testing.T) {
	input := seedInput(t)

	client, err := blueprint.New(blueprint.WithInputRoot(input), blueprint.WithDryRun(true))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	result, err := client.Merge(quietCtx())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	want := "merged 4 documents: 2 aims, 1 micros, 1 planners, 1 reference issues (dry-run)"
	if got := result.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestBatchesAndDocuments(t *testing.T) {
	input := seedInput(t)

	client, err := blueprint.New(blueprint.WithInputRoot(input))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	batches, err := client.Batches()
	if err != nil {
		t.Fatalf("Batches() error = %v", err)
	}
	if diff := cmp.Diff([]string{"20250101", "20250102", "20250103"}, batches); diff != "" {
		t.Errorf("batches mismatch (-want +got):\n%s", diff)
	}

	docs, err := client.Documents()
	if err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	if len(docs) != 4 {
		t.Errorf("Documents() returned %d entries, want 4", len(docs))
	}
}
