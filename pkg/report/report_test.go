package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/agentstation/blueprint/pkg/reconciler"
	"github.com/agentstation/blueprint/pkg/report"
)

func testReport() *reconciler.Report {
	return &reconciler.Report{
		Version:  "blueprint.merge.report.v1",
		MergedAt: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
		RunID:    "3f1c9a2e-0000-0000-0000-000000000000",
		Counts: reconciler.Counts{
			Documents:       3,
			Planners:        1,
			Aims:            2,
			Micros:          4,
			ReferenceIssues: 1,
		},
		Errors:          []string{"20250101/broken.json: unexpected end of input"},
		InvalidPlanners: []string{},
		ReferenceIssues: []reconciler.ReferenceIssue{
			{
				Type:         reconciler.IssueMicroNotFound,
				ReferencedID: "M2",
				SourceFile:   "20250102/planners.json",
				LocationPath: "projects[0].paths[0].slices[0].dod.includesMicros[1]",
			},
		},
	}
}

func TestRender(t *testing.T) {
	out, err := report.Render(testReport())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	wantLines := []string{
		"# Merge Report",
		"- Merged at: 2025-01-15T12:00:00Z",
		"- Run: 3f1c9a2e-0000-0000-0000-000000000000",
		"## Counts",
		"- Documents: 3",
		"- Aims: 2",
		"- Micros: 4",
		"- Planners: 1",
		"- Reference issues: 1",
		"## Errors",
		"- 20250101/broken.json: unexpected end of input",
		"## Reference issues",
		"- [microId-not-found] 20250102/planners.json → projects[0].paths[0].slices[0].dod.includesMicros[1] (microId: M2)",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("rendering missing %q:\n%s", want, out)
		}
	}

	// Section order is fixed.
	counts := strings.Index(out, "## Counts")
	errs := strings.Index(out, "## Errors")
	issues := strings.Index(out, "## Reference issues")
	if !(counts < errs && errs < issues) {
		t.Errorf("sections out of order: counts=%d errors=%d issues=%d", counts, errs, issues)
	}
}

func TestRenderCleanRun(t *testing.T) {
	rep := testReport()
	rep.Errors = []string{}
	rep.ReferenceIssues = []reconciler.ReferenceIssue{}
	rep.Counts.ReferenceIssues = 0

	out, err := report.Render(rep)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if strings.Contains(out, "## Errors") {
		t.Error("empty run should not render an Errors section")
	}
	if strings.Contains(out, "## Reference issues") {
		t.Error("empty run should not render a Reference issues section")
	}
	if !strings.Contains(out, "- Reference issues: 0") {
		t.Error("counts should still list the zero issue count")
	}
}

func TestRenderWithoutRunID(t *testing.T) {
	rep := testReport()
	rep.RunID = ""

	out, err := report.Render(rep)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(out, "- Run:") {
		t.Error("report without a run id should not render a Run line")
	}
}

func TestRenderDeterministic(t *testing.T) {
	first, err := report.Render(testReport())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := report.Render(testReport())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if first != second {
		t.Error("identical reports rendered differently")
	}
}

func TestIssueLine(t *testing.T) {
	tests := []struct {
		name  string
		issue reconciler.ReferenceIssue
		want  string
	}{
		{
			name: "aim issue",
			issue: reconciler.ReferenceIssue{
				Type:         reconciler.IssueAimNotFound,
				ReferencedID: "A9",
				SourceFile:   "20250102/planners.json",
				LocationPath: "projects[0].paths[0].slices[0].callouts.positiveEffects[1]",
			},
			want: "[aimId-not-found] 20250102/planners.json → projects[0].paths[0].slices[0].callouts.positiveEffects[1] (aimId: A9)",
		},
		{
			name: "micro issue",
			issue: reconciler.ReferenceIssue{
				Type:         reconciler.IssueMicroNotFound,
				ReferencedID: "M2",
				SourceFile:   "20250103/planners.json",
				LocationPath: "projects[1].paths[0].slices[2].dod.includesMicros[0]",
			},
			want: "[microId-not-found] 20250103/planners.json → projects[1].paths[0].slices[2].dod.includesMicros[0] (microId: M2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := report.IssueLine(tt.issue); got != tt.want {
				t.Errorf("IssueLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
