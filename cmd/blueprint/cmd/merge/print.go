package merge

import (
	"fmt"
	"os"

	"github.com/agentstation/blueprint"
	"github.com/agentstation/blueprint/pkg/report"
)

// displayResultSummary shows a human summary of the merge on stderr.
func displayResultSummary(result *blueprint.Result) {
	fmt.Fprintf(os.Stderr, "✅ %s\n", result.Summary())

	rep := result.Report

	if len(rep.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "\n⚠️  Document errors:\n")
		for _, msg := range rep.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", msg)
		}
	}

	if len(rep.ReferenceIssues) > 0 {
		fmt.Fprintf(os.Stderr, "\n⚠️  Reference issues:\n")
		for _, issue := range rep.ReferenceIssues {
			fmt.Fprintf(os.Stderr, "  %s\n", report.IssueLine(issue))
		}
	}
}
