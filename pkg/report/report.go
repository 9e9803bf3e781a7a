// Package report renders the structured merge report as human-readable
// Markdown. Rendering is deterministic: the same report always produces the
// same text, with the Errors and Reference issues sections present only when
// they have content.
package report

import (
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/blueprint/pkg/constants"
	"github.com/agentstation/blueprint/pkg/reconciler"
)

// Render builds the Markdown rendering of a merge report.
func Render(rep *reconciler.Report) (string, error) {
	var buf strings.Builder
	doc := md.NewMarkdown(&buf)

	doc.H1("Merge Report").LF()

	meta := []string{
		"Merged at: " + rep.MergedAt.UTC().Format(constants.TimeFormatISO8601),
	}
	if rep.RunID != "" {
		meta = append(meta, "Run: "+rep.RunID)
	}
	doc.BulletList(meta...).LF()

	doc.H2("Counts").LF()
	c := rep.Counts
	doc.BulletList(
		fmt.Sprintf("Documents: %d", c.Documents),
		fmt.Sprintf("Aims: %d", c.Aims),
		fmt.Sprintf("Micros: %d", c.Micros),
		fmt.Sprintf("Planners: %d", c.Planners),
		fmt.Sprintf("Reference issues: %d", c.ReferenceIssues),
	).LF()

	if len(rep.Errors) > 0 {
		doc.H2("Errors").LF()
		doc.BulletList(rep.Errors...).LF()
	}

	if len(rep.ReferenceIssues) > 0 {
		doc.H2("Reference issues").LF()
		lines := make([]string, 0, len(rep.ReferenceIssues))
		for _, issue := range rep.ReferenceIssues {
			lines = append(lines, IssueLine(issue))
		}
		doc.BulletList(lines...).LF()
	}

	if err := doc.Build(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// IssueLine renders one reference issue as
// "[type] file → locationPath (aimId: X)".
func IssueLine(issue reconciler.ReferenceIssue) string {
	return fmt.Sprintf("[%s] %s → %s (%s: %s)",
		issue.Type, issue.SourceFile, issue.LocationPath, idLabel(issue.Type), issue.ReferencedID)
}

// idLabel names the id namespace an issue type points into.
func idLabel(t reconciler.IssueType) string {
	if t == reconciler.IssueMicroNotFound {
		return "microId"
	}
	return "aimId"
}
