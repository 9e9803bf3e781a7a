package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/blueprint/pkg/documents"
)

// Aggregate is the canonical merged snapshot of every contributing document,
// serialized as the blueprint.merge.v1 artifact. Field order is part of the
// wire shape.
type Aggregate struct {
	// Version tags the artifact shape.
	Version string `json:"version"`

	// MergedAt is the run instant, UTC.
	MergedAt time.Time `json:"mergedAt"`

	// Sources lists every contributing file as "<batch>/<name>", in scan
	// order. Files that failed to parse or classify are absent.
	Sources []string `json:"sources"`

	// Aims holds the winning aim entries in first-occurrence order.
	Aims []documents.AimEntry `json:"aims"`

	// Hierarchy is the winning hierarchy body, or null when no batch
	// carried one.
	Hierarchy map[string]any `json:"hierarchy"`

	// Planners holds every retained planner bundle body in scan order.
	Planners []map[string]any `json:"planners"`
}

// Report is the structured account of one reconciliation run, serialized as
// the blueprint.merge.report.v1 artifact.
type Report struct {
	// Version tags the artifact shape.
	Version string `json:"version"`

	// MergedAt is the run instant, UTC.
	MergedAt time.Time `json:"mergedAt"`

	// RunID is assigned per run by the caller. It lives only in the
	// report; the aggregate stays byte-identical across re-runs over
	// unchanged input.
	RunID string `json:"runId"`

	// Counts summarizes the run.
	Counts Counts `json:"counts"`

	// Errors lists per-file failures as descriptive strings: parse
	// failures, unrecognized kinds, planner walks that crashed.
	Errors []string `json:"errors"`

	// InvalidPlanners is retained for wire compatibility with consumers of
	// earlier report versions. Structural validation happens upstream, so
	// it is always empty here.
	InvalidPlanners []string `json:"invalidPlanners"`

	// ReferenceIssues lists every dangling reference found by validation.
	ReferenceIssues []ReferenceIssue `json:"referenceIssues"`
}

// Counts summarizes one reconciliation run.
type Counts struct {
	// Documents is the total number of files scanned, including ones that
	// failed to parse or classify.
	Documents int `json:"documents"`

	// Planners is the number of planner bundles retained.
	Planners int `json:"planners"`

	// Aims is the number of distinct aim ids across all scanned aim
	// tables, winners and losers alike.
	Aims int `json:"aims"`

	// Micros is the number of distinct micro ids across all scanned
	// hierarchies, not only the winning one.
	Micros int `json:"micros"`

	// ReferenceIssues is the number of dangling references found.
	ReferenceIssues int `json:"referenceIssues"`
}

// IssueType names a reference-issue category.
type IssueType string

// Issue types, one per id namespace a planner can dangle into.
const (
	IssueAimNotFound   IssueType = "aimId-not-found"
	IssueMicroNotFound IssueType = "microId-not-found"
)

// ReferenceIssue is one dangling id reference found during validation.
type ReferenceIssue struct {
	// Type is the issue category.
	Type IssueType `json:"type"`

	// ReferencedID is the id that could not be resolved.
	ReferencedID string `json:"referencedId"`

	// SourceFile is the planner document holding the reference, as
	// "<batch>/<name>".
	SourceFile string `json:"sourceFile"`

	// LocationPath locates the reference inside the document.
	LocationPath string `json:"locationPath"`
}

// HasIssues reports whether the run found any dangling references.
func (r *Report) HasIssues() bool {
	return len(r.ReferenceIssues) > 0
}

// Clean reports whether the run completed without errors or issues.
func (r *Report) Clean() bool {
	return len(r.Errors) == 0 && len(r.ReferenceIssues) == 0
}

// Summary returns a one-line human-readable summary of the run.
func (r *Report) Summary() string {
	c := r.Counts
	return fmt.Sprintf("merged %d documents: %d aims, %d micros, %d planners, %d reference issues",
		c.Documents, c.Aims, c.Micros, c.Planners, c.ReferenceIssues)
}
