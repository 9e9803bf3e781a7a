// Package constants provides shared constants used throughout the blueprint codebase.
// This includes artifact names, timestamp formats, file permissions, and default
// values that should be consistent across the application.
package constants

import "time"

// Artifact constants define the wire identity of merge outputs.
const (
	// AggregateVersion tags the canonical merged aggregate artifact.
	AggregateVersion = "blueprint.merge.v1"

	// ReportVersion tags the structured merge report artifact.
	ReportVersion = "blueprint.merge.report.v1"

	// AggregateFile is the file name of the merged aggregate inside a run directory.
	AggregateFile = "merged.json"

	// ReportFile is the file name of the structured report inside a run directory.
	ReportFile = "report.json"

	// HumanReportFile is the file name of the human-readable report inside a run directory.
	HumanReportFile = "report.md"
)

// Document version tags recognized by the classifier. Matching is a
// case-insensitive prefix check, so versioned tags like "aimtable.v2" resolve
// without code changes.
const (
	// AimTableTag prefixes version strings of aim table documents
	AimTableTag = "aimtable"

	// HierarchyTag prefixes version strings of hierarchy documents
	HierarchyTag = "hierarchy"

	// PlannerTag prefixes version strings of planner bundle documents
	PlannerTag = "planner"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Path constants
const (
	// DefaultInputRoot is the default directory scanned for document batches
	DefaultInputRoot = "imports"

	// DefaultOutputRoot is the default directory merge runs are written under
	DefaultOutputRoot = "merged"
)

// Format constants
const (
	// TimeFormatISO8601 is the timestamp format used inside artifacts
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatRunDir is the sortable compact format used to name run directories
	TimeFormatRunDir = "20060102T150405Z"

	// TimeFormatLog is the format used in log output
	TimeFormatLog = "2006-01-02 15:04:05.000"
)

// Limit constants define defaults for tunable pipeline knobs
const (
	// DefaultReadConcurrency is the default number of concurrent document reads.
	// Reads may be parallelized but ingestion stays strictly in scan order.
	DefaultReadConcurrency = 4

	// MaxReadConcurrency caps the configurable read parallelism
	MaxReadConcurrency = 64

	// DefaultDebounce is how long the watcher waits for the store to settle
	// before triggering a merge run
	DefaultDebounce = 500 * time.Millisecond

	// WatchEventBuffer is the channel buffer size for watcher events
	WatchEventBuffer = 256
)
