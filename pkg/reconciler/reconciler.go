// Package reconciler folds classified blueprint documents into one canonical
// aggregate plus an integrity report. It handles winner selection between
// conflicting batches, cross-reference validation, and the bookkeeping that
// makes a run reproducible.
//
// Ingestion is a sequential fold. Order is batch-ascending, file-name
// ascending within a batch; callers that parallelize file reads must still
// feed documents in that order. Winner selection is delegated to pure Policy
// comparators, and reference validation runs in one of two modes (see
// ValidationMode).
package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/blueprint/pkg/constants"
	"github.com/agentstation/blueprint/pkg/documents"
)

// Reconciler is the main interface for folding documents into an aggregate.
// A Reconciler owns exactly one run's aggregation state; construct a fresh
// one per run.
type Reconciler interface {
	// Ingest folds one classified document into the aggregation state.
	// It never fails: problem documents become recorded errors or
	// reference issues in the report.
	Ingest(doc *documents.Document)

	// RecordError notes a scanned file that never became a document, such
	// as a read or parse failure. The file is excluded from aggregation
	// and the run continues.
	RecordError(source string, err error)

	// Finalize completes validation and returns the aggregate and report,
	// both stamped with mergedAt. The Reconciler must not be used after.
	Finalize(mergedAt time.Time) (*Aggregate, *Report)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	aimPolicy       Policy
	hierarchyPolicy Policy
	mode            ValidationMode
	state           *state
}

// Compile-time check that reconciler implements Reconciler.
var _ Reconciler = (*reconciler)(nil)

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		aimPolicy:       options.aimPolicy,
		hierarchyPolicy: options.hierarchyPolicy,
		mode:            options.mode,
		state:           newState(),
	}, nil
}

// aimSlot tracks the current winner for one aim id: its position in the
// aims list and the claim that put it there.
type aimSlot struct {
	index int
	claim Claim
}

// plannerCheck is one planner's references, deferred until Finalize in
// complete mode.
type plannerCheck struct {
	source string
	refs   []documents.Reference
}

// state is one run's aggregation state. It is constructed once per
// Reconciler and mutated only by the fold; nothing else touches it, so no
// locking is needed.
type state struct {
	seq       int
	documents int

	sources []string

	aims      []documents.AimEntry
	aimSlots  map[documents.AimID]*aimSlot
	knownAims map[documents.AimID]struct{}

	hierarchy      map[string]any
	hierarchyClaim *Claim
	knownMicros    map[documents.MicroID]struct{}

	planners []map[string]any
	pending  []plannerCheck

	errors []string
	issues []ReferenceIssue
}

// newState returns empty aggregation state. Slices start non-nil so the
// artifacts serialize empty lists rather than nulls.
func newState() *state {
	return &state{
		sources:     []string{},
		aims:        []documents.AimEntry{},
		aimSlots:    make(map[documents.AimID]*aimSlot),
		knownAims:   make(map[documents.AimID]struct{}),
		knownMicros: make(map[documents.MicroID]struct{}),
		planners:    []map[string]any{},
		errors:      []string{},
		issues:      []ReferenceIssue{},
	}
}

// Ingest folds one classified document into the aggregation state.
func (r *reconciler) Ingest(doc *documents.Document) {
	s := r.state
	s.documents++
	claim := Claim{Batch: doc.Batch, Seq: s.seq}
	s.seq++

	switch doc.Kind {
	case documents.KindAimTable:
		s.sources = append(s.sources, doc.Source)
		r.ingestAims(doc, claim)
	case documents.KindHierarchy:
		s.sources = append(s.sources, doc.Source)
		r.ingestHierarchy(doc, claim)
	case documents.KindPlannerBundle:
		s.sources = append(s.sources, doc.Source)
		r.ingestPlanner(doc)
	default:
		s.errors = append(s.errors, doc.Source+": unrecognized document kind, skipped")
	}
}

// RecordError notes a scanned file that never became a document.
func (r *reconciler) RecordError(source string, err error) {
	s := r.state
	s.documents++
	s.seq++
	s.errors = append(s.errors, fmt.Sprintf("%s: %v", source, err))
}

// ingestAims merges an AimTable's entries. Every id joins the known set;
// whether an entry displaces an existing winner is the aim policy's call.
func (r *reconciler) ingestAims(doc *documents.Document, claim Claim) {
	s := r.state
	for _, entry := range documents.AimEntries(doc.Body) {
		id, _ := entry.ID()
		s.knownAims[id] = struct{}{}

		slot, ok := s.aimSlots[id]
		if !ok {
			s.aimSlots[id] = &aimSlot{index: len(s.aims), claim: claim}
			s.aims = append(s.aims, entry)
			continue
		}
		if r.aimPolicy.Wins(slot.claim, claim) {
			s.aims[slot.index] = entry
			slot.claim = claim
		}
	}
}

// ingestHierarchy records a Hierarchy document. Its micro ids always join
// the known set, even when the document loses winner selection.
func (r *reconciler) ingestHierarchy(doc *documents.Document, claim Claim) {
	s := r.state
	for _, id := range documents.CollectMicroIDs(doc.Body) {
		s.knownMicros[id] = struct{}{}
	}

	if s.hierarchyClaim == nil || r.hierarchyPolicy.Wins(*s.hierarchyClaim, claim) {
		s.hierarchy = doc.Body
		c := claim
		s.hierarchyClaim = &c
	}
}

// ingestPlanner retains a PlannerBundle and collects its references. A panic
// while walking one bundle's nesting is recorded against that file and the
// fold moves on; the bundle itself stays retained.
func (r *reconciler) ingestPlanner(doc *documents.Document) {
	s := r.state
	defer func() {
		if p := recover(); p != nil {
			s.errors = append(s.errors, fmt.Sprintf("%s: planner walk failed: %v", doc.Source, p))
		}
	}()

	s.planners = append(s.planners, doc.Body)

	refs := documents.CollectPlannerRefs(doc.Body)
	if r.mode == ValidationScanOrder {
		s.validate(doc.Source, refs)
		return
	}
	s.pending = append(s.pending, plannerCheck{source: doc.Source, refs: refs})
}

// validate checks one planner's references against the known-id sets as they
// stand right now.
func (s *state) validate(source string, refs []documents.Reference) {
	for _, ref := range refs {
		switch ref.Type {
		case documents.ReferenceAim:
			if _, ok := s.knownAims[ref.Aim]; ok {
				continue
			}
			s.issues = append(s.issues, ReferenceIssue{
				Type:         IssueAimNotFound,
				ReferencedID: string(ref.Aim),
				SourceFile:   source,
				LocationPath: ref.Path,
			})
		case documents.ReferenceMicro:
			if _, ok := s.knownMicros[ref.Micro]; ok {
				continue
			}
			s.issues = append(s.issues, ReferenceIssue{
				Type:         IssueMicroNotFound,
				ReferencedID: string(ref.Micro),
				SourceFile:   source,
				LocationPath: ref.Path,
			})
		}
	}
}

// Finalize completes validation and returns the aggregate and report.
func (r *reconciler) Finalize(mergedAt time.Time) (*Aggregate, *Report) {
	s := r.state

	// In complete mode every planner was deferred; the known-id sets now
	// cover the whole input, so flagged references are truly unresolvable.
	for _, check := range s.pending {
		s.validate(check.source, check.refs)
	}
	s.pending = nil

	mergedAt = mergedAt.UTC()

	aggregate := &Aggregate{
		Version:   constants.AggregateVersion,
		MergedAt:  mergedAt,
		Sources:   s.sources,
		Aims:      s.aims,
		Hierarchy: s.hierarchy,
		Planners:  s.planners,
	}

	report := &Report{
		Version:  constants.ReportVersion,
		MergedAt: mergedAt,
		Counts: Counts{
			Documents:       s.documents,
			Planners:        len(s.planners),
			Aims:            len(s.knownAims),
			Micros:          len(s.knownMicros),
			ReferenceIssues: len(s.issues),
		},
		Errors:          s.errors,
		InvalidPlanners: []string{},
		ReferenceIssues: s.issues,
	}

	return aggregate, report
}
