// Package documents defines the blueprint document model: the three document
// kinds, typed identifiers, parsing, classification, and the reference walkers
// the reconciler uses for cross-validation.
//
// Documents are parsed into generic maps rather than rigid structs so fields
// the engine does not read survive into the merged aggregate untouched.
// Structural validity is guaranteed upstream by the schema validator; this
// package only needs to read the handful of fields the merge semantics
// depend on, tolerating anything else.
package documents

// Kind identifies one of the three blueprint document kinds.
type Kind string

// Document kinds. KindUnknown marks inputs the classifier could not place;
// the reconciler records those as skipped rather than failing the run.
const (
	KindAimTable      Kind = "AimTable"
	KindHierarchy     Kind = "Hierarchy"
	KindPlannerBundle Kind = "PlannerBundle"
	KindUnknown       Kind = "unknown"
)

// String returns the kind as a string.
func (k Kind) String() string {
	return string(k)
}

// AimID identifies one aim entry. Aim and micro ids are disjoint namespaces
// by convention only, so each gets its own type to keep lookups from crossing.
type AimID string

// MicroID identifies one micro node of a hierarchy.
type MicroID string

// Document is one parsed blueprint record. It is created from a file found by
// the scanner, consumed exactly once by the reconciler, and never mutated.
type Document struct {
	// Kind is the classified document kind, or KindUnknown.
	Kind Kind

	// Batch is the timestamp-named directory the document was scanned from.
	Batch string

	// Name is the file name within the batch.
	Name string

	// Source is "<batch>/<name>", the form used in reports and the
	// aggregate's sources list.
	Source string

	// Body is the parsed document body. Nil for documents that were empty.
	Body map[string]any
}

// New builds a Document from a scanned file's parsed body, classifying it
// in the process.
func New(batch, name string, body map[string]any) *Document {
	return &Document{
		Kind:   Classify(body, name),
		Batch:  batch,
		Name:   name,
		Source: batch + "/" + name,
		Body:   body,
	}
}

// Version returns the document's embedded version tag, or "" if absent.
func Version(body map[string]any) string {
	v, _ := body["version"].(string)
	return v
}

// AimEntry is one item of an AimTable's aims list. Identity is the "id"
// field; every other field is opaque payload carried through to the
// aggregate.
type AimEntry map[string]any

// ID returns the entry's aim id. ok is false when the entry carries no
// string id, in which case the entry is not mergeable.
func (e AimEntry) ID() (AimID, bool) {
	id, ok := e["id"].(string)
	return AimID(id), ok
}

// AimEntries extracts the mergeable items of an AimTable document, in
// document order. Items without a string id are dropped.
func AimEntries(body map[string]any) []AimEntry {
	items := asSlice(body["aims"])
	if len(items) == 0 {
		return nil
	}

	entries := make([]AimEntry, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		entry := AimEntry(m)
		if _, ok := entry.ID(); !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// asMap returns v as a generic map, or nil.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asSlice returns v as a generic slice, or nil.
func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}
