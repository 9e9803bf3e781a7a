package reconciler

// PolicyType identifies a winner-selection policy.
type PolicyType string

// String returns the string representation of a policy type.
func (p PolicyType) String() string {
	return string(p)
}

const (
	// PolicyTypeFirstBatch keeps the claim from the earliest batch.
	PolicyTypeFirstBatch PolicyType = "first-batch"
	// PolicyTypeLatestBatch keeps the claim from the latest batch.
	PolicyTypeLatestBatch PolicyType = "latest-batch"
)

// Claim records where a competing value was scanned from: the batch it came
// from and its absolute position in scan order. Scan position breaks ties
// between documents of the same batch.
type Claim struct {
	// Batch is the timestamp-named batch directory.
	Batch string

	// Seq is the document's position in overall scan order.
	Seq int
}

// Policy decides, given two claims on the same identity, whether the
// candidate displaces the existing holder. Policies are pure comparators so
// winner selection is testable in isolation from scanning and never depends
// on the insertion order of some backing structure.
type Policy interface {
	// Type returns the policy type.
	Type() PolicyType

	// Description returns a human-readable description.
	Description() string

	// Wins reports whether candidate displaces existing.
	Wins(existing, candidate Claim) bool
}

// firstBatch keeps the earliest claim.
type firstBatch struct{}

// FirstBatch returns the policy under which the earliest batch wins and
// later duplicates are ignored. It is the default for aim entries.
func FirstBatch() Policy {
	return firstBatch{}
}

// Type returns the policy type.
func (firstBatch) Type() PolicyType {
	return PolicyTypeFirstBatch
}

// Description returns a human-readable description.
func (firstBatch) Description() string {
	return "earliest batch wins; later duplicates are ignored"
}

// Wins reports whether candidate displaces existing.
func (firstBatch) Wins(existing, candidate Claim) bool {
	if candidate.Batch != existing.Batch {
		return candidate.Batch < existing.Batch
	}
	return candidate.Seq < existing.Seq
}

// latestBatch keeps the most recent claim.
type latestBatch struct{}

// LatestBatch returns the policy under which the latest batch wins,
// displacing anything scanned before it. It is the default for the
// hierarchy.
func LatestBatch() Policy {
	return latestBatch{}
}

// Type returns the policy type.
func (latestBatch) Type() PolicyType {
	return PolicyTypeLatestBatch
}

// Description returns a human-readable description.
func (latestBatch) Description() string {
	return "latest batch wins, replacing anything scanned earlier"
}

// Wins reports whether candidate displaces existing.
func (latestBatch) Wins(existing, candidate Claim) bool {
	if candidate.Batch != existing.Batch {
		return candidate.Batch > existing.Batch
	}
	return candidate.Seq >= existing.Seq
}
