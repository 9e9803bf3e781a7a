package reconciler

import (
	"github.com/agentstation/blueprint/pkg/errors"
)

// ValidationMode selects when planner references are checked against the
// known-id sets.
type ValidationMode string

const (
	// ValidationComplete defers reference checks until every document has
	// been ingested, so only references unresolvable by the complete input
	// set are flagged. This is the default.
	ValidationComplete ValidationMode = "complete"

	// ValidationScanOrder checks each planner the moment it is ingested,
	// against the ids accumulated up to that point. A reference satisfied
	// only by a later document is still flagged.
	ValidationScanOrder ValidationMode = "scan-order"
)

// String returns the string representation of a validation mode.
func (m ValidationMode) String() string {
	return string(m)
}

// Valid reports whether the mode is one of the known modes.
func (m ValidationMode) Valid() bool {
	return m == ValidationComplete || m == ValidationScanOrder
}

// ParseValidationMode parses a mode name as given on the command line.
func ParseValidationMode(s string) (ValidationMode, error) {
	mode := ValidationMode(s)
	if !mode.Valid() {
		return "", &errors.ValidationError{
			Field:   "validation",
			Value:   s,
			Message: `must be "complete" or "scan-order"`,
		}
	}
	return mode, nil
}
