package reconciler

import (
	"github.com/agentstation/blueprint/pkg/errors"
)

// options configures a reconciler.
type options struct {
	aimPolicy       Policy
	hierarchyPolicy Policy
	mode            ValidationMode
}

func defaultOptions() *options {
	return &options{
		aimPolicy:       FirstBatch(),
		hierarchyPolicy: LatestBatch(),
		mode:            ValidationComplete,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithAimPolicy sets the winner-selection policy for aim entries.
func WithAimPolicy(policy Policy) Option {
	return func(o *options) error {
		if policy == nil {
			return &errors.ValidationError{
				Field:   "aimPolicy",
				Message: "cannot be nil",
			}
		}
		o.aimPolicy = policy
		return nil
	}
}

// WithHierarchyPolicy sets the winner-selection policy for the hierarchy.
func WithHierarchyPolicy(policy Policy) Option {
	return func(o *options) error {
		if policy == nil {
			return &errors.ValidationError{
				Field:   "hierarchyPolicy",
				Message: "cannot be nil",
			}
		}
		o.hierarchyPolicy = policy
		return nil
	}
}

// WithValidationMode sets when planner references are validated.
func WithValidationMode(mode ValidationMode) Option {
	return func(o *options) error {
		if !mode.Valid() {
			return &errors.ValidationError{
				Field:   "validation",
				Value:   mode.String(),
				Message: `must be "complete" or "scan-order"`,
			}
		}
		o.mode = mode
		return nil
	}
}
