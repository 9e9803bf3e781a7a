package blueprint

import (
	"time"

	"github.com/agentstation/blueprint/pkg/constants"
	"github.com/agentstation/blueprint/pkg/errors"
	"github.com/agentstation/blueprint/pkg/reconciler"
)

// options configures a client.
type options struct {
	inputRoot       string
	outputRoot      string
	dryRun          bool
	validationMode  reconciler.ValidationMode
	aimPolicy       reconciler.Policy
	hierarchyPolicy reconciler.Policy
	readConcurrency int
	clock           func() time.Time
}

func defaultOptions() *options {
	return &options{
		inputRoot:       constants.DefaultInputRoot,
		outputRoot:      constants.DefaultOutputRoot,
		validationMode:  reconciler.ValidationComplete,
		aimPolicy:       reconciler.FirstBatch(),
		hierarchyPolicy: reconciler.LatestBatch(),
		readConcurrency: constants.DefaultReadConcurrency,
		clock:           time.Now,
	}
}

// Option is a function that configures a blueprint client.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns client options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithInputRoot sets the directory holding the timestamped batch
// directories.
func WithInputRoot(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "inputRoot",
				Message: "cannot be empty",
			}
		}
		o.inputRoot = path
		return nil
	}
}

// WithOutputRoot sets the directory run artifacts are written under.
func WithOutputRoot(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "outputRoot",
				Message: "cannot be empty",
			}
		}
		o.outputRoot = path
		return nil
	}
}

// WithDryRun suppresses artifact writes; the run's outcome is only surfaced
// through the returned Result.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}

// WithValidationMode sets when planner references are validated.
func WithValidationMode(mode reconciler.ValidationMode) Option {
	return func(o *options) error {
		if !mode.Valid() {
			return &errors.ValidationError{
				Field:   "validation",
				Value:   mode.String(),
				Message: `must be "complete" or "scan-order"`,
			}
		}
		o.validationMode = mode
		return nil
	}
}

// WithAimPolicy sets the winner-selection policy for aim entries.
func WithAimPolicy(policy reconciler.Policy) Option {
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
func WithHierarchyPolicy(policy reconciler.Policy) Option {
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

// WithReadConcurrency bounds how many document reads run in flight at once.
// Reads are prefetched; the fold itself stays strictly ordered.
func WithReadConcurrency(n int) Option {
	return func(o *options) error {
		if n < 1 || n > constants.MaxReadConcurrency {
			return &errors.ValidationError{
				Field:   "readConcurrency",
				Value:   n,
				Message: "must be between 1 and 64",
			}
		}
		o.readConcurrency = n
		return nil
	}
}

// WithClock overrides the time source used for the merge timestamp and the
// run directory name.
func WithClock(clock func() time.Time) Option {
	return func(o *options) error {
		if clock == nil {
			return &errors.ValidationError{
				Field:   "clock",
				Message: "cannot be nil",
			}
		}
		o.clock = clock
		return nil
	}
}
