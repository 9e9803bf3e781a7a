package save

import "time"

// Options is the configuration for save.
type Options struct {
	clock   func() time.Time
	dirName string
}

// Clock returns the timestamp source for naming the run directory.
func (s *Options) Clock() func() time.Time {
	return s.clock
}

// DirName returns the pinned run directory name, or "".
func (s *Options) DirName() string {
	return s.dirName
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		clock: time.Now,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithClock overrides the timestamp source used to name the run directory.
func WithClock(clock func() time.Time) Option {
	return func(s *Options) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDirName pins the run directory name instead of deriving it from the
// clock.
func WithDirName(name string) Option {
	return func(s *Options) {
		s.dirName = name
	}
}
