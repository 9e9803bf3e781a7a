// Package app provides the application context and dependency management
// for the blueprint CLI. It follows idiomatic Go patterns for CLI applications
// by centralizing configuration, dependency injection, and lifecycle management.
package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/blueprint"
	"github.com/agentstation/blueprint/pkg/errors"
	"github.com/agentstation/blueprint/pkg/reconciler"
)

// App represents the blueprint application with all its dependencies.
// It provides a centralized place for configuration, logging, and
// the blueprint client, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Blueprint client (lazy-initialized, singleton)
	mu     sync.RWMutex
	client blueprint.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the blueprint client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (blueprint.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	// Create client with options from config
	c, err := blueprint.New(a.ClientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = c
	return c, nil
}

// ClientWithOptions returns a new blueprint client built from the app
// configuration plus the given overrides. This is useful for commands that
// need specific configurations different from the default app instance
// (e.g., merge with --input or --dry-run).
func (a *App) ClientWithOptions(opts ...blueprint.Option) (blueprint.Client, error) {
	combined := append(a.ClientOptions(), opts...)
	c, err := blueprint.New(combined...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "with custom options", err)
	}
	return c, nil
}

// ClientOptions constructs blueprint options from the app configuration.
func (a *App) ClientOptions() []blueprint.Option {
	opts := []blueprint.Option{
		blueprint.WithInputRoot(a.config.InputRoot),
		blueprint.WithOutputRoot(a.config.OutputRoot),
		blueprint.WithReadConcurrency(a.config.ReadConcurrency),
	}

	if a.config.ValidationMode != "" {
		// LoadConfig already validated the mode string
		if mode, err := reconciler.ParseValidationMode(a.config.ValidationMode); err == nil {
			opts = append(opts, blueprint.WithValidationMode(mode))
		}
	}

	return opts
}

// InputRoot returns the configured import root directory.
func (a *App) InputRoot() string {
	return a.config.InputRoot
}

// Debounce returns the configured watch debounce window.
func (a *App) Debounce() time.Duration {
	return a.config.Debounce
}

// OutputFormat returns the configured output format (json, yaml, table).
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom blueprint client (useful for testing).
func WithClient(c blueprint.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
