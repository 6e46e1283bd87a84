// Package app provides the application context and dependency management
// for the stationmap CLI. It centralizes configuration, logging and the
// organization registry that every command shares.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/stationmap/cmd/application"
	"github.com/agentstation/stationmap/pkg/errors"
	"github.com/agentstation/stationmap/pkg/stations"
)

// App represents the stationmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	stdout io.Writer

	// Registry (lazy-initialized, singleton)
	mu       sync.RWMutex
	registry *stations.Registry
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations and can be replaced
// with functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

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

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// APIRoot returns the configured API root.
func (a *App) APIRoot() string {
	return a.config.APIRoot
}

// Credentials returns the configured API credentials.
func (a *App) Credentials() string {
	return a.config.Credentials
}

// CredentialsFile returns the configured credentials file.
func (a *App) CredentialsFile() string {
	return a.config.CredentialsFile
}

// Registry returns the organization registry, loading it on first use.
// This is thread-safe and ensures the registry is parsed only once.
func (a *App) Registry() (*stations.Registry, error) {
	a.mu.RLock()
	if a.registry != nil {
		reg := a.registry
		a.mu.RUnlock()
		return reg, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.registry != nil {
		return a.registry, nil
	}

	var (
		reg *stations.Registry
		err error
	)
	if path := a.config.RegistryFile; path != "" {
		a.logger.Debug().Str("path", path).Msg("Loading organization registry")
		reg, err = stations.LoadRegistryFile(path)
	} else {
		reg, err = stations.DefaultRegistry()
	}
	if err != nil {
		return nil, err
	}

	a.registry = reg
	return reg, nil
}

// Shutdown performs graceful shutdown of the application. Commands run
// synchronously and hold no background resources.
func (a *App) Shutdown(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.logger.Debug().Msg("Shutdown complete")
	return nil
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

// WithRegistry sets a preloaded registry (useful for testing).
func WithRegistry(reg *stations.Registry) Option {
	return func(a *App) error {
		a.registry = reg
		return nil
	}
}

// WithOutput redirects command output (useful for testing).
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.stdout = w
		return nil
	}
}
