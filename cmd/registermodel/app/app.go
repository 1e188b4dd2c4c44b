// Package app provides the application context and dependency management
// for the registermodel CLI. It centralizes configuration, logging and the
// registry client shared by every command.
package app

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/registermodel/internal/auth"
	"github.com/agentstation/registermodel/internal/cmd/globals"
	"github.com/agentstation/registermodel/internal/registry/azureml"
	"github.com/agentstation/registermodel/internal/registry/local"
	"github.com/agentstation/registermodel/internal/storage/blob"
	"github.com/agentstation/registermodel/internal/transport"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
	"github.com/agentstation/registermodel/pkg/registry"
	"github.com/agentstation/registermodel/pkg/workspace"
)

// Registry backends.
const (
	BackendAzureML = "azureml"
	BackendLocal   = "local"
)

// App represents the registermodel application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	flags  *globals.Flags
	logger *zerolog.Logger
	run    *workspace.RunContext

	// Registry client (lazy-initialized, singleton)
	mu       sync.RWMutex
	registry registry.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that can
// be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger
	app.run = workspace.CurrentRun()

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

// Backend returns the normalized registry backend name.
func (a *App) Backend() string {
	backend := strings.ToLower(strings.TrimSpace(a.config.Registry))
	if backend == "" {
		return BackendAzureML
	}
	return backend
}

// RunContext returns the pipeline run read from the environment at startup.
func (a *App) RunContext() *workspace.RunContext {
	return a.run
}

// Registry returns the registry client, creating it lazily if needed.
// This is thread-safe and ensures only one client is created.
func (a *App) Registry(ctx context.Context) (registry.Client, error) {
	a.mu.RLock()
	if a.registry != nil {
		client := a.registry
		a.mu.RUnlock()
		return client, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.registry != nil {
		return a.registry, nil
	}

	client, err := a.buildRegistry(logging.WithLogger(ctx, a.logger))
	if err != nil {
		return nil, errors.WrapResource("create", "registry", a.Backend(), err)
	}

	a.registry = client
	return client, nil
}

// buildRegistry constructs the client for the configured backend.
func (a *App) buildRegistry(ctx context.Context) (registry.Client, error) {
	switch a.Backend() {
	case BackendLocal:
		if a.config.LocalRegistryPath == "" {
			return nil, errors.NewConfigError("registry", "local_registry_path is not set", nil)
		}
		a.logger.Debug().Str("path", a.config.LocalRegistryPath).Msg("Using local registry")
		return local.New(a.config.LocalRegistryPath), nil

	case BackendAzureML:
		ws, err := workspace.Resolve(ctx, a.run, a.config.WorkspaceConfig)
		if err != nil {
			return nil, err
		}
		source, err := auth.ForRun(a.run)
		if err != nil {
			return nil, err
		}
		t := transport.New(&transport.BearerAuth{Source: source},
			transport.WithTimeout(a.config.HTTPTimeout),
			transport.WithUserAgent("registermodel/"+a.version),
		)
		a.logger.Debug().Str("workspace", ws.String()).Msg("Using Azure ML registry")
		return azureml.New(t, ws,
			azureml.WithEndpoint(a.config.ARMEndpoint),
			azureml.WithAPIVersion(a.config.ARMAPIVersion),
			azureml.WithUploader(blob.NewUploader()),
		)

	default:
		return nil, errors.NewConfigError("registry", "unknown backend "+a.config.Registry+": must be azureml or local", nil)
	}
}

// Shutdown releases the registry client. Registration runs to completion or
// fails; nothing runs in the background.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	a.registry = nil
	a.mu.Unlock()

	a.logger.Debug().Msg("Shutdown complete")
	return ctx.Err()
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

// WithRegistry sets a custom registry client (useful for testing).
func WithRegistry(client registry.Client) Option {
	return func(a *App) error {
		a.registry = client
		return nil
	}
}

// WithRunContext overrides the run context read from the environment.
func WithRunContext(run *workspace.RunContext) Option {
	return func(a *App) error {
		a.run = run
		return nil
	}
}
