// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/registermodel/pkg/registry"
	"github.com/agentstation/registermodel/pkg/workspace"
)

// Interface defines the application context that commands need.
// The App struct from cmd/registermodel/app implements it; tests use Mock.
type Interface interface {
	// Registry returns the configured registry client, creating it lazily
	// on first use. The same client is returned on every call.
	Registry(ctx context.Context) (registry.Client, error)

	// Backend returns the configured registry backend name.
	Backend() string

	// RunContext returns the pipeline run the process executes in.
	RunContext() *workspace.RunContext

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
