package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/registermodel/pkg/registry"
	"github.com/agentstation/registermodel/pkg/workspace"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	RegistryFunc     func(context.Context) (registry.Client, error)
	BackendFunc      func() string
	RunContextFunc   func() *workspace.RunContext
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Registry returns a client using the mock function or nil.
func (m *Mock) Registry(ctx context.Context) (registry.Client, error) {
	if m.RegistryFunc != nil {
		return m.RegistryFunc(ctx)
	}
	return nil, nil
}

// Backend returns the backend using the mock function or "local".
func (m *Mock) Backend() string {
	if m.BackendFunc != nil {
		return m.BackendFunc()
	}
	return "local"
}

// RunContext returns a run using the mock function or an offline run.
func (m *Mock) RunContext() *workspace.RunContext {
	if m.RunContextFunc != nil {
		return m.RunContextFunc()
	}
	return &workspace.RunContext{Offline: true}
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
