// Package registry defines the model registry contract used by the
// registration workflow: the registered model record, the client interface
// implemented by each backend, and the registrar that sanitizes names and
// submits registrations.
package registry

import (
	"context"
	"strings"

	"github.com/agentstation/registermodel/pkg/errors"
)

// Framework is the framework/type tag attached to a registered model.
type Framework string

// Supported framework tags.
const (
	FrameworkCustom  Framework = "Custom"
	FrameworkPresets Framework = "PRESETS"
)

// Frameworks lists the supported framework tags in display order.
var Frameworks = []Framework{FrameworkCustom, FrameworkPresets}

// String returns the framework tag.
func (f Framework) String() string {
	return string(f)
}

// ParseFramework matches s case-insensitively against the supported tags.
func ParseFramework(s string) (Framework, error) {
	for _, f := range Frameworks {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", errors.NewValidationError("model_type", s,
		"must be one of "+strings.Join(frameworkNames(), ", "))
}

func frameworkNames() []string {
	names := make([]string, len(Frameworks))
	for i, f := range Frameworks {
		names[i] = string(f)
	}
	return names
}

// Model is the registry's representation of a registered model.
// Field order matches the registration details file.
type Model struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Version     string            `json:"version" yaml:"version"`
	Type        Framework         `json:"type" yaml:"type"`
	Properties  map[string]string `json:"properties" yaml:"properties"`
	Tags        map[string]string `json:"tags" yaml:"tags"`
	Description string            `json:"description" yaml:"description"`
}

// Request describes a create-or-update registration.
type Request struct {
	// Name is the sanitized model name.
	Name string
	// Path is the local model directory.
	Path string
	// URI is the registry-visible artifact location. Backends that store the
	// artifact themselves may ignore it.
	URI         string
	Type        Framework
	Description string
	Tags        map[string]string
	Properties  map[string]string
}

// Client is implemented by every registry backend.
//
// Register creates a new version of the named model, creating the model
// itself when it does not exist yet. Get returns a single version or an
// error wrapping errors.ErrNotFound.
type Client interface {
	Register(ctx context.Context, req Request) (*Model, error)
	Get(ctx context.Context, name, version string) (*Model, error)
}
