// Package format provides common output formatting utilities for CLI commands.
package format

import (
	"io"

	"github.com/agentstation/registermodel/internal/auth"
	"github.com/agentstation/registermodel/internal/cmd/output"
	"github.com/agentstation/registermodel/internal/cmd/table"
	"github.com/agentstation/registermodel/pkg/registry"
	"github.com/agentstation/registermodel/pkg/workflow"
)

// Availability is the structured form of a model availability check.
type Availability struct {
	Name      string          `json:"name" yaml:"name"`
	Version   string          `json:"version" yaml:"version"`
	Available bool            `json:"available" yaml:"available"`
	Model     *registry.Model `json:"model,omitempty" yaml:"model,omitempty"`
}

// AuthStatus is the structured form of a credential check.
type AuthStatus struct {
	Backend string `json:"backend" yaml:"backend"`
	State   string `json:"state" yaml:"state"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Model writes a registered model in the requested format.
func Model(w io.Writer, format string, model *registry.Model) error {
	return render(w, format, model, func(wide bool) table.Data {
		return table.ModelToTableData(model, wide)
	})
}

// Result writes the summary of a registration run.
func Result(w io.Writer, format string, result *workflow.Result) error {
	return render(w, format, result, func(wide bool) table.Data {
		return table.ResultToTableData(result, wide)
	})
}

// Available writes the result of an availability check.
func Available(w io.Writer, format string, a Availability) error {
	return render(w, format, a, func(bool) table.Data {
		return table.AvailabilityToTableData(a.Name, a.Version, a.Available)
	})
}

// Auth writes the result of a credential check.
func Auth(w io.Writer, format, backend string, status *auth.Status) error {
	data := AuthStatus{
		Backend: backend,
		State:   status.State.String(),
		Source:  status.Source,
		Summary: status.Summary,
	}
	return render(w, format, data, func(bool) table.Data {
		return table.AuthStatusToTableData(backend, status)
	})
}

// render picks table data for table formats and the structured value
// otherwise.
func render(w io.Writer, format string, data any, toTable func(wide bool) table.Data) error {
	f := output.DetectFormat(format)

	var outputData any
	switch f {
	case output.FormatTable, output.FormatWide:
		outputData = toTable(f == output.FormatWide)
	default:
		outputData = data
	}

	return output.Write(w, f, outputData)
}
