// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/registermodel/internal/auth"
	"github.com/agentstation/registermodel/internal/cmd/emoji"
	"github.com/agentstation/registermodel/pkg/registry"
	"github.com/agentstation/registermodel/pkg/workflow"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ModelToTableData converts a registered model to a property/value table.
// Properties and tags are only listed when wide is set.
func ModelToTableData(model *registry.Model, wide bool) Data {
	rows := [][]string{
		{"ID", orDash(model.ID)},
		{"Name", model.Name},
		{"Version", model.Version},
		{"Type", orDash(model.Type.String())},
	}
	if wide {
		rows = append(rows,
			[]string{"Description", orDash(model.Description)},
			[]string{"Properties", FormatMap(model.Properties)},
			[]string{"Tags", FormatMap(model.Tags)},
		)
	}
	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// ResultToTableData summarizes a registration run.
func ResultToTableData(result *workflow.Result, wide bool) Data {
	data := ModelToTableData(result.Model, wide)
	data.Rows = append(data.Rows,
		[]string{"Details", result.DetailsPath},
		[]string{"Converted", fmt.Sprintf("%d file(s)", len(result.Converted))},
	)
	if result.Copied != nil {
		data.Rows = append(data.Rows, []string{"Copied",
			fmt.Sprintf("%d file(s), %s", result.Copied.Files, FormatBytes(result.Copied.Bytes))})
	}
	return data
}

// AvailabilityToTableData reports whether a model version is registered.
func AvailabilityToTableData(name, version string, available bool) Data {
	status := emoji.Success + " available"
	if !available {
		status = emoji.Error + " not found"
	}
	return Data{
		Headers:         []string{"Name", "Version", "Status"},
		Rows:            [][]string{{name, version, status}},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
}

// AuthStatusToTableData converts a credential check into table rows.
func AuthStatusToTableData(backend string, status *auth.Status) Data {
	symbol, label := getStatusDisplay(status.State)
	return Data{
		Headers: []string{"Backend", "Status", "Source", "Details"},
		Rows: [][]string{{
			backend,
			symbol + " " + label,
			orDash(status.Source),
			orDash(status.Summary),
		}},
	}
}

func getStatusDisplay(state auth.State) (string, string) {
	switch state {
	case auth.StateConfigured:
		return emoji.Success, "Configured"
	case auth.StateMissing:
		return emoji.Warning, "Missing"
	case auth.StateInvalid:
		return emoji.Error, "Invalid"
	case auth.StateOptional:
		return emoji.Optional, "Optional"
	default:
		return emoji.Unknown, "Unknown"
	}
}

// FormatMap renders a string map as sorted key=value pairs.
func FormatMap(m map[string]string) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + m[k]
	}
	return strings.Join(parts, ", ")
}

// FormatBytes formats a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
