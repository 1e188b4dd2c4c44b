// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols shared by commands that print check results.
const (
	// Success marks a configured credential or an available model.
	Success = "✓"

	// Error marks a missing model or an invalid credential.
	Error = "✗"

	// Warning marks a fallback that may not work in every environment.
	Warning = "!"

	// Optional marks a check that does not apply.
	Optional = "-"

	// Unknown marks an unrecognized state.
	Unknown = "?"
)
