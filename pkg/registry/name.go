package registry

import (
	"regexp"
)

// Underscores are accepted by the registry but deliberately excluded here so
// derived names stay consistent.
const (
	// ValidModelNamePattern is the pattern every submitted model name satisfies.
	ValidModelNamePattern = `^[a-zA-Z0-9-]+$`

	// invalidModelNameChars matches a single disallowed character.
	invalidModelNameChars = `[^a-zA-Z0-9-]`
)

var (
	validModelName   = regexp.MustCompile(ValidModelNamePattern)
	invalidNameChars = regexp.MustCompile(invalidModelNameChars)
)

// IsValidModelName reports whether name matches ValidModelNamePattern.
func IsValidModelName(name string) bool {
	return validModelName.MatchString(name)
}

// SanitizeModelName replaces every character outside [a-zA-Z0-9-] with a hyphen.
// Names that are already valid are returned unchanged.
func SanitizeModelName(name string) string {
	if IsValidModelName(name) {
		return name
	}
	return invalidNameChars.ReplaceAllString(name, "-")
}
