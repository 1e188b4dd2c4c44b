package registry_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/registermodel/pkg/registry"
)

func TestIsValidModelName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"llama-2-7b-ft-0e9c", true},
		{"ABC123", true},
		{"-", true},
		{"", false},
		{"default_model_name", false},
		{"has space", false},
		{"dots.in.name", false},
		{"slash/name", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, registry.IsValidModelName(tt.name))
		})
	}
}

func TestSanitizeModelName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"already-valid-1", "already-valid-1"},
		{"default_model_name-ft-1234", "default-model-name-ft-1234"},
		{"meta/llama 2.7b", "meta-llama-2-7b"},
		{"Phi@3#mini", "Phi-3-mini"},
		{"modèle", "mod-le"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := registry.SanitizeModelName(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, registry.IsValidModelName(got))
		})
	}
}

// Strings made only of disallowed characters become all hyphens, one per rune.
func TestSanitizeModelName_OnlyDisallowed(t *testing.T) {
	inputs := []string{
		"_",
		"___",
		"!@#$%^&*()",
		" \t\n",
		"./\\",
		"日本語",
		"😀😀",
		"_.~+=",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got := registry.SanitizeModelName(in)
			assert.Equal(t, strings.Repeat("-", utf8.RuneCountInString(in)), got)
			assert.Regexp(t, registry.ValidModelNamePattern, got)
		})
	}
}

func TestParseFramework(t *testing.T) {
	f, err := registry.ParseFramework("custom")
	assert.NoError(t, err)
	assert.Equal(t, registry.FrameworkCustom, f)

	f, err = registry.ParseFramework("PRESETS")
	assert.NoError(t, err)
	assert.Equal(t, registry.FrameworkPresets, f)

	_, err = registry.ParseFramework("mlflow")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Custom, PRESETS")
}
