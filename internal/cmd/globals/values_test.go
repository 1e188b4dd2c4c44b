package globals

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/registry"
)

func TestParseStrictBool(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"false", false, false},
		{"False", false, false},
		{"0", false, false},
		{"yes", false, true},
		{"maybe", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrictBool("convert_to_safetensors", tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrictBoolFlag(t *testing.T) {
	var convert bool
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().Var(NewStrictBool("convert_to_safetensors", &convert, false), "convert_to_safetensors", "")

	cmd.SetArgs([]string{"--convert_to_safetensors", "1"})
	require.NoError(t, cmd.Execute())
	assert.True(t, convert)

	cmd.SetArgs([]string{"--convert_to_safetensors", "maybe"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of true, 1, false, 0")
}

func TestFrameworkValue(t *testing.T) {
	var f registry.Framework
	v := NewFrameworkValue(&f, registry.FrameworkCustom)
	assert.Equal(t, "Custom", v.String())

	require.NoError(t, v.Set("presets"))
	assert.Equal(t, registry.FrameworkPresets, f)

	err := v.Set("onnx")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, registry.FrameworkPresets, f)
}

func TestAddFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	flags := AddFlags(cmd)

	cmd.SetArgs([]string{"-o", "yaml", "-v", "--registry", "local", "--local_registry_path", "/tmp/reg"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "yaml", flags.Format)
	assert.True(t, flags.Verbose)
	assert.Equal(t, "local", flags.Registry)
	assert.Equal(t, "/tmp/reg", flags.LocalRegistryPath)
}
