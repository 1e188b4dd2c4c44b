package show

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registermodel/internal/appcontext"
	"github.com/agentstation/registermodel/pkg/details"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/registry"
)

func TestShow(t *testing.T) {
	folder := t.TempDir()
	model := &registry.Model{
		ID:         "llama-ft:2",
		Name:       "llama-ft",
		Version:    "2",
		Type:       registry.FrameworkCustom,
		Properties: map[string]string{"baseModelWeightsVersion": "1.0"},
		Tags:       map[string]string{},
	}
	_, err := details.Write(context.Background(), folder, model)
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := NewCommand(&appcontext.Mock{})
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--registration_details_folder", folder})
	require.NoError(t, cmd.Execute())

	var got registry.Model
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, *model, got)
}

func TestShow_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(error) bool
	}{
		{"missing folder flag", nil, errors.IsValidationError},
		{"no details file", []string{"--registration_details_folder", t.TempDir()}, errors.IsNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCommand(&appcontext.Mock{})
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}
