package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/registermodel/internal/auth"
	"github.com/agentstation/registermodel/pkg/copier"
	"github.com/agentstation/registermodel/pkg/registry"
	"github.com/agentstation/registermodel/pkg/workflow"
)

func testModel() *registry.Model {
	return &registry.Model{
		ID:         "llama-ft-1:2",
		Name:       "llama-ft-1",
		Version:    "2",
		Type:       registry.FrameworkCustom,
		Properties: map[string]string{"baseModelWeightsVersion": "1.0", "baseModelId": "a/b"},
	}
}

func TestModelToTableData(t *testing.T) {
	narrow := ModelToTableData(testModel(), false)
	assert.Equal(t, []string{"Property", "Value"}, narrow.Headers)
	assert.Len(t, narrow.Rows, 4)
	assert.Equal(t, []string{"Version", "2"}, narrow.Rows[2])

	wide := ModelToTableData(testModel(), true)
	assert.Len(t, wide.Rows, 7)
	assert.Equal(t, []string{"Description", "-"}, wide.Rows[4])
	assert.Equal(t, []string{"Properties", "baseModelId=a/b, baseModelWeightsVersion=1.0"}, wide.Rows[5])
	assert.Equal(t, []string{"Tags", "-"}, wide.Rows[6])
}

func TestResultToTableData(t *testing.T) {
	result := &workflow.Result{
		Model:       testModel(),
		DetailsPath: "/out/model_registration_details.json",
		Copied:      &copier.Stats{Files: 3, Bytes: 2048},
	}
	data := ResultToTableData(result, false)
	n := len(data.Rows)
	assert.Equal(t, []string{"Details", "/out/model_registration_details.json"}, data.Rows[n-3])
	assert.Equal(t, []string{"Converted", "0 file(s)"}, data.Rows[n-2])
	assert.Equal(t, []string{"Copied", "3 file(s), 2.0 KiB"}, data.Rows[n-1])
}

func TestAuthStatusToTableData(t *testing.T) {
	tests := []struct {
		state auth.State
		want  string
	}{
		{auth.StateConfigured, "✓ Configured"},
		{auth.StateMissing, "! Missing"},
		{auth.StateInvalid, "✗ Invalid"},
		{auth.StateOptional, "- Optional"},
		{auth.State(42), "? Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			data := AuthStatusToTableData("azureml", &auth.Status{State: tt.state})
			assert.Equal(t, tt.want, data.Rows[0][1])
			assert.Equal(t, "-", data.Rows[0][2])
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KiB", FormatBytes(1536))
	assert.Equal(t, "3.0 MiB", FormatBytes(3<<20))
}

func TestAvailabilityToTableData(t *testing.T) {
	assert.Equal(t, "✓ available", AvailabilityToTableData("m", "1", true).Rows[0][2])
	assert.Equal(t, "✗ not found", AvailabilityToTableData("m", "1", false).Rows[0][2])
}
