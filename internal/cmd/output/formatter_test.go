package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ModelName string            `json:"model_name"`
	Version   int               `json:"version"`
	Tags      map[string]string `json:"tags"`
	Hidden    string            `json:"-"`
	internal  string
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"table", FormatTable, false},
		{"wide", FormatWide, false},
		{"", "", false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_Explicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestTableFormatter_Struct(t *testing.T) {
	f := &TableFormatter{}
	data := f.convertToTableData(&row{ModelName: "m", Version: 2, internal: "x"})
	require.NotNil(t, data)
	assert.Equal(t, []string{"Property", "Value"}, data.Headers)
	assert.Equal(t, [][]string{
		{"Model Name", "m"},
		{"Version", "2"},
		{"Tags", "-"},
	}, data.Rows)
}

func TestTableFormatter_Slice(t *testing.T) {
	f := &TableFormatter{}
	data := f.convertToTableData([]row{
		{ModelName: "a", Version: 1, Tags: map[string]string{"b": "2", "a": "1"}},
		{ModelName: "b", Version: 3},
	})
	require.NotNil(t, data)
	assert.Equal(t, []string{"Model Name", "Version", "Tags"}, data.Headers)
	assert.Equal(t, []string{"a", "1", "a=1, b=2"}, data.Rows[0])
	assert.Equal(t, []string{"b", "3", "-"}, data.Rows[1])
}

func TestTableFormatter_FallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, buf.String())
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, FormatTable, Data{
		Headers: []string{"Name", "Version"},
		Rows:    [][]string{{"llama-ft", "3"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "llama-ft")
}
