package pickle

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/safetensors"
)

func byName(tensors []safetensors.Tensor) map[string]safetensors.Tensor {
	out := make(map[string]safetensors.Tensor, len(tensors))
	for _, t := range tensors {
		out[t.Name] = t
	}
	return out
}

func int64s(data []byte) []int64 {
	out := make([]int64, len(data)/8)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return out
}

func TestLoader_Load(t *testing.T) {
	tensors, err := New().Load(filepath.Join("testdata", "state_dict.pt"))
	require.NoError(t, err)

	names := make([]string, len(tensors))
	for i, tensor := range tensors {
		names[i] = tensor.Name
	}
	assert.Equal(t, []string{"lora_A.weight", "lora_B.weight", "scale", "step"}, names)

	got := byName(tensors)

	a := got["lora_A.weight"]
	assert.Equal(t, safetensors.F32, a.DType)
	assert.Equal(t, []int64{2, 3}, a.Shape)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, floats(t, a.Data))

	b := got["lora_B.weight"]
	assert.Equal(t, safetensors.F32, b.DType)
	assert.Equal(t, []int64{3, 2}, b.Shape)
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, floats(t, b.Data), "transposed view is stored contiguously")

	scale := got["scale"]
	assert.Equal(t, safetensors.F16, scale.DType)
	assert.Empty(t, scale.Shape)
	assert.Equal(t, []byte{0x00, 0x38}, scale.Data)

	step := got["step"]
	assert.Equal(t, safetensors.I64, step.DType)
	assert.Equal(t, []int64{2}, step.Shape)
	assert.Equal(t, []int64{8, 9}, int64s(step.Data))
}

func TestLoader_LoadPlainDict(t *testing.T) {
	tensors, err := New().Load(filepath.Join("testdata", "plain_dict.pt"))
	require.NoError(t, err)
	require.Len(t, tensors, 1)
	assert.Equal(t, "w", tensors[0].Name)
	assert.Equal(t, []int64{2}, tensors[0].Shape)
	assert.Equal(t, []float32{1.5, -2}, floats(t, tensors[0].Data))
}

func TestLoader_LoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := New().Load(filepath.Join(t.TempDir(), "nope.bin"))
		var parseErr *pkgerrors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "pickle", parseErr.Format)
	})

	t.Run("not a checkpoint", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "adapter_model.bin")
		require.NoError(t, os.WriteFile(path, []byte("not a pickle"), 0o644))
		_, err := New().Load(path)
		require.Error(t, err)
	})
}
