package pickle

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/nlpodyssey/gopickle/pytorch"
	"github.com/nlpodyssey/gopickle/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/safetensors"
)

func floats(t *testing.T, data []byte) []float32 {
	t.Helper()
	require.Zero(t, len(data)%4)
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}

func TestMaterialize_Contiguous(t *testing.T) {
	tensor := &pytorch.Tensor{
		Source: &pytorch.FloatStorage{Data: []float32{1, 2, 3, 4, 5, 6}},
		Size:   []int{2, 3},
		Stride: []int{3, 1},
	}

	st, err := materialize("w", tensor)
	require.NoError(t, err)
	assert.Equal(t, safetensors.F32, st.DType)
	assert.Equal(t, []int64{2, 3}, st.Shape)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, floats(t, st.Data))
	assert.NoError(t, st.Validate())
}

func TestMaterialize_Transposed(t *testing.T) {
	// A 3x2 view over row-major 2x3 storage.
	tensor := &pytorch.Tensor{
		Source: &pytorch.FloatStorage{Data: []float32{1, 2, 3, 4, 5, 6}},
		Size:   []int{3, 2},
		Stride: []int{1, 3},
	}

	st, err := materialize("w.T", tensor)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, floats(t, st.Data))
}

func TestMaterialize_OffsetAndScalar(t *testing.T) {
	tensor := &pytorch.Tensor{
		Source:        &pytorch.LongStorage{Data: []int64{7, 8, 9}},
		StorageOffset: 2,
		Size:          []int{},
		Stride:        []int{},
	}

	st, err := materialize("step", tensor)
	require.NoError(t, err)
	assert.Equal(t, safetensors.I64, st.DType)
	assert.Empty(t, st.Shape)
	assert.Equal(t, uint64(9), binary.LittleEndian.Uint64(st.Data))
}

func TestMaterialize_OutOfRange(t *testing.T) {
	tensor := &pytorch.Tensor{
		Source: &pytorch.FloatStorage{Data: []float32{1}},
		Size:   []int{2},
		Stride: []int{1},
	}

	_, err := materialize("w", tensor)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrUnsupportedTensor)
}

func TestMaterialize_HalfAndBool(t *testing.T) {
	half, err := materialize("h", &pytorch.Tensor{
		Source: &pytorch.HalfStorage{Data: []float32{1.0}},
		Size:   []int{1},
		Stride: []int{1},
	})
	require.NoError(t, err)
	assert.Equal(t, safetensors.F16, half.DType)
	assert.Equal(t, uint16(0x3c00), binary.LittleEndian.Uint16(half.Data))

	mask, err := materialize("m", &pytorch.Tensor{
		Source: &pytorch.BoolStorage{Data: []bool{true, false}},
		Size:   []int{2},
		Stride: []int{1},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0}, mask.Data)
}

func TestBFloat16Bits(t *testing.T) {
	tests := []struct {
		in   float32
		want uint16
	}{
		{1.0, 0x3f80},
		{-2.0, 0xc000},
		{0, 0x0000},
		// 1 + 2^-8 is halfway between two bfloat16 values; ties go to even.
		{math.Float32frombits(0x3f808000), 0x3f80},
		{math.Float32frombits(0x3f818000), 0x3f82},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bfloat16Bits(tt.in), "input bits %#x", math.Float32bits(tt.in))
	}

	nan := bfloat16Bits(float32(math.NaN()))
	assert.Equal(t, uint16(0x7f80), nan&0x7f80)
	assert.NotZero(t, nan&0x007f)
}

func TestStateDictEntries(t *testing.T) {
	t.Run("ordered dict keeps insertion order", func(t *testing.T) {
		d := types.NewOrderedDict()
		d.Set("b", 1)
		d.Set("a", 2)

		entries, err := stateDictEntries(d)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "b", entries[0].key)
		assert.Equal(t, "a", entries[1].key)
	})

	t.Run("plain dict keeps pickled order", func(t *testing.T) {
		d := types.NewDict()
		d.Set("z", 1)
		d.Set("y", 2)
		d.Set("x", 3)

		entries, err := stateDictEntries(d)
		require.NoError(t, err)
		keys := make([]string, len(entries))
		for i, e := range entries {
			keys[i] = e.key
		}
		assert.Equal(t, []string{"z", "y", "x"}, keys)
		assert.Equal(t, 3, entries[2].value)
	})

	t.Run("plain dict with non-string key", func(t *testing.T) {
		d := types.NewDict()
		d.Set(7, 1)
		_, err := stateDictEntries(d)
		require.Error(t, err)
	})

	t.Run("non-dict root", func(t *testing.T) {
		_, err := stateDictEntries([]any{1})
		require.Error(t, err)
	})

	t.Run("non-string key", func(t *testing.T) {
		d := types.NewOrderedDict()
		d.Set(1, 2)
		_, err := stateDictEntries(d)
		require.Error(t, err)
	})
}
