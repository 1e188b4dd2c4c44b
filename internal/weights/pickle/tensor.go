package pickle

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/nlpodyssey/gopickle/pytorch"
	"github.com/x448/float16"

	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/safetensors"
)

// elementWriter writes storage element i into dst.
type elementWriter func(dst []byte, i int)

// storageCodec returns the dtype and element writer for a storage.
func storageCodec(src pytorch.StorageInterface) (safetensors.DType, elementWriter, int, error) {
	le := binary.LittleEndian
	switch s := src.(type) {
	case *pytorch.DoubleStorage:
		return safetensors.F64, func(d []byte, i int) { le.PutUint64(d, math.Float64bits(s.Data[i])) }, len(s.Data), nil
	case *pytorch.FloatStorage:
		return safetensors.F32, func(d []byte, i int) { le.PutUint32(d, math.Float32bits(s.Data[i])) }, len(s.Data), nil
	case *pytorch.HalfStorage:
		return safetensors.F16, func(d []byte, i int) { le.PutUint16(d, float16.Fromfloat32(s.Data[i]).Bits()) }, len(s.Data), nil
	case *pytorch.BFloat16Storage:
		return safetensors.BF16, func(d []byte, i int) { le.PutUint16(d, bfloat16Bits(s.Data[i])) }, len(s.Data), nil
	case *pytorch.LongStorage:
		return safetensors.I64, func(d []byte, i int) { le.PutUint64(d, uint64(s.Data[i])) }, len(s.Data), nil
	case *pytorch.IntStorage:
		return safetensors.I32, func(d []byte, i int) { le.PutUint32(d, uint32(s.Data[i])) }, len(s.Data), nil
	case *pytorch.ShortStorage:
		return safetensors.I16, func(d []byte, i int) { le.PutUint16(d, uint16(s.Data[i])) }, len(s.Data), nil
	case *pytorch.CharStorage:
		return safetensors.I8, func(d []byte, i int) { d[0] = byte(s.Data[i]) }, len(s.Data), nil
	case *pytorch.ByteStorage:
		return safetensors.U8, func(d []byte, i int) { d[0] = s.Data[i] }, len(s.Data), nil
	case *pytorch.BoolStorage:
		return safetensors.BOOL, func(d []byte, i int) {
			if s.Data[i] {
				d[0] = 1
			} else {
				d[0] = 0
			}
		}, len(s.Data), nil
	default:
		return "", nil, 0, fmt.Errorf("%w: storage %T", errors.ErrUnsupportedTensor, src)
	}
}

// materialize copies a possibly strided view into a contiguous buffer.
func materialize(name string, t *pytorch.Tensor) (safetensors.Tensor, error) {
	dtype, write, storageLen, err := storageCodec(t.Source)
	if err != nil {
		return safetensors.Tensor{}, fmt.Errorf("tensor %s: %w", name, err)
	}

	shape := make([]int64, len(t.Size))
	numel := 1
	for i, d := range t.Size {
		shape[i] = int64(d)
		numel *= d
	}
	if len(t.Stride) != len(t.Size) {
		return safetensors.Tensor{}, fmt.Errorf("tensor %s: %w: stride rank %d != shape rank %d",
			name, errors.ErrUnsupportedTensor, len(t.Stride), len(t.Size))
	}

	size := dtype.Size()
	data := make([]byte, numel*size)
	idx := make([]int, len(t.Size))
	for n := 0; n < numel; n++ {
		off := t.StorageOffset
		for dim, i := range idx {
			off += i * t.Stride[dim]
		}
		if off < 0 || off >= storageLen {
			return safetensors.Tensor{}, fmt.Errorf("tensor %s: %w: element offset %d outside storage of %d",
				name, errors.ErrUnsupportedTensor, off, storageLen)
		}
		write(data[n*size:], off)

		for dim := len(idx) - 1; dim >= 0; dim-- {
			idx[dim]++
			if idx[dim] < t.Size[dim] {
				break
			}
			idx[dim] = 0
		}
	}

	return safetensors.Tensor{Name: name, DType: dtype, Shape: shape, Data: data}, nil
}

// bfloat16Bits truncates f to bfloat16 with round-to-nearest-even.
func bfloat16Bits(f float32) uint16 {
	bits := math.Float32bits(f)
	if math.IsNaN(float64(f)) {
		return uint16(bits>>16) | 0x0040
	}
	bits += 0x7fff + ((bits >> 16) & 1)
	return uint16(bits >> 16)
}
