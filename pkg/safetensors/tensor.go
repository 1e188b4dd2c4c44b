package safetensors

import (
	"fmt"

	"github.com/agentstation/registermodel/pkg/errors"
)

// Tensor is a named, contiguous, little-endian buffer.
type Tensor struct {
	Name  string
	DType DType
	Shape []int64
	Data  []byte
}

// NumElements returns the product of the shape. A scalar has one element.
func (t Tensor) NumElements() int64 {
	n := int64(1)
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// Validate checks the name, type, shape and buffer length.
func (t Tensor) Validate() error {
	if t.Name == "" {
		return errors.NewValidationError("name", t.Name, "tensor name is empty")
	}
	if t.Name == metadataKey {
		return errors.NewValidationError("name", t.Name, "tensor name is reserved")
	}
	if !t.DType.Valid() {
		return errors.NewValidationError("dtype", t.DType, fmt.Sprintf("tensor %s has unknown dtype", t.Name))
	}
	for _, d := range t.Shape {
		if d < 0 {
			return errors.NewValidationError("shape", t.Shape, fmt.Sprintf("tensor %s has a negative dimension", t.Name))
		}
	}
	want := t.NumElements() * int64(t.DType.Size())
	if int64(len(t.Data)) != want {
		return errors.NewValidationError("data", len(t.Data),
			fmt.Sprintf("tensor %s has %d bytes, want %d", t.Name, len(t.Data), want))
	}
	return nil
}
