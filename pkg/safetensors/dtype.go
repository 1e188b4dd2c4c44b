package safetensors

import (
	"fmt"
	"strings"
)

// DType names an element type in the header.
type DType string

// Element types.
const (
	F64  DType = "F64"
	F32  DType = "F32"
	F16  DType = "F16"
	BF16 DType = "BF16"
	I64  DType = "I64"
	I32  DType = "I32"
	I16  DType = "I16"
	I8   DType = "I8"
	U8   DType = "U8"
	BOOL DType = "BOOL"
)

var dtypeSizes = map[DType]int{
	F64:  8,
	F32:  4,
	F16:  2,
	BF16: 2,
	I64:  8,
	I32:  4,
	I16:  2,
	I8:   1,
	U8:   1,
	BOOL: 1,
}

// Size returns the element size in bytes, or 0 for an unknown type.
func (d DType) Size() int {
	return dtypeSizes[d]
}

// Valid reports whether d is a known element type.
func (d DType) Valid() bool {
	_, ok := dtypeSizes[d]
	return ok
}

// String implements fmt.Stringer.
func (d DType) String() string {
	return string(d)
}

// ParseDType parses a type name case-insensitively.
func ParseDType(s string) (DType, error) {
	d := DType(strings.ToUpper(s))
	if !d.Valid() {
		return "", fmt.Errorf("unknown dtype %q", s)
	}
	return d, nil
}
