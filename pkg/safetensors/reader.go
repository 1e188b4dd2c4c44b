package safetensors

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/agentstation/registermodel/pkg/errors"
)

// maxHeaderSize bounds the header read from untrusted files.
const maxHeaderSize = 100 << 20

// Header is the decoded JSON header.
type Header struct {
	Metadata map[string]string
	Tensors  map[string]Entry
}

// Names returns tensor names ordered by data offset.
func (h *Header) Names() []string {
	names := make([]string, 0, len(h.Tensors))
	for name := range h.Tensors {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return h.Tensors[names[i]].DataOffsets[0] < h.Tensors[names[j]].DataOffsets[0]
	})
	return names
}

// DataSize returns the byte length of the data section.
func (h *Header) DataSize() int64 {
	var end int64
	for _, e := range h.Tensors {
		if e.DataOffsets[1] > end {
			end = e.DataOffsets[1]
		}
	}
	return end
}

// ReadHeader decodes the length prefix and header from r, leaving r
// positioned at the start of the data section.
func ReadHeader(r io.Reader) (*Header, error) {
	var size [8]byte
	if _, err := io.ReadFull(r, size[:]); err != nil {
		return nil, errors.NewParseError("safetensors", "", "read header length", err)
	}
	n := binary.LittleEndian.Uint64(size[:])
	if n > maxHeaderSize {
		return nil, errors.NewParseError("safetensors", "", fmt.Sprintf("header length %d exceeds limit", n), nil)
	}

	raw := make([]byte, n)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, errors.NewParseError("safetensors", "", "read header", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.WrapParse("safetensors", "", err)
	}

	h := &Header{Tensors: make(map[string]Entry, len(fields))}
	for name, value := range fields {
		if name == metadataKey {
			if err := json.Unmarshal(value, &h.Metadata); err != nil {
				return nil, errors.WrapParse("safetensors", "", err)
			}
			continue
		}
		var e Entry
		if err := json.Unmarshal(value, &e); err != nil {
			return nil, errors.WrapParse("safetensors", "", err)
		}
		h.Tensors[name] = e
	}
	return h, nil
}

// ReadFile reads the header and every tensor from path.
func ReadFile(path string) (*Header, []Tensor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.WrapIO("read", path, err)
	}
	defer f.Close()

	h, err := ReadHeader(f)
	if err != nil {
		return nil, nil, err
	}

	data := make([]byte, h.DataSize())
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, errors.NewParseError("safetensors", path, "read tensor data", err)
	}

	names := h.Names()
	tensors := make([]Tensor, 0, len(names))
	for _, name := range names {
		e := h.Tensors[name]
		start, end := e.DataOffsets[0], e.DataOffsets[1]
		if start < 0 || end < start || end > int64(len(data)) {
			return nil, nil, errors.NewParseError("safetensors", path, fmt.Sprintf("tensor %s has invalid offsets", name), nil)
		}
		tensors = append(tensors, Tensor{Name: name, DType: e.DType, Shape: e.Shape, Data: data[start:end]})
	}
	return h, tensors, nil
}
